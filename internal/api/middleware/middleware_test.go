package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newSessionRouter() *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test", cookie.NewStore([]byte("secret"))))
	r.POST("/login", func(c *gin.Context) {
		if err := Login(c); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, SessionID(c))
	})
	r.POST("/logout", func(c *gin.Context) {
		sid, err := Logout(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, sid)
	})
	r.GET("/page", RequireAdmin(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/json", RequireAdminJSON(), func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func serve(r *gin.Engine, method, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAdmin_Anonymous(t *testing.T) {
	r := newSessionRouter()

	w := serve(r, http.MethodGet, "/page", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "no-store")

	w = serve(r, http.MethodGet, "/json", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginLogout(t *testing.T) {
	r := newSessionRouter()

	w := serve(r, http.MethodPost, "/login", nil)
	require.Equal(t, http.StatusOK, w.Code)
	sid := w.Body.String()
	assert.Len(t, sid, 36)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = serve(r, http.MethodGet, "/page", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
	w = serve(r, http.MethodGet, "/json", cookies)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodPost, "/logout", cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, sid, w.Body.String())
	out := w.Result().Cookies()
	require.NotEmpty(t, out)
	assert.Negative(t, out[0].MaxAge)
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.POST("/", RateLimit(0.001, 2), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/", nil).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/", nil).Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	r := gin.New()
	r.POST("/", RateLimit(0, 0), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/", nil).Code)
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	w = serve(r, http.MethodGet, "/", nil)
	assert.Len(t, w.Body.String(), 36)
}
