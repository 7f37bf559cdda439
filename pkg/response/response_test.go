package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	reached := false
	r := gin.New()
	r.GET("/", h, func(c *gin.Context) { reached = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	var body Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body, reached
}

func TestUnauthorized_Aborts(t *testing.T) {
	w, body, reached := perform(t, func(c *gin.Context) { Unauthorized(c, "login required") })
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "login required", body.Message)
	assert.False(t, reached)
}

func TestInternalError_HidesDetail(t *testing.T) {
	w, body, _ := perform(t, func(c *gin.Context) {
		InternalError(c, errors.New("redis: connection refused"))
		c.Abort()
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "redis")
}

func TestSuccess(t *testing.T) {
	w, body, _ := perform(t, func(c *gin.Context) {
		Success(c, []string{"a"})
		c.Abort()
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, body.Code)
	assert.Equal(t, []any{"a"}, body.Data)
}
