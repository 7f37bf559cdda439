package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-admin/config"
	"github.com/d60-Lab/blog-admin/internal/api/handler"
	"github.com/d60-Lab/blog-admin/internal/model"
	"github.com/d60-Lab/blog-admin/internal/repository"
	"github.com/d60-Lab/blog-admin/internal/service"
)

// fakeBackend 模拟文章 REST 后端
type fakeBackend struct {
	mu       sync.Mutex
	posts    []model.Post
	fail     bool
	created  []map[string]any
	tagPosts map[string][]model.Post
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/posts", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(b.posts)
		case http.MethodPost:
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			b.created = append(b.created, body)
			p := model.Post{ID: int64(len(b.posts) + 1), Title: body["title"].(string), Content: body["content"].(string)}
			b.posts = append(b.posts, p)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(p)
		}
	})
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		tags := []string{}
		for t := range b.tagPosts {
			tags = append(tags, t)
		}
		_ = json.NewEncoder(w).Encode(tags)
	})
	mux.HandleFunc("/api/tags/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		name := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/api/tags/"), "/posts")
		posts, ok := b.tagPosts[name]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Tag not found"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(posts)
	})
	return mux
}

func (b *fakeBackend) createdCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.created)
}

type testApp struct {
	router  *gin.Engine
	backend *fakeBackend
	cookies map[string]*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{tagPosts: map[string][]model.Post{}}
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	cfg.API.BaseURL = srv.URL + "/api"
	cfg.RateLimit.PublishRPS = 0

	posts := service.NewPostService(repository.NewHTTPPostRepository(cfg.API.BaseURL, time.Second))
	extend := service.NewExtendService(repository.NewMemoryExtendStateRepository(time.Hour))
	router, err := NewRouter(cfg, handler.NewHandler(posts, extend, cfg), Options{})
	require.NoError(t, err)

	return &testApp{router: router, backend: backend, cookies: map[string]*http.Cookie{}}
}

// do 发送请求并像浏览器一样保存 cookie
func (a *testApp) do(method, path string, body string, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(a.cookies, c.Name)
			continue
		}
		a.cookies[c.Name] = c
	}
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder { return a.do(http.MethodGet, path, "", "") }

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	return a.do(http.MethodPost, path, form.Encode(), "application/x-www-form-urlencoded")
}

func (a *testApp) postJSON(path string, v any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(v)
	return a.do(http.MethodPost, path, string(b), "application/json")
}

func (a *testApp) login(t *testing.T) {
	t.Helper()
	w := a.postForm("/login", url.Values{})
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.Equal(t, "/admin/write", w.Header().Get("Location"))
}

type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env.Data
}

func TestPublicSite_ListsPosts(t *testing.T) {
	app := newTestApp(t)
	app.backend.posts = []model.Post{{ID: 1, Title: "First post", Content: "Hello there"}}

	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "First post")
	assert.Contains(t, w.Body.String(), "Hello there")
	assert.Contains(t, w.Body.String(), "Admin Login")
	assert.NotContains(t, w.Body.String(), "Nothing here yet!")
}

func TestPublicSite_BackendDownShowsEmptyState(t *testing.T) {
	app := newTestApp(t)
	app.backend.fail = true

	w := app.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Nothing here yet!")
}

func TestPublicSite_Tags(t *testing.T) {
	app := newTestApp(t)
	app.backend.tagPosts["go"] = []model.Post{{ID: 3, Title: "Gophers", Content: "..."}}

	w := app.get("/tags/go")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gophers")
	assert.Contains(t, w.Body.String(), `href="/tags/go"`)

	w = app.get("/tags/missing")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Tag not found")
}

func TestAdmin_RequiresLogin(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/admin", "/admin/write", "/admin/manage", "/admin/settings", "/admin/extend/themes"} {
		w := app.get(path)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}

	w := app.get("/api/v1/extend/modules")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewRouter_LoginLogout(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.get("/")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/write", w.Header().Get("Location"))

	w = app.get("/admin/write")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "admin@example.com")
	assert.Contains(t, w.Body.String(), "Log Out")

	w = app.postForm("/logout", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = app.get("/admin/write")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestWrite_BlankFieldsDoNotHitBackend(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.postForm("/admin/write", url.Values{"title": {"   "}, "content": {"body text"}})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Please enter a title and content.")
	assert.Contains(t, w.Body.String(), "body text", "form keeps its values")
	assert.Equal(t, 0, app.backend.createdCount())
}

func TestWrite_SuccessClearsForm(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.postForm("/admin/write", url.Values{"title": {"My title"}, "content": {"My body"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Post published successfully!")
	assert.Contains(t, body, `data-dismiss-after="`)
	assert.Contains(t, body, `name="title" value=""`)
	assert.NotContains(t, body, "My body")

	require.Equal(t, 1, app.backend.createdCount())
	assert.Equal(t, map[string]any{"title": "My title", "content": "My body", "feather_type": "Text"}, app.backend.created[0])
}

func TestWrite_BackendFailure(t *testing.T) {
	app := newTestApp(t)
	app.login(t)
	app.backend.fail = true

	w := app.postForm("/admin/write", url.Values{"title": {"Keep me"}, "content": {"Body"}})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "Error publishing post. Is the backend server running?")
	assert.Contains(t, w.Body.String(), `value="Keep me"`)
}

func TestManage(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.get("/admin/manage")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "⊗ No results")

	app.backend.posts = []model.Post{{ID: 1, Title: "Listed", Content: "x"}}
	w = app.get("/admin/manage")
	assert.Contains(t, w.Body.String(), "Listed")
	assert.Contains(t, w.Body.String(), "Edit")

	app.backend.fail = true
	w = app.get("/admin/manage")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to load posts. Is the backend server running?")
}

func TestSettings_IsStatic(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.get("/admin/settings")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "General Settings")
	assert.Contains(t, w.Body.String(), "My Awesome Site")
	assert.Contains(t, w.Body.String(), "Current version: 2025.02")
}

func TestExtend_ModuleToggleForm(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.get("/admin/extend")
	assert.Equal(t, "/admin/extend/modules", w.Header().Get("Location"))

	w = app.postForm("/admin/extend/modules/toggle", url.Values{"name": {"Comments"}, "from": {"disabled"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/admin/extend/modules", w.Header().Get("Location"))

	mods := decode[struct {
		Enabled  []model.Module `json:"enabled"`
		Disabled []model.Module `json:"disabled"`
	}](t, app.get("/api/v1/extend/modules"))
	names := make([]string, len(mods.Enabled))
	for i, m := range mods.Enabled {
		names[i] = m.Name
	}
	assert.Equal(t, []string{"Cascade", "Comments", "Easy Embed", "Lightbox", "Syntax Highlighting"}, names)
	assert.Len(t, mods.Disabled, 12)

	w = app.postForm("/admin/extend/modules/toggle", url.Values{"name": {"Nope"}, "from": {"enabled"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Could not update extensions.")
}

func TestExtend_FeatherPage(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.get("/admin/extend/feathers")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), ">Disabled<", "no disabled section while all feathers are enabled")

	w = app.postForm("/admin/extend/feathers/toggle", url.Values{"name": {"Photo"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = app.get("/admin/extend/feathers")
	assert.Contains(t, w.Body.String(), ">Disabled<")
}

func TestExtend_ThemeSelectJSON(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.postJSON("/api/v1/extend/themes/select", map[string]string{"name": "Umbra"})
	require.Equal(t, http.StatusOK, w.Code)
	themes := decode[[]model.Theme](t, w)

	active := 0
	for _, th := range themes {
		if th.Active {
			active++
			assert.Equal(t, "Umbra", th.Name)
		}
	}
	assert.Equal(t, 1, active)

	w = app.postJSON("/api/v1/extend/themes/select", map[string]string{"name": "Nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = app.get("/admin/extend/themes")
	require.Equal(t, http.StatusOK, w.Code)
	// 已激活的主题不显示 Select 按钮：5 个主题只有 4 个表单
	assert.Equal(t, 4, strings.Count(w.Body.String(), `action="/admin/extend/themes/select"`))
}

func TestExtend_LogoutResetsState(t *testing.T) {
	app := newTestApp(t)
	app.login(t)

	w := app.postJSON("/api/v1/extend/feathers/toggle", map[string]string{"name": "Video"})
	require.Equal(t, http.StatusOK, w.Code)

	app.postForm("/logout", url.Values{})
	app.login(t)

	feathers := decode[struct {
		Enabled  []model.Feather `json:"enabled"`
		Disabled []model.Feather `json:"disabled"`
	}](t, app.get("/api/v1/extend/feathers"))
	assert.Len(t, feathers.Enabled, 7)
	assert.Empty(t, feathers.Disabled)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	w := app.get("/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}
