package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/blog-admin/config"
	_ "github.com/d60-Lab/blog-admin/docs"
	"github.com/d60-Lab/blog-admin/internal/api/handler"
	"github.com/d60-Lab/blog-admin/internal/api/middleware"
	"github.com/d60-Lab/blog-admin/internal/web"
)

// Options 可选的外围集成
type Options struct {
	Tracing bool
	Sentry  bool
}

// NewRouter 组装中间件与路由
func NewRouter(cfg *config.Config, h *handler.Handler, opts Options) (*gin.Engine, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.HTMLRender = renderer
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog())
	if opts.Tracing {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	store := cookie.NewStore([]byte(cfg.Session.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(cfg.Session.Name, store))

	r.StaticFS("/static", web.StaticFS())
	r.GET("/healthz", h.Health)
	if cfg.Server.EnableSwagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 公开站点
	r.GET("/", h.Home)
	r.GET("/tags/:name", h.TagPosts)
	r.POST("/login", h.Login)
	r.POST("/logout", h.Logout)

	admin := r.Group("/admin", middleware.RequireAdmin())
	{
		admin.GET("", h.AdminIndex)
		admin.GET("/write", h.WriteForm)
		admin.POST("/write", middleware.RateLimit(cfg.RateLimit.PublishRPS, cfg.RateLimit.PublishBurst), h.Publish)
		admin.GET("/manage", h.Manage)
		admin.GET("/settings", h.Settings)

		admin.GET("/extend", h.ExtendIndex)
		admin.GET("/extend/modules", h.ExtendModules())
		admin.GET("/extend/feathers", h.ExtendFeathers())
		admin.GET("/extend/themes", h.ExtendThemes())
		admin.POST("/extend/modules/toggle", h.ToggleModuleForm)
		admin.POST("/extend/feathers/toggle", h.ToggleFeatherForm)
		admin.POST("/extend/themes/select", h.SelectThemeForm)
	}

	v1 := r.Group("/api/v1/extend", middleware.RequireAdminJSON())
	{
		v1.GET("/modules", h.ListModules)
		v1.POST("/modules/toggle", h.ToggleModule)
		v1.GET("/feathers", h.ListFeathers)
		v1.POST("/feathers/toggle", h.ToggleFeather)
		v1.GET("/themes", h.ListThemes)
		v1.POST("/themes/select", h.SelectTheme)
	}

	return r, nil
}
