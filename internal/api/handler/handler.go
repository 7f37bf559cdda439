package handler

import (
	"time"

	"github.com/d60-Lab/blog-admin/config"
	"github.com/d60-Lab/blog-admin/internal/service"
)

// Handler 页面与 JSON 接口共用
type Handler struct {
	posts     service.PostService
	extend    service.ExtendService
	site      config.SiteConfig
	userEmail string
	now       func() time.Time
}

func NewHandler(posts service.PostService, extend service.ExtendService, cfg *config.Config) *Handler {
	return &Handler{
		posts:     posts,
		extend:    extend,
		site:      cfg.Site,
		userEmail: cfg.Auth.MockUserEmail,
		now:       time.Now,
	}
}

// adminPage 管理后台各页共有的数据
type adminPage struct {
	Site      config.SiteConfig
	UserEmail string
	Tab       string
}

func (h *Handler) newAdminPage(tab string) adminPage {
	return adminPage{Site: h.site, UserEmail: h.userEmail, Tab: tab}
}
