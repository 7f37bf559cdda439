package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-admin/config"
	"github.com/d60-Lab/blog-admin/internal/api/middleware"
	"github.com/d60-Lab/blog-admin/internal/model"
	"github.com/d60-Lab/blog-admin/internal/repository"
)

var siteNavItems = []string{"Blog", "Email", "Feed", "Admin", "Controls"}

type sitePage struct {
	Site        config.SiteConfig
	NavItems    []string
	Posts       []model.Post
	Tags        []string
	Tag         string
	TagNotFound bool
}

// Home 未登录展示公开首页，已登录进入后台
func (h *Handler) Home(c *gin.Context) {
	if middleware.IsAdmin(c) {
		c.Redirect(http.StatusSeeOther, "/admin/write")
		return
	}
	ctx := c.Request.Context()
	// 公开页不展示错误，拉取失败即空列表
	posts, _ := h.posts.List(ctx)
	tags, _ := h.posts.ListTags(ctx)
	c.HTML(http.StatusOK, "site", sitePage{Site: h.site, NavItems: siteNavItems, Posts: posts, Tags: tags})
}

// TagPosts 按标签浏览
func (h *Handler) TagPosts(c *gin.Context) {
	tag := c.Param("name")
	ctx := c.Request.Context()
	page := sitePage{Site: h.site, NavItems: siteNavItems, Tag: tag}

	posts, err := h.posts.ListByTag(ctx, tag)
	status := http.StatusOK
	if errors.Is(err, repository.ErrNotFound) {
		page.TagNotFound = true
		status = http.StatusNotFound
	}
	page.Posts = posts
	page.Tags, _ = h.posts.ListTags(ctx)
	c.HTML(status, "site", page)
}

// Login 模拟登录：无需凭据
func (h *Handler) Login(c *gin.Context) {
	if err := middleware.Login(c); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/write")
}

// Logout 清空会话并丢弃扩展页状态
func (h *Handler) Logout(c *gin.Context) {
	sid, err := middleware.Logout(c)
	if err != nil {
		_ = c.Error(err)
	}
	if sid != "" {
		if err := h.extend.Reset(c.Request.Context(), sid); err != nil {
			_ = c.Error(err)
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// Health 存活检查
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
