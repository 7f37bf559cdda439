package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-admin/internal/model"
	"github.com/d60-Lab/blog-admin/internal/service"
)

const timestampLayout = "2006-01-02 15:04:05"

var (
	manageSubTabs   = []string{"Posts", "Pages", "Users", "Groups", "Uploads", "Import", "Export"}
	settingsSubTabs = []string{"General", "Content", "Users", "Routes"}
)

const msgLoadPostsFailed = "Failed to load posts. Is the backend server running?"

// statusView 只在提示未过期时传给模板
type statusView struct {
	Type        string
	Text        string
	RemainingMS int64
}

type writePage struct {
	adminPage
	Feather   string
	Form      service.WriteForm
	Status    *statusView
	Timestamp string
}

type managePage struct {
	adminPage
	SubTabs []string
	Posts   []model.Post
	Error   string
}

type settingsPage struct {
	adminPage
	SubTabs []string
}

// AdminIndex 默认标签页是 write
func (h *Handler) AdminIndex(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/admin/write")
}

func (h *Handler) WriteForm(c *gin.Context) {
	c.HTML(http.StatusOK, "write", h.newWritePage(service.WriteForm{}, nil))
}

// Publish 提交写文章表单
func (h *Handler) Publish(c *gin.Context) {
	var form service.WriteForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(err)
	}
	res := h.posts.Submit(c.Request.Context(), form)

	status := http.StatusOK
	switch res.Outcome {
	case service.SubmitInvalid:
		status = http.StatusUnprocessableEntity
	case service.SubmitFailed:
		status = http.StatusBadGateway
	}
	c.HTML(status, "write", h.newWritePage(res.Form, res.Status))
}

func (h *Handler) newWritePage(form service.WriteForm, msg *model.StatusMessage) writePage {
	now := h.now()
	page := writePage{
		adminPage: h.newAdminPage("write"),
		Feather:   model.FeatherText,
		Form:      form,
		Timestamp: now.UTC().Format(timestampLayout),
	}
	if msg.Visible(now) {
		page.Status = &statusView{Type: msg.Type, Text: msg.Text, RemainingMS: msg.RemainingMillis(now)}
	}
	return page
}

// Manage 文章列表；拉取失败渲染错误行
func (h *Handler) Manage(c *gin.Context) {
	page := managePage{adminPage: h.newAdminPage("manage"), SubTabs: manageSubTabs}
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		page.Error = msgLoadPostsFailed
	} else {
		page.Posts = posts
	}
	c.HTML(http.StatusOK, "manage", page)
}

// Settings 纯展示
func (h *Handler) Settings(c *gin.Context) {
	c.HTML(http.StatusOK, "settings", settingsPage{adminPage: h.newAdminPage("settings"), SubTabs: settingsSubTabs})
}
