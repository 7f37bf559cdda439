package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-admin/internal/api/middleware"
	"github.com/d60-Lab/blog-admin/internal/extension"
	"github.com/d60-Lab/blog-admin/internal/model"
	"github.com/d60-Lab/blog-admin/pkg/response"
)

const msgExtendFailed = "Could not update extensions."

var errBadInput = errors.New("invalid input")

type extendPage struct {
	adminPage
	ExtendTab        string
	Error            string
	Modules          extension.Modules
	EnabledFeathers  []model.Feather
	DisabledFeathers []model.Feather
	Themes           extension.Themes
}

func (h *Handler) renderExtend(c *gin.Context, status int, tab string, st extension.State, errMsg string) {
	c.HTML(status, "extend_"+tab, extendPage{
		adminPage:        h.newAdminPage("extend"),
		ExtendTab:        tab,
		Error:            errMsg,
		Modules:          st.Modules,
		EnabledFeathers:  st.Feathers.Enabled(),
		DisabledFeathers: st.Feathers.Disabled(),
		Themes:           st.Themes,
	})
}

// ExtendIndex 默认子标签页是 modules
func (h *Handler) ExtendIndex(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/admin/extend/modules")
}

func (h *Handler) extendTab(tab string) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := h.extend.State(c.Request.Context(), middleware.SessionID(c))
		h.renderExtend(c, http.StatusOK, tab, st, "")
	}
}

func (h *Handler) ExtendModules() gin.HandlerFunc  { return h.extendTab("modules") }
func (h *Handler) ExtendFeathers() gin.HandlerFunc { return h.extendTab("feathers") }
func (h *Handler) ExtendThemes() gin.HandlerFunc   { return h.extendTab("themes") }

type toggleForm struct {
	Name string `form:"name" json:"name" binding:"required"`
	From string `form:"from" json:"from"`
}

// afterExtendChange 成功后 PRG 跳回子标签页；失败原地渲染错误
func (h *Handler) afterExtendChange(c *gin.Context, tab string, st extension.State, err error) {
	if err == nil {
		c.Redirect(http.StatusSeeOther, "/admin/extend/"+tab)
		return
	}
	_ = c.Error(err)
	status := http.StatusInternalServerError
	if isClientError(err) {
		status = http.StatusBadRequest
	}
	h.renderExtend(c, status, tab, st, msgExtendFailed)
}

func isClientError(err error) bool {
	return errors.Is(err, extension.ErrUnknownEntry) ||
		errors.Is(err, extension.ErrUnknownBucket) ||
		errors.Is(err, errBadInput)
}

func (h *Handler) ToggleModuleForm(c *gin.Context) {
	sid := middleware.SessionID(c)
	var f toggleForm
	if err := c.ShouldBind(&f); err != nil {
		h.afterExtendChange(c, "modules", h.extend.State(c.Request.Context(), sid), fmt.Errorf("%w: %v", errBadInput, err))
		return
	}
	st, err := h.toggleModule(c, sid, f)
	h.afterExtendChange(c, "modules", st, err)
}

func (h *Handler) toggleModule(c *gin.Context, sid string, f toggleForm) (extension.State, error) {
	from, err := extension.ParseBucket(f.From)
	if err != nil {
		return h.extend.State(c.Request.Context(), sid), err
	}
	return h.extend.ToggleModule(c.Request.Context(), sid, f.Name, from)
}

func (h *Handler) ToggleFeatherForm(c *gin.Context) {
	sid := middleware.SessionID(c)
	var f toggleForm
	if err := c.ShouldBind(&f); err != nil {
		h.afterExtendChange(c, "feathers", h.extend.State(c.Request.Context(), sid), fmt.Errorf("%w: %v", errBadInput, err))
		return
	}
	st, err := h.extend.ToggleFeather(c.Request.Context(), sid, f.Name)
	h.afterExtendChange(c, "feathers", st, err)
}

func (h *Handler) SelectThemeForm(c *gin.Context) {
	sid := middleware.SessionID(c)
	var f toggleForm
	if err := c.ShouldBind(&f); err != nil {
		h.afterExtendChange(c, "themes", h.extend.State(c.Request.Context(), sid), fmt.Errorf("%w: %v", errBadInput, err))
		return
	}
	st, err := h.extend.SelectTheme(c.Request.Context(), sid, f.Name)
	h.afterExtendChange(c, "themes", st, err)
}

// ---- JSON ----

type featherList struct {
	Enabled  []model.Feather `json:"enabled"`
	Disabled []model.Feather `json:"disabled"`
}

func (h *Handler) jsonResult(c *gin.Context, data any, err error) {
	switch {
	case err == nil:
		response.Success(c, data)
	case isClientError(err):
		response.BadRequest(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// ListModules 模块列表
// @Summary 查询模块（启用 / 禁用）
// @Tags extend
// @Produce json
// @Success 200 {object} response.Response{data=extension.Modules}
// @Failure 401 {object} response.Response
// @Router /api/v1/extend/modules [get]
func (h *Handler) ListModules(c *gin.Context) {
	response.Success(c, h.extend.State(c.Request.Context(), middleware.SessionID(c)).Modules)
}

// ToggleModule 切换模块启用状态
// @Summary 在启用 / 禁用分组间移动模块
// @Tags extend
// @Accept json
// @Produce json
// @Param request body toggleForm true "模块名与当前分组（enabled / disabled）"
// @Success 200 {object} response.Response{data=extension.Modules}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/extend/modules/toggle [post]
func (h *Handler) ToggleModule(c *gin.Context) {
	var f toggleForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st, err := h.toggleModule(c, middleware.SessionID(c), f)
	h.jsonResult(c, st.Modules, err)
}

// ListFeathers Feather 列表
// @Summary 查询 feather（启用 / 禁用）
// @Tags extend
// @Produce json
// @Success 200 {object} response.Response{data=featherList}
// @Failure 401 {object} response.Response
// @Router /api/v1/extend/feathers [get]
func (h *Handler) ListFeathers(c *gin.Context) {
	st := h.extend.State(c.Request.Context(), middleware.SessionID(c))
	response.Success(c, featherList{Enabled: st.Feathers.Enabled(), Disabled: st.Feathers.Disabled()})
}

// ToggleFeather 切换 feather
// @Summary 启用 / 禁用 feather
// @Tags extend
// @Accept json
// @Produce json
// @Param request body toggleForm true "feather 名称"
// @Success 200 {object} response.Response{data=featherList}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/extend/feathers/toggle [post]
func (h *Handler) ToggleFeather(c *gin.Context) {
	var f toggleForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st, err := h.extend.ToggleFeather(c.Request.Context(), middleware.SessionID(c), f.Name)
	h.jsonResult(c, featherList{Enabled: st.Feathers.Enabled(), Disabled: st.Feathers.Disabled()}, err)
}

// ListThemes 主题列表
// @Summary 查询主题
// @Tags extend
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Theme}
// @Failure 401 {object} response.Response
// @Router /api/v1/extend/themes [get]
func (h *Handler) ListThemes(c *gin.Context) {
	response.Success(c, h.extend.State(c.Request.Context(), middleware.SessionID(c)).Themes)
}

// SelectTheme 选择主题
// @Summary 激活主题（其余主题全部取消）
// @Tags extend
// @Accept json
// @Produce json
// @Param request body toggleForm true "主题名称"
// @Success 200 {object} response.Response{data=[]model.Theme}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/extend/themes/select [post]
func (h *Handler) SelectTheme(c *gin.Context) {
	var f toggleForm
	if err := c.ShouldBindJSON(&f); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	st, err := h.extend.SelectTheme(c.Request.Context(), middleware.SessionID(c), f.Name)
	h.jsonResult(c, st.Themes, err)
}
