package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/d60-Lab/blog-admin/pkg/response"
)

// 会话中的键。登录是模拟的：只记录一个 auth 标记。
const (
	sessionAuthKey = "auth"
	sessionIDKey   = "sid"
)

// IsAdmin 当前会话是否已“登录”
func IsAdmin(c *gin.Context) bool {
	return sessions.Default(c).Get(sessionAuthKey) == true
}

// Login 设置登录标记并分配新的会话 ID
func Login(c *gin.Context) error {
	s := sessions.Default(c)
	s.Set(sessionAuthKey, true)
	s.Set(sessionIDKey, uuid.NewString())
	return s.Save()
}

// Logout 清空会话，返回旧的会话 ID 以便清理服务端状态
func Logout(c *gin.Context) (string, error) {
	s := sessions.Default(c)
	sid, _ := s.Get(sessionIDKey).(string)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	return sid, s.Save()
}

// SessionID 返回会话 ID，不存在时生成
func SessionID(c *gin.Context) string {
	s := sessions.Default(c)
	if sid, ok := s.Get(sessionIDKey).(string); ok && sid != "" {
		return sid
	}
	sid := uuid.NewString()
	s.Set(sessionIDKey, sid)
	_ = s.Save()
	return sid
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, max-age=0")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
}

// RequireAdmin 页面路由：未登录跳回公开首页
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		noStore(c)
		if !IsAdmin(c) {
			c.Redirect(http.StatusSeeOther, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdminJSON JSON 接口：未登录返回 401
func RequireAdminJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			response.Unauthorized(c, "login required")
			return
		}
		c.Next()
	}
}
