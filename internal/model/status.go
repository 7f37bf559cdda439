package model

import "time"

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// StatusMessageTTL 状态提示的展示时长
const StatusMessageTTL = 3 * time.Second

// StatusMessage 写文章页的临时提示
type StatusMessage struct {
	Type      string    `json:"type"`
	Text      string    `json:"text"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewStatusMessage(typ, text string, now time.Time) *StatusMessage {
	return &StatusMessage{Type: typ, Text: text, ExpiresAt: now.Add(StatusMessageTTL)}
}

// Visible 过期后不再渲染
func (m *StatusMessage) Visible(now time.Time) bool {
	return m != nil && m.Text != "" && now.Before(m.ExpiresAt)
}

// RemainingMillis 页面脚本据此隐藏提示
func (m *StatusMessage) RemainingMillis(now time.Time) int64 {
	if m == nil {
		return 0
	}
	d := m.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d.Milliseconds()
}
