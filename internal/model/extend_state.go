package model

import "time"

// ExtendStateRecord 扩展页会话状态（database 存储实现使用）
type ExtendStateRecord struct {
	SessionID string    `gorm:"primaryKey;type:varchar(36)"`
	Payload   string    `gorm:"type:text;not null"`
	ExpiresAt time.Time `gorm:"index:idx_extend_state_expires"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (ExtendStateRecord) TableName() string { return "extend_states" }
