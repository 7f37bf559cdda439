package model

// Module 可选功能模块
type Module struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Feather 文章类型插件
type Feather struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

// Theme 博客主题，任意时刻只有一个 Active
type Theme struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}
