package model

// FeatherText 新文章默认使用的 feather
const FeatherText = "Text"

// Post 后端返回的文章（本地只做只读展示）
type Post struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	FeatherType string   `json:"feather_type,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// NewPost 创建文章请求体
type NewPost struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	FeatherType string   `json:"feather_type"`
	Tags        []string `json:"tags,omitempty"`
}
