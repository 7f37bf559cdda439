package extension

import "github.com/d60-Lab/blog-admin/internal/model"

// 内置目录，状态只在会话内修改，从不回写

var defaultEnabledModules = []model.Module{
	{Name: "Cascade", Description: "Adds ajax-powered infinite scrolling to your blog."},
	{Name: "Easy Embed", Description: "Embed content in your blog by pasting its URL surrounded by <!-- and -->."},
	{Name: "Syntax Highlighting", Description: "Adds syntax highlighting to nested <pre><code> blocks."},
	{Name: "Lightbox", Description: "A lightbox for your images."},
}

var defaultDisabledModules = []model.Module{
	{Name: "Cacher", Description: "Caches pages, drastically reducing server load."},
	{Name: "Categorize", Description: "Categorize your posts."},
	{Name: "Comments", Description: "Adds commenting functionality to your posts, with webmention support."},
	{Name: "Likes", Description: "Allow users to “like” a post."},
	{Name: "MAPTCHA", Description: "Ask users to solve simple mathematics problems to prevent spam."},
	{Name: "MathJax", Description: "A JavaScript display engine for mathematics."},
	{Name: "Migration Assistant", Description: "Enables import from Wordpress, MovableType, TextPattern, and Tumblr."},
	{Name: "Mentionable", Description: "Register webmentions from blogs that link to yours."},
	{Name: "Post Views", Description: "Counts the number of times your posts have been viewed."},
	{Name: "Read More", Description: "Add “…more” links to your blog index by typing <!--more--> or <!--more custom text--> in your posts."},
	{Name: "Rights", Description: "Adds post options for attribution and assigning intellectual property rights."},
	{Name: "Sitemap Generator", Description: "Creates a sitemap.xml file on your server to help search engines index your blog."},
	{Name: "Tagginator", Description: "Adds tagging functionality to posts."},
}

var defaultFeathers = []model.Feather{
	{Name: "Audio", Description: "A feather for audio."},
	{Name: "Link", Description: "Link to other sites and add an optional description."},
	{Name: "Photo", Description: "Upload and display an image with a caption."},
	{Name: "Quote", Description: "Post quotes and cite sources."},
	{Name: "Text", Description: "A basic text feather."},
	{Name: "Uploader", Description: "Upload files and make them available for visitors to download."},
	{Name: "Video", Description: "A feather for video."},
}

var defaultThemes = []model.Theme{
	{Name: "Blossom", Description: "The default theme provided with Chyrp Lite.", Active: true},
	{Name: "Sparrow", Description: "An unobtrusive tumbleblog theme for Chyrp Lite."},
	{Name: "Topaz", Description: "A minimalist responsive theme for Chyrp Lite."},
	{Name: "Umbra", Description: "A dark tumbleblog theme for Chyrp Lite."},
	{Name: "Virgula", Description: "A high-contrast theme for Chyrp Lite."},
}

// State 一个会话的扩展页状态
type State struct {
	Modules  Modules  `json:"modules"`
	Feathers Feathers `json:"feathers"`
	Themes   Themes   `json:"themes"`
}

// DefaultState 返回目录的独立副本；feather 初始全部启用
func DefaultState() State {
	feathers := make(Feathers, len(defaultFeathers))
	for i, f := range defaultFeathers {
		f.Enabled = true
		feathers[i] = f
	}
	return State{
		Modules: Modules{
			Enabled:  append([]model.Module(nil), defaultEnabledModules...),
			Disabled: append([]model.Module(nil), defaultDisabledModules...),
		},
		Feathers: feathers,
		Themes:   append(Themes(nil), defaultThemes...),
	}
}
