// Package web 内嵌页面模板与静态资源，并提供 gin 的多布局 HTML 渲染器。
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates static
var content embed.FS

// 页面名 -> 布局
var pages = map[string]string{
	"site":            "public",
	"write":           "admin",
	"manage":          "admin",
	"settings":        "admin",
	"extend_modules":  "admin",
	"extend_feathers": "admin",
	"extend_themes":   "admin",
}

// Renderer 每个页面独立一套模板（布局 + 公共片段 + 页面），避免 "content" 重名
type Renderer struct {
	templates map[string]*template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for page, layout := range pages {
		t, err := template.New(page).ParseFS(content,
			"templates/layouts/"+layout+".html",
			"templates/partials/*.html",
			"templates/pages/"+page+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

// Instance 实现 render.HTMLRender
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{Template: r.templates[name], Name: "base", Data: data}
}

// StaticFS 供 /static 路由使用
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(content, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
