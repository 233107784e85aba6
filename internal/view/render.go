// Package view renders the HTML pages. Every page is parsed together with the
// shared layout, so pages only define their "content" block.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"

	"newel_classroom/internal/util"

	"github.com/gin-gonic/gin/render"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// 用户输入的正文只允许安全的富文本标签
var policy = bluemonday.UGCPolicy()

// Renderer implements gin's render.HTMLRender over the embedded templates.
type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template)}
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(page), ".html")
		tmpl, err := template.New(name).Funcs(Funcs()).ParseFS(templateFS, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Instance(name string, data any) render.Render {
	tmpl, ok := r.templates[name]
	if !ok {
		tmpl = r.templates["500"]
	}
	return render.HTML{
		Template: tmpl,
		Name:     "layout",
		Data:     data,
	}
}

// Pages lists the page names that can be rendered.
func (r *Renderer) Pages() []string {
	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	return names
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"richtext":  RichText,
		"datetime":  formatTime,
		"yearLevel": formatYearLevel,
		"score":     formatScore,
	}
}

// RichText sanitises user text and keeps its line breaks.
func RichText(s string) template.HTML {
	clean := policy.Sanitize(s)
	clean = strings.ReplaceAll(clean, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(clean, "\n", "<br>"))
}

func formatTime(t time.Time) string {
	return t.Local().Format(util.TimeFormat)
}

func formatYearLevel(year *int) string {
	if year == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *year)
}

func formatScore(avg float64) string {
	return fmt.Sprintf("%.2f", avg)
}
