package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/gin-gonic/gin/render"

	"github.com/ilim-academy/website/internal/shared/biztime"
	"github.com/ilim-academy/website/internal/shared/richtext"
	"github.com/ilim-academy/website/internal/shared/services/markdown"
)

//go:embed templates
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// Renderer is a gin HTMLRender that pairs every page template with the
// shared layout.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the layout with each page under templates/pages.
func NewRenderer(md markdown.Renderer) (*Renderer, error) {
	funcs := Funcs(md)

	pages, err := fs.Glob(templateFS, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list page templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, p := range pages {
		t, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(templateFS, layoutFile, p)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", p, err)
		}
		r.templates[strings.TrimSuffix(path.Base(p), ".html")] = t
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	t, ok := r.templates[name]
	if !ok {
		return render.String{Format: "template %q not found", Data: []any{name}}
	}
	return render.HTML{Template: t, Name: "layout", Data: data}
}

// Has reports whether a page template named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Funcs returns the template helpers shared by all pages.
func Funcs(md markdown.Renderer) template.FuncMap {
	return template.FuncMap{
		"richtext":     richtext.HTML,
		"markdown":     md.Render,
		"reveal":       revealFunc,
		"revealRepeat": revealRepeatFunc,
		"date":         biztime.Format,
		"add":          func(a, b int) int { return a + b },
		"stagger":      func(i, step int) int { return i * step },
		"list":         func(items ...string) []string { return items },
	}
}
