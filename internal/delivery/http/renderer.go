package http

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/labstack/echo/v4"
)

var _ echo.Renderer = (*TemplateRenderer)(nil)

type TemplateRenderer struct {
	templates *template.Template
}

// NewTemplateRenderer parses every template in fsys matching pattern.
func NewTemplateRenderer(fsys fs.FS, pattern string) (*TemplateRenderer, error) {
	tmpl, err := template.ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &TemplateRenderer{templates: tmpl}, nil
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
