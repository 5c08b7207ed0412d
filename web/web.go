// Package web carries the embedded HTML pages and the echo renderer that
// serves them. The pages are deliberately plain; the dashboards load their
// data from the JSON endpoints.
package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates. Each template is addressed by
// the name it defines, for example "login" or "apply_success".
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
