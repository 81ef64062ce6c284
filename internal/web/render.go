package web

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/a3tai/pdf-stamp-checker/internal/report"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Templates renders the embedded HTML pages
type Templates struct {
	templates *template.Template
}

// NewTemplates parses the embedded page templates
func NewTemplates() (*Templates, error) {
	funcs := template.FuncMap{
		"join": strings.Join,
		"flagClass": func(v string) string {
			switch v {
			case report.Yes:
				return "yes"
			case report.No:
				return "no"
			}
			return ""
		},
	}

	t, err := template.New("pages").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{templates: t}, nil
}

// Render implements echo.Renderer
func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}
