package echoapi

import (
	htmltmpl "html/template"
	"io"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/beacon/core"
)

// Renderer serves the page templates under assets/templates/pages.
// Each .gohtml file defines the template named after the page it renders.
type Renderer struct {
	templates *htmltmpl.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func NewRenderer(conf *core.Config) (*Renderer, error) {
	tmpl := htmltmpl.New("pages").Funcs(htmltmpl.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("January 2, 2006")
		},
		"dateField": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("2006-01-02")
		},
	})

	pattern := filepath.Join(conf.WorkDir, "assets", "templates", "pages", "*.gohtml")
	tmpl, err := tmpl.ParseGlob(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "parsing page templates")
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
