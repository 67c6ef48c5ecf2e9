// Package web renders the dashboard pages and serves their static assets.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Page template names accepted by Renderer.
const (
	PageDashboard        = "dashboard.html"
	PageInsurance        = "insurance.html"
	PageCareCoordination = "care_coordination.html"
	layoutTemplate       = "templates/layout.html"
)

// Renderer implements echo.Renderer. Each page is parsed together with the
// shared layout so every page can define its own "content" block.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageDashboard, PageInsurance, PageCareCoordination} {
		t, err := template.ParseFS(templateFS, layoutTemplate, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// StaticHandler serves the embedded CSS and JS under /static/.
func StaticHandler() echo.HandlerFunc {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return echo.WrapHandler(http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
}
