// Package view renders the HTML pages.  Templates are embedded in the
// binary and parsed once at startup; every page shares layout.html and
// fills in its "content" block.  The view layer only consumes the
// read-models built by the listing package.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var files embed.FS

// Renderer implements echo.Renderer over the embedded templates.
// Template names are relative to templates/, e.g. "pages/venues.html".
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page, form and error template against the shared
// layout.  It fails fast on any parse error so a broken template can
// never reach a request.
func New() (*Renderer, error) {
	funcs := template.FuncMap{
		"datetime": formatDatetime,
		"has":      contains,
	}
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, dir := range []string{"pages", "forms", "errors"} {
		entries, err := fs.ReadDir(files, "templates/"+dir)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			name := dir + "/" + e.Name()
			t, err := template.New("layout.html").Funcs(funcs).ParseFS(files,
				"templates/layout.html", "templates/"+name)
			if err != nil {
				return nil, fmt.Errorf("parse %s: %w", name, err)
			}
			r.pages[name] = t
		}
	}
	return r, nil
}

// Render writes the named page.  Unknown names are a programming
// error and fail the request.
func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown template %q", name)
	}
	return t.ExecuteTemplate(w, "layout.html", data)
}

// formatDatetime renders timestamps the way the listing pages show
// them, e.g. "Wed Jun 15, 2035 8:00 PM".
func formatDatetime(t time.Time) string {
	return t.Format("Mon Jan 2, 2006 3:04 PM")
}

// contains reports whether list holds s.  The edit forms use it to
// mark the already-selected genres.
func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
