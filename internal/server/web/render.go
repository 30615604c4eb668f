package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"

	"github.com/dmitrijs2005/bookstore/internal/common"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

const layoutTemplate = "layout.html"

// page is what every template receives.
type page struct {
	Shop  string
	User  string
	Title string
	Data  any
}

type renderer struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"price": func(d decimal.Decimal) string { return d.StringFixed(2) },
}

// newRenderer parses every page together with the shared layout.
func newRenderer() (*renderer, error) {
	base, err := template.New(layoutTemplate).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	rd := &renderer{pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		file := path.Base(name)
		if file == layoutTemplate {
			continue
		}

		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(templateFS, name); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		rd.pages[file] = t
	}

	return rd, nil
}

// render executes the named page into a buffer first so that a template
// failure never leaves a half-written response.
func (rd *renderer) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data any) error {
	t, ok := rd.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, layoutTemplate, page{
		Shop:  common.ShopName,
		User:  UserName(r.Context()),
		Title: title,
		Data:  data,
	})
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
