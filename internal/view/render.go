package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"licenseadmin/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// AppTitle heads every page.
const AppTitle = "GhostShell License Manager"

// Page names.
const (
	PageValidate = "validate.html"
	PageCreate   = "create.html"
	PageStats    = "stats.html"
	PageActivity = "activity.html"
)

// Page is the data passed to every template.
type Page struct {
	Heading string
	Nav     string
	// Form holds values echoed back into inputs. Admin tokens are never put here.
	Form     map[string]string
	Result   *Result
	Activity *ActivityPage
}

// ActivityPage is one page of the activity log.
type ActivityPage struct {
	Items      []model.Activity
	Total      int
	Limit      int
	Offset     int
	PrevOffset int
	NextOffset int
	HasPrev    bool
	HasNext    bool
}

// NewActivityPage computes pagination links for a page of activity.
func NewActivityPage(items []model.Activity, total, limit, offset int) *ActivityPage {
	p := &ActivityPage{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	if offset > 0 {
		p.HasPrev = true
		p.PrevOffset = max(offset-limit, 0)
	}
	if offset+len(items) < total {
		p.HasNext = true
		p.NextOffset = offset + limit
	}
	return p
}

// Renderer executes the embedded HTML templates.
// It is safe for concurrent use once constructed.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"title": func() string { return AppTitle },
		"datetime": func(t time.Time) string {
			return t.In(loc).Format(model.DisplayLayout)
		},
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageValidate, PageCreate, PageStats, PageActivity} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page with data to w.
func (r *Renderer) Render(w io.Writer, page string, data Page) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
