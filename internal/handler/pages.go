package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"gsi-session/internal/observability"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages holds one parsed template set per page, each wrapped in the layout
type Pages struct {
	sets map[string]*template.Template
}

func NewPages() (*Pages, error) {
	p := &Pages{sets: make(map[string]*template.Template)}
	for _, name := range []string{"signin", "home"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p.sets[name] = t
	}
	return p, nil
}

// Render executes page into a buffer first so a template error never
// leaves a half-written response.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, page string, data any) {
	t, ok := p.sets[page]
	if !ok {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		observability.FromContext(r.Context()).Error("render page failed",
			"page", page, "error", err.Error())
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
