// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"html/template"
	"time"

	"github.com/learnhub/learnhub-backend/internal/app/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Pages served through the generic static page template, keyed by path segment.
var StaticPages = map[string]string{
	"about":        "About Us",
	"blog":         "Blog",
	"community":    "Community",
	"faqs":         "FAQs",
	"instructors":  "Instructors",
	"pricing":      "Pricing",
	"testimonials": "Testimonials",
	"services":     "Services",
}

func funcs() template.FuncMap {
	return template.FuncMap{
		"price": model.FormatCents,
		"year": func() int {
			return time.Now().Year()
		},
		"date": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"percent": formatPercent,
	}
}

// Templates parses every page template. Each page is addressed by its file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs()).ParseFS(templateFS, "templates/*.html")
}

func MustTemplates() *template.Template {
	return template.Must(Templates())
}
