package main

import (
	"html/template"
	"io/fs"
	"path/filepath"
	"time"

	"alhyra_organics/internal/invoice"
	"alhyra_organics/ui"
)

type TemplateData struct {
	Invoice     *invoice.Invoice
	ShopName    string
	CurrentYear int
}

func humanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format("02 Jan 2006")
}

var functions = template.FuncMap{
	"humanDate": humanDate,
	"inr":       invoice.INR,
}

func newTemplateCache() (map[string]*template.Template, error) {
	cache := make(map[string]*template.Template)

	pages, err := fs.Glob(ui.Files, "html/*.page.tmpl")
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		patterns := []string{"html/base.layout.tmpl"}

		partials, err := fs.Glob(ui.Files, "html/*.partial.tmpl")
		if err != nil {
			return nil, err
		}
		if len(partials) > 0 {
			patterns = append(patterns, "html/*.partial.tmpl")
		}
		patterns = append(patterns, page)

		ts, err := template.New(name).Funcs(functions).ParseFS(ui.Files, patterns...)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
