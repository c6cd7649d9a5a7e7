package api

import (
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"
)

func LoadTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		// urlquery URL-encodes a string
		"urlquery": func(s string) string {
			return url.QueryEscape(s)
		},
		// join concatenates strings with a separator
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		// pct formats a float with one decimal place
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f", v)
		},
	}

	t := template.New("base").Funcs(funcs)

	patterns := []string{
		"web/templates/layouts/*.html",
		"web/templates/pages/*.html",
		"web/templates/partials/*.html",
	}
	for _, p := range patterns {
		if matches, _ := filepath.Glob(p); len(matches) == 0 {
			continue
		}
		if _, err := t.ParseGlob(p); err != nil {
			return nil, err
		}
	}

	return t, nil
}
