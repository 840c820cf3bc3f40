// Package web holds the server-rendered pages, embedded into the binary.
package web

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"currentYear": func() int { return time.Now().Year() },
}

// Templates parses every page. Names are the file base names, e.g. "landing.html".
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
}
