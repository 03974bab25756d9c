// Package web embeds the server-rendered pages.
package web

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var FS embed.FS

// ErrorTemplate renders status pages
const ErrorTemplate = "error.html"

var funcs = template.FuncMap{
	"inc":  func(n int) int { return n + 1 },
	"dec":  func(n int) int { return n - 1 },
	"join": strings.Join,
}

// Templates parses every page; each is addressed by its file name
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(FS, "templates/*.html")
}
