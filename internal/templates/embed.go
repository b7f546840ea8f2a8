// Package templates renders resolved definitions into JavaScript message
// model modules.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/goccy/go-json"

	"github.com/rosjs/msggen/internal/core"
)

//go:embed js/*.tmpl
var jsFS embed.FS

const (
	packageTemplate = "package.js.tmpl"
	messageTemplate = "message.js.tmpl"
)

// root holds every parsed template; include looks names up here.
var root = template.Must(parse())

func parse() (*template.Template, error) {
	var t *template.Template
	funcs := template.FuncMap{
		"json":      toJSON,
		"indent":    indent,
		"trim":      strings.TrimSpace,
		"shortName": core.ShortName,
		"include": func(name string, data any) (string, error) {
			var buf bytes.Buffer
			if err := t.ExecuteTemplate(&buf, name, data); err != nil {
				return "", err
			}
			return buf.String(), nil
		},
	}

	t = template.New("js").Funcs(funcs)
	return t.ParseFS(jsFS, "js/*.tmpl")
}

// toJSON renders v as compact JSON.
func toJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %T: %w", v, err)
	}
	return string(data), nil
}

// indent prefixes every non-empty line of s with n spaces.
func indent(n int, s string) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
