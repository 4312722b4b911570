// internal/app/features/tools/views/views.go
package tools

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "tools",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
