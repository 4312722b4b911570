// internal/app/features/courses/views/views.go
package courses

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "courses",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
