// internal/app/features/colleges/views/views.go
package colleges

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "colleges",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
