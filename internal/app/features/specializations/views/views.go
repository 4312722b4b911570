// internal/app/features/specializations/views/views.go
package specializations

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "specializations",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
