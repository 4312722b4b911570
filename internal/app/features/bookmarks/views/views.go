// internal/app/features/bookmarks/views/views.go
package bookmarks

import (
	"embed"

	"github.com/dalemusser/waffle/pantry/templates"
)

//go:embed templates/*.gohtml
var FS embed.FS

func init() {
	templates.Register(templates.Set{
		Name:     "bookmarks",
		FS:       FS,
		Patterns: []string{"templates/*.gohtml"},
	})
}
