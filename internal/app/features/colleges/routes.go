package colleges

import "github.com/go-chi/chi/v5"

// Register attaches the college routes to the root router. The paths
// are flat (legacy URL scheme), so this registers onto the parent
// instead of returning a mountable sub-router.
func Register(r chi.Router, h *Handler) {
	r.Post("/colleges", h.Create)
	r.Get("/colleges", h.List)
	r.Get("/data/college/{id}", h.Data)
	r.Post("/college/update/{id}", h.Update)

	r.Get("/new-college", h.ServeNew)
	r.Get("/dash/colleges", h.ServeDash)
}
