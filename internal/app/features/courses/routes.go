package courses

import "github.com/go-chi/chi/v5"

// Register attaches the course routes to the root router.
func Register(r chi.Router, h *Handler) {
	r.Post("/courses", h.Create)
	r.Get("/courses/all", h.ListAll)
	r.Post("/course/update/{id}", h.Update)

	r.Get("/library", h.ServeLibrary)
	r.Get("/book/{id}", h.ServeBook)

	r.Get("/new-course", h.ServeNew)
	r.Get("/update-content", h.ServeUpdateContent)
	r.Get("/dash/courses", h.ServeDash)
}
