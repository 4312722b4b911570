package home

import "github.com/go-chi/chi/v5"

// Register attaches the landing pages to the root router.
func Register(r chi.Router, h *Handler) {
	r.Get("/", h.ServeRoot)
	r.Get("/contact", h.ServeContact)
	r.Get("/edit", h.ServeEdit)
}
