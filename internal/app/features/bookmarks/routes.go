package bookmarks

import "github.com/go-chi/chi/v5"

// Register attaches the bookmark routes to the root router. The page
// path keeps its legacy camel-case spelling.
func Register(r chi.Router, h *Handler) {
	r.Get("/bookMarks", h.ServeList)
	r.Post("/bookmarks/add", h.Add)
	r.Post("/bookmarks/remove", h.Remove)
}
