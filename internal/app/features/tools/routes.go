package tools

import "github.com/go-chi/chi/v5"

// Register attaches the PDF tool routes to the root router.
func Register(r chi.Router, h *Handler) {
	r.Get("/pdfs-merge", h.ServeMergePage)
	r.Post("/pdfs-merge", h.Merge)
	r.Get("/images-to-pdf", h.ServeImagesPage)
	r.Post("/images-to-pdf", h.ConvertImages)
}
