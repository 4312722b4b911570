package specializations

import "github.com/go-chi/chi/v5"

// Register attaches the specialization routes to the root router.
// "/specializations/all" must stay ahead of the {college} wildcard.
func Register(r chi.Router, h *Handler) {
	r.Post("/specializations", h.Create)
	r.Get("/specializations/all", h.ListAll)
	r.Get("/specializations/{college}", h.ListByCollege)
	r.Get("/data/specialization/{id}", h.Data)
	r.Post("/specialization/update/{id}", h.Update)

	r.Get("/new-specialization", h.ServeNew)
	r.Get("/dash/specializations", h.ServeDash)
}
