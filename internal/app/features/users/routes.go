package users

import "github.com/go-chi/chi/v5"

// Register attaches the account routes to the root router.
func Register(r chi.Router, h *Handler) {
	r.Get("/data/user/{id}", h.Data)
	r.Post("/admins/update/{action}/{id}", h.UpdateRole)

	r.Get("/profile", h.ServeProfile)
	r.Get("/dash/users", h.ServeDashUsers)
	r.Get("/dash/admins", h.ServeDashAdmins)
}
