package login

import "github.com/go-chi/chi/v5"

// Routes mounts the sign-in page under /login; the credential POST
// endpoints live under /auth and are mounted separately.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeLogin)
	return r
}

// AuthRoutes carries the credential endpoints mounted under /auth.
func AuthRoutes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.HandleLogin)
	r.Post("/register", h.HandleRegister)
	return r
}
