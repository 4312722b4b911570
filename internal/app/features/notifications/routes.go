package notifications

import "github.com/go-chi/chi/v5"

// Register attaches the notification routes to the root router.
func Register(r chi.Router, h *Handler) {
	r.Get("/notifications", h.ServeList)
	r.Post("/notifications/add", h.Add)
	r.Get("/notifications/all", h.ListAll)

	r.Get("/new-notification", h.ServeNew)
	r.Get("/dash/notifications", h.ServeDash)
}
