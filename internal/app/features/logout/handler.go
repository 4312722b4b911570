// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/k36p/Midad/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler clears the token cookie.
type Handler struct {
	Tokens *auth.TokenManager
	Log    *zap.Logger
}

func NewHandler(tokens *auth.TokenManager, logger *zap.Logger) *Handler {
	return &Handler{Tokens: tokens, Log: logger}
}

// ServeLogout clears the cookie and returns to the main page.
// GET|POST /logout
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", u.ID))
	}
	h.Tokens.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
