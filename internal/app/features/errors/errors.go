// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/viewdata"
)

type pageVM struct {
	viewdata.BaseVM
	Message string
	Status  int
}

// Handler serves the standalone error pages.
// No DB needed; it just renders templates.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden renders the "access denied" page.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	RenderForbidden(w, r, messages.NotAllowed, "")
}

// Unauthorized renders the "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	RenderUnauthorized(w, r, "")
}

// NotFound is the router's catch-all for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := pageVM{
		BaseVM:  viewdata.NewBaseVM(r, "الصفحة غير موجودة", "/"),
		Message: "الصفحة التي تبحث عنها غير موجودة",
		Status:  http.StatusNotFound,
	}
	templates.Render(w, r, "error_page", data)
}
