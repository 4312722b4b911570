// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	_ "github.com/k36p/Midad/internal/app/features/errors/views"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/viewdata"
)

// RenderUnauthorized shows the "sign in required" page.
// If backURL is empty, it defaults to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	w.WriteHeader(http.StatusUnauthorized)
	data := pageVM{
		BaseVM:  viewdata.NewBaseVM(r, "تسجيل الدخول مطلوب", backURL),
		Message: messages.LoginRequired,
		Status:  http.StatusUnauthorized,
	}
	templates.Render(w, r, "error_page", data)
}

// RenderForbidden shows the access error page with a message.
// If backURL is empty, it resolves a safe back URL from the request.
func RenderForbidden(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusForbidden)
	data := pageVM{
		BaseVM:  viewdata.NewBaseVM(r, "غير مسموح", backURL),
		Message: msg,
		Status:  http.StatusForbidden,
	}
	templates.Render(w, r, "error_page", data)
}

// RenderServerError shows the generic failure page for page routes.
func RenderServerError(w http.ResponseWriter, r *http.Request, backURL string) {
	RenderStatus(w, r, http.StatusInternalServerError, messages.ServerError, backURL)
}

// RenderStatus renders the failure page with an arbitrary status and message.
func RenderStatus(w http.ResponseWriter, r *http.Request, status int, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(status)
	data := pageVM{
		BaseVM:  viewdata.NewBaseVM(r, "خطأ", backURL),
		Message: msg,
		Status:  status,
	}
	templates.Render(w, r, "error_page", data)
}
