// Package gates provides handler-level authorization checks.
//
// Gates run inside the handler so they can check the specific resource
// being touched (owner-or-admin) as well as the caller's role. Page-mode
// gates send anonymous callers to the login page with a return URL and
// render the forbidden page on a role mismatch; API-mode gates write the
// JSON envelope.
package gates

import (
	"net/http"
	"net/url"

	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	"github.com/k36p/Midad/internal/app/system/authz"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/webutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAdmin ensures the user is authenticated with the admin role
// (page routes). Anonymous callers are redirected to the login page with
// a return URL; signed-in non-admins get the forbidden page.
func RequireAdmin(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		redirectToLogin(w, r)
		return Result{OK: false}
	}
	if role != "admin" {
		uierrors.RenderForbidden(w, r, messages.NotAllowed, "/")
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireAdminAPI is RequireAdmin for JSON routes: 401/403 envelopes
// instead of rendered pages.
func RequireAdminAPI(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		webutil.Error(w, http.StatusUnauthorized, messages.LoginRequired)
		return Result{OK: false}
	}
	if role != "admin" {
		webutil.Error(w, http.StatusForbidden, messages.NotAllowed)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireOwnerOrAdminAPI ensures the caller is an admin or the owner of the
// resource (JSON routes). The resource's owning account ID is supplied by
// the caller after it has loaded the resource.
func RequireOwnerOrAdminAPI(w http.ResponseWriter, r *http.Request, ownerID primitive.ObjectID) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		webutil.Error(w, http.StatusUnauthorized, messages.LoginRequired)
		return Result{OK: false}
	}
	if role != "admin" && uid != ownerID {
		webutil.Error(w, http.StatusForbidden, messages.NotAllowed)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// RequireSignedInPage ensures any authenticated user, redirecting
// anonymous callers to the login page (page routes).
func RequireSignedInPage(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		redirectToLogin(w, r)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}

// redirectToLogin sends an anonymous caller to the login page, carrying
// the requested URI so login can return them here afterwards.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	ret := url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
}

// RequireSignedInAPI ensures any authenticated user (JSON routes).
func RequireSignedInAPI(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		webutil.Error(w, http.StatusUnauthorized, messages.LoginRequired)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}
