// internal/app/system/authz/authz.go
package authz

import (
	"net/http"
	"strings"

	"github.com/k36p/Midad/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role (lowercased), name, Mongo ObjectID, and a
// found flag. If no user is present in context or the user ID is malformed,
// it returns "visitor", "", NilObjectID, false so callers can trust that
// ok=true means a valid, authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return strings.ToLower(user.Role), user.Name, userID, true
}

// IsAdmin reports whether the current request's user is an admin.
func IsAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == "admin"
}

// IsOwnerOrAdmin reports whether the current request's user is an admin or
// owns the resource identified by ownerID. This is a pure function of the
// attached identity; callers supply the owning account's ID.
func IsOwnerOrAdmin(r *http.Request, ownerID primitive.ObjectID) bool {
	role, _, userID, ok := UserCtx(r)
	if !ok {
		return false
	}
	return role == "admin" || userID == ownerID
}

// UserSpecializationID returns the current user's specialization reference.
// Returns NilObjectID if the user is anonymous or has no specialization.
func UserSpecializationID(r *http.Request) primitive.ObjectID {
	user, ok := auth.CurrentUser(r)
	if !ok || user.SpecializationID == "" {
		return primitive.NilObjectID
	}
	oid, err := primitive.ObjectIDFromHex(user.SpecializationID)
	if err != nil {
		return primitive.NilObjectID
	}
	return oid
}
