// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents both regular portal users and dashboard admins.
//
// NOTE:
//   - PasswordHash never leaves the server; it is excluded from JSON and the
//     stores strip it from read projections that feed API responses.
//   - Specialization is a soft reference resolved on read ("populate" style).
type User struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName         string              `bson:"full_name" json:"full_name"`
	Login            string              `bson:"login" json:"login"`
	PasswordHash     string              `bson:"password_hash" json:"-"`
	Role             string              `bson:"role" json:"role"` // user | admin
	SpecializationID *primitive.ObjectID `bson:"specialization_id,omitempty" json:"specialization_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
