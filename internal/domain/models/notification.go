// internal/domain/models/notification.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types.
const (
	NotificationPublic         = "public"
	NotificationSpecialization = "specialization"
)

// Notification is a portal announcement. SpecializationID is required (and
// validated to exist) when Type is "specialization", nil otherwise.
// MediaLink points at an uploaded attachment served from storage.
type Notification struct {
	ID               primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Content          string              `bson:"content" json:"content"`
	MediaLink        string              `bson:"media,omitempty" json:"media,omitempty"`
	Type             string              `bson:"type" json:"type"` // public | specialization
	SpecializationID *primitive.ObjectID `bson:"specialization_id,omitempty" json:"specialization_id,omitempty"`
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
}

// NotificationWithSpecialization is the populated read projection.
type NotificationWithSpecialization struct {
	Notification   `bson:",inline"`
	Specialization *Specialization `bson:"specialization,omitempty" json:"specialization,omitempty"`
}
