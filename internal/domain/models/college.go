// internal/domain/models/college.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// College is a top-level academic unit. Name uniqueness is a case-sensitive
// exact match (after trimming), enforced by a unique index.
type College struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}
