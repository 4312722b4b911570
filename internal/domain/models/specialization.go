// internal/domain/models/specialization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Specialization is an academic sub-major belonging to exactly one College.
// The College must exist before a Specialization referencing it is created;
// the reference itself is soft and resolved on read.
type Specialization struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CollegeID primitive.ObjectID `bson:"college_id" json:"college_id"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// SpecializationWithCollege is the populated read projection.
type SpecializationWithCollege struct {
	Specialization `bson:",inline"`
	College        *College `bson:"college,omitempty" json:"college,omitempty"`
}
