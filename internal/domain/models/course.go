// internal/domain/models/course.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Course is a library entry tied to one Specialization. Views is a
// monotonically increasing counter bumped atomically on detail reads.
type Course struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title            string             `bson:"title" json:"title"`
	Description      string             `bson:"description,omitempty" json:"description,omitempty"`
	Link             string             `bson:"link,omitempty" json:"link,omitempty"`
	SpecializationID primitive.ObjectID `bson:"specialization_id" json:"specialization_id"`
	Views            int64              `bson:"views" json:"views"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at" json:"updated_at"`
}

// CourseWithSpecialization is the populated read projection.
type CourseWithSpecialization struct {
	Course         `bson:",inline"`
	Specialization *Specialization `bson:"specialization,omitempty" json:"specialization,omitempty"`
}
