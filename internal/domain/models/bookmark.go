// internal/domain/models/bookmark.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bookmark holds one document per account containing the set of saved
// courses. The one-doc-per-user rule is a unique index on user_id; all
// mutations are atomic upserts, never check-then-write.
type Bookmark struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID   `bson:"user_id" json:"user_id"`
	CourseIDs []primitive.ObjectID `bson:"course_ids" json:"course_ids"`
	UpdatedAt time.Time            `bson:"updated_at" json:"updated_at"`
}
