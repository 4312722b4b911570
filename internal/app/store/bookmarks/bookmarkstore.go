// internal/app/store/bookmarks/bookmarkstore.go
package bookmarkstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/k36p/Midad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("bookmarks")}
}

// Add records a course in the user's bookmark list. One document per
// user (unique index on user_id); $addToSet keeps the add idempotent.
// A duplicate-key error means two first-time adds raced the upsert, so
// the write is retried once against the now-existing document.
func (s *Store) Add(ctx context.Context, userID, courseID primitive.ObjectID) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$addToSet": bson.M{"course_ids": courseID},
		"$set":      bson.M{"updated_at": time.Now().UTC()},
		"$setOnInsert": bson.M{
			"_id":     primitive.NewObjectID(),
			"user_id": userID,
		},
	}
	_, err := s.c.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if wafflemongo.IsDup(err) {
		_, err = s.c.UpdateOne(ctx, filter, bson.M{
			"$addToSet": bson.M{"course_ids": courseID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		})
	}
	return err
}

// Remove pulls a course out of the user's bookmark list. Removing a
// course that was never bookmarked is a no-op.
func (s *Store) Remove(ctx context.Context, userID, courseID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, bson.M{
		"$pull": bson.M{"course_ids": courseID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	return err
}

// GetByUser returns the user's bookmark document. A user with no
// bookmarks yet gets an empty document, not an error.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (models.Bookmark, error) {
	var bm models.Bookmark
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&bm)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Bookmark{UserID: userID}, nil
	}
	if err != nil {
		return models.Bookmark{}, err
	}
	return bm, nil
}

// ListCourses resolves the user's bookmarked courses with their
// specializations, newest bookmark document order first.
func (s *Store) ListCourses(ctx context.Context, userID primitive.ObjectID) ([]models.CourseWithSpecialization, error) {
	bm, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(bm.CourseIDs) == 0 {
		return nil, nil
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": bson.M{"$in": bm.CourseIDs}}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "specializations",
			"localField":   "specialization_id",
			"foreignField": "_id",
			"as":           "specialization",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$specialization", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}
	cur, err := s.c.Database().Collection("courses").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var courses []models.CourseWithSpecialization
	if err := cur.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}
