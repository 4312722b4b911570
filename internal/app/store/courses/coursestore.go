// internal/app/store/courses/coursestore.go
package coursestore

import (
	"context"
	"errors"
	"time"

	"github.com/k36p/Midad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrCourseNotFound = errors.New("course not found")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("courses")}
}

func (s *Store) Create(ctx context.Context, course models.Course) (models.Course, error) {
	now := time.Now().UTC()
	course.ID = primitive.NewObjectID()
	course.Views = 0
	course.CreatedAt = now
	course.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, course); err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	var course models.Course
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrCourseNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// ListWithSpecialization returns every course with its specialization
// resolved, newest first.
func (s *Store) ListWithSpecialization(ctx context.Context) ([]models.CourseWithSpecialization, error) {
	return s.aggregate(ctx, nil)
}

// ListBySpecialization returns the courses of one specialization with
// the reference resolved.
func (s *Store) ListBySpecialization(ctx context.Context, specID primitive.ObjectID) ([]models.CourseWithSpecialization, error) {
	return s.aggregate(ctx, bson.M{"specialization_id": specID})
}

func (s *Store) aggregate(ctx context.Context, match bson.M) ([]models.CourseWithSpecialization, error) {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "specializations",
			"localField":   "specialization_id",
			"foreignField": "_id",
			"as":           "specialization",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$specialization", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	)
	cur, err := s.c.Aggregate(ctx, pipeline)
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

// IncrementViews bumps the view counter and returns the updated course.
// The bump is a single $inc so concurrent readers never lose counts.
func (s *Store) IncrementViews(ctx context.Context, id primitive.ObjectID) (models.Course, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var course models.Course
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}}, opts).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrCourseNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}

// Update overwrites the mutable fields of a course. Empty strings and
// the nil ObjectID mean "leave as is".
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, title, description, link string, specID primitive.ObjectID) (models.Course, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if title != "" {
		set["title"] = title
	}
	if description != "" {
		set["description"] = description
	}
	if link != "" {
		set["link"] = link
	}
	if specID != primitive.NilObjectID {
		set["specialization_id"] = specID
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var course models.Course
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&course)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Course{}, ErrCourseNotFound
	}
	if err != nil {
		return models.Course{}, err
	}
	return course, nil
}
