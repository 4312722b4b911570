// internal/app/store/colleges/collegestore.go
package collegestore

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

var (
	ErrDuplicateCollege = errors.New("a college with this name already exists")
	ErrCollegeNotFound  = errors.New("college not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("colleges")}
}

// Create inserts a new college. Name uniqueness rides on the unique index;
// the duplicate-key error maps to ErrDuplicateCollege so no check-then-write
// window exists.
func (s *Store) Create(ctx context.Context, college models.College) (models.College, error) {
	now := time.Now().UTC()
	college.ID = primitive.NewObjectID()
	college.CreatedAt = now
	college.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, college)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.College{}, ErrDuplicateCollege
		}
		return models.College{}, err
	}
	return college, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.College, error) {
	var college models.College
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&college)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.College{}, ErrCollegeNotFound
	}
	if err != nil {
		return models.College{}, err
	}
	return college, nil
}

// List returns all colleges, oldest first.
func (s *Store) List(ctx context.Context) ([]models.College, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var colleges []models.College
	if err := cur.All(ctx, &colleges); err != nil {
		return nil, err
	}
	return colleges, nil
}

// UpdateName renames a college and returns the updated document.
func (s *Store) UpdateName(ctx context.Context, id primitive.ObjectID, name string) (models.College, error) {
	update := bson.M{"$set": bson.M{
		"name":       name,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var college models.College
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&college)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.College{}, ErrCollegeNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.College{}, ErrDuplicateCollege
		}
		return models.College{}, err
	}
	return college, nil
}

// Exists reports whether a college with the given id exists.
func (s *Store) Exists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
