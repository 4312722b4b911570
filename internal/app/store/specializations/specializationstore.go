// internal/app/store/specializations/specializationstore.go
package specializationstore

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
	ErrDuplicateSpecialization = errors.New("a specialization with this name already exists")
	ErrSpecializationNotFound  = errors.New("specialization not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("specializations")}
}

// Create inserts a new specialization. The caller validates that the
// referenced college exists; name uniqueness is the unique index's job.
func (s *Store) Create(ctx context.Context, spec models.Specialization) (models.Specialization, error) {
	now := time.Now().UTC()
	spec.ID = primitive.NewObjectID()
	spec.CreatedAt = now
	spec.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, spec)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Specialization{}, ErrDuplicateSpecialization
		}
		return models.Specialization{}, err
	}
	return spec, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Specialization, error) {
	var spec models.Specialization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&spec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Specialization{}, ErrSpecializationNotFound
	}
	if err != nil {
		return models.Specialization{}, err
	}
	return spec, nil
}

// List returns all specializations without resolving college references.
func (s *Store) List(ctx context.Context) ([]models.Specialization, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var specs []models.Specialization
	if err := cur.All(ctx, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// ListByCollege returns the specializations belonging to one college.
func (s *Store) ListByCollege(ctx context.Context, collegeID primitive.ObjectID) ([]models.Specialization, error) {
	cur, err := s.c.Find(ctx, bson.M{"college_id": collegeID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var specs []models.Specialization
	if err := cur.All(ctx, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// ListWithCollege resolves the college reference on read ($lookup).
func (s *Store) ListWithCollege(ctx context.Context) ([]models.SpecializationWithCollege, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         "colleges",
			"localField":   "college_id",
			"foreignField": "_id",
			"as":           "college",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$college", "preserveNullAndEmptyArrays": true}}},
	}
	cur, err := s.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var specs []models.SpecializationWithCollege
	if err := cur.All(ctx, &specs); err != nil {
		return nil, err
	}
	return specs, nil
}

// Update changes name and/or college reference and refreshes UpdatedAt.
// Zero-valued fields are left untouched.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name string, collegeID primitive.ObjectID) (models.Specialization, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if name != "" {
		set["name"] = name
	}
	if collegeID != primitive.NilObjectID {
		set["college_id"] = collegeID
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var spec models.Specialization
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&spec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Specialization{}, ErrSpecializationNotFound
	}
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Specialization{}, ErrDuplicateSpecialization
		}
		return models.Specialization{}, err
	}
	return spec, nil
}

// Exists reports whether a specialization with the given id exists.
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
