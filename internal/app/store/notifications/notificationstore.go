// internal/app/store/notifications/notificationstore.go
package notificationstore

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
	c        *mongo.Collection
	cooldown time.Duration
}

var ErrRecentDuplicate = errors.New("an identical notification was sent recently")

// New builds a notification store. cooldown is the window within which
// a notification with identical content is rejected; zero disables the
// check.
func New(db *mongo.Database, cooldown time.Duration) *Store {
	return &Store{c: db.Collection("notifications"), cooldown: cooldown}
}

// Create inserts a notification after the cooldown check. Two requests
// racing past the check can both land; the window is a courtesy rate
// limit, not a uniqueness guarantee.
func (s *Store) Create(ctx context.Context, n models.Notification) (models.Notification, error) {
	if s.cooldown > 0 {
		since := time.Now().UTC().Add(-s.cooldown)
		err := s.c.FindOne(ctx,
			bson.M{"content": n.Content, "created_at": bson.M{"$gte": since}},
			options.FindOne().SetProjection(bson.M{"_id": 1}),
		).Err()
		if err == nil {
			return models.Notification{}, ErrRecentDuplicate
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return models.Notification{}, err
		}
	}

	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, n); err != nil {
		return models.Notification{}, err
	}
	return n, nil
}

// ListWithSpecialization returns every notification newest first with
// its specialization resolved (public notifications carry none).
func (s *Store) ListWithSpecialization(ctx context.Context) ([]models.NotificationWithSpecialization, error) {
	return s.aggregate(ctx, nil)
}

// ListVisibleTo returns public notifications plus those targeted at the
// given specialization, newest first. A nil specID means public only.
func (s *Store) ListVisibleTo(ctx context.Context, specID *primitive.ObjectID) ([]models.NotificationWithSpecialization, error) {
	match := bson.M{"type": models.NotificationPublic}
	if specID != nil {
		match = bson.M{"$or": bson.A{
			bson.M{"type": models.NotificationPublic},
			bson.M{"specialization_id": *specID},
		}}
	}
	return s.aggregate(ctx, match)
}

func (s *Store) aggregate(ctx context.Context, match bson.M) ([]models.NotificationWithSpecialization, error) {
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

	var items []models.NotificationWithSpecialization
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
