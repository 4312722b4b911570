// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/k36p/Midad/internal/app/system/auth"
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
	ErrDuplicateLogin = errors.New("an account with this login already exists")
	ErrUserNotFound   = errors.New("user not found")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create inserts a new account. Logins are stored lowercased; the
// unique index on login is the only duplicate check.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Login = strings.ToLower(strings.TrimSpace(u.Login))
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateLogin
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByLogin(ctx context.Context, login string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"login": strings.ToLower(strings.TrimSpace(login))}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// SetRole writes the user's role and returns the updated account.
// Setting the role a user already has succeeds without change.
func (s *Store) SetRole(ctx context.Context, id primitive.ObjectID, role string) (models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"role": role, "updated_at": time.Now().UTC()},
	}, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// ListByRole returns accounts with the given role, newest first.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"role": role}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ResolveSessionUser loads the account behind a verified token and
// resolves its specialization and college for display. It satisfies
// auth.UserResolver: a vanished account returns (nil, nil) so a stale
// cookie degrades to an anonymous request instead of an error.
func (s *Store) ResolveSessionUser(ctx context.Context, id primitive.ObjectID) (*auth.SessionUser, error) {
	u, err := s.GetByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	su := &auth.SessionUser{
		ID:   u.ID.Hex(),
		Name: u.FullName,
		Role: u.Role,
	}
	if u.SpecializationID == nil {
		return su, nil
	}
	su.SpecializationID = u.SpecializationID.Hex()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"_id": *u.SpecializationID}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "colleges",
			"localField":   "college_id",
			"foreignField": "_id",
			"as":           "college",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$college", "preserveNullAndEmptyArrays": true}}},
	}
	cur, err := s.c.Database().Collection("specializations").Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var specs []models.SpecializationWithCollege
	if err := cur.All(ctx, &specs); err != nil {
		return nil, err
	}
	if len(specs) > 0 {
		su.SpecializationName = specs[0].Name
		if specs[0].College != nil {
			su.CollegeName = specs[0].College.Name
		}
	}
	return su, nil
}
