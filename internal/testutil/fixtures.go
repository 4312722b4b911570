package testutil

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/k36p/Midad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
// Calls stack: an existing route context gains the new parameter.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx, ok := r.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
	}
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateCollege creates a test college with the given name.
func (f *Fixtures) CreateCollege(ctx context.Context, name string) models.College {
	f.t.Helper()

	now := time.Now().UTC()
	college := models.College{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("colleges").InsertOne(ctx, college); err != nil {
		f.t.Fatalf("failed to create test college: %v", err)
	}
	return college
}

// CreateSpecialization creates a test specialization in the given college.
func (f *Fixtures) CreateSpecialization(ctx context.Context, name string, collegeID primitive.ObjectID) models.Specialization {
	f.t.Helper()

	now := time.Now().UTC()
	spec := models.Specialization{
		ID:        primitive.NewObjectID(),
		Name:      name,
		CollegeID: collegeID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("specializations").InsertOne(ctx, spec); err != nil {
		f.t.Fatalf("failed to create test specialization: %v", err)
	}
	return spec
}

// CreateCourse creates a test course in the given specialization.
func (f *Fixtures) CreateCourse(ctx context.Context, title string, specID primitive.ObjectID) models.Course {
	f.t.Helper()

	now := time.Now().UTC()
	course := models.Course{
		ID:               primitive.NewObjectID(),
		Title:            title,
		Description:      "Test course description",
		Link:             "https://example.com/material.pdf",
		SpecializationID: specID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("courses").InsertOne(ctx, course); err != nil {
		f.t.Fatalf("failed to create test course: %v", err)
	}
	return course
}

// CreateNotification creates a test notification. Pass a nil specID for
// a public notification.
func (f *Fixtures) CreateNotification(ctx context.Context, content, kind string, specID *primitive.ObjectID) models.Notification {
	f.t.Helper()

	n := models.Notification{
		ID:               primitive.NewObjectID(),
		Content:          content,
		Type:             kind,
		SpecializationID: specID,
		CreatedAt:        time.Now().UTC(),
	}

	if _, err := f.db.Collection("notifications").InsertOne(ctx, n); err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}
	return n
}

// CreateUser creates a test account with the given login, password and
// role. The password is bcrypt-hashed the way the login handler expects.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, login, password, role string, specID *primitive.ObjectID) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	user := models.User{
		ID:               primitive.NewObjectID(),
		FullName:         fullName,
		Login:            strings.ToLower(login),
		PasswordHash:     string(hash),
		Role:             role,
		SpecializationID: specID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateAdmin creates a test admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, login string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, login, "secret123", models.RoleAdmin, nil)
}

// CreateStudent creates a test student account in the given specialization.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, login string, specID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, login, "secret123", models.RoleUser, &specID)
}
