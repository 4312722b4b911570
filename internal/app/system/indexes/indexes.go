// Package indexes creates the schema-level indexes the portal relies on.
//
// Uniqueness is enforced here, at the storage layer, not by check-then-write
// in handlers: colleges.name, specializations.name, users.login, and
// bookmarks.user_id all carry unique indexes, and the stores map the
// duplicate-key error to a typed conflict.
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup. Index creation is idempotent; problems are
// aggregated so startup can fail fast with everything that is wrong.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	var problems []string

	if err := ensureColleges(ctx, db); err != nil {
		problems = append(problems, "colleges: "+err.Error())
	}
	if err := ensureSpecializations(ctx, db); err != nil {
		problems = append(problems, "specializations: "+err.Error())
	}
	if err := ensureCourses(ctx, db); err != nil {
		problems = append(problems, "courses: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}
	if err := ensureBookmarks(ctx, db); err != nil {
		problems = append(problems, "bookmarks: "+err.Error())
	}
	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	logger.Info("indexes ensured")
	return nil
}

func ensureColleges(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db.Collection("colleges"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_name").SetUnique(true),
		})
}

func ensureSpecializations(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db.Collection("specializations"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("uniq_name").SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "college_id", Value: 1}},
			Options: options.Index().SetName("by_college"),
		})
}

func ensureCourses(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db.Collection("courses"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "specialization_id", Value: 1}},
			Options: options.Index().SetName("by_specialization"),
		})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db.Collection("notifications"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_created_desc"),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "specialization_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("by_specialization_created"),
		})
}

func ensureBookmarks(ctx context.Context, db *mongo.Database) error {
	// One bookmark document per account; the atomic upsert in the store
	// depends on this.
	return create(ctx, db.Collection("bookmarks"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("uniq_user").SetUnique(true),
		})
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	return create(ctx, db.Collection("users"),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "login", Value: 1}},
			Options: options.Index().SetName("uniq_login").SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "role", Value: 1}},
			Options: options.Index().SetName("by_role"),
		})
}

func create(ctx context.Context, coll *mongo.Collection, models ...mongo.IndexModel) error {
	_, err := coll.Indexes().CreateMany(ctx, models)
	if err != nil && isOptionsConflict(err) {
		// Same keys already indexed under a different name or options; the
		// operator has to reconcile by hand rather than us dropping data
		// structures at startup.
		zap.L().Warn("index options conflict",
			zap.String("collection", coll.Name()),
			zap.Error(err))
		return nil
	}
	return err
}

// Mongo/DocDB returns IndexOptionsConflict when an index with the same keys
// already exists under a different name.
func isOptionsConflict(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}
