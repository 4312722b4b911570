package testutil

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/k36p/Midad/internal/app/system/indexes"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// TestContext returns a context with a deadline suitable for one test's
// worth of database calls.
func TestContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// SetupTestDB connects to the MongoDB instance named by
// MIDAD_TEST_MONGO_URI and hands the test a throwaway database that is
// dropped on cleanup. Tests that need a database skip when the variable
// is unset so the suite still runs without one.
func SetupTestDB(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MIDAD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MIDAD_TEST_MONGO_URI not set; skipping database test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect to test mongo: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		t.Fatalf("ping test mongo: %v", err)
	}

	db := client.Database(fmt.Sprintf("midad_test_%d", time.Now().UnixNano()))

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.Drop(ctx); err != nil {
			t.Logf("drop test database: %v", err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("disconnect test mongo: %v", err)
		}
	})

	return db
}

// SetupTestDBWithIndexes is SetupTestDB plus the portal's indexes, for tests
// that exercise unique-key behavior.
func SetupTestDBWithIndexes(t *testing.T) *mongo.Database {
	t.Helper()

	db := SetupTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}
	return db
}
