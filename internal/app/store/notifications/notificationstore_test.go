package notificationstore_test

import (
	"errors"
	"testing"
	"time"

	notificationstore "github.com/k36p/Midad/internal/app/store/notifications"
	"github.com/k36p/Midad/internal/domain/models"
	"github.com/k36p/Midad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCreatePublic(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := notificationstore.New(db, 10*time.Minute)

	created, err := store.Create(ctx, models.Notification{
		Content: "تم تحديث مواعيد الامتحانات",
		Type:    models.NotificationPublic,
	})
	if err != nil {
		t.Fatalf("create notification: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected created notification to have an ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestCreateRejectsRecentDuplicate(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := notificationstore.New(db, 10*time.Minute)

	n := models.Notification{
		Content: "إعلان مكرر",
		Type:    models.NotificationPublic,
	}
	if _, err := store.Create(ctx, n); err != nil {
		t.Fatalf("create first notification: %v", err)
	}
	_, err := store.Create(ctx, n)
	if !errors.Is(err, notificationstore.ErrRecentDuplicate) {
		t.Errorf("got %v, want ErrRecentDuplicate", err)
	}

	// Different content inside the window is fine.
	if _, err := store.Create(ctx, models.Notification{
		Content: "إعلان مختلف",
		Type:    models.NotificationPublic,
	}); err != nil {
		t.Errorf("create different notification: %v", err)
	}
}

func TestCreateAllowsDuplicateAfterWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := notificationstore.New(db, time.Minute)

	// Seed an identical notification dated before the window.
	old := fx.CreateNotification(ctx, "إعلان قديم", models.NotificationPublic, nil)
	_, err := db.Collection("notifications").UpdateByID(ctx, old.ID,
		bson.M{"$set": bson.M{"created_at": time.Now().UTC().Add(-2 * time.Minute)}})
	if err != nil {
		t.Fatalf("backdate notification: %v", err)
	}

	if _, err := store.Create(ctx, models.Notification{
		Content: "إعلان قديم",
		Type:    models.NotificationPublic,
	}); err != nil {
		t.Errorf("create after window: %v", err)
	}
}

func TestCreateZeroCooldownDisablesCheck(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := notificationstore.New(db, 0)

	n := models.Notification{Content: "نفس المحتوى", Type: models.NotificationPublic}
	if _, err := store.Create(ctx, n); err != nil {
		t.Fatalf("create first notification: %v", err)
	}
	if _, err := store.Create(ctx, n); err != nil {
		t.Errorf("create second notification with zero cooldown: %v", err)
	}
}

func TestListVisibleTo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := notificationstore.New(db, 0)

	college := fx.CreateCollege(ctx, "كلية الهندسة")
	software := fx.CreateSpecialization(ctx, "هندسة البرمجيات", college.ID)
	civil := fx.CreateSpecialization(ctx, "الهندسة المدنية", college.ID)

	fx.CreateNotification(ctx, "إعلان عام", models.NotificationPublic, nil)
	fx.CreateNotification(ctx, "إعلان البرمجيات", models.NotificationSpecialization, &software.ID)
	fx.CreateNotification(ctx, "إعلان المدنية", models.NotificationSpecialization, &civil.ID)

	// Anonymous (no specialization): public only.
	visible, err := store.ListVisibleTo(ctx, nil)
	if err != nil {
		t.Fatalf("list visible (public): %v", err)
	}
	if len(visible) != 1 {
		t.Fatalf("got %d notifications, want 1", len(visible))
	}
	if visible[0].Content != "إعلان عام" {
		t.Errorf("got %q, want the public notification", visible[0].Content)
	}

	// Software student: public plus their specialization's.
	visible, err = store.ListVisibleTo(ctx, &software.ID)
	if err != nil {
		t.Fatalf("list visible (specialization): %v", err)
	}
	if len(visible) != 2 {
		t.Fatalf("got %d notifications, want 2", len(visible))
	}
	for _, n := range visible {
		if n.Content == "إعلان المدنية" {
			t.Error("saw another specialization's notification")
		}
	}
}

func TestListWithSpecializationResolvesReference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	store := notificationstore.New(db, 0)

	college := fx.CreateCollege(ctx, "كلية العلوم")
	spec := fx.CreateSpecialization(ctx, "الكيمياء", college.ID)
	fx.CreateNotification(ctx, "إعلان الكيمياء", models.NotificationSpecialization, &spec.ID)
	fx.CreateNotification(ctx, "إعلان عام", models.NotificationPublic, nil)

	items, err := store.ListWithSpecialization(ctx)
	if err != nil {
		t.Fatalf("list with specialization: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d notifications, want 2", len(items))
	}
	for _, n := range items {
		switch n.Content {
		case "إعلان الكيمياء":
			if n.Specialization == nil || n.Specialization.Name != "الكيمياء" {
				t.Error("expected specialization resolved on targeted notification")
			}
		case "إعلان عام":
			if n.Specialization != nil {
				t.Error("expected no specialization on public notification")
			}
		}
	}
}
