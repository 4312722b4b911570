package userstore_test

import (
	"errors"
	"testing"

	userstore "github.com/k36p/Midad/internal/app/store/users"
	"github.com/k36p/Midad/internal/domain/models"
	"github.com/k36p/Midad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateNormalizesLogin(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		FullName:     "أحمد علي",
		Login:        "  Ahmed.Ali  ",
		PasswordHash: "not-a-real-hash",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.Login != "ahmed.ali" {
		t.Errorf("got login %q, want %q", created.Login, "ahmed.ali")
	}
	if created.Role != models.RoleUser {
		t.Errorf("got role %q, want default %q", created.Role, models.RoleUser)
	}
}

func TestCreateDuplicateLogin(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)

	u := models.User{FullName: "أحمد", Login: "ahmed", PasswordHash: "x"}
	if _, err := store.Create(ctx, u); err != nil {
		t.Fatalf("create first user: %v", err)
	}

	// Same login with different casing collides after normalization.
	_, err := store.Create(ctx, models.User{FullName: "آخر", Login: "AHMED", PasswordHash: "y"})
	if !errors.Is(err, userstore.ErrDuplicateLogin) {
		t.Errorf("got %v, want ErrDuplicateLogin", err)
	}
}

func TestGetByLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)

	fx.CreateAdmin(ctx, "مدير النظام", "admin")

	got, err := store.GetByLogin(ctx, " Admin ")
	if err != nil {
		t.Fatalf("get by login: %v", err)
	}
	if got.FullName != "مدير النظام" {
		t.Errorf("got name %q, want %q", got.FullName, "مدير النظام")
	}

	_, err = store.GetByLogin(ctx, "nobody")
	if !errors.Is(err, userstore.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestSetRoleIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)

	admin := fx.CreateAdmin(ctx, "مدير سابق", "exadmin")

	demoted, err := store.SetRole(ctx, admin.ID, models.RoleUser)
	if err != nil {
		t.Fatalf("demote admin: %v", err)
	}
	if demoted.Role != models.RoleUser {
		t.Errorf("got role %q, want %q", demoted.Role, models.RoleUser)
	}

	// Demoting again succeeds without change.
	again, err := store.SetRole(ctx, admin.ID, models.RoleUser)
	if err != nil {
		t.Fatalf("demote again: %v", err)
	}
	if again.Role != models.RoleUser {
		t.Errorf("got role %q, want %q", again.Role, models.RoleUser)
	}

	_, err = store.SetRole(ctx, primitive.NewObjectID(), models.RoleAdmin)
	if !errors.Is(err, userstore.ErrUserNotFound) {
		t.Errorf("got %v, want ErrUserNotFound", err)
	}
}

func TestListByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية الهندسة")
	spec := fx.CreateSpecialization(ctx, "هندسة البرمجيات", college.ID)
	fx.CreateAdmin(ctx, "المدير", "admin")
	fx.CreateStudent(ctx, "طالب أول", "student1", spec.ID)
	fx.CreateStudent(ctx, "طالب ثان", "student2", spec.ID)

	admins, err := store.ListByRole(ctx, models.RoleAdmin)
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 1 {
		t.Errorf("got %d admins, want 1", len(admins))
	}

	students, err := store.ListByRole(ctx, models.RoleUser)
	if err != nil {
		t.Fatalf("list students: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("got %d students, want 2", len(students))
	}
}

func TestResolveSessionUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية الهندسة")
	spec := fx.CreateSpecialization(ctx, "هندسة البرمجيات", college.ID)
	student := fx.CreateStudent(ctx, "أحمد علي", "ahmed", spec.ID)

	su, err := store.ResolveSessionUser(ctx, student.ID)
	if err != nil {
		t.Fatalf("resolve session user: %v", err)
	}
	if su.ID != student.ID.Hex() {
		t.Errorf("got id %q, want %q", su.ID, student.ID.Hex())
	}
	if su.Name != "أحمد علي" || su.Role != models.RoleUser {
		t.Errorf("got name %q role %q", su.Name, su.Role)
	}
	if su.SpecializationID != spec.ID.Hex() {
		t.Errorf("got specialization id %q, want %q", su.SpecializationID, spec.ID.Hex())
	}
	if su.SpecializationName != "هندسة البرمجيات" {
		t.Errorf("got specialization name %q", su.SpecializationName)
	}
	if su.CollegeName != "كلية الهندسة" {
		t.Errorf("got college name %q", su.CollegeName)
	}
}

func TestResolveSessionUserWithoutSpecialization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := userstore.New(db)
	fx := testutil.NewFixtures(t, db)

	admin := fx.CreateAdmin(ctx, "المدير", "admin")

	su, err := store.ResolveSessionUser(ctx, admin.ID)
	if err != nil {
		t.Fatalf("resolve session user: %v", err)
	}
	if su.SpecializationID != "" || su.SpecializationName != "" || su.CollegeName != "" {
		t.Error("expected no specialization details for an account without one")
	}

	// A vanished account degrades the token bearer to anonymous.
	su, err = store.ResolveSessionUser(ctx, primitive.NewObjectID())
	if err != nil {
		t.Errorf("vanished account must not error, got %v", err)
	}
	if su != nil {
		t.Errorf("vanished account must resolve to nil, got %+v", su)
	}
}
