package specializationstore_test

import (
	"errors"
	"testing"

	specializationstore "github.com/k36p/Midad/internal/app/store/specializations"
	"github.com/k36p/Midad/internal/domain/models"
	"github.com/k36p/Midad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := specializationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية الهندسة")

	created, err := store.Create(ctx, models.Specialization{
		Name:      "هندسة البرمجيات",
		CollegeID: college.ID,
	})
	if err != nil {
		t.Fatalf("create specialization: %v", err)
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get specialization: %v", err)
	}
	if got.Name != "هندسة البرمجيات" {
		t.Errorf("got name %q, want %q", got.Name, "هندسة البرمجيات")
	}
	if got.CollegeID != college.ID {
		t.Error("expected college reference to round-trip")
	}
}

func TestCreateDuplicateName(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := specializationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية العلوم")

	if _, err := store.Create(ctx, models.Specialization{Name: "الفيزياء", CollegeID: college.ID}); err != nil {
		t.Fatalf("create first specialization: %v", err)
	}
	_, err := store.Create(ctx, models.Specialization{Name: "الفيزياء", CollegeID: college.ID})
	if !errors.Is(err, specializationstore.ErrDuplicateSpecialization) {
		t.Errorf("got %v, want ErrDuplicateSpecialization", err)
	}
}

func TestListByCollege(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := specializationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	engineering := fx.CreateCollege(ctx, "كلية الهندسة")
	medicine := fx.CreateCollege(ctx, "كلية الطب")
	fx.CreateSpecialization(ctx, "هندسة البرمجيات", engineering.ID)
	fx.CreateSpecialization(ctx, "الهندسة المدنية", engineering.ID)
	fx.CreateSpecialization(ctx, "طب الأسنان", medicine.ID)

	specs, err := store.ListByCollege(ctx, engineering.ID)
	if err != nil {
		t.Fatalf("list by college: %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("got %d specializations, want 2", len(specs))
	}
	for _, s := range specs {
		if s.CollegeID != engineering.ID {
			t.Errorf("specialization %q belongs to the wrong college", s.Name)
		}
	}
}

func TestListWithCollege(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := specializationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية الآداب")
	fx.CreateSpecialization(ctx, "اللغة العربية", college.ID)

	specs, err := store.ListWithCollege(ctx)
	if err != nil {
		t.Fatalf("list with college: %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("got %d specializations, want 1", len(specs))
	}
	if specs[0].College == nil {
		t.Fatal("expected college to be resolved")
	}
	if specs[0].College.Name != "كلية الآداب" {
		t.Errorf("got college name %q, want %q", specs[0].College.Name, "كلية الآداب")
	}
}

func TestUpdatePartialFields(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := specializationstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية الهندسة")
	other := fx.CreateCollege(ctx, "كلية الحاسوب")
	spec := fx.CreateSpecialization(ctx, "الاسم القديم", college.ID)

	// Rename only; the college reference must survive.
	updated, err := store.Update(ctx, spec.ID, "الاسم الجديد", primitive.NilObjectID)
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if updated.Name != "الاسم الجديد" {
		t.Errorf("got name %q, want %q", updated.Name, "الاسم الجديد")
	}
	if updated.CollegeID != college.ID {
		t.Error("expected college reference untouched")
	}

	// Move college only; the name must survive.
	updated, err = store.Update(ctx, spec.ID, "", other.ID)
	if err != nil {
		t.Fatalf("update college: %v", err)
	}
	if updated.Name != "الاسم الجديد" {
		t.Error("expected name untouched")
	}
	if updated.CollegeID != other.ID {
		t.Error("expected college reference updated")
	}
}

func TestUpdateNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := specializationstore.New(db)

	_, err := store.Update(ctx, primitive.NewObjectID(), "أي اسم", primitive.NilObjectID)
	if !errors.Is(err, specializationstore.ErrSpecializationNotFound) {
		t.Errorf("got %v, want ErrSpecializationNotFound", err)
	}
}
