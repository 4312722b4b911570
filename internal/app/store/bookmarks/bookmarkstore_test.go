package bookmarkstore_test

import (
	"testing"

	bookmarkstore "github.com/k36p/Midad/internal/app/store/bookmarks"
	"github.com/k36p/Midad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAddIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := bookmarkstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية الهندسة")
	spec := fx.CreateSpecialization(ctx, "هندسة البرمجيات", college.ID)
	course := fx.CreateCourse(ctx, "هياكل البيانات", spec.ID)
	user := fx.CreateStudent(ctx, "أحمد علي", "ahmed", spec.ID)

	if err := store.Add(ctx, user.ID, course.ID); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}
	if err := store.Add(ctx, user.ID, course.ID); err != nil {
		t.Fatalf("add bookmark again: %v", err)
	}

	bm, err := store.GetByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get bookmarks: %v", err)
	}
	if len(bm.CourseIDs) != 1 {
		t.Errorf("got %d bookmarked courses, want 1", len(bm.CourseIDs))
	}
}

func TestRemove(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := bookmarkstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية الهندسة")
	spec := fx.CreateSpecialization(ctx, "هندسة البرمجيات", college.ID)
	first := fx.CreateCourse(ctx, "قواعد البيانات", spec.ID)
	second := fx.CreateCourse(ctx, "نظم التشغيل", spec.ID)
	user := fx.CreateStudent(ctx, "سارة محمد", "sara", spec.ID)

	if err := store.Add(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}
	if err := store.Add(ctx, user.ID, second.ID); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}

	if err := store.Remove(ctx, user.ID, first.ID); err != nil {
		t.Fatalf("remove bookmark: %v", err)
	}

	bm, err := store.GetByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("get bookmarks: %v", err)
	}
	if len(bm.CourseIDs) != 1 || bm.CourseIDs[0] != second.ID {
		t.Errorf("got course ids %v, want only the second course", bm.CourseIDs)
	}

	// Removing a course that was never bookmarked is a no-op.
	if err := store.Remove(ctx, user.ID, primitive.NewObjectID()); err != nil {
		t.Errorf("remove unknown course: %v", err)
	}
}

func TestGetByUserWithoutBookmarks(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	store := bookmarkstore.New(db)

	userID := primitive.NewObjectID()
	bm, err := store.GetByUser(ctx, userID)
	if err != nil {
		t.Fatalf("get bookmarks: %v", err)
	}
	if bm.UserID != userID {
		t.Error("expected empty document bound to the user")
	}
	if len(bm.CourseIDs) != 0 {
		t.Errorf("got %d course ids, want none", len(bm.CourseIDs))
	}
}

func TestListCourses(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	store := bookmarkstore.New(db)
	fx := testutil.NewFixtures(t, db)

	college := fx.CreateCollege(ctx, "كلية العلوم")
	spec := fx.CreateSpecialization(ctx, "الرياضيات", college.ID)
	bookmarked := fx.CreateCourse(ctx, "الجبر الخطي", spec.ID)
	fx.CreateCourse(ctx, "التحليل العددي", spec.ID)
	user := fx.CreateStudent(ctx, "خالد حسن", "khaled", spec.ID)

	if err := store.Add(ctx, user.ID, bookmarked.ID); err != nil {
		t.Fatalf("add bookmark: %v", err)
	}

	courses, err := store.ListCourses(ctx, user.ID)
	if err != nil {
		t.Fatalf("list bookmarked courses: %v", err)
	}
	if len(courses) != 1 {
		t.Fatalf("got %d courses, want 1", len(courses))
	}
	if courses[0].ID != bookmarked.ID {
		t.Error("got the wrong course back")
	}
	if courses[0].Specialization == nil || courses[0].Specialization.Name != "الرياضيات" {
		t.Error("expected specialization resolved on bookmarked course")
	}

	// No bookmarks yet: empty result, not an error.
	none, err := store.ListCourses(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("list for user without bookmarks: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("got %d courses, want none", len(none))
	}
}
