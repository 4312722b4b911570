package gates_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/k36p/Midad/internal/app/system/auth"
	"github.com/k36p/Midad/internal/app/system/gates"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRequireSignedInPage_AnonymousRedirectsToLogin(t *testing.T) {
	req := httptest.NewRequest("GET", "/bookMarks", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	res := gates.RequireSignedInPage(rec, req)
	if res.OK {
		t.Fatal("anonymous caller must not pass the gate")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2FbookMarks" {
		t.Errorf("expected redirect to /login with return URL, got %q", loc)
	}
}

func TestRequireSignedInPage_SignedInPasses(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/profile", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Name: "Ahmed", Role: "user"})
	rec := httptest.NewRecorder()

	res := gates.RequireSignedInPage(rec, req)
	if !res.OK {
		t.Fatal("signed-in caller must pass the gate")
	}
	if res.UserID != id || res.Role != "user" || res.Name != "Ahmed" {
		t.Errorf("unexpected gate result: %+v", res)
	}
}

func TestRequireAdmin_AnonymousRedirectsToLogin(t *testing.T) {
	req := httptest.NewRequest("GET", "/dash/colleges", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	res := gates.RequireAdmin(rec, req)
	if res.OK {
		t.Fatal("anonymous caller must not pass the gate")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login?return=%2Fdash%2Fcolleges" {
		t.Errorf("expected redirect to /login with return URL, got %q", loc)
	}
}

func TestRequireAdmin_AdminPasses(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/dash/colleges", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: id.Hex(), Role: "Admin"})
	rec := httptest.NewRecorder()

	res := gates.RequireAdmin(rec, req)
	if !res.OK {
		t.Fatal("admin must pass the gate")
	}
	if res.UserID != id {
		t.Errorf("unexpected user ID: %v", res.UserID)
	}
}
