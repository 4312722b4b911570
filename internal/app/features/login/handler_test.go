package login_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	"github.com/k36p/Midad/internal/app/features/login"
	"github.com/k36p/Midad/internal/app/system/auth"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/domain/models"
	"github.com/k36p/Midad/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(t *testing.T, db *mongo.Database) *login.Handler {
	t.Helper()
	logger := zap.NewNop()
	tokens := auth.NewTokenManager("test-sign-key-0123456789abcdef", "midad-test", time.Hour, false, logger)
	return login.NewHandler(db, tokens, uierrors.NewErrorLogger(logger), logger)
}

func tokenCookie(rec *testutil.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			return c
		}
	}
	return nil
}

func TestHandleLoginSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, db)

	fx.CreateUser(ctx, "أحمد علي", "ahmed", "secret123", "user", nil)

	req := testutil.NewJSONRequest("/auth/login", `{"login":"ahmed","password":"secret123"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if tokenCookie(rec) == nil {
		t.Error("expected a token cookie to be set")
	}
}

func TestHandleLoginNormalizesLoginCase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, db)

	fx.CreateUser(ctx, "سارة محمد", "sara", "secret123", "user", nil)

	req := testutil.NewJSONRequest("/auth/login", `{"login":"SARA","password":"secret123"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
}

func TestHandleLoginWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, db)

	fx.CreateUser(ctx, "أحمد علي", "ahmed", "secret123", "user", nil)

	req := testutil.NewJSONRequest("/auth/login", `{"login":"ahmed","password":"wrong"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, messages.LoginInvalid)
	if tokenCookie(rec) != nil {
		t.Error("expected no token cookie on failed login")
	}
}

func TestHandleLoginUnknownUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	req := testutil.NewJSONRequest("/auth/login", `{"login":"nobody","password":"x"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	// Unknown user and bad password look the same to the client.
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, messages.LoginInvalid)
}

func TestHandleLoginMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	req := testutil.NewJSONRequest("/auth/login", `{"login":"ahmed"}`)
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestHandleLoginRateLimited(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	var rec *testutil.ResponseRecorder
	for i := 0; i < 11; i++ {
		req := testutil.NewJSONRequest("/auth/login", `{"login":"nobody","password":"x"}`)
		req.RemoteAddr = "203.0.113.9:4321"
		rec = testutil.NewRecorder()
		h.HandleLogin(rec.ResponseRecorder, req)
	}

	rec.AssertStatus(t, http.StatusTooManyRequests)
	rec.AssertContains(t, messages.LoginTooManyAttempts)
}

func TestHandleLoginBrowserRedirects(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, db)

	fx.CreateUser(ctx, "أحمد علي", "ahmed", "secret123", "user", nil)

	req := testutil.NewFormRequest("/auth/login", "login=ahmed&password=secret123&return=/library")
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/library")
}

func TestHandleLoginRejectsOffsiteReturn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, db)

	fx.CreateUser(ctx, "أحمد علي", "ahmed", "secret123", "user", nil)

	req := testutil.NewFormRequest("/auth/login", "login=ahmed&password=secret123&return=//evil.example")
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)

	rec.AssertRedirect(t, "/")
}

func TestHandleRegisterThenLogin(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, db)

	college := fx.CreateCollege(ctx, "كلية الهندسة")
	spec := fx.CreateSpecialization(ctx, "هندسة البرمجيات", college.ID)

	body := fmt.Sprintf(`{"fullName":"طالب جديد","login":"newstudent","password":"secret123","specialization":%q}`, spec.ID.Hex())
	req := testutil.NewJSONRequest("/auth/register", body)
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	if tokenCookie(rec) == nil {
		t.Error("expected a token cookie after registration")
	}

	req = testutil.NewJSONRequest("/auth/login", `{"login":"newstudent","password":"secret123"}`)
	rec = testutil.NewRecorder()
	h.HandleLogin(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}

func TestHandleRegisterMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	req := testutil.NewJSONRequest("/auth/register", `{"fullName":"طالب","login":"x"}`)
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.RegisterFieldsMissing)
}

func TestHandleRegisterStripsMarkupFromName(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	h := newHandler(t, db)

	req := testutil.NewJSONRequest("/auth/register", `{"fullName":"<b>أحمد</b><script>alert(1)</script>","login":"cleanname","password":"secret123"}`)
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)

	var got models.User
	if err := db.Collection("users").FindOne(ctx, bson.M{"login": "cleanname"}).Decode(&got); err != nil {
		t.Fatalf("load registered account: %v", err)
	}
	if got.FullName != "أحمد" {
		t.Errorf("expected markup stripped from name, got %q", got.FullName)
	}

	// A name that is nothing but markup is treated as missing.
	req = testutil.NewJSONRequest("/auth/register", `{"fullName":"<script>alert(1)</script>","login":"othername","password":"secret123"}`)
	rec = testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.RegisterFieldsMissing)
}

func TestHandleRegisterUnknownSpecialization(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(t, db)

	body := fmt.Sprintf(`{"fullName":"طالب","login":"someone","password":"secret123","specialization":%q}`, primitive.NewObjectID().Hex())
	req := testutil.NewJSONRequest("/auth/register", body)
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
	rec.AssertContains(t, messages.SpecializationNotFound)
}

func TestHandleRegisterDuplicateLogin(t *testing.T) {
	db := testutil.SetupTestDBWithIndexes(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(t, db)

	fx.CreateUser(ctx, "الأصلي", "taken", "secret123", "user", nil)

	req := testutil.NewJSONRequest("/auth/register", `{"fullName":"منتحل","login":"taken","password":"secret123"}`)
	rec := testutil.NewRecorder()
	h.HandleRegister(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, messages.LoginAlreadyTaken)
}
