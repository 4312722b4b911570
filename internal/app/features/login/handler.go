// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	_ "github.com/k36p/Midad/internal/app/features/login/views"
	specializationstore "github.com/k36p/Midad/internal/app/store/specializations"
	userstore "github.com/k36p/Midad/internal/app/store/users"
	"github.com/k36p/Midad/internal/app/system/auth"
	"github.com/k36p/Midad/internal/app/system/htmlsanitize"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/ratelimit"
	"github.com/k36p/Midad/internal/app/system/timeouts"
	"github.com/k36p/Midad/internal/app/system/viewdata"
	"github.com/k36p/Midad/internal/app/system/webutil"
	"github.com/k36p/Midad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler serves the sign-in page and the credential endpoints.
type Handler struct {
	Users   *userstore.Store
	Specs   *specializationstore.Store
	Tokens  *auth.TokenManager
	Limiter *ratelimit.Limiter
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

func NewHandler(db *mongo.Database, tokens *auth.TokenManager, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Specs:   specializationstore.New(db),
		Tokens:  tokens,
		Limiter: ratelimit.New(10, time.Minute),
		ErrLog:  errLog,
		Log:     logger,
	}
}

// ServeLogin renders the sign-in / registration page.
// GET /login
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if _, signed := auth.CurrentUser(r); signed {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	specs, err := h.Specs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list specializations for login page failed", err, "", "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Specializations []models.Specialization
		ReturnTo        string
	}{
		BaseVM:          viewdata.NewBaseVM(r, "تسجيل الدخول", "/"),
		Specializations: specs,
		ReturnTo:        safeReturn(r.URL.Query().Get("return")),
	}
	templates.Render(w, r, "login", data)
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and sets the token cookie.
// POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	key := ratelimit.ClientKey(r)
	if !h.Limiter.Allow(key) {
		webutil.Error(w, http.StatusTooManyRequests, messages.LoginTooManyAttempts)
		return
	}

	login, password, ok := credentials(r)
	if !ok || login == "" || password == "" {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			webutil.Error(w, http.StatusUnauthorized, messages.LoginInvalid)
			return
		}
		webutil.ServerError(w, h.Log, "load user for login failed", messages.ServerError, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		webutil.Error(w, http.StatusUnauthorized, messages.LoginInvalid)
		return
	}

	if err := h.Tokens.Issue(w, u.ID); err != nil {
		webutil.ServerError(w, h.Log, "issue token failed", messages.ServerError, err)
		return
	}
	h.Limiter.Reset(key)
	h.Log.Info("user signed in", zap.String("user_id", u.ID.Hex()))

	finishAuth(w, r)
}

type registerRequest struct {
	FullName         string `json:"fullName"`
	Login            string `json:"login"`
	Password         string `json:"password"`
	SpecializationID string `json:"specialization"`
}

// HandleRegister creates a new student account and signs it in.
// POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if !h.Limiter.Allow(ratelimit.ClientKey(r)) {
		webutil.Error(w, http.StatusTooManyRequests, messages.LoginTooManyAttempts)
		return
	}

	req, ok := registration(r)
	if !ok || req.FullName == "" || req.Login == "" || req.Password == "" {
		webutil.Error(w, http.StatusBadRequest, messages.RegisterFieldsMissing)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var specID *primitive.ObjectID
	if req.SpecializationID != "" {
		id, err := primitive.ObjectIDFromHex(req.SpecializationID)
		if err != nil {
			webutil.Error(w, http.StatusBadRequest, messages.SpecializationNotFound)
			return
		}
		exists, err := h.Specs.Exists(ctx, id)
		if err != nil {
			webutil.ServerError(w, h.Log, "check specialization for register failed", messages.ServerError, err)
			return
		}
		if !exists {
			webutil.Error(w, http.StatusNotFound, messages.SpecializationNotFound)
			return
		}
		specID = &id
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		webutil.ServerError(w, h.Log, "hash password failed", messages.ServerError, err)
		return
	}

	// Names must never carry markup.
	fullName := strings.TrimSpace(htmlsanitize.PlainText(req.FullName))
	if fullName == "" {
		webutil.Error(w, http.StatusBadRequest, messages.RegisterFieldsMissing)
		return
	}

	u, err := h.Users.Create(ctx, models.User{
		FullName:         fullName,
		Login:            req.Login,
		PasswordHash:     string(hash),
		Role:             models.RoleUser,
		SpecializationID: specID,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateLogin) {
			webutil.Error(w, http.StatusConflict, messages.LoginAlreadyTaken)
			return
		}
		webutil.ServerError(w, h.Log, "create account failed", messages.ServerError, err)
		return
	}

	if err := h.Tokens.Issue(w, u.ID); err != nil {
		webutil.ServerError(w, h.Log, "issue token after register failed", messages.ServerError, err)
		return
	}
	h.Log.Info("account registered", zap.String("user_id", u.ID.Hex()))

	finishAuth(w, r)
}

// credentials reads login/password from either a JSON body or a form post.
func credentials(r *http.Request) (login, password string, ok bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req loginRequest
		if err := webutil.DecodeBody(r, &req); err != nil {
			return "", "", false
		}
		return req.Login, req.Password, true
	}
	if err := r.ParseForm(); err != nil {
		return "", "", false
	}
	return r.PostFormValue("login"), r.PostFormValue("password"), true
}

func registration(r *http.Request) (registerRequest, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req registerRequest
		if err := webutil.DecodeBody(r, &req); err != nil {
			return registerRequest{}, false
		}
		return req, true
	}
	if err := r.ParseForm(); err != nil {
		return registerRequest{}, false
	}
	return registerRequest{
		FullName:         r.PostFormValue("fullName"),
		Login:            r.PostFormValue("login"),
		Password:         r.PostFormValue("password"),
		SpecializationID: r.PostFormValue("specialization"),
	}, true
}

// finishAuth redirects browsers and acknowledges API clients.
func finishAuth(w http.ResponseWriter, r *http.Request) {
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		http.Redirect(w, r, safeReturn(r.FormValue("return")), http.StatusSeeOther)
		return
	}
	webutil.Message(w, http.StatusOK, "ok")
}

// safeReturn keeps post-login redirects on this site.
func safeReturn(target string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return "/"
	}
	return target
}
