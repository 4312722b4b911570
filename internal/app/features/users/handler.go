// internal/app/features/users/handler.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	_ "github.com/k36p/Midad/internal/app/features/users/views"
	userstore "github.com/k36p/Midad/internal/app/store/users"
	"github.com/k36p/Midad/internal/app/system/auth"
	"github.com/k36p/Midad/internal/app/system/gates"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/timeouts"
	"github.com/k36p/Midad/internal/app/system/viewdata"
	"github.com/k36p/Midad/internal/app/system/webutil"
	"github.com/k36p/Midad/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves account data, role management, and the profile pages.
type Handler struct {
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

// Data returns one account. The password hash never serializes out.
// GET /data/user/{id} [admin]
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.UserIDRequired)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			webutil.Error(w, http.StatusNotFound, messages.UserNotFound)
			return
		}
		webutil.ServerError(w, h.Log, "load user failed", messages.ServerError, err)
		return
	}
	webutil.JSON(w, http.StatusOK, u)
}

// UpdateRole handles role actions against one account. The only action
// is removePermissions; demoting an account that is already a plain
// user succeeds without change. An admin can demote anyone; a user can
// demote only themself.
// POST /admins/update/{action}/{id} [owner-or-admin]
func (h *Handler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.UserIDRequired)
		return
	}

	if res := gates.RequireOwnerOrAdminAPI(w, r, id); !res.OK {
		return
	}

	if action != "removePermissions" {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.SetRole(ctx, id, models.RoleUser); err != nil {
		if errors.Is(err, userstore.ErrUserNotFound) {
			webutil.Error(w, http.StatusNotFound, messages.UserNotFound)
			return
		}
		webutil.ServerError(w, h.Log, "remove permissions failed", messages.ServerError, err)
		return
	}
	h.Log.Info("permissions removed", zap.String("user_id", id.Hex()))

	webutil.Message(w, http.StatusOK, messages.PermissionRemoved)
}

// ServeProfile renders the caller's own profile.
// GET /profile [signed-in]
func (h *Handler) ServeProfile(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSignedInPage(w, r)
	if !res.OK {
		return
	}

	u, _ := auth.CurrentUser(r)

	data := struct {
		viewdata.BaseVM
		User *auth.SessionUser
	}{
		BaseVM: viewdata.NewBaseVM(r, "الملف الشخصي", "/"),
		User:   u,
	}
	templates.Render(w, r, "profile", data)
}

// ServeDashUsers renders the student account list.
// GET /dash/users [admin]
func (h *Handler) ServeDashUsers(w http.ResponseWriter, r *http.Request) {
	h.serveRoleList(w, r, models.RoleUser, "user_dash", "إدارة المستخدمين")
}

// ServeDashAdmins renders the admin account list.
// GET /dash/admins [admin]
func (h *Handler) ServeDashAdmins(w http.ResponseWriter, r *http.Request) {
	h.serveRoleList(w, r, models.RoleAdmin, "admin_dash", "إدارة المشرفين")
}

func (h *Handler) serveRoleList(w http.ResponseWriter, r *http.Request, role, tmpl, title string) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	accounts, err := h.Users.ListByRole(ctx, role)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list accounts for dash failed", err, "", "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Accounts []models.User
	}{
		BaseVM:   viewdata.NewBaseVM(r, title, "/"),
		Accounts: accounts,
	}
	templates.Render(w, r, tmpl, data)
}
