// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dalemusser/waffle/pantry/storage"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/google/uuid"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	_ "github.com/k36p/Midad/internal/app/features/notifications/views"
	notificationstore "github.com/k36p/Midad/internal/app/store/notifications"
	specializationstore "github.com/k36p/Midad/internal/app/store/specializations"
	"github.com/k36p/Midad/internal/app/system/authz"
	"github.com/k36p/Midad/internal/app/system/gates"
	"github.com/k36p/Midad/internal/app/system/htmlsanitize"
	"github.com/k36p/Midad/internal/app/system/limits"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/timeouts"
	"github.com/k36p/Midad/internal/app/system/viewdata"
	"github.com/k36p/Midad/internal/app/system/webutil"
	"github.com/k36p/Midad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the notification pages and the admin publish surface.
type Handler struct {
	Notifications *notificationstore.Store
	Specs         *specializationstore.Store
	Storage       storage.Store
	ErrLog        *uierrors.ErrorLogger
	Log           *zap.Logger
}

func NewHandler(db *mongo.Database, notifications *notificationstore.Store, store storage.Store, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notifications,
		Specs:         specializationstore.New(db),
		Storage:       store,
		ErrLog:        errLog,
		Log:           logger,
	}
}

// Add publishes a notification, optionally with an uploaded attachment.
// POST /notifications/add [admin, multipart]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	if err := r.ParseMultipartForm(limits.MaxMediaFileSize); err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}

	content := htmlsanitize.Sanitize(strings.TrimSpace(r.PostFormValue("content")))
	if content == "" {
		webutil.Error(w, http.StatusBadRequest, messages.NotificationContentRequired)
		return
	}

	kind := r.PostFormValue("type")
	if kind != models.NotificationSpecialization {
		kind = models.NotificationPublic
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	var specID *primitive.ObjectID
	if kind == models.NotificationSpecialization {
		id, err := primitive.ObjectIDFromHex(r.PostFormValue("specialization"))
		if err != nil {
			webutil.Error(w, http.StatusBadRequest, messages.SpecializationNotFound)
			return
		}
		exists, err := h.Specs.Exists(ctx, id)
		if err != nil {
			webutil.ServerError(w, h.Log, "check specialization for notification failed", messages.NotificationSendFailed, err)
			return
		}
		if !exists {
			webutil.Error(w, http.StatusNotFound, messages.SpecializationNotFound)
			return
		}
		specID = &id
	}

	mediaLink, err := h.storeMedia(ctx, r)
	if err != nil {
		webutil.ServerError(w, h.Log, "store notification media failed", messages.NotificationSendFailed, err)
		return
	}

	n, err := h.Notifications.Create(ctx, models.Notification{
		Content:          content,
		MediaLink:        mediaLink,
		Type:             kind,
		SpecializationID: specID,
	})
	if err != nil {
		if errors.Is(err, notificationstore.ErrRecentDuplicate) {
			webutil.Error(w, http.StatusTooManyRequests, messages.NotificationCooldown)
			return
		}
		webutil.ServerError(w, h.Log, "create notification failed", messages.NotificationSendFailed, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, struct {
		Message      string              `json:"message"`
		Notification models.Notification `json:"notification"`
	}{messages.NotificationAdded, n})
}

// storeMedia uploads the optional mediaFile part and returns its public
// link, or "" when no file was attached.
func (h *Handler) storeMedia(ctx context.Context, r *http.Request) (string, error) {
	file, header, err := r.FormFile("mediaFile")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil
		}
		return "", err
	}
	defer file.Close()

	if header.Size > limits.MaxMediaFileSize {
		return "", fmt.Errorf("media file too large: %d bytes", header.Size)
	}

	now := time.Now().UTC()
	name := fmt.Sprintf("%s%s", uuid.New().String(), strings.ToLower(filepath.Ext(header.Filename)))
	path := filepath.ToSlash(filepath.Join(fmt.Sprintf("notifications/%04d/%02d", now.Year(), now.Month()), name))

	opts := &storage.PutOptions{
		ContentType: header.Header.Get("Content-Type"),
	}
	if err := h.Storage.Put(ctx, path, file, opts); err != nil {
		return "", err
	}
	return h.Storage.URL(path), nil
}

// ListAll returns every notification for the admin dashboard.
// GET /notifications/all [admin]
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Notifications.ListWithSpecialization(ctx)
	if err != nil {
		webutil.ServerError(w, h.Log, "list notifications failed", messages.ServerError, err)
		return
	}
	if items == nil {
		items = []models.NotificationWithSpecialization{}
	}
	webutil.JSON(w, http.StatusOK, items)
}

// ServeList renders the notifications page. Everyone sees public
// notifications; signed-in students also see their specialization's.
// GET /notifications
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var specID *primitive.ObjectID
	if id := authz.UserSpecializationID(r); id != primitive.NilObjectID {
		specID = &id
	}

	items, err := h.Notifications.ListVisibleTo(ctx, specID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications for page failed", err, "", "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Notifications []models.NotificationWithSpecialization
	}{
		BaseVM:        viewdata.NewBaseVM(r, "الإشعارات", "/"),
		Notifications: items,
	}
	templates.Render(w, r, "notification_list", data)
}

// ServeNew renders the "publish notification" form.
// GET /new-notification [admin]
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	specs, err := h.Specs.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list specializations for notification form failed", err, messages.SpecializationFetchError, "/dash/notifications")
		return
	}

	data := struct {
		viewdata.BaseVM
		Specializations []models.Specialization
	}{
		BaseVM:          viewdata.NewBaseVM(r, "إشعار جديد", "/dash/notifications"),
		Specializations: specs,
	}
	templates.Render(w, r, "notification_new", data)
}

// ServeDash renders the admin notification list.
// GET /dash/notifications [admin]
func (h *Handler) ServeDash(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	items, err := h.Notifications.ListWithSpecialization(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications for dash failed", err, "", "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Notifications []models.NotificationWithSpecialization
	}{
		BaseVM:        viewdata.NewBaseVM(r, "إدارة الإشعارات", "/"),
		Notifications: items,
	}
	templates.Render(w, r, "notification_dash", data)
}
