// internal/app/features/colleges/handler.go
package colleges

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	_ "github.com/k36p/Midad/internal/app/features/colleges/views"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	collegestore "github.com/k36p/Midad/internal/app/store/colleges"
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

// Handler serves the college CRUD surface and its admin pages.
type Handler struct {
	Colleges *collegestore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Colleges: collegestore.New(db),
		ErrLog:   errLog,
		Log:      logger,
	}
}

type collegeRequest struct {
	Name string `json:"name"`
}

// Create adds a college.
// POST /colleges [admin]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	name, ok := collegeName(r)
	if !ok {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}
	if name == "" {
		webutil.Error(w, http.StatusBadRequest, messages.CollegeNameRequired)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	college, err := h.Colleges.Create(ctx, models.College{Name: name})
	if err != nil {
		if errors.Is(err, collegestore.ErrDuplicateCollege) {
			webutil.Error(w, http.StatusConflict, messages.CollegeAlreadyCreated)
			return
		}
		webutil.ServerError(w, h.Log, "create college failed", messages.CollegeCreateFailed, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, struct {
		Message string         `json:"message"`
		College models.College `json:"college"`
	}{messages.CollegeCreated, college})
}

// List returns every college.
// GET /colleges
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	colleges, err := h.Colleges.List(ctx)
	if err != nil {
		webutil.ServerError(w, h.Log, "list colleges failed", messages.CollegeFetchError, err)
		return
	}
	if colleges == nil {
		colleges = []models.College{}
	}
	webutil.JSON(w, http.StatusOK, colleges)
}

// Data returns one college for the admin edit form.
// GET /data/college/{id} [admin]
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.CollegeNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	college, err := h.Colleges.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, collegestore.ErrCollegeNotFound) {
			webutil.Error(w, http.StatusNotFound, messages.CollegeNotFound)
			return
		}
		webutil.ServerError(w, h.Log, "load college failed", messages.CollegeFetchError, err)
		return
	}
	webutil.JSON(w, http.StatusOK, college)
}

// Update renames a college.
// POST /college/update/{id} [admin]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.CollegeNotFound)
		return
	}

	name, ok := collegeName(r)
	if !ok {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}
	if name == "" {
		webutil.Error(w, http.StatusBadRequest, messages.CollegeNameRequired)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	college, err := h.Colleges.UpdateName(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, collegestore.ErrCollegeNotFound):
			webutil.Error(w, http.StatusNotFound, messages.CollegeNotFound)
		case errors.Is(err, collegestore.ErrDuplicateCollege):
			webutil.Error(w, http.StatusConflict, messages.CollegeAlreadyCreated)
		default:
			webutil.ServerError(w, h.Log, "update college failed", messages.CollegeUpdateFailed, err)
		}
		return
	}

	webutil.JSON(w, http.StatusOK, struct {
		Message string         `json:"message"`
		College models.College `json:"college"`
	}{messages.CollegeUpdated, college})
}

// ServeNew renders the "add college" form.
// GET /new-college [admin]
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "إضافة كلية", "/dash/colleges"),
	}
	templates.Render(w, r, "college_new", data)
}

// ServeDash renders the admin college list.
// GET /dash/colleges [admin]
func (h *Handler) ServeDash(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	colleges, err := h.Colleges.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list colleges for dash failed", err, messages.CollegeFetchError, "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Colleges []models.College
	}{
		BaseVM:   viewdata.NewBaseVM(r, "إدارة الكليات", "/"),
		Colleges: colleges,
	}
	templates.Render(w, r, "college_dash", data)
}

// collegeName pulls the name out of a JSON body or a form post.
func collegeName(r *http.Request) (string, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req collegeRequest
		if err := webutil.DecodeBody(r, &req); err != nil {
			return "", false
		}
		return strings.TrimSpace(req.Name), true
	}
	if err := r.ParseForm(); err != nil {
		return "", false
	}
	return strings.TrimSpace(r.PostFormValue("name")), true
}
