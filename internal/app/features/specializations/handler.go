// internal/app/features/specializations/handler.go
package specializations

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	_ "github.com/k36p/Midad/internal/app/features/specializations/views"
	collegestore "github.com/k36p/Midad/internal/app/store/colleges"
	specializationstore "github.com/k36p/Midad/internal/app/store/specializations"
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

// Handler serves the specialization CRUD surface and its admin pages.
type Handler struct {
	Specs    *specializationstore.Store
	Colleges *collegestore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Specs:    specializationstore.New(db),
		Colleges: collegestore.New(db),
		ErrLog:   errLog,
		Log:      logger,
	}
}

type specializationRequest struct {
	Name      string `json:"name"`
	CollegeID string `json:"college"`
}

// Create adds a specialization under an existing college.
// POST /specializations [admin]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	req, ok := specializationInput(r)
	if !ok {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}
	if req.Name == "" {
		webutil.Error(w, http.StatusBadRequest, messages.SpecializationNameRequired)
		return
	}
	if req.CollegeID == "" {
		webutil.Error(w, http.StatusBadRequest, messages.SpecializationCollegeRequired)
		return
	}
	collegeID, err := primitive.ObjectIDFromHex(req.CollegeID)
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.CollegeNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Colleges.Exists(ctx, collegeID)
	if err != nil {
		webutil.ServerError(w, h.Log, "check college for specialization failed", messages.SpecializationCreateFailed, err)
		return
	}
	if !exists {
		webutil.Error(w, http.StatusNotFound, messages.CollegeNotFound)
		return
	}

	spec, err := h.Specs.Create(ctx, models.Specialization{
		Name:      req.Name,
		CollegeID: collegeID,
	})
	if err != nil {
		if errors.Is(err, specializationstore.ErrDuplicateSpecialization) {
			webutil.Error(w, http.StatusConflict, messages.SpecializationAlreadyCreated)
			return
		}
		webutil.ServerError(w, h.Log, "create specialization failed", messages.SpecializationCreateFailed, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, struct {
		Message        string                `json:"message"`
		Specialization models.Specialization `json:"specialization"`
	}{messages.SpecializationCreated, spec})
}

// ListAll returns every specialization with its college resolved.
// GET /specializations/all
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	specs, err := h.Specs.ListWithCollege(ctx)
	if err != nil {
		webutil.ServerError(w, h.Log, "list specializations failed", messages.SpecializationFetchError, err)
		return
	}
	if specs == nil {
		specs = []models.SpecializationWithCollege{}
	}
	webutil.JSON(w, http.StatusOK, specs)
}

// ListByCollege returns the specializations of one college. A college
// with none yields 404 so selection UIs can show the empty message.
// GET /specializations/{college}
func (h *Handler) ListByCollege(w http.ResponseWriter, r *http.Request) {
	collegeID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "college"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.CollegeNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	specs, err := h.Specs.ListByCollege(ctx, collegeID)
	if err != nil {
		webutil.ServerError(w, h.Log, "list specializations by college failed", messages.SpecializationFetchError, err)
		return
	}
	if len(specs) == 0 {
		webutil.Error(w, http.StatusNotFound, messages.NoSpecializationsForCollege)
		return
	}
	webutil.JSON(w, http.StatusOK, specs)
}

// Data returns one specialization for the admin edit form.
// GET /data/specialization/{id} [admin]
func (h *Handler) Data(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.SpecializationNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	spec, err := h.Specs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, specializationstore.ErrSpecializationNotFound) {
			webutil.Error(w, http.StatusNotFound, messages.SpecializationNotFound)
			return
		}
		webutil.ServerError(w, h.Log, "load specialization failed", messages.SpecializationFetchError, err)
		return
	}
	webutil.JSON(w, http.StatusOK, spec)
}

// Update changes a specialization's name or college.
// POST /specialization/update/{id} [admin]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.SpecializationNotFound)
		return
	}

	req, ok := specializationInput(r)
	if !ok {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}
	if req.Name == "" && req.CollegeID == "" {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	collegeID := primitive.NilObjectID
	if req.CollegeID != "" {
		collegeID, err = primitive.ObjectIDFromHex(req.CollegeID)
		if err != nil {
			webutil.Error(w, http.StatusBadRequest, messages.CollegeNotFound)
			return
		}
		exists, err := h.Colleges.Exists(ctx, collegeID)
		if err != nil {
			webutil.ServerError(w, h.Log, "check college for specialization update failed", messages.SpecializationUpdateFailed, err)
			return
		}
		if !exists {
			webutil.Error(w, http.StatusNotFound, messages.CollegeNotFound)
			return
		}
	}

	spec, err := h.Specs.Update(ctx, id, req.Name, collegeID)
	if err != nil {
		switch {
		case errors.Is(err, specializationstore.ErrSpecializationNotFound):
			webutil.Error(w, http.StatusNotFound, messages.SpecializationNotFound)
		case errors.Is(err, specializationstore.ErrDuplicateSpecialization):
			webutil.Error(w, http.StatusConflict, messages.SpecializationAlreadyCreated)
		default:
			webutil.ServerError(w, h.Log, "update specialization failed", messages.SpecializationUpdateFailed, err)
		}
		return
	}

	webutil.JSON(w, http.StatusOK, struct {
		Message        string                `json:"message"`
		Specialization models.Specialization `json:"specialization"`
	}{messages.SpecializationUpdated, spec})
}

// ServeNew renders the "add specialization" form.
// GET /new-specialization [admin]
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	colleges, err := h.Colleges.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list colleges for specialization form failed", err, messages.CollegeFetchError, "/dash/specializations")
		return
	}

	data := struct {
		viewdata.BaseVM
		Colleges []models.College
	}{
		BaseVM:   viewdata.NewBaseVM(r, "إضافة تخصص", "/dash/specializations"),
		Colleges: colleges,
	}
	templates.Render(w, r, "specialization_new", data)
}

// ServeDash renders the admin specialization list.
// GET /dash/specializations [admin]
func (h *Handler) ServeDash(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	specs, err := h.Specs.ListWithCollege(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list specializations for dash failed", err, messages.SpecializationFetchError, "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Specializations []models.SpecializationWithCollege
	}{
		BaseVM:          viewdata.NewBaseVM(r, "إدارة التخصصات", "/"),
		Specializations: specs,
	}
	templates.Render(w, r, "specialization_dash", data)
}

func specializationInput(r *http.Request) (specializationRequest, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req specializationRequest
		if err := webutil.DecodeBody(r, &req); err != nil {
			return specializationRequest{}, false
		}
		req.Name = strings.TrimSpace(req.Name)
		return req, true
	}
	if err := r.ParseForm(); err != nil {
		return specializationRequest{}, false
	}
	return specializationRequest{
		Name:      strings.TrimSpace(r.PostFormValue("name")),
		CollegeID: r.PostFormValue("college"),
	}, true
}
