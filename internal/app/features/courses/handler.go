// internal/app/features/courses/handler.go
package courses

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	_ "github.com/k36p/Midad/internal/app/features/courses/views"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	bookmarkstore "github.com/k36p/Midad/internal/app/store/bookmarks"
	coursestore "github.com/k36p/Midad/internal/app/store/courses"
	specializationstore "github.com/k36p/Midad/internal/app/store/specializations"
	"github.com/k36p/Midad/internal/app/system/authz"
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

// Handler serves the course library, the book detail page, and the
// course CRUD surface.
type Handler struct {
	Courses   *coursestore.Store
	Specs     *specializationstore.Store
	Bookmarks *bookmarkstore.Store
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Courses:   coursestore.New(db),
		Specs:     specializationstore.New(db),
		Bookmarks: bookmarkstore.New(db),
		ErrLog:    errLog,
		Log:       logger,
	}
}

type courseRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	Link             string `json:"link"`
	SpecializationID string `json:"specialization"`
}

// Create adds a course under an existing specialization.
// POST /courses [admin]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	req, ok := courseInput(r)
	if !ok {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}
	if req.Title == "" {
		webutil.Error(w, http.StatusBadRequest, messages.CourseTitleRequired)
		return
	}
	if req.SpecializationID == "" {
		webutil.Error(w, http.StatusBadRequest, messages.CourseSpecializationRequired)
		return
	}
	specID, err := primitive.ObjectIDFromHex(req.SpecializationID)
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.SpecializationNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	exists, err := h.Specs.Exists(ctx, specID)
	if err != nil {
		webutil.ServerError(w, h.Log, "check specialization for course failed", messages.ServerError, err)
		return
	}
	if !exists {
		webutil.Error(w, http.StatusNotFound, messages.SpecializationNotFound)
		return
	}

	course, err := h.Courses.Create(ctx, models.Course{
		Title:            req.Title,
		Description:      req.Description,
		Link:             req.Link,
		SpecializationID: specID,
	})
	if err != nil {
		webutil.ServerError(w, h.Log, "create course failed", messages.ServerError, err)
		return
	}

	webutil.JSON(w, http.StatusCreated, struct {
		Message string        `json:"message"`
		Course  models.Course `json:"course"`
	}{messages.CourseCreated, course})
}

// ListAll returns every course with its specialization resolved.
// GET /courses/all
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := h.Courses.ListWithSpecialization(ctx)
	if err != nil {
		webutil.ServerError(w, h.Log, "list courses failed", messages.CourseFetchError, err)
		return
	}
	if courses == nil {
		courses = []models.CourseWithSpecialization{}
	}
	webutil.JSON(w, http.StatusOK, courses)
}

// Update changes a course's fields.
// POST /course/update/{id} [admin]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdminAPI(w, r); !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.CourseNotFound)
		return
	}

	req, ok := courseInput(r)
	if !ok {
		webutil.Error(w, http.StatusBadRequest, messages.SomeInformationMissing)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	specID := primitive.NilObjectID
	if req.SpecializationID != "" {
		specID, err = primitive.ObjectIDFromHex(req.SpecializationID)
		if err != nil {
			webutil.Error(w, http.StatusBadRequest, messages.SpecializationNotFound)
			return
		}
		exists, err := h.Specs.Exists(ctx, specID)
		if err != nil {
			webutil.ServerError(w, h.Log, "check specialization for course update failed", messages.ServerError, err)
			return
		}
		if !exists {
			webutil.Error(w, http.StatusNotFound, messages.SpecializationNotFound)
			return
		}
	}

	course, err := h.Courses.Update(ctx, id, req.Title, req.Description, req.Link, specID)
	if err != nil {
		if errors.Is(err, coursestore.ErrCourseNotFound) {
			webutil.Error(w, http.StatusNotFound, messages.CourseNotFound)
			return
		}
		webutil.ServerError(w, h.Log, "update course failed", messages.ServerError, err)
		return
	}

	webutil.JSON(w, http.StatusOK, struct {
		Message string        `json:"message"`
		Course  models.Course `json:"course"`
	}{messages.CourseUpdated, course})
}

// ServeLibrary renders the course library. Signed-in students see
// their own specialization's courses first.
// GET /library
func (h *Handler) ServeLibrary(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		courses []models.CourseWithSpecialization
		err     error
	)
	if specID := authz.UserSpecializationID(r); specID != primitive.NilObjectID {
		courses, err = h.Courses.ListBySpecialization(ctx, specID)
	} else {
		courses, err = h.Courses.ListWithSpecialization(ctx)
	}
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list courses for library failed", err, messages.CourseFetchError, "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Courses []models.CourseWithSpecialization
	}{
		BaseVM:  viewdata.NewBaseVM(r, "المكتبة", "/"),
		Courses: courses,
	}
	templates.Render(w, r, "library", data)
}

// ServeBook renders a course's detail page and bumps its view counter
// in the same atomic write.
// GET /book/{id}
func (h *Handler) ServeBook(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		uierrors.RenderStatus(w, r, http.StatusNotFound, messages.CourseNotFound, "/library")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	course, err := h.Courses.IncrementViews(ctx, id)
	if err != nil {
		if errors.Is(err, coursestore.ErrCourseNotFound) {
			uierrors.RenderStatus(w, r, http.StatusNotFound, messages.CourseNotFound, "/library")
			return
		}
		h.ErrLog.LogServerError(w, r, "load book detail failed", err, messages.CourseFetchError, "/library")
		return
	}

	spec, err := h.Specs.GetByID(ctx, course.SpecializationID)
	if err != nil && !errors.Is(err, specializationstore.ErrSpecializationNotFound) {
		h.ErrLog.LogServerError(w, r, "load book specialization failed", err, messages.CourseFetchError, "/library")
		return
	}

	bookmarked := false
	if _, _, userID, ok := authz.UserCtx(r); ok {
		bm, err := h.Bookmarks.GetByUser(ctx, userID)
		if err == nil {
			for _, cid := range bm.CourseIDs {
				if cid == course.ID {
					bookmarked = true
					break
				}
			}
		}
	}

	data := struct {
		viewdata.BaseVM
		Course         models.Course
		Specialization models.Specialization
		Bookmarked     bool
	}{
		BaseVM:         viewdata.NewBaseVM(r, course.Title, "/library"),
		Course:         course,
		Specialization: spec,
		Bookmarked:     bookmarked,
	}
	data.LoadFlashes(w, r)
	templates.Render(w, r, "book", data)
}

// ServeNew renders the "add course" form.
// GET /new-course [admin]
func (h *Handler) ServeNew(w http.ResponseWriter, r *http.Request) {
	h.serveCourseForm(w, r, "course_new", "إضافة مادة")
}

// ServeUpdateContent renders the course edit form.
// GET /update-content [admin]
func (h *Handler) ServeUpdateContent(w http.ResponseWriter, r *http.Request) {
	h.serveCourseForm(w, r, "course_update", "تحديث مادة")
}

func (h *Handler) serveCourseForm(w http.ResponseWriter, r *http.Request, tmpl, title string) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	specs, err := h.Specs.ListWithCollege(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list specializations for course form failed", err, messages.SpecializationFetchError, "/dash/courses")
		return
	}

	data := struct {
		viewdata.BaseVM
		Specializations []models.SpecializationWithCollege
	}{
		BaseVM:          viewdata.NewBaseVM(r, title, "/dash/courses"),
		Specializations: specs,
	}
	templates.Render(w, r, tmpl, data)
}

// ServeDash renders the admin course list.
// GET /dash/courses [admin]
func (h *Handler) ServeDash(w http.ResponseWriter, r *http.Request) {
	if res := gates.RequireAdmin(w, r); !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := h.Courses.ListWithSpecialization(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list courses for dash failed", err, messages.CourseFetchError, "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Courses []models.CourseWithSpecialization
	}{
		BaseVM:  viewdata.NewBaseVM(r, "إدارة المواد", "/"),
		Courses: courses,
	}
	templates.Render(w, r, "course_dash", data)
}

func courseInput(r *http.Request) (courseRequest, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req courseRequest
		if err := webutil.DecodeBody(r, &req); err != nil {
			return courseRequest{}, false
		}
		req.Title = strings.TrimSpace(req.Title)
		return req, true
	}
	if err := r.ParseForm(); err != nil {
		return courseRequest{}, false
	}
	return courseRequest{
		Title:            strings.TrimSpace(r.PostFormValue("title")),
		Description:      r.PostFormValue("description"),
		Link:             strings.TrimSpace(r.PostFormValue("link")),
		SpecializationID: r.PostFormValue("specialization"),
	}, true
}
