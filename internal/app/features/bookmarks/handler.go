// internal/app/features/bookmarks/handler.go
package bookmarks

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/templates"
	_ "github.com/k36p/Midad/internal/app/features/bookmarks/views"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	bookmarkstore "github.com/k36p/Midad/internal/app/store/bookmarks"
	coursestore "github.com/k36p/Midad/internal/app/store/courses"
	"github.com/k36p/Midad/internal/app/system/flash"
	"github.com/k36p/Midad/internal/app/system/gates"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/timeouts"
	"github.com/k36p/Midad/internal/app/system/viewdata"
	"github.com/k36p/Midad/internal/app/system/webutil"
	"github.com/k36p/Midad/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the saved-courses page and the bookmark endpoints.
type Handler struct {
	Bookmarks *bookmarkstore.Store
	Courses   *coursestore.Store
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Bookmarks: bookmarkstore.New(db),
		Courses:   coursestore.New(db),
		ErrLog:    errLog,
		Log:       logger,
	}
}

type bookmarkRequest struct {
	CourseID string `json:"course"`
}

// Add saves a course to the caller's bookmarks.
// POST /bookmarks/add [signed-in]
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, true)
}

// Remove drops a course from the caller's bookmarks.
// POST /bookmarks/remove [signed-in]
func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, false)
}

func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, add bool) {
	res := gates.RequireSignedInAPI(w, r)
	if !res.OK {
		return
	}

	raw, ok := bookmarkCourse(r)
	if !ok || raw == "" {
		webutil.Error(w, http.StatusBadRequest, messages.BookmarkCourseNeeded)
		return
	}
	courseID, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.BookmarkCourseNeeded)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if add {
		if _, err := h.Courses.GetByID(ctx, courseID); err != nil {
			if errors.Is(err, coursestore.ErrCourseNotFound) {
				webutil.Error(w, http.StatusNotFound, messages.CourseNotFound)
				return
			}
			webutil.ServerError(w, h.Log, "load course for bookmark failed", messages.ServerError, err)
			return
		}
		err = h.Bookmarks.Add(ctx, res.UserID, courseID)
	} else {
		err = h.Bookmarks.Remove(ctx, res.UserID, courseID)
	}
	if err != nil {
		webutil.ServerError(w, h.Log, "update bookmarks failed", messages.ServerError, err)
		return
	}

	// Browser form posts come back to the book page with a flash notice.
	if strings.Contains(r.Header.Get("Accept"), "text/html") {
		if add {
			flash.Notice(w, r, messages.BookmarkAdded)
		} else {
			flash.Notice(w, r, messages.BookmarkRemoved)
		}
		http.Redirect(w, r, "/book/"+courseID.Hex(), http.StatusSeeOther)
		return
	}
	if add {
		webutil.Message(w, http.StatusOK, messages.BookmarkAdded)
		return
	}
	webutil.Message(w, http.StatusOK, messages.BookmarkRemoved)
}

// ServeList renders the caller's saved courses.
// GET /bookMarks [signed-in]
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSignedInPage(w, r)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	courses, err := h.Bookmarks.ListCourses(ctx, res.UserID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list bookmarked courses failed", err, messages.CourseFetchError, "/")
		return
	}

	data := struct {
		viewdata.BaseVM
		Courses []models.CourseWithSpecialization
	}{
		BaseVM:  viewdata.NewBaseVM(r, "محفوظاتي", "/"),
		Courses: courses,
	}
	data.LoadFlashes(w, r)
	templates.Render(w, r, "bookmark_list", data)
}

func bookmarkCourse(r *http.Request) (string, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req bookmarkRequest
		if err := webutil.DecodeBody(r, &req); err != nil {
			return "", false
		}
		return req.CourseID, true
	}
	if err := r.ParseForm(); err != nil {
		return "", false
	}
	return r.PostFormValue("course"), true
}
