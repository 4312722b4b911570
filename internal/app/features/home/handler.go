// internal/app/features/home/handler.go
package home

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	_ "github.com/k36p/Midad/internal/app/features/home/views"
	collegestore "github.com/k36p/Midad/internal/app/store/colleges"
	coursestore "github.com/k36p/Midad/internal/app/store/courses"
	"github.com/k36p/Midad/internal/app/system/timeouts"
	"github.com/k36p/Midad/internal/app/system/viewdata"
	"github.com/k36p/Midad/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the public landing pages.
type Handler struct {
	Colleges *collegestore.Store
	Courses  *coursestore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Colleges: collegestore.New(db),
		Courses:  coursestore.New(db),
		ErrLog:   errLog,
		Log:      logger,
	}
}

// ServeRoot renders the main page with the college list and the most
// recently added course material.
// GET /
func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	colleges, err := h.Colleges.List(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list colleges for home failed", err, "", "/")
		return
	}

	recent, err := h.Courses.ListWithSpecialization(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list recent courses for home failed", err, "", "/")
		return
	}
	if len(recent) > 6 {
		recent = recent[:6]
	}

	data := struct {
		viewdata.BaseVM
		Colleges []models.College
		Recent   []models.CourseWithSpecialization
	}{
		BaseVM:   viewdata.NewBaseVM(r, "الرئيسية", "/"),
		Colleges: colleges,
		Recent:   recent,
	}
	templates.Render(w, r, "home", data)
}

// ServeContact renders the contact page.
// GET /contact
func (h *Handler) ServeContact(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "تواصل معنا", "/"),
	}
	templates.Render(w, r, "contact", data)
}

// ServeEdit renders the static "suggest an edit" page.
// GET /edit
func (h *Handler) ServeEdit(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
	}{
		BaseVM: viewdata.NewBaseVM(r, "اقتراح تعديل", "/"),
	}
	templates.Render(w, r, "edit", data)
}
