// internal/app/features/tools/handler.go
package tools

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/templates"
	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	_ "github.com/k36p/Midad/internal/app/features/tools/views"
	"github.com/k36p/Midad/internal/app/system/limits"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/viewdata"
	"github.com/k36p/Midad/internal/app/system/webutil"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"go.uber.org/zap"
)

const mergedFileName = "Midad-merged-output.pdf"

// Handler serves the stateless PDF tools. Files are processed in
// memory; nothing touches the database or storage.
type Handler struct {
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

func NewHandler(errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{ErrLog: errLog, Log: logger}
}

// ServeMergePage renders the PDF merge form.
// GET /pdfs-merge
func (h *Handler) ServeMergePage(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
		MaxFiles int
	}{
		BaseVM:   viewdata.NewBaseVM(r, "دمج ملفات PDF", "/"),
		MaxFiles: limits.MaxMergeFiles,
	}
	templates.Render(w, r, "pdfs_merge", data)
}

// Merge combines the uploaded PDFs, in upload order, into one document.
// One bad file rejects the whole batch; nothing partial is returned.
// POST /pdfs-merge (field "pdf")
func (h *Handler) Merge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(limits.MaxMergeFormSize); err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.NoPDFFiles)
		return
	}
	files := r.MultipartForm.File["pdf"]
	if len(files) == 0 {
		webutil.Error(w, http.StatusBadRequest, messages.NoPDFFiles)
		return
	}
	if len(files) > limits.MaxMergeFiles {
		webutil.Error(w, http.StatusBadRequest, messages.OnlyPDFAllowed)
		return
	}

	readers := make([]io.ReadSeeker, 0, len(files))
	for _, fh := range files {
		if fh.Size > limits.MaxMergeFileSize {
			webutil.Error(w, http.StatusBadRequest, messages.OnlyPDFAllowed)
			return
		}
		buf, ok := readPDF(fh)
		if !ok {
			webutil.Error(w, http.StatusBadRequest, messages.OnlyPDFAllowed)
			return
		}
		readers = append(readers, bytes.NewReader(buf))
	}

	var out bytes.Buffer
	if err := api.MergeRaw(readers, &out, false, nil); err != nil {
		h.Log.Warn("pdf merge failed", zap.Error(err), zap.Int("files", len(readers)))
		webutil.Error(w, http.StatusInternalServerError, messages.PDFMergeFailed)
		return
	}

	writeAttachment(w, mergedFileName, out.Bytes())
}

// ServeImagesPage renders the image conversion form.
// GET /images-to-pdf
func (h *Handler) ServeImagesPage(w http.ResponseWriter, r *http.Request) {
	data := struct {
		viewdata.BaseVM
		MaxFiles int
	}{
		BaseVM:   viewdata.NewBaseVM(r, "تحويل الصور إلى PDF", "/"),
		MaxFiles: limits.MaxImageFiles,
	}
	templates.Render(w, r, "images_to_pdf", data)
}

// ConvertImages turns the uploaded JPEG/PNG images into one PDF, one
// page per image, in upload order.
// POST /images-to-pdf (field "image")
func (h *Handler) ConvertImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(limits.MaxMergeFormSize); err != nil {
		webutil.Error(w, http.StatusBadRequest, messages.NoImageFiles)
		return
	}
	files := r.MultipartForm.File["image"]
	if len(files) == 0 {
		webutil.Error(w, http.StatusBadRequest, messages.NoImageFiles)
		return
	}
	if len(files) > limits.MaxImageFiles {
		webutil.Error(w, http.StatusBadRequest, messages.OnlyImagesAllowed)
		return
	}

	images := make([]io.Reader, 0, len(files))
	for _, fh := range files {
		if fh.Size > limits.MaxImageFileSize {
			webutil.Error(w, http.StatusBadRequest, messages.OnlyImagesAllowed)
			return
		}
		buf, ok := readImage(fh)
		if !ok {
			webutil.Error(w, http.StatusBadRequest, messages.OnlyImagesAllowed)
			return
		}
		images = append(images, bytes.NewReader(buf))
	}

	var out bytes.Buffer
	if err := api.ImportImages(nil, &out, images, nil, nil); err != nil {
		h.Log.Warn("image to pdf conversion failed", zap.Error(err), zap.Int("files", len(images)))
		webutil.Error(w, http.StatusInternalServerError, messages.ImageToPDFFailed)
		return
	}

	writeAttachment(w, "Midad-images-output.pdf", out.Bytes())
}

// readPDF loads one upload and verifies the %PDF- magic. Extensions and
// client content types are not trusted.
func readPDF(fh *multipart.FileHeader) ([]byte, bool) {
	buf, err := readAll(fh)
	if err != nil {
		return nil, false
	}
	if !bytes.HasPrefix(buf, []byte("%PDF-")) {
		return nil, false
	}
	return buf, true
}

// readImage loads one upload and verifies it sniffs as JPEG or PNG.
func readImage(fh *multipart.FileHeader) ([]byte, bool) {
	buf, err := readAll(fh)
	if err != nil {
		return nil, false
	}
	switch http.DetectContentType(buf) {
	case "image/jpeg", "image/png":
		return buf, true
	}
	return nil, false
}

func readAll(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func writeAttachment(w http.ResponseWriter, name string, data []byte) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}
