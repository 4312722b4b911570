package tools_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	uierrors "github.com/k36p/Midad/internal/app/features/errors"
	"github.com/k36p/Midad/internal/app/features/tools"
	"github.com/k36p/Midad/internal/app/system/limits"
	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/testutil"
	"go.uber.org/zap"
)

// Single white pixel, enough to sniff as image/png.
var tinyPNG = []byte{
	0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a,
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x02, 0x00, 0x00, 0x00, 0x90, 0x77, 0x53, 0xde,
}

func newHandler(t *testing.T) *tools.Handler {
	t.Helper()
	logger := zap.NewNop()
	return tools.NewHandler(uierrors.NewErrorLogger(logger), logger)
}

// multipartRequest builds a multipart POST with each payload attached
// under the given field name.
func multipartRequest(t *testing.T, target, field string, payloads ...[]byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for i, p := range payloads {
		part, err := mw.CreateFormFile(field, "upload-"+strconv.Itoa(i))
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(p); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestMergeRejectsEmptyUpload(t *testing.T) {
	h := newHandler(t)

	req := multipartRequest(t, "/pdfs-merge", "pdf")
	rec := testutil.NewRecorder()
	h.Merge(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.NoPDFFiles)
}

func TestMergeRejectsNonPDF(t *testing.T) {
	h := newHandler(t)

	req := multipartRequest(t, "/pdfs-merge", "pdf", []byte("plain text, not a pdf"))
	rec := testutil.NewRecorder()
	h.Merge(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.OnlyPDFAllowed)
}

func TestMergeRejectsMixedBatch(t *testing.T) {
	h := newHandler(t)

	// One good prefix plus one bad file rejects the whole batch.
	req := multipartRequest(t, "/pdfs-merge", "pdf",
		[]byte("%PDF-1.7 stub"),
		[]byte("not a pdf"))
	rec := testutil.NewRecorder()
	h.Merge(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.OnlyPDFAllowed)
}

func TestMergeRejectsTooManyFiles(t *testing.T) {
	h := newHandler(t)

	payloads := make([][]byte, limits.MaxMergeFiles+1)
	for i := range payloads {
		payloads[i] = []byte("%PDF-1.7 stub")
	}
	req := multipartRequest(t, "/pdfs-merge", "pdf", payloads...)
	rec := testutil.NewRecorder()
	h.Merge(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.OnlyPDFAllowed)
}

func TestMergeRejectsTruncatedPDF(t *testing.T) {
	h := newHandler(t)

	// Right magic, garbage structure: pdfcpu refuses it and the client
	// gets the processing-error response, not a broken download.
	req := multipartRequest(t, "/pdfs-merge", "pdf", []byte("%PDF-1.7 stub"))
	rec := testutil.NewRecorder()
	h.Merge(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusInternalServerError)
	rec.AssertContains(t, messages.PDFMergeFailed)
}

func TestConvertImagesRejectsEmptyUpload(t *testing.T) {
	h := newHandler(t)

	req := multipartRequest(t, "/images-to-pdf", "image")
	rec := testutil.NewRecorder()
	h.ConvertImages(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.NoImageFiles)
}

func TestConvertImagesRejectsNonImage(t *testing.T) {
	h := newHandler(t)

	req := multipartRequest(t, "/images-to-pdf", "image", []byte("%PDF-1.7 not an image"))
	rec := testutil.NewRecorder()
	h.ConvertImages(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.OnlyImagesAllowed)
}

func TestConvertImagesRejectsMixedBatch(t *testing.T) {
	h := newHandler(t)

	req := multipartRequest(t, "/images-to-pdf", "image",
		tinyPNG,
		[]byte("not an image"))
	rec := testutil.NewRecorder()
	h.ConvertImages(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusBadRequest)
	rec.AssertContains(t, messages.OnlyImagesAllowed)
}
