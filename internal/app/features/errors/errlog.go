// internal/app/features/errors/errlog.go
package errors

import (
	"net/http"

	"github.com/k36p/Midad/internal/app/system/messages"
	"github.com/k36p/Midad/internal/app/system/webutil"
	"go.uber.org/zap"
)

// ErrorLogger pairs server-side logging with a client response so
// handlers fail in one line. The log message is English for operators;
// the client message comes from the Arabic catalog.
type ErrorLogger struct {
	log *zap.Logger
}

func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs at error level and renders the failure page.
// An empty userMsg falls back to the generic server error message.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	if userMsg == "" {
		userMsg = messages.ServerError
	}
	RenderStatus(w, r, http.StatusInternalServerError, userMsg, backURL)
}

// LogBadRequest logs at warn level and renders the failure page with 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	RenderStatus(w, r, http.StatusBadRequest, userMsg, backURL)
}

// APIServerError logs at error level and writes the JSON envelope.
func (e *ErrorLogger) APIServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error) {
	e.log.Error(logMsg, zap.Error(err), zap.String("path", r.URL.Path))
	webutil.Error(w, http.StatusInternalServerError, messages.ServerError)
}
