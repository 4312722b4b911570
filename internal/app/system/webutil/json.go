// Package webutil writes the JSON envelopes used by the API routes.
//
// All API failures share one shape: {"error": true, "message": "..."} so
// clients never have to guess which of several formats a route speaks.
// Page routes render templates instead; see features/errors.
package webutil

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/k36p/Midad/internal/app/system/limits"
	"go.uber.org/zap"
)

// ErrorEnvelope is the uniform API failure body.
type ErrorEnvelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// MessageEnvelope is the uniform API success body for mutations that only
// report a status message (optionally with a created/updated document).
type MessageEnvelope struct {
	Message string `json:"message"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	// The header is already out; an encode failure here can only be logged
	// by the caller via the request logger middleware.
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes the uniform failure envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorEnvelope{Error: true, Message: msg})
}

// Message writes the uniform success envelope.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, MessageEnvelope{Message: msg})
}

// ServerError logs err under logMsg and writes a generic 500 envelope with
// clientMsg. The original error never reaches the client.
func ServerError(w http.ResponseWriter, log *zap.Logger, logMsg, clientMsg string, err error) {
	if log != nil {
		log.Error(logMsg, zap.Error(err))
	}
	Error(w, http.StatusInternalServerError, clientMsg)
}

// DecodeBody decodes a JSON request body into dst, rejecting unknown
// fields and bodies over limits.MaxJSONBodySize.
func DecodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, limits.MaxJSONBodySize))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
