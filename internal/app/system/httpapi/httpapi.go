// internal/app/system/httpapi/httpapi.go

// Package httpapi provides the JSON rendering and error-response helpers
// shared by all feature handlers. Client-facing 4xx responses carry a
// structured body; 5xx responses carry a generic message and the real
// error goes to the log only.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Error codes surfaced in 4xx/5xx bodies.
const (
	CodeBadRequest        = "bad_request"
	CodeNotFound          = "not_found"
	CodeInvalidCredential = "invalid_credential"
	CodeInvalidOTP        = "invalid_otp"
	CodeUnauthorized      = "unauthorized"
	CodeForbidden         = "forbidden"
	CodeConflict          = "conflict"
	CodeInternal          = "internal_error"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	ErrorCode  string `json:"errorCode"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20 // 1 MiB

// Decode reads a JSON request body into dst. Unknown fields are
// rejected so typos surface as 400s instead of silent drops.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	// A second token means trailing garbage after the JSON value.
	if dec.More() {
		return errors.New("request body must contain a single JSON value")
	}
	return nil
}

// WriteJSON renders v with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders a structured error body.
func WriteError(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	WriteJSON(w, status, ErrorBody{
		StatusCode: status,
		ErrorCode:  code,
		Path:       r.URL.Path,
		Message:    msg,
	})
}

// ErrorLogger couples error responses with structured logging so
// handlers stay terse and internal error text never reaches clients.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger wraps a zap logger for use in handlers.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// BadRequest responds 400 with msg and logs err at debug level.
func (e *ErrorLogger) BadRequest(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if err != nil {
		e.log.Debug("bad request", zap.String("path", r.URL.Path), zap.Error(err))
	}
	WriteError(w, r, http.StatusBadRequest, CodeBadRequest, msg)
}

// NotFound responds 404 with msg.
func (e *ErrorLogger) NotFound(w http.ResponseWriter, r *http.Request, msg string) {
	WriteError(w, r, http.StatusNotFound, CodeNotFound, msg)
}

// Unauthorized responds 401 with msg.
func (e *ErrorLogger) Unauthorized(w http.ResponseWriter, r *http.Request, msg string) {
	WriteError(w, r, http.StatusUnauthorized, CodeUnauthorized, msg)
}

// Forbidden responds 403 with msg.
func (e *ErrorLogger) Forbidden(w http.ResponseWriter, r *http.Request, msg string) {
	WriteError(w, r, http.StatusForbidden, CodeForbidden, msg)
}

// Conflict responds 409 with msg.
func (e *ErrorLogger) Conflict(w http.ResponseWriter, r *http.Request, msg string) {
	WriteError(w, r, http.StatusConflict, CodeConflict, msg)
}

// Internal responds 500 with a generic message and logs the real error.
// The error text is never written to the response.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, what string, err error) {
	e.log.Error(what, zap.String("path", r.URL.Path), zap.Error(err))
	WriteError(w, r, http.StatusInternalServerError, CodeInternal, "Something went wrong.")
}
