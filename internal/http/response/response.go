// Package response provides standardized HTTP response formatting and error handling utilities.
package response

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"

	errs "github.com/steamwatch/steamwatch-server/internal/errors"
)

// Envelope provides the consistent JSON response structure.
// Every response carries the OK flag; payload fields are merged at the top
// level next to it via the Data map.
type Envelope struct {
	OK    bool           `json:"ok"`
	Error string         `json:"error,omitzero"`
	Data  map[string]any `json:",inline"`
}

// JSON writes a success response with the given status code.
// The data map's keys appear alongside the ok flag.
func JSON(w http.ResponseWriter, status int, data map[string]any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		OK:   status < 400,
		Data: data,
	}

	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data map[string]any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		OK:    false,
		Error: message,
	}

	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode error response", "error", err)
		}
	}
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, message, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, message, logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, message, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Validation and not-found errors keep their messages; everything else is
// logged and returned as a generic 500 so internals never leak to callers.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *errs.Error
	if errs.As(err, &domainErr) {
		switch domainErr.Code {
		case errs.CodeNotFound, errs.CodeValidation, errs.CodeConflict:
			Error(w, domainErr.HTTPStatus(), domainErr.Message, logger)
			return
		}
	}

	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, "internal server error", logger)
}
