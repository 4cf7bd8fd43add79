package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/MikeSquared-Agency/Guardian/internal/intake"
	"github.com/MikeSquared-Agency/Guardian/internal/metrics"
	"github.com/MikeSquared-Agency/Guardian/internal/store"
)

const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeDatabase     = "DATABASE_ERROR"
	CodeExternalAPI  = "EXTERNAL_API_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeRateLimited  = "RATE_LIMITED"
)

const maxBodyBytes = 1 << 20

type successBody struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type errorBody struct {
	Success   bool        `json:"success"`
	Error     errorDetail `json:"error"`
	Timestamp time.Time   `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, message string, data interface{}) {
	writeJSON(w, status, successBody{Success: true, Message: message, Data: data, Timestamp: time.Now().UTC()})
}

func writeError(w http.ResponseWriter, status int, code, message, field string) {
	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: message, Field: field},
		Timestamp: time.Now().UTC(),
	})
}

// writeFailure maps domain errors onto HTTP responses: validation errors are
// 400, missing records 404, anything else 500.
func writeFailure(w http.ResponseWriter, logger *slog.Logger, rec *metrics.Recorder, err error) {
	if ve, ok := intake.AsValidationError(err); ok {
		rec.ValidationFailed(ve.Field)
		writeError(w, http.StatusBadRequest, CodeValidation, ve.Message, ve.Field)
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, CodeNotFound, "Project not found", "")
		return
	}
	logger.Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, CodeDatabase, "Internal server error", "")
}

// decodeBody reads a JSON request body. A value of the wrong JSON type is
// reported against its own field; any other malformed payload fails on "body".
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) && ute.Field != "" {
		return &intake.ValidationError{Field: ute.Field, Message: ute.Field + " must be " + jsonKind(ute.Type)}
	}
	return &intake.ValidationError{Field: "body", Message: "Invalid request body"}
}

func jsonKind(t reflect.Type) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
