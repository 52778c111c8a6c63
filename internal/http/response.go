package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"

	"billbook/internal/core"
	"billbook/internal/log"
)

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", log.FieldComponent, log.ComponentHTTP, log.FieldError, err)
	}
}

// writeError maps err onto the envelope:
//
//	*core.ValidationError -> 400, ret -2, fields
//	*core.BizError        -> 422, ret -1
//	core.ErrBillNotFound  -> 404, ret -3
//	anything else         -> 503, ret -4
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *core.ValidationError
		biz        *core.BizError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, core.ErrorEnvelope{
			Ret:    core.RetValidation,
			Msg:    "invalid request",
			Fields: validation.Fields,
		})
	case errors.As(err, &biz):
		writeJSON(w, http.StatusUnprocessableEntity, core.ErrorEnvelope{Ret: core.RetBiz, Msg: biz.Message})
	case errors.Is(err, core.ErrBillNotFound):
		writeJSON(w, http.StatusNotFound, core.ErrorEnvelope{Ret: core.RetNotFound, Msg: err.Error()})
	default:
		log.NewStructuredLogger(log.FromContext(r.Context())).LogError(r.Context(), "Request failed", err,
			log.ComponentHTTP, r.Method+" "+r.URL.Path,
			log.NewFields().WithClientIP(r.RemoteAddr).WithErrorType(errorType(err)))
		writeJSON(w, http.StatusServiceUnavailable, core.ErrorEnvelope{
			Ret: core.RetUnavailable,
			Msg: "service temporarily unavailable",
		})
	}
}

func errorType(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return log.ErrorTypeTimeout
	case errors.Is(err, context.Canceled):
		return log.ErrorTypeCanceled
	default:
		return log.ErrorTypeDatabase
	}
}

// allowMethod answers 405 with an Allow header unless r uses one of methods.
func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, m := range methods {
		if r.Method == m {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	writeJSON(w, http.StatusMethodNotAllowed, core.ErrorEnvelope{
		Ret: core.RetValidation,
		Msg: fmt.Sprintf("method %s not allowed", r.Method),
	})
	return false
}

// decodeJSON reads one JSON value from the body into v. Type mismatches are
// reported against the offending field, anything else against "body".
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return core.NewValidationError("body", "body must contain a single JSON value")
	}
	return nil
}

func decodeError(err error) error {
	var (
		validation *core.ValidationError
		typeErr    *json.UnmarshalTypeError
		maxErr     *http.MaxBytesError
	)
	switch {
	case errors.As(err, &validation):
		return validation
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return core.NewValidationError(typeErr.Field, fmt.Sprintf("%s must be %s", typeErr.Field, describeType(typeErr.Type)))
	case errors.As(err, &maxErr):
		return core.NewValidationError("body", fmt.Sprintf("body exceeds %d bytes", maxErr.Limit))
	case errors.Is(err, io.EOF):
		return core.NewValidationError("body", "body is required")
	default:
		return core.NewValidationError("body", "malformed JSON: "+err.Error())
	}
}

func describeType(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Slice, reflect.Array:
		return "an array"
	default:
		return "an object"
	}
}
