// Copyright 2026 Asset3D AS
// SPDX-License-Identifier: AGPL-3.0

package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/asset3d/facility-service/internal/logging"
	"github.com/asset3d/facility-service/internal/storage"
	"github.com/asset3d/facility-service/internal/validation"
)

// debug controls whether 500 responses carry the underlying error text.
var debug bool

// EnableDebug turns on verbose 500 bodies. Call once at startup, before
// serving.
func EnableDebug() {
	debug = true
}

// ErrorResponse is the envelope for non-validation errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ValidationResponse carries field-level detail for 400 responses.
type ValidationResponse struct {
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, errCode, message string) {
	WriteJSON(w, status, ErrorResponse{Error: errCode, Message: message})
}

func WriteValidationErrors(w http.ResponseWriter, errs []validation.FieldError) {
	WriteJSON(w, http.StatusBadRequest, ValidationResponse{
		Message: "validation failed",
		Errors:  errs,
	})
}

// WriteServiceError maps storage sentinel errors onto the HTTP error
// model: unknown errors become 500 and are logged, never echoed (unless
// debug mode is on).
func WriteServiceError(w http.ResponseWriter, logger logging.LoggerInterface, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, storage.ErrDuplicateKey):
		WriteError(w, http.StatusConflict, "conflict", "resource already exists")
	case errors.Is(err, storage.ErrForeignKeyViolation):
		WriteError(w, http.StatusBadRequest, "invalid_reference", "referenced resource does not exist")
	default:
		logger.Errorf("internal error: %v", err)
		message := "internal server error"
		if debug {
			message = err.Error()
		}
		WriteError(w, http.StatusInternalServerError, "internal", message)
	}
}

// DecodeJSON decodes a request body, rejecting unknown fields.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
