package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"promptforge/internal/contextutil"
	"promptforge/internal/storage"
)

// validate checks request payload shape (required fields, size caps) before
// requests reach the repositories. Domain rules live in the enhancer and
// storage packages; this is only the HTTP edge.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}

// decodeAndValidate decodes the request body into dst and runs struct
// validation on it. On failure it writes the 400 response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			logger.WarnContext(ctx, "request failed validation", "error", err)
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("Validation error: field %s failed on %s", fieldErrs[0].Field(), fieldErrs[0].Tag()))
			return false
		}
		writeError(w, http.StatusBadRequest, "Validation error")
		return false
	}

	return true
}

// handleStorageError maps repository errors to HTTP status codes.
func handleStorageError(w http.ResponseWriter, ctx context.Context, err error, defaultMsg string) {
	logger := contextutil.LoggerFromContext(ctx)
	logger.ErrorContext(ctx, "storage error", "error", err)

	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Resource not found")
		return
	}
	if errors.Is(err, storage.ErrDuplicate) {
		writeError(w, http.StatusConflict, "Resource already exists")
		return
	}

	writeError(w, http.StatusInternalServerError, defaultMsg)
}
