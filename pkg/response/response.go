// Package response maps catalog errors onto the JSON error envelope.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/recipe-catalog-service/internal/repository"
	"github.com/maxviazov/recipe-catalog-service/internal/service"
)

// RequestIDKey is the gin context key the request id middleware stores under.
const RequestIDKey = "request_id"

// ErrorPayload is the body of every non-2xx API response.
type ErrorPayload struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	RequestID   string               `json:"request_id,omitempty"`
	FieldErrors []service.FieldError `json:"field_errors,omitempty"`
}

type mapping struct {
	target  error
	status  int
	code    string
	message string
}

// mappings is checked in order with errors.Is.
var mappings = []mapping{
	{service.ErrInvalidInput, http.StatusBadRequest, "invalid_input", "one or more fields are invalid"},
	{repository.ErrNotFound, http.StatusNotFound, "not_found", ""},
	{repository.ErrSnapshotConflict, http.StatusServiceUnavailable, "retry", "listing changed while reading, try again"},
}

// MapError returns the status and payload for err. Unknown errors become 500
// without leaking their text.
func MapError(err error) (int, ErrorPayload) {
	if err == nil {
		return http.StatusOK, ErrorPayload{Error: "ok"}
	}
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			payload := ErrorPayload{Error: m.code, Message: m.message}
			if m.target == service.ErrInvalidInput {
				payload.FieldErrors = service.FieldErrors(err)
			}
			return m.status, payload
		}
	}
	return http.StatusInternalServerError, ErrorPayload{Error: "internal_error"}
}

// WriteError aborts the request with the mapped error envelope. Server-side
// failures are also attached to c.Errors for the access log.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	payload.RequestID = c.GetString(RequestIDKey)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
