// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all
// endpoints. Every response body carries a `success` boolean; failures
// additionally carry a human-readable `message` and, for store failures, the
// verbatim diagnostic text under `error`. There is deliberately no
// machine-readable error code beyond the HTTP status: clients branch on the
// status, the frontend displays the message.
//
// Conventions:
//   - fail() centralizes error formatting and ensures 5xx responses are
//     logged with request context for observability.
//   - ok() simplifies writing success responses in a consistent shape.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "success": false,
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "message": "vehicle not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/go-vehicle-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - Success: always false for errors.
//   - RequestID: optional correlation ID, echoed from X-Request-ID, used to
//     correlate server logs with client-side errors.
//   - Message: human-readable error description, safe to show to users.
//   - Error: verbatim diagnostic text from the underlying store failure.
//     Opaque to callers; never parsed or matched on.
type ErrorResponse struct {
	Success   bool   `json:"success" example:"false"`
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Message   string `json:"message,omitempty" example:"vehicle not found"`
	Error     string `json:"error,omitempty" example:"driver: bad connection"`
}

// fail aborts the request with a structured error envelope.
//
// Server errors (>=500) are logged using the request-scoped logger from
// middleware, with the diagnostic preserved.
func fail(c *gin.Context, status int, msg, diagnostic string) {
	resp := ErrorResponse{
		Success:   false,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Message:   msg,
		Error:     diagnostic,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("message", msg).
			Str("diagnostic", diagnostic).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, msg, diagnostic string) { fail(c, status, msg, diagnostic) }

// ok writes a success JSON response with the given status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
