// Status HTTP handlers.
//
// This file exposes the connectivity-check endpoint the frontend pings on
// load, plus the catch-all handler that advertises the API surface when a
// request matches no route and no static asset.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Routes enumerates the public API surface, returned by the catch-all
// handler as a capability advertisement.
var Routes = []string{
	"GET /api/test",
	"GET /api/veiculos",
	"GET /api/veiculos/:id",
	"POST /api/veiculos",
	"PUT /api/veiculos/:id",
	"DELETE /api/veiculos/:id",
}

// StatusResponse is the envelope returned by the connectivity check.
type StatusResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message" example:"API up and running"`
	Timestamp string `json:"timestamp" example:"2026-08-31T12:00:00Z"`
}

// RouteListResponse is the envelope returned when no route matches.
// Unlike plain errors it carries the list of valid routes as guidance.
type RouteListResponse struct {
	Success bool     `json:"success" example:"false"`
	Message string   `json:"message" example:"route not found"`
	Routes  []string `json:"routes"`
}

// Status godoc
// @ID          status
// @Summary     API connectivity check
// @Description Confirms the API is reachable and returns the server time.
// @Tags        Status
// @Produce     json
// @Success     200  {object}  handlers.StatusResponse
// @Router      /test [get]
func (h *Handlers) Status(c *gin.Context) {
	ok(c, http.StatusOK, StatusResponse{
		Success:   true,
		Message:   "API up and running",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// RouteNotFound replies with the capability list for any request that matched
// neither an API route nor a static asset. This is an advertisement, not a
// retryable condition.
func RouteNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, RouteListResponse{
		Success: false,
		Message: "route not found",
		Routes:  Routes,
	})
}
