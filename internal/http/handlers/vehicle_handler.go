// Vehicle HTTP handlers.
//
// This file exposes the REST endpoints for the vehicle resource:
//   - GET    /api/veiculos       (list, newest first)
//   - GET    /api/veiculos/:id   (fetch one)
//   - POST   /api/veiculos       (create)
//   - PUT    /api/veiculos/:id   (full replace)
//   - DELETE /api/veiculos/:id   (delete)
//
// Handlers are transport-thin: they validate input, call the application
// service, and translate results into HTTP responses. Member ids must be
// numeric; non-numeric ids are rejected with a 400 before any store call.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/go-vehicle-backend/internal/domain"
	"github.com/dealerhub/go-vehicle-backend/internal/services"
)

//
// Service contract (context-aware)
//

// VehicleService defines the inventory operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type VehicleService interface {
	// List returns all vehicles ordered by creation time descending.
	List(ctx context.Context) ([]domain.Vehicle, error)
	// Get fetches a single vehicle by id.
	Get(ctx context.Context, id int64) (*domain.Vehicle, error)
	// Create inserts a new vehicle from the given input.
	Create(ctx context.Context, in services.VehicleInput) (*domain.Vehicle, error)
	// Update replaces the full field set of an existing vehicle.
	Update(ctx context.Context, id int64, in services.VehicleInput) (*domain.Vehicle, error)
	// Delete removes a vehicle and returns the deleted row.
	Delete(ctx context.Context, id int64) (*domain.Vehicle, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for the vehicle API. It depends on an
// abstract service interface to keep transport concerns separate from
// business logic.
type Handlers struct {
	vehicleSvc VehicleService
}

// New constructs a Handlers instance bound to the given service.
func New(vehicleSvc VehicleService) *Handlers {
	return &Handlers{vehicleSvc: vehicleSvc}
}

//
// DTOs
//

// VehicleRequest is the JSON payload for creating or updating a vehicle.
// Ano and Preco accept JSON numbers or numeric strings (see binding.go).
// ID and created_at are never accepted from the caller.
type VehicleRequest struct {
	Modelo    string     `json:"modelo" example:"Civic"`
	Marca     string     `json:"marca" example:"Honda"`
	Ano       IntField   `json:"ano" swaggertype:"integer" example:"2022"`
	Preco     FloatField `json:"preco" swaggertype:"number" example:"95000"`
	Descricao *string    `json:"descricao,omitempty" example:"Único dono, revisões em dia"`
}

// input converts the transport DTO into the service-layer input.
func (r VehicleRequest) input() services.VehicleInput {
	return services.VehicleInput{
		Modelo:    r.Modelo,
		Marca:     r.Marca,
		Ano:       int(r.Ano),
		Preco:     float64(r.Preco),
		Descricao: r.Descricao,
	}
}

// VehicleResponse wraps a single vehicle in the success envelope.
type VehicleResponse struct {
	Success bool            `json:"success" example:"true"`
	Message string          `json:"message,omitempty" example:"vehicle created successfully"`
	Data    *domain.Vehicle `json:"data"`
}

// ListVehiclesResponse wraps the full ordered inventory in the success
// envelope, with the record count.
type ListVehiclesResponse struct {
	Success bool             `json:"success" example:"true"`
	Total   int              `json:"total" example:"3"`
	Data    []domain.Vehicle `json:"data"`
}

//
// Helpers
//

// memberID parses the :id path parameter. Non-numeric ids fail the request
// with a 400 and report false; the store is never consulted in that case.
func memberID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid id", "")
		return 0, false
	}
	return id, true
}

//
// Handlers
//

// ListVehicles godoc
// @ID          listVehicles
// @Summary     List vehicles
// @Description Returns every vehicle in the inventory, newest first.
// @Tags        Vehicles
// @Produce     json
// @Success     200  {object}  handlers.ListVehiclesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /veiculos [get]
func (h *Handlers) ListVehicles(c *gin.Context) {
	items, err := h.vehicleSvc.List(c.Request.Context())
	if err != nil {
		fail(c, http.StatusInternalServerError, "failed to fetch vehicles", err.Error())
		return
	}
	ok(c, http.StatusOK, ListVehiclesResponse{
		Success: true,
		Total:   len(items),
		Data:    items,
	})
}

// GetVehicle godoc
// @ID          getVehicle
// @Summary     Fetch a vehicle
// @Description Returns the vehicle identified by the numeric id.
// @Tags        Vehicles
// @Produce     json
// @Param       id  path  int  true  "Vehicle ID"  example(5)
// @Success     200  {object}  handlers.VehicleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Vehicle not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /veiculos/{id} [get]
func (h *Handlers) GetVehicle(c *gin.Context) {
	id, valid := memberID(c)
	if !valid {
		return
	}

	v, err := h.vehicleSvc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			fail(c, http.StatusNotFound, "vehicle not found", "")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to fetch vehicle", err.Error())
		return
	}
	ok(c, http.StatusOK, VehicleResponse{Success: true, Data: v})
}

// CreateVehicle godoc
// @ID          createVehicle
// @Summary     Create a vehicle
// @Description Inserts a new vehicle. modelo, marca, ano and preco are required.
// @Tags        Vehicles
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.VehicleRequest  true  "Vehicle payload"
// @Success     201  {object}  handlers.VehicleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing required fields"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /veiculos [post]
func (h *Handlers) CreateVehicle(c *gin.Context) {
	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	v, err := h.vehicleSvc.Create(c.Request.Context(), req.input())
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			fail(c, http.StatusBadRequest, err.Error(), "")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to create vehicle", err.Error())
		return
	}
	ok(c, http.StatusCreated, VehicleResponse{
		Success: true,
		Message: "vehicle created successfully",
		Data:    v,
	})
}

// UpdateVehicle godoc
// @ID          updateVehicle
// @Summary     Update a vehicle
// @Description Replaces the full field set of an existing vehicle. The id must
// @Description be numeric and all four required fields must be present.
// @Tags        Vehicles
// @Accept      json
// @Produce     json
// @Param       id    path  int                      true  "Vehicle ID"  example(5)
// @Param       body  body  handlers.VehicleRequest  true  "Vehicle payload"
// @Success     200  {object}  handlers.VehicleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id or missing fields"
// @Failure     404  {object}  handlers.ErrorResponse  "Vehicle not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /veiculos/{id} [put]
func (h *Handlers) UpdateVehicle(c *gin.Context) {
	// Validation order matters: id shape first, then field presence, and only
	// then the store call.
	id, valid := memberID(c)
	if !valid {
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	v, err := h.vehicleSvc.Update(c.Request.Context(), id, req.input())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, err.Error(), "")
		case errors.Is(err, services.ErrVehicleNotFound):
			fail(c, http.StatusNotFound, "vehicle not found", "")
		default:
			fail(c, http.StatusInternalServerError, "failed to update vehicle", err.Error())
		}
		return
	}
	ok(c, http.StatusOK, VehicleResponse{
		Success: true,
		Message: "vehicle updated successfully",
		Data:    v,
	})
}

// DeleteVehicle godoc
// @ID          deleteVehicle
// @Summary     Delete a vehicle
// @Description Removes a vehicle and returns the deleted record.
// @Tags        Vehicles
// @Produce     json
// @Param       id  path  int  true  "Vehicle ID"  example(5)
// @Success     200  {object}  handlers.VehicleResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid id"
// @Failure     404  {object}  handlers.ErrorResponse  "Vehicle not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Store failure"
// @Router      /veiculos/{id} [delete]
func (h *Handlers) DeleteVehicle(c *gin.Context) {
	id, valid := memberID(c)
	if !valid {
		return
	}

	v, err := h.vehicleSvc.Delete(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrVehicleNotFound) {
			fail(c, http.StatusNotFound, "vehicle not found", "")
			return
		}
		fail(c, http.StatusInternalServerError, "failed to delete vehicle", err.Error())
		return
	}
	ok(c, http.StatusOK, VehicleResponse{
		Success: true,
		Message: "vehicle deleted successfully",
		Data:    v,
	})
}
