// Package services – VehicleService
//
// This file implements the VehicleService, which manages the lifecycle of
// inventory vehicles. It normalizes input (trimming, optional description
// handling), enforces the required-field presence rules, stamps UpdatedAt,
// and coordinates repository operations for listing, fetching, creating,
// updating and deleting vehicles.
//
// Service-level errors (ErrVehicleNotFound, ErrMissingFields) are returned
// for predictable cases so handlers can map them to HTTP results
// consistently; any other error is a store failure and is propagated raw.
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/dealerhub/go-vehicle-backend/internal/domain"
)

// VehicleRepo defines the repository contract required by VehicleService.
// Implementations are responsible for persistence of vehicle rows.
type VehicleRepo interface {
	// ListVehicles returns all vehicles ordered by creation time descending.
	ListVehicles(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error)

	// GetVehicle fetches a vehicle by id, or repo.ErrNotFound if missing.
	GetVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error)

	// CreateVehicle inserts a new vehicle row; the store assigns ID/CreatedAt.
	CreateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) error

	// UpdateVehicle applies the full field set and returns the updated row,
	// or repo.ErrNotFound when zero rows were affected.
	UpdateVehicle(ctx context.Context, db *gorm.DB, id int64, fields map[string]any) (*domain.Vehicle, error)

	// DeleteVehicle removes a vehicle and returns the deleted row,
	// or repo.ErrNotFound when zero rows were affected.
	DeleteVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error)
}

// VehicleInput carries the client-settable fields of a vehicle. ID and
// CreatedAt are never accepted from the caller.
type VehicleInput struct {
	Modelo    string
	Marca     string
	Ano       int
	Preco     float64
	Descricao *string
}

// VehicleService provides the use-cases over the vehicle inventory.
// It is a stateless translation layer: no cross-request state is held and
// every method is a single validate→store→return pipeline.
type VehicleService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Repo is the vehicle repository used by this service.
	Repo VehicleRepo
}

// NewVehicleService constructs a VehicleService bound to db and r.
func NewVehicleService(db *gorm.DB, r VehicleRepo) *VehicleService {
	return &VehicleService{DB: db, Repo: r}
}

// List returns every vehicle, newest first.
func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.Repo.ListVehicles(ctx, s.DB)
}

// Get fetches a single vehicle by id. A missing row yields
// ErrVehicleNotFound; any other failure is a store error.
func (s *VehicleService) Get(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.Repo.GetVehicle(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// Create validates and normalizes in, stamps UpdatedAt and inserts a new
// vehicle. The store assigns ID and CreatedAt. Returns ErrMissingFields when
// a required field is absent; no store call is made in that case.
func (s *VehicleService) Create(ctx context.Context, in VehicleInput) (*domain.Vehicle, error) {
	in = normalize(in)
	if err := requireFields(in); err != nil {
		return nil, err
	}

	v := &domain.Vehicle{
		Modelo:    in.Modelo,
		Marca:     in.Marca,
		Ano:       in.Ano,
		Preco:     in.Preco,
		Descricao: in.Descricao,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.Repo.CreateVehicle(ctx, s.DB, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Update validates and normalizes in, then replaces the full field set of
// the vehicle identified by id, refreshing UpdatedAt and leaving CreatedAt
// untouched. Zero rows affected yields ErrVehicleNotFound.
func (s *VehicleService) Update(ctx context.Context, id int64, in VehicleInput) (*domain.Vehicle, error) {
	in = normalize(in)
	if err := requireFields(in); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"modelo":     in.Modelo,
		"marca":      in.Marca,
		"ano":        in.Ano,
		"preco":      in.Preco,
		"descricao":  in.Descricao,
		"updated_at": time.Now().UTC(),
	}
	v, err := s.Repo.UpdateVehicle(ctx, s.DB, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// Delete removes the vehicle identified by id and returns the deleted row.
// Zero rows affected yields ErrVehicleNotFound.
func (s *VehicleService) Delete(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, err := s.Repo.DeleteVehicle(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return v, nil
}

// normalize trims the string fields and collapses a blank description to
// nil so it is stored (and serialized) as an explicit null.
func normalize(in VehicleInput) VehicleInput {
	in.Modelo = strings.TrimSpace(in.Modelo)
	in.Marca = strings.TrimSpace(in.Marca)
	if in.Descricao != nil {
		d := strings.TrimSpace(*in.Descricao)
		if d == "" {
			in.Descricao = nil
		} else {
			in.Descricao = &d
		}
	}
	return in
}

// requireFields enforces the presence of the four required fields.
// Zero values count as missing: an ano or preco of 0 is rejected, the
// presence semantics the frontend has always relied on.
func requireFields(in VehicleInput) error {
	if in.Modelo == "" || in.Marca == "" || in.Ano == 0 || in.Preco == 0 {
		return ErrMissingFields
	}
	return nil
}
