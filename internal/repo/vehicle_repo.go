// Package repo implements the data persistence layer for the vehicle
// inventory, backed by GORM. This file provides repository functions for the
// Vehicle model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a vehicle is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience). For updates and
//     deletes the signal is "zero rows affected", surfaced as the same
//     sentinel so callers branch on a tagged outcome instead of inspecting
//     result lengths.
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated. Its message is what ultimately
//     reaches the 500 response body.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/dealerhub/go-vehicle-backend/internal/domain"
)

// ErrNotFound is returned when a requested vehicle does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ListVehicles returns every vehicle ordered by creation time descending
// (newest first). The ordering is part of the API contract, not an
// implementation detail. It returns an empty slice when the table is empty.
func ListVehicles(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	err := db.WithContext(ctx).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// GetVehicle fetches a single vehicle by its primary key. If the record does
// not exist it returns ErrNotFound; other DB errors are returned raw.
func GetVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	var v domain.Vehicle
	if err := db.WithContext(ctx).First(&v, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// CreateVehicle inserts the given vehicle. The store assigns ID and
// CreatedAt; both are populated on v after a successful insert.
func CreateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) error {
	return db.WithContext(ctx).Create(v).Error
}

// UpdateVehicle applies the full field set to the vehicle identified by id
// and returns the updated row. If no rows are affected (vehicle missing),
// it returns ErrNotFound. On DB error, the raw error is returned.
func UpdateVehicle(ctx context.Context, db *gorm.DB, id int64, fields map[string]any) (*domain.Vehicle, error) {
	res := db.WithContext(ctx).
		Model(&domain.Vehicle{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetVehicle(ctx, db, id)
}

// DeleteVehicle removes the vehicle identified by id and returns the deleted
// row. If the vehicle does not exist (zero rows affected), it returns
// ErrNotFound. On DB error, the raw error is returned.
func DeleteVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	v, err := GetVehicle(ctx, db, id)
	if err != nil {
		return nil, err
	}
	res := db.WithContext(ctx).Delete(&domain.Vehicle{}, "id = ?", id)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return v, nil
}
