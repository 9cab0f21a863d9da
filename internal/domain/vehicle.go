// Package domain defines the persistence model for the vehicle inventory.
// The type here is mapped with GORM and forms the core data layer of the
// dealership backend.
package domain

import (
	"time"
)

// Vehicle represents one vehicle row in the dealership inventory.
//
// Fields:
//   - ID: store-assigned integer primary key, immutable once created.
//   - Modelo / Marca: model and brand, stored trimmed and non-empty.
//   - Ano: model year.
//   - Preco: asking price.
//   - Descricao: optional free-text description; nil is serialized as an
//     explicit JSON null rather than an empty string.
//   - CreatedAt: assigned at insert, never accepted from the client.
//   - UpdatedAt: refreshed by the service layer on every insert and update.
//
// JSON field names keep the Portuguese wire contract expected by the
// dealership frontend (modelo, marca, ano, preco, descricao).
type Vehicle struct {
	ID        int64     `json:"id"         gorm:"primaryKey;autoIncrement"`
	Modelo    string    `json:"modelo"     gorm:"type:varchar(120);not null"`
	Marca     string    `json:"marca"      gorm:"type:varchar(120);not null"`
	Ano       int       `json:"ano"        gorm:"not null"`
	Preco     float64   `json:"preco"      gorm:"not null"`
	Descricao *string   `json:"descricao"  gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index:idx_veiculos_created_at,sort:desc"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for Vehicle.
func (Vehicle) TableName() string { return "veiculos" }
