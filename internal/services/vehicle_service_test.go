package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/dealerhub/go-vehicle-backend/internal/domain"
)

// stubRepo satisfies VehicleRepo with overridable behavior per test.
type stubRepo struct {
	list   func(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error)
	get    func(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error)
	create func(ctx context.Context, db *gorm.DB, v *domain.Vehicle) error
	update func(ctx context.Context, db *gorm.DB, id int64, fields map[string]any) (*domain.Vehicle, error)
	del    func(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error)
}

func (s stubRepo) ListVehicles(ctx context.Context, db *gorm.DB) ([]domain.Vehicle, error) {
	return s.list(ctx, db)
}
func (s stubRepo) GetVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	return s.get(ctx, db, id)
}
func (s stubRepo) CreateVehicle(ctx context.Context, db *gorm.DB, v *domain.Vehicle) error {
	return s.create(ctx, db, v)
}
func (s stubRepo) UpdateVehicle(ctx context.Context, db *gorm.DB, id int64, fields map[string]any) (*domain.Vehicle, error) {
	return s.update(ctx, db, id, fields)
}
func (s stubRepo) DeleteVehicle(ctx context.Context, db *gorm.DB, id int64) (*domain.Vehicle, error) {
	return s.del(ctx, db, id)
}

func strptr(s string) *string { return &s }

func TestCreate_TrimsAndStampsUpdatedAt(t *testing.T) {
	var captured *domain.Vehicle
	svc := NewVehicleService(nil, stubRepo{
		create: func(_ context.Context, _ *gorm.DB, v *domain.Vehicle) error {
			captured = v
			v.ID = 7
			return nil
		},
	})

	start := time.Now().UTC().Add(-time.Second)
	got, err := svc.Create(context.Background(), VehicleInput{
		Modelo:    "  Civic  ",
		Marca:     " Honda ",
		Ano:       2022,
		Preco:     95000,
		Descricao: strptr("  único dono  "),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if captured == nil {
		t.Fatalf("repo not called")
	}
	if got.Modelo != "Civic" || got.Marca != "Honda" {
		t.Fatalf("strings not trimmed: %+v", got)
	}
	if got.Descricao == nil || *got.Descricao != "único dono" {
		t.Fatalf("descricao not trimmed: %v", got.Descricao)
	}
	if got.UpdatedAt.Before(start) {
		t.Fatalf("UpdatedAt not stamped: %v", got.UpdatedAt)
	}
	if got.ID != 7 {
		t.Fatalf("store-assigned id not surfaced: %d", got.ID)
	}
}

func TestCreate_BlankDescricaoBecomesNull(t *testing.T) {
	svc := NewVehicleService(nil, stubRepo{
		create: func(_ context.Context, _ *gorm.DB, v *domain.Vehicle) error { return nil },
	})

	got, err := svc.Create(context.Background(), VehicleInput{
		Modelo: "Civic", Marca: "Honda", Ano: 2022, Preco: 95000,
		Descricao: strptr("   "),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Descricao != nil {
		t.Fatalf("blank descricao must be stored as null, got %q", *got.Descricao)
	}
}

func TestCreate_MissingFields_NoStoreCall(t *testing.T) {
	tests := []struct {
		name string
		in   VehicleInput
	}{
		{"no_modelo", VehicleInput{Marca: "Honda", Ano: 2022, Preco: 95000}},
		{"blank_modelo", VehicleInput{Modelo: "   ", Marca: "Honda", Ano: 2022, Preco: 95000}},
		{"no_marca", VehicleInput{Modelo: "Civic", Ano: 2022, Preco: 95000}},
		{"zero_ano", VehicleInput{Modelo: "Civic", Marca: "Honda", Preco: 95000}},
		{"zero_preco", VehicleInput{Modelo: "Civic", Marca: "Honda", Ano: 2022}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			svc := NewVehicleService(nil, stubRepo{
				create: func(_ context.Context, _ *gorm.DB, _ *domain.Vehicle) error {
					t.Fatalf("store must not be called on validation failure")
					return nil
				},
			})
			if _, err := svc.Create(context.Background(), tc.in); !errors.Is(err, ErrMissingFields) {
				t.Fatalf("expected ErrMissingFields, got %v", err)
			}
		})
	}
}

func TestUpdate_FieldSetAndNotFound(t *testing.T) {
	var gotFields map[string]any
	svc := NewVehicleService(nil, stubRepo{
		update: func(_ context.Context, _ *gorm.DB, id int64, fields map[string]any) (*domain.Vehicle, error) {
			gotFields = fields
			return &domain.Vehicle{ID: id, Modelo: "Civic"}, nil
		},
	})

	if _, err := svc.Update(context.Background(), 5, VehicleInput{
		Modelo: " Civic ", Marca: "Honda", Ano: 2022, Preco: 95000,
	}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	for _, k := range []string{"modelo", "marca", "ano", "preco", "descricao", "updated_at"} {
		if _, ok := gotFields[k]; !ok {
			t.Fatalf("field %q missing from update set: %v", k, gotFields)
		}
	}
	if gotFields["modelo"] != "Civic" {
		t.Fatalf("modelo not trimmed: %v", gotFields["modelo"])
	}
	// created_at and id are never part of the update set.
	if _, ok := gotFields["created_at"]; ok {
		t.Fatalf("created_at must not be updated")
	}
	if _, ok := gotFields["id"]; ok {
		t.Fatalf("id must not be updated")
	}

	// Zero rows affected maps to the service sentinel.
	svc = NewVehicleService(nil, stubRepo{
		update: func(_ context.Context, _ *gorm.DB, _ int64, _ map[string]any) (*domain.Vehicle, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	if _, err := svc.Update(context.Background(), 424242, VehicleInput{
		Modelo: "Civic", Marca: "Honda", Ano: 2022, Preco: 95000,
	}); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestUpdate_MissingFields_NoStoreCall(t *testing.T) {
	svc := NewVehicleService(nil, stubRepo{
		update: func(_ context.Context, _ *gorm.DB, _ int64, _ map[string]any) (*domain.Vehicle, error) {
			t.Fatalf("store must not be called on validation failure")
			return nil, nil
		},
	})
	if _, err := svc.Update(context.Background(), 5, VehicleInput{Modelo: "Civic"}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestGet_MapsNotFound(t *testing.T) {
	svc := NewVehicleService(nil, stubRepo{
		get: func(_ context.Context, _ *gorm.DB, _ int64) (*domain.Vehicle, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	if _, err := svc.Get(context.Background(), 999999); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}

	// Other store failures pass through raw.
	storeErr := errors.New("driver: bad connection")
	svc = NewVehicleService(nil, stubRepo{
		get: func(_ context.Context, _ *gorm.DB, _ int64) (*domain.Vehicle, error) {
			return nil, storeErr
		},
	})
	if _, err := svc.Get(context.Background(), 1); !errors.Is(err, storeErr) {
		t.Fatalf("expected raw store error, got %v", err)
	}
}

func TestDelete_MapsNotFoundAndReturnsRow(t *testing.T) {
	svc := NewVehicleService(nil, stubRepo{
		del: func(_ context.Context, _ *gorm.DB, id int64) (*domain.Vehicle, error) {
			return &domain.Vehicle{ID: id, Modelo: "Gol"}, nil
		},
	})
	got, err := svc.Delete(context.Background(), 5)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got.ID != 5 || got.Modelo != "Gol" {
		t.Fatalf("expected deleted row back, got %+v", got)
	}

	svc = NewVehicleService(nil, stubRepo{
		del: func(_ context.Context, _ *gorm.DB, _ int64) (*domain.Vehicle, error) {
			return nil, gorm.ErrRecordNotFound
		},
	})
	if _, err := svc.Delete(context.Background(), 5); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestList_Passthrough(t *testing.T) {
	want := []domain.Vehicle{{ID: 2, Modelo: "Civic"}, {ID: 1, Modelo: "Gol"}}
	svc := NewVehicleService(nil, stubRepo{
		list: func(_ context.Context, _ *gorm.DB) ([]domain.Vehicle, error) { return want, nil },
	})
	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ID != 2 || got[1].ID != 1 {
		t.Fatalf("unexpected list: %+v", got)
	}
}
