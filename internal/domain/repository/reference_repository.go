package repository

import (
	"context"

	"github.com/tu-usuario/goods-trace/internal/domain/entity"
)

// SalePointRegion proyección mínima (id_sp_, region_code) para joins en memoria.
type SalePointRegion struct {
	IDSp       string
	RegionCode int
}

// ReferenceRepository datos de referencia globales (no ligados a un usuario).
type ReferenceRepository interface {
	// UpsertSalePoints inserta o reemplaza puntos de venta (carga de referencia, idempotente).
	UpsertSalePoints(ctx context.Context, points []entity.SalePoint) (int64, error)
	UpsertOrganizationRegions(ctx context.Context, orgs []entity.OrganizationRegion) (int64, error)

	SalePointRegions(ctx context.Context) ([]SalePointRegion, error)
	SalePointsFull(ctx context.Context) ([]entity.SalePoint, error)

	// RegionByINN devuelve el código de región de una organización, o -1 si no está mapeada.
	RegionByINN(ctx context.Context, inn string) (int, error)
}
