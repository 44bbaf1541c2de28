package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo datos de referencia globales (puntos de venta, regiones por INN).
type ReferenceRepo struct {
	pool *pgxpool.Pool
}

// NewReferenceRepository construye el adaptador de referencia.
func NewReferenceRepository(pool *pgxpool.Pool) *ReferenceRepo {
	return &ReferenceRepo{pool: pool}
}

// UpsertSalePoints inserta o reemplaza puntos de venta en batch (idempotente:
// la referencia se recarga completa de vez en cuando).
func (r *ReferenceRepo) UpsertSalePoints(ctx context.Context, points []entity.SalePoint) (int64, error) {
	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(`
			INSERT INTO sale_points (id_sp_, region_code, city_with_type, postal_code)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (id_sp_) DO UPDATE
			SET region_code = EXCLUDED.region_code,
			    city_with_type = EXCLUDED.city_with_type,
			    postal_code = EXCLUDED.postal_code`,
			p.IDSp, p.RegionCode, p.CityWithType, p.PostalCode)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range points {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("upsert sale point: %w", err)
		}
	}
	return int64(len(points)), nil
}

// UpsertOrganizationRegions inserta o reemplaza el mapeo INN -> región.
func (r *ReferenceRepo) UpsertOrganizationRegions(ctx context.Context, orgs []entity.OrganizationRegion) (int64, error) {
	batch := &pgx.Batch{}
	for _, o := range orgs {
		batch.Queue(`
			INSERT INTO organization_regions (inn, region_code)
			VALUES ($1, $2)
			ON CONFLICT (inn) DO UPDATE SET region_code = EXCLUDED.region_code`,
			o.INN, o.RegionCode)
	}
	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range orgs {
		if _, err := br.Exec(); err != nil {
			return 0, fmt.Errorf("upsert organization region: %w", err)
		}
	}
	return int64(len(orgs)), nil
}

// SalePointRegions proyección mínima (id_sp_, region_code) para joins en memoria.
func (r *ReferenceRepo) SalePointRegions(ctx context.Context) ([]repository.SalePointRegion, error) {
	rows, err := r.pool.Query(ctx, `SELECT id_sp_, region_code FROM sale_points`)
	if err != nil {
		return nil, fmt.Errorf("sale point regions: %w", err)
	}
	defer rows.Close()
	var list []repository.SalePointRegion
	for rows.Next() {
		var p repository.SalePointRegion
		if err := rows.Scan(&p.IDSp, &p.RegionCode); err != nil {
			return nil, fmt.Errorf("scan sale point region: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SalePointsFull todos los puntos de venta con metadatos completos.
func (r *ReferenceRepo) SalePointsFull(ctx context.Context) ([]entity.SalePoint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id_sp_, region_code, city_with_type, postal_code FROM sale_points`)
	if err != nil {
		return nil, fmt.Errorf("sale points: %w", err)
	}
	defer rows.Close()
	var list []entity.SalePoint
	for rows.Next() {
		var p entity.SalePoint
		if err := rows.Scan(&p.IDSp, &p.RegionCode, &p.CityWithType, &p.PostalCode); err != nil {
			return nil, fmt.Errorf("scan sale point: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// RegionByINN devuelve el código de región de una organización, o -1 si no está mapeada.
func (r *ReferenceRepo) RegionByINN(ctx context.Context, inn string) (int, error) {
	var code int
	err := r.pool.QueryRow(ctx,
		`SELECT region_code FROM organization_regions WHERE inn = $1`, inn).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return -1, nil
		}
		return -1, fmt.Errorf("region by inn: %w", err)
	}
	return code, nil
}
