package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
)

var _ repository.AggregateRepository = (*AggregateRepo)(nil)

// AggregateRepo persistencia de los rollups pre-agregados por región.
type AggregateRepo struct {
	pool *pgxpool.Pool
}

// NewAggregateRepository construye el adaptador de agregados.
func NewAggregateRepository(pool *pgxpool.Pool) *AggregateRepo {
	return &AggregateRepo{pool: pool}
}

func (r *AggregateRepo) copyIn(
	ctx context.Context,
	table string,
	columns []string,
	n int,
	rowAt func(i int) ([]any, error),
) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin %s: %w", table, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	count, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromSlice(n, rowAt))
	if err != nil {
		return 0, fmt.Errorf("copy %s: %w", table, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit %s: %w", table, err)
	}
	return count, nil
}

// BulkInsertProduction inserta producción agregada en un único COPY.
func (r *AggregateRepo) BulkInsertProduction(ctx context.Context, rows []entity.AgrProduction) (int64, error) {
	return r.copyIn(ctx, "agr_production",
		[]string{"dt", "region_code", "cnt", "cnt_assortment", "cnt_brand", "user_id"},
		len(rows), func(i int) ([]any, error) {
			a := rows[i]
			return []any{a.Dt, a.RegionCode, a.Cnt, a.CntAssortment, a.CntBrand, a.UserID}, nil
		})
}

// BulkInsertSold inserta ventas agregadas en un único COPY.
func (r *AggregateRepo) BulkInsertSold(ctx context.Context, rows []entity.AgrSold) (int64, error) {
	return r.copyIn(ctx, "agr_sold",
		[]string{"dt", "region_code", "sum_price", "cnt", "cnt_assortment", "cnt_brand", "user_id"},
		len(rows), func(i int) ([]any, error) {
			a := rows[i]
			return []any{a.Dt, a.RegionCode, a.SumPrice, a.Cnt, a.CntAssortment, a.CntBrand, a.UserID}, nil
		})
}

// BulkInsertTransported inserta movimientos agregados en un único COPY.
func (r *AggregateRepo) BulkInsertTransported(ctx context.Context, rows []entity.AgrTransported) (int64, error) {
	return r.copyIn(ctx, "agr_transported",
		[]string{"dt", "region_code", "cnt_moved", "cnt_assortment", "cnt_brand", "user_id"},
		len(rows), func(i int) ([]any, error) {
			a := rows[i]
			return []any{a.Dt, a.RegionCode, a.CntMoved, a.CntAssortment, a.CntBrand, a.UserID}, nil
		})
}

// AgrSoldSeries proyección (dt, region_code, sum_price, cnt) para los
// pronósticos a nivel agregado.
func (r *AggregateRepo) AgrSoldSeries(ctx context.Context, userID string) ([]repository.AgrSoldPoint, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT dt, region_code, sum_price, cnt FROM agr_sold WHERE user_id = $1 ORDER BY dt`, userID)
	if err != nil {
		return nil, fmt.Errorf("agr sold series: %w", err)
	}
	defer rows.Close()
	var list []repository.AgrSoldPoint
	for rows.Next() {
		var p repository.AgrSoldPoint
		if err := rows.Scan(&p.Dt, &p.RegionCode, &p.SumPrice, &p.Cnt); err != nil {
			return nil, fmt.Errorf("scan agr sold: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
