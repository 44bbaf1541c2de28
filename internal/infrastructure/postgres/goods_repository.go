package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
)

var _ repository.GoodsRepository = (*GoodsRepo)(nil)

// GoodsRepo persistencia de filas de eventos (produced/sold/transported).
// Los bulk inserts usan COPY dentro de una transacción: un archivo = una
// transacción, atómica respecto a ese archivo.
type GoodsRepo struct {
	pool *pgxpool.Pool
}

// NewGoodsRepository construye el adaptador de persistencia de eventos.
func NewGoodsRepository(pool *pgxpool.Pool) *GoodsRepo {
	return &GoodsRepo{pool: pool}
}

func (r *GoodsRepo) copyIn(
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

// BulkInsertProduced inserta filas de producción en un único COPY.
func (r *GoodsRepo) BulkInsertProduced(ctx context.Context, rows []entity.ProducedGoods) (int64, error) {
	return r.copyIn(ctx, "produced_goods",
		[]string{"dt", "inn", "gtin", "prid", "operation_type", "cnt", "user_id"},
		len(rows), func(i int) ([]any, error) {
			g := rows[i]
			return []any{g.Dt, g.INN, g.GTIN, g.PrID, g.OperationType, g.Cnt, g.UserID}, nil
		})
}

// BulkInsertSold inserta filas de venta en un único COPY.
func (r *GoodsRepo) BulkInsertSold(ctx context.Context, rows []entity.SoldGoods) (int64, error) {
	return r.copyIn(ctx, "sold_goods",
		[]string{"dt", "gtin", "prid", "inn", "id_sp_", "type_operation", "price", "cnt", "user_id"},
		len(rows), func(i int) ([]any, error) {
			g := rows[i]
			return []any{g.Dt, g.GTIN, g.PrID, g.INN, g.IDSp, g.TypeOperation, g.Price, g.Cnt, g.UserID}, nil
		})
}

// BulkInsertTransported inserta filas de movimiento en un único COPY.
func (r *GoodsRepo) BulkInsertTransported(ctx context.Context, rows []entity.TransportedGoods) (int64, error) {
	return r.copyIn(ctx, "transported_goods",
		[]string{"dt", "gtin", "prid", "sender_inn", "receiver_inn", "cnt_moved", "user_id"},
		len(rows), func(i int) ([]any, error) {
			g := rows[i]
			return []any{g.Dt, g.GTIN, g.PrID, g.SenderINN, g.ReceiverINN, g.CntMoved, g.UserID}, nil
		})
}

// ── Listados paginados ────────────────────────────────────────────────────────

// ListProduced lista producción del usuario con paginación (validada en el handler).
func (r *GoodsRepo) ListProduced(ctx context.Context, userID string, offset, count int) ([]*entity.ProducedGoods, error) {
	query := `
		SELECT id, dt, inn, gtin, prid, operation_type, cnt, user_id
		FROM produced_goods WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, count, offset)
	if err != nil {
		return nil, fmt.Errorf("list produced: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProducedGoods
	for rows.Next() {
		var g entity.ProducedGoods
		if err := rows.Scan(&g.ID, &g.Dt, &g.INN, &g.GTIN, &g.PrID, &g.OperationType, &g.Cnt, &g.UserID); err != nil {
			return nil, fmt.Errorf("scan produced: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// ListSold lista ventas del usuario con paginación.
func (r *GoodsRepo) ListSold(ctx context.Context, userID string, offset, count int) ([]*entity.SoldGoods, error) {
	query := `
		SELECT id, dt, gtin, prid, inn, id_sp_, type_operation, price, cnt, user_id
		FROM sold_goods WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, count, offset)
	if err != nil {
		return nil, fmt.Errorf("list sold: %w", err)
	}
	defer rows.Close()
	var list []*entity.SoldGoods
	for rows.Next() {
		var g entity.SoldGoods
		if err := rows.Scan(&g.ID, &g.Dt, &g.GTIN, &g.PrID, &g.INN, &g.IDSp, &g.TypeOperation, &g.Price, &g.Cnt, &g.UserID); err != nil {
			return nil, fmt.Errorf("scan sold: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// ListTransported lista movimientos del usuario con paginación.
func (r *GoodsRepo) ListTransported(ctx context.Context, userID string, offset, count int) ([]*entity.TransportedGoods, error) {
	query := `
		SELECT id, dt, gtin, prid, sender_inn, receiver_inn, cnt_moved, user_id
		FROM transported_goods WHERE user_id = $1 ORDER BY id LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, userID, count, offset)
	if err != nil {
		return nil, fmt.Errorf("list transported: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransportedGoods
	for rows.Next() {
		var g entity.TransportedGoods
		if err := rows.Scan(&g.ID, &g.Dt, &g.GTIN, &g.PrID, &g.SenderINN, &g.ReceiverINN, &g.CntMoved, &g.UserID); err != nil {
			return nil, fmt.Errorf("scan transported: %w", err)
		}
		list = append(list, &g)
	}
	return list, rows.Err()
}

// ── Proyecciones para reportes ────────────────────────────────────────────────
// Columnas fijas por reporte, sin joins: el cruce con puntos de venta ocurre
// en memoria (internal/report).

// SoldForShops proyección (dt, inn, id_sp_, type_operation).
func (r *GoodsRepo) SoldForShops(ctx context.Context, userID string) ([]repository.SoldForShops, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT dt, inn, id_sp_, type_operation FROM sold_goods WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("sold for shops: %w", err)
	}
	defer rows.Close()
	var list []repository.SoldForShops
	for rows.Next() {
		var p repository.SoldForShops
		if err := rows.Scan(&p.Dt, &p.INN, &p.IDSp, &p.TypeOperation); err != nil {
			return nil, fmt.Errorf("scan sold for shops: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoldForVolume proyección (dt, id_sp_, cnt, price).
func (r *GoodsRepo) SoldForVolume(ctx context.Context, userID string) ([]repository.SoldForVolume, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT dt, id_sp_, cnt, price FROM sold_goods WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("sold for volume: %w", err)
	}
	defer rows.Close()
	var list []repository.SoldForVolume
	for rows.Next() {
		var p repository.SoldForVolume
		if err := rows.Scan(&p.Dt, &p.IDSp, &p.Cnt, &p.Price); err != nil {
			return nil, fmt.Errorf("scan sold for volume: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoldForOffline proyección (dt, gtin, id_sp_, type_operation, price, cnt).
func (r *GoodsRepo) SoldForOffline(ctx context.Context, userID string) ([]repository.SoldForOffline, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT dt, gtin, id_sp_, type_operation, price, cnt FROM sold_goods WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("sold for offline: %w", err)
	}
	defer rows.Close()
	var list []repository.SoldForOffline
	for rows.Next() {
		var p repository.SoldForOffline
		if err := rows.Scan(&p.Dt, &p.GTIN, &p.IDSp, &p.TypeOperation, &p.Price, &p.Cnt); err != nil {
			return nil, fmt.Errorf("scan sold for offline: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoldForOnline proyección (dt, gtin, type_operation, cnt).
func (r *GoodsRepo) SoldForOnline(ctx context.Context, userID string) ([]repository.SoldForOnline, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT dt, gtin, type_operation, cnt FROM sold_goods WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("sold for online: %w", err)
	}
	defer rows.Close()
	var list []repository.SoldForOnline
	for rows.Next() {
		var p repository.SoldForOnline
		if err := rows.Scan(&p.Dt, &p.GTIN, &p.TypeOperation, &p.Cnt); err != nil {
			return nil, fmt.Errorf("scan sold for online: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// SoldForShopCount proyección (dt, id_sp_, cnt).
func (r *GoodsRepo) SoldForShopCount(ctx context.Context, userID string) ([]repository.SoldForShopCount, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT dt, id_sp_, cnt FROM sold_goods WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("sold for shop count: %w", err)
	}
	defer rows.Close()
	var list []repository.SoldForShopCount
	for rows.Next() {
		var p repository.SoldForShopCount
		if err := rows.Scan(&p.Dt, &p.IDSp, &p.Cnt); err != nil {
			return nil, fmt.Errorf("scan sold for shop count: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
