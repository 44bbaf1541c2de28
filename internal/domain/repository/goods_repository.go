package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
)

// Proyecciones estrechas de sold_goods para los reportes. Cada consulta
// selecciona solo las columnas que su reporte consume; los joins con los
// puntos de venta ocurren después, en memoria (internal/report).

// SoldForShops fila para el reporte de tiendas que más retiran de circulación.
type SoldForShops struct {
	Dt            time.Time
	INN           string
	IDSp          string
	TypeOperation string
}

// SoldForVolume fila para volúmenes (unidades y facturación) por región.
type SoldForVolume struct {
	Dt    time.Time
	IDSp  string
	Cnt   int64
	Price decimal.Decimal
}

// SoldForOffline fila para los GTIN más vendidos en punto de venta físico.
type SoldForOffline struct {
	Dt            time.Time
	GTIN          string
	IDSp          string
	TypeOperation string
	Price         decimal.Decimal
	Cnt           int64
}

// SoldForOnline fila para los GTIN más vendidos a distancia.
type SoldForOnline struct {
	Dt            time.Time
	GTIN          string
	TypeOperation string
	Cnt           int64
}

// SoldForShopCount fila para el conteo de unidades por punto de venta.
type SoldForShopCount struct {
	Dt   time.Time
	IDSp string
	Cnt  int64
}

// GoodsRepository persistencia de filas de eventos por productor.
// La ingestión es append-only: un solo bulk insert por archivo, sin updates.
type GoodsRepository interface {
	BulkInsertProduced(ctx context.Context, rows []entity.ProducedGoods) (int64, error)
	BulkInsertSold(ctx context.Context, rows []entity.SoldGoods) (int64, error)
	BulkInsertTransported(ctx context.Context, rows []entity.TransportedGoods) (int64, error)

	ListProduced(ctx context.Context, userID string, offset, count int) ([]*entity.ProducedGoods, error)
	ListSold(ctx context.Context, userID string, offset, count int) ([]*entity.SoldGoods, error)
	ListTransported(ctx context.Context, userID string, offset, count int) ([]*entity.TransportedGoods, error)

	// Proyecciones para reportes (sin paginación: el reporte consume todo el histórico del usuario).
	SoldForShops(ctx context.Context, userID string) ([]SoldForShops, error)
	SoldForVolume(ctx context.Context, userID string) ([]SoldForVolume, error)
	SoldForOffline(ctx context.Context, userID string) ([]SoldForOffline, error)
	SoldForOnline(ctx context.Context, userID string) ([]SoldForOnline, error)
	SoldForShopCount(ctx context.Context, userID string) ([]SoldForShopCount, error)
}
