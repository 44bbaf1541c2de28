package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
)

// AgrSoldPoint punto de la serie agregada de ventas por región y día.
type AgrSoldPoint struct {
	Dt         time.Time
	RegionCode int
	SumPrice   decimal.Decimal
	Cnt        int64
}

// AggregateRepository persistencia de los rollups pre-agregados por región.
type AggregateRepository interface {
	BulkInsertProduction(ctx context.Context, rows []entity.AgrProduction) (int64, error)
	BulkInsertSold(ctx context.Context, rows []entity.AgrSold) (int64, error)
	BulkInsertTransported(ctx context.Context, rows []entity.AgrTransported) (int64, error)

	// AgrSoldSeries proyección (dt, region_code, sum_price, cnt) para los pronósticos a nivel agregado.
	AgrSoldSeries(ctx context.Context, userID string) ([]AgrSoldPoint, error)
}
