package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Agregados pre-calculados por (fecha, región). Llegan ya consolidados en los
// CSVs del regulador; no se recalculan a partir de las filas crudas.

// AgrProduction producción agregada por región y día.
type AgrProduction struct {
	ID            int64
	Dt            time.Time
	RegionCode    int
	Cnt           int64
	CntAssortment int64
	CntBrand      int64
	UserID        string
}

// AgrSold ventas agregadas por región y día, con suma de precios.
type AgrSold struct {
	ID            int64
	Dt            time.Time
	RegionCode    int
	SumPrice      decimal.Decimal
	Cnt           int64
	CntAssortment int64
	CntBrand      int64
	UserID        string
}

// AgrTransported movimientos agregados por región y día.
type AgrTransported struct {
	ID            int64
	Dt            time.Time
	RegionCode    int
	CntMoved      int64
	CntAssortment int64
	CntBrand      int64
	UserID        string
}
