package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vocabulario cerrado de type_operation (etiquetas literales del regulador).
const (
	OpRetailSale      = "Продажа конечному потребителю в точке продаж"
	OpRemoteSale      = "Дистанционная продажа конечному потребителю"
	OpOtherWithdrawal = "Прочий тип вывода из оборота"
)

// ProducedGoods fila de introducción de mercancía en circulación (un productor).
type ProducedGoods struct {
	ID            int64
	Dt            time.Time
	INN           string
	GTIN          string
	PrID          string
	OperationType string
	Cnt           int64
	UserID        string
}

// SoldGoods fila de retiro de mercancía de circulación: venta u otro tipo de salida.
type SoldGoods struct {
	ID            int64
	Dt            time.Time
	GTIN          string
	PrID          string
	INN           string
	IDSp          string // id_sp_: identificador del punto de venta
	TypeOperation string
	Price         decimal.Decimal
	Cnt           int64
	UserID        string
}

// TransportedGoods fila de movimiento de mercancía entre participantes.
type TransportedGoods struct {
	ID          int64
	Dt          time.Time
	GTIN        string
	PrID        string
	SenderINN   string
	ReceiverINN string
	CntMoved    int64
	UserID      string
}
