package dto

import (
	"time"

	"github.com/tu-usuario/goods-trace/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// ProducedGoodsDTO fila de producción para JSON.
type ProducedGoodsDTO struct {
	Dt            string `json:"dt"`
	INN           string `json:"inn"`
	GTIN          string `json:"gtin"`
	PrID          string `json:"prid"`
	OperationType string `json:"operation_type"`
	Cnt           int64  `json:"cnt"`
}

// SoldGoodsDTO fila de venta para JSON.
type SoldGoodsDTO struct {
	Dt            string  `json:"dt"`
	GTIN          string  `json:"gtin"`
	PrID          string  `json:"prid"`
	INN           string  `json:"inn"`
	IDSp          string  `json:"id_sp_"`
	TypeOperation string  `json:"type_operation"`
	Price         float64 `json:"price"`
	Cnt           int64   `json:"cnt"`
}

// TransportedGoodsDTO fila de movimiento para JSON.
type TransportedGoodsDTO struct {
	Dt          string `json:"dt"`
	GTIN        string `json:"gtin"`
	PrID        string `json:"prid"`
	SenderINN   string `json:"sender_inn"`
	ReceiverINN string `json:"receiver_inn"`
	CntMoved    int64  `json:"cnt_moved"`
}

// ListProducedResponse listado paginado de producción.
type ListProducedResponse struct {
	Items []ProducedGoodsDTO `json:"items"`
}

// ListSoldResponse listado paginado de ventas.
type ListSoldResponse struct {
	Items []SoldGoodsDTO `json:"items"`
}

// ListTransportedResponse listado paginado de movimientos.
type ListTransportedResponse struct {
	Items []TransportedGoodsDTO `json:"items"`
}

func fmtDate(t time.Time) string { return t.Format(dateLayout) }

// FromProduced convierte entidades a DTOs.
func FromProduced(rows []*entity.ProducedGoods) []ProducedGoodsDTO {
	out := make([]ProducedGoodsDTO, 0, len(rows))
	for _, g := range rows {
		out = append(out, ProducedGoodsDTO{
			Dt:            fmtDate(g.Dt),
			INN:           g.INN,
			GTIN:          g.GTIN,
			PrID:          g.PrID,
			OperationType: g.OperationType,
			Cnt:           g.Cnt,
		})
	}
	return out
}

// FromSold convierte entidades a DTOs.
func FromSold(rows []*entity.SoldGoods) []SoldGoodsDTO {
	out := make([]SoldGoodsDTO, 0, len(rows))
	for _, g := range rows {
		out = append(out, SoldGoodsDTO{
			Dt:            fmtDate(g.Dt),
			GTIN:          g.GTIN,
			PrID:          g.PrID,
			INN:           g.INN,
			IDSp:          g.IDSp,
			TypeOperation: g.TypeOperation,
			Price:         g.Price.InexactFloat64(),
			Cnt:           g.Cnt,
		})
	}
	return out
}

// FromTransported convierte entidades a DTOs.
func FromTransported(rows []*entity.TransportedGoods) []TransportedGoodsDTO {
	out := make([]TransportedGoodsDTO, 0, len(rows))
	for _, g := range rows {
		out = append(out, TransportedGoodsDTO{
			Dt:          fmtDate(g.Dt),
			GTIN:        g.GTIN,
			PrID:        g.PrID,
			SenderINN:   g.SenderINN,
			ReceiverINN: g.ReceiverINN,
			CntMoved:    g.CntMoved,
		})
	}
	return out
}
