package ingest

import (
	"strings"

	"github.com/tu-usuario/goods-trace/internal/domain"
)

// Kind variante cerrada: una por cada forma de CSV que el regulador exporta.
type Kind int

const (
	KindUnknown Kind = iota
	KindProduced
	KindSold
	KindTransported
	KindAgrProduction
	KindAgrSold
	KindAgrTransported
	KindSalePoints
)

// String nombre estable de la variante (para logs).
func (k Kind) String() string {
	switch k {
	case KindProduced:
		return "produced_goods"
	case KindSold:
		return "sold_goods"
	case KindTransported:
		return "transported_goods"
	case KindAgrProduction:
		return "agr_production"
	case KindAgrSold:
		return "agr_sold"
	case KindAgrTransported:
		return "agr_transported"
	case KindSalePoints:
		return "sale_points"
	default:
		return "unknown"
	}
}

// Las siete cabeceras canónicas. La comparación es por igualdad literal de la
// secuencia de nombres de columna: orden y puntuación cuentan, no hay
// emparejamiento parcial. Cualquier desviación es domain.ErrUnknownHeader.
var headerToKind = map[string]Kind{
	"dt,inn,gtin,prid,operation_type,cnt":                     KindProduced,
	"dt,gtin,prid,inn,id_sp_,type_operation,price,cnt":        KindSold,
	"dt,gtin,prid,sender_inn,receiver_inn,cnt_moved":          KindTransported,
	"dt,region_code,cnt,cnt_assortment,cnt_brand":             KindAgrProduction,
	"dt,region_code,sum_price,cnt,cnt_assortment,cnt_brand":   KindAgrSold,
	"dt,region_code,cnt_moved,cnt_assortment,cnt_brand":       KindAgrTransported,
	"id_sp_,region_code,city_with_type,postal_code":           KindSalePoints,
}

// Detect resuelve la cabecera a su variante. Cabecera no reconocida devuelve
// KindUnknown y domain.ErrUnknownHeader: el caso deja de ser un no-op
// silencioso y pasa a ser observable por el llamador (que decide registrarlo).
func Detect(header []string) (Kind, error) {
	kind, ok := headerToKind[strings.Join(header, ",")]
	if !ok {
		return KindUnknown, domain.ErrUnknownHeader
	}
	return kind, nil
}
