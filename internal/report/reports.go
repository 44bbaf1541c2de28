package report

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	"github.com/tu-usuario/goods-trace/internal/regions"
)

// Cortes de fecha fijos de los reportes. El corte online es posterior porque
// la venta a distancia solo se registra desde septiembre de 2022.
var (
	cutoffDefault = time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	cutoffOnline  = time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC)
)

// topPerRegion y topFlat dimensionan los rankings de salida.
const (
	topPerRegion = 5
	topFlat      = 10
)

// IDCount arrays paralelos (punto de venta, métrica) para JSON.
type IDCount struct {
	ID    []string `json:"id"`
	Count []int64  `json:"count"`
}

// GtinCount arrays paralelos (gtin, métrica) para JSON.
type GtinCount struct {
	GTIN  []string `json:"gtin"`
	Count []int64  `json:"count"`
}

// Volumes totales del fabricante: unidades y facturación.
type Volumes struct {
	Cnt   int64   `json:"cnt"`
	Price float64 `json:"price"`
}

// MapPoint valor del heatmap por región: sumas min-max normalizadas a [0,1].
type MapPoint struct {
	Short   string  `json:"short"`
	Name    string  `json:"name"`
	Code    int     `json:"code"`
	NormSum float64 `json:"norm_sum"`
	CntNorm float64 `json:"cnt_norm"`
}

// ShopsManufacturer puntos de venta que más retiran mercancía de circulación
// por "Прочий тип вывода из оборота", top 5 por región. Una fila cuyo id_sp_
// no está en la referencia no aporta a ninguna región (left-join + drop).
func ShopsManufacturer(rows []repository.SoldForShops, points []entity.SalePoint) map[string]IDCount {
	idx := make(regionIndex, len(points))
	for _, p := range points {
		idx[p.IDSp] = p.RegionCode
	}
	acc := newGroupAccum[regionKey]()
	for _, r := range rows {
		if r.IDSp == "" || r.TypeOperation == "" {
			continue
		}
		region, ok := idx[r.IDSp]
		if !ok {
			continue
		}
		if r.Dt.Before(cutoffDefault) || r.TypeOperation != entity.OpOtherWithdrawal {
			continue
		}
		acc.Add(regionKey{Region: region, ID: r.IDSp}, 1)
	}
	return rankPerRegion(acc)
}

// VolumesManufacturer unidades y facturación total del fabricante desde el
// corte, solo filas con punto de venta mapeado a región.
func VolumesManufacturer(rows []repository.SoldForVolume, points []repository.SalePointRegion) Volumes {
	idx := buildRegionIndex(points)
	var cnt int64
	price := decimal.Zero
	for _, r := range rows {
		if _, ok := idx[r.IDSp]; !ok {
			continue
		}
		if r.Dt.Before(cutoffDefault) {
			continue
		}
		cnt += r.Cnt
		price = price.Add(r.Price)
	}
	return Volumes{Cnt: cnt, Price: price.InexactFloat64()}
}

// VolumesManufacturerRegion heatmap: suma de facturación y de unidades por
// región, fusionada sobre una plantilla con TODAS las regiones del catálogo
// (las sin actividad aparecen con 0) y min-max normalizada a [0,1].
func VolumesManufacturerRegion(
	rows []repository.SoldForVolume,
	points []repository.SalePointRegion,
	catalog regions.Catalog,
) []MapPoint {
	idx := buildRegionIndex(points)

	sumPrice := make(map[int]float64, len(catalog))
	sumCnt := make(map[int]float64, len(catalog))
	for _, code := range catalog.Codes() {
		sumPrice[code] = 0
		sumCnt[code] = 0
	}
	for _, r := range rows {
		region, ok := idx[r.IDSp]
		if !ok {
			continue
		}
		if r.Dt.Before(cutoffDefault) {
			continue
		}
		// Regiones fuera del catálogo no entran en la plantilla del mapa.
		if _, known := sumPrice[region]; !known {
			continue
		}
		sumPrice[region] += r.Price.InexactFloat64()
		sumCnt[region] += float64(r.Cnt)
	}
	minMaxNormalize(sumPrice)
	minMaxNormalize(sumCnt)

	out := make([]MapPoint, 0, len(catalog))
	for _, code := range catalog.Codes() {
		meta := catalog[code]
		out = append(out, MapPoint{
			Short:   meta.Short,
			Name:    meta.Name,
			Code:    code,
			NormSum: sumPrice[code],
			CntNorm: sumCnt[code],
		})
	}
	return out
}

// PopularOfflineGtinManufacturerRegion GTIN más vendidos en punto de venta
// físico, top 5 por región (suma de unidades).
func PopularOfflineGtinManufacturerRegion(
	rows []repository.SoldForOffline,
	points []repository.SalePointRegion,
) map[string]GtinCount {
	idx := buildRegionIndex(points)
	acc := newGroupAccum[regionKey]()
	for _, r := range rows {
		if r.GTIN == "" || r.IDSp == "" {
			continue
		}
		region, ok := idx[r.IDSp]
		if !ok {
			continue
		}
		if r.Dt.Before(cutoffDefault) || r.TypeOperation != entity.OpRetailSale {
			continue
		}
		acc.Add(regionKey{Region: region, ID: r.GTIN}, r.Cnt)
	}
	perRegion := rankPerRegion(acc)
	out := make(map[string]GtinCount, len(perRegion))
	for region, ranking := range perRegion {
		out[region] = GtinCount{GTIN: ranking.ID, Count: ranking.Count}
	}
	return out
}

// PopularOfflineGtinManufacturer variante sin clave de región: no hay join,
// así que las ventas en puntos no mapeados también cuentan. Top 10.
func PopularOfflineGtinManufacturer(rows []repository.SoldForOffline) GtinCount {
	acc := newGroupAccum[string]()
	for _, r := range rows {
		if r.GTIN == "" {
			continue
		}
		if r.Dt.Before(cutoffDefault) || r.TypeOperation != entity.OpRetailSale {
			continue
		}
		acc.Add(r.GTIN, r.Cnt)
	}
	return toGtinCount(topNDesc(acc.rows(), topFlat))
}

// PopularOnlineGtinManufacturer GTIN más vendidos a distancia desde el corte
// online, top 5.
func PopularOnlineGtinManufacturer(rows []repository.SoldForOnline) GtinCount {
	acc := newGroupAccum[string]()
	for _, r := range rows {
		if r.GTIN == "" {
			continue
		}
		if r.Dt.Before(cutoffOnline) || r.TypeOperation != entity.OpRemoteSale {
			continue
		}
		acc.Add(r.GTIN, r.Cnt)
	}
	return toGtinCount(topNDesc(acc.rows(), topPerRegion))
}

// ShopsManufacturerCountRegion unidades vendidas por punto de venta, top 5
// por región.
func ShopsManufacturerCountRegion(
	rows []repository.SoldForShopCount,
	points []repository.SalePointRegion,
) map[string]IDCount {
	idx := buildRegionIndex(points)
	acc := newGroupAccum[regionKey]()
	for _, r := range rows {
		if r.IDSp == "" {
			continue
		}
		region, ok := idx[r.IDSp]
		if !ok {
			continue
		}
		if r.Dt.Before(cutoffDefault) {
			continue
		}
		acc.Add(regionKey{Region: region, ID: r.IDSp}, r.Cnt)
	}
	return rankPerRegion(acc)
}

// ShopsManufacturerCount variante sin clave de región: unidades por punto de
// venta sobre todo el territorio, top 5, sin join.
func ShopsManufacturerCount(rows []repository.SoldForShopCount) IDCount {
	acc := newGroupAccum[string]()
	for _, r := range rows {
		if r.IDSp == "" {
			continue
		}
		if r.Dt.Before(cutoffDefault) {
			continue
		}
		acc.Add(r.IDSp, r.Cnt)
	}
	ranked := topNDesc(acc.rows(), topPerRegion)
	out := IDCount{ID: make([]string, 0, len(ranked)), Count: make([]int64, 0, len(ranked))}
	for _, g := range ranked {
		out.ID = append(out.ID, g.Key)
		out.Count = append(out.Count, g.Sum)
	}
	return out
}

// rankPerRegion agrupa los pares (región, id) acumulados en un ranking top-5
// por región. Una región sin grupos tras el filtro simplemente no aparece.
func rankPerRegion(acc *groupAccum[regionKey]) map[string]IDCount {
	byRegion := make(map[int][]groupRow[string])
	var order []int
	for _, g := range acc.rows() {
		if _, ok := byRegion[g.Key.Region]; !ok {
			order = append(order, g.Key.Region)
		}
		byRegion[g.Key.Region] = append(byRegion[g.Key.Region], groupRow[string]{Key: g.Key.ID, Sum: g.Sum})
	}
	out := make(map[string]IDCount, len(byRegion))
	for _, region := range order {
		ranked := topNDesc(byRegion[region], topPerRegion)
		entry := IDCount{ID: make([]string, 0, len(ranked)), Count: make([]int64, 0, len(ranked))}
		for _, g := range ranked {
			entry.ID = append(entry.ID, g.Key)
			entry.Count = append(entry.Count, g.Sum)
		}
		out[strconv.Itoa(region)] = entry
	}
	return out
}

func toGtinCount(ranked []groupRow[string]) GtinCount {
	out := GtinCount{GTIN: make([]string, 0, len(ranked)), Count: make([]int64, 0, len(ranked))}
	for _, g := range ranked {
		out.GTIN = append(out.GTIN, g.Key)
		out.Count = append(out.Count, g.Sum)
	}
	return out
}
