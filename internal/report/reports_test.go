package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	"github.com/tu-usuario/goods-trace/internal/regions"
	"github.com/tu-usuario/goods-trace/internal/report"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var testCatalog = regions.Catalog{
	50: {Short: "Мос", Name: "Московская область", Code: 50},
	77: {Short: "Мо", Name: "Москва", Code: 77},
	78: {Short: "СПб", Name: "Санкт-Петербург", Code: 78},
}

var testPoints = []repository.SalePointRegion{
	{IDSp: "sp-77a", RegionCode: 77},
	{IDSp: "sp-77b", RegionCode: 77},
	{IDSp: "sp-78", RegionCode: 78},
}

// ──────────────────────────────────────────────────────────────────────────────
// ShopsManufacturer: retiros de circulación por punto de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestShopsManufacturer_AgrupaPorRegionYOrdena(t *testing.T) {
	points := []entity.SalePoint{
		{IDSp: "sp-77a", RegionCode: 77},
		{IDSp: "sp-77b", RegionCode: 77},
		{IDSp: "sp-78", RegionCode: 78},
	}
	rows := []repository.SoldForShops{
		{Dt: date("2022-02-01"), IDSp: "sp-77a", TypeOperation: entity.OpOtherWithdrawal},
		{Dt: date("2022-02-02"), IDSp: "sp-77b", TypeOperation: entity.OpOtherWithdrawal},
		{Dt: date("2022-02-03"), IDSp: "sp-77b", TypeOperation: entity.OpOtherWithdrawal},
		{Dt: date("2022-02-04"), IDSp: "sp-78", TypeOperation: entity.OpOtherWithdrawal},
		// Venta normal: no cuenta como retiro.
		{Dt: date("2022-02-05"), IDSp: "sp-77a", TypeOperation: entity.OpRetailSale},
		// Antes del corte: fuera.
		{Dt: date("2021-12-31"), IDSp: "sp-77a", TypeOperation: entity.OpOtherWithdrawal},
	}

	out := report.ShopsManufacturer(rows, points)
	require.Contains(t, out, "77")
	require.Contains(t, out, "78")

	assert.Equal(t, []string{"sp-77b", "sp-77a"}, out["77"].ID)
	assert.Equal(t, []int64{2, 1}, out["77"].Count)
	assert.Equal(t, []string{"sp-78"}, out["78"].ID)
}

// Un punto de venta sin región en la referencia no aporta al reporte regional
// pero sí a la variante plana sin join.
func TestPuntoSinRegion_ExcluidoDelRegional_IncluidoEnPlano(t *testing.T) {
	rows := []repository.SoldForOffline{
		{Dt: date("2022-03-01"), GTIN: "g-1", IDSp: "sp-desconocido", TypeOperation: entity.OpRetailSale, Cnt: 10},
		{Dt: date("2022-03-01"), GTIN: "g-2", IDSp: "sp-77a", TypeOperation: entity.OpRetailSale, Cnt: 5},
	}

	regional := report.PopularOfflineGtinManufacturerRegion(rows, testPoints)
	require.Contains(t, regional, "77")
	assert.Len(t, regional, 1, "el punto sin región no crea grupo regional")
	assert.Equal(t, []string{"g-2"}, regional["77"].GTIN)

	flat := report.PopularOfflineGtinManufacturer(rows)
	assert.Equal(t, []string{"g-1", "g-2"}, flat.GTIN)
	assert.Equal(t, []int64{10, 5}, flat.Count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Volúmenes
// ──────────────────────────────────────────────────────────────────────────────

func TestVolumesManufacturer_SumaSoloMapeados(t *testing.T) {
	rows := []repository.SoldForVolume{
		{Dt: date("2022-02-01"), IDSp: "sp-77a", Cnt: 3, Price: price("100.00")},
		{Dt: date("2022-02-02"), IDSp: "sp-78", Cnt: 2, Price: price("50.50")},
		{Dt: date("2022-02-03"), IDSp: "sp-sin-region", Cnt: 100, Price: price("999.99")},
		{Dt: date("2021-06-01"), IDSp: "sp-77a", Cnt: 9, Price: price("10.00")},
	}

	out := report.VolumesManufacturer(rows, testPoints)
	assert.Equal(t, int64(5), out.Cnt)
	assert.InDelta(t, 150.50, out.Price, 1e-9)
}

func TestVolumesManufacturerRegion_HeatmapNormalizado(t *testing.T) {
	rows := []repository.SoldForVolume{
		{Dt: date("2022-02-01"), IDSp: "sp-77a", Cnt: 10, Price: price("1000")},
		{Dt: date("2022-02-02"), IDSp: "sp-78", Cnt: 5, Price: price("400")},
	}

	out := report.VolumesManufacturerRegion(rows, testPoints, testCatalog)
	// Todas las regiones del catálogo aparecen, también las sin actividad.
	require.Len(t, out, len(testCatalog))

	byCode := make(map[int]report.MapPoint, len(out))
	for _, p := range out {
		byCode[p.Code] = p
	}
	assert.Equal(t, 1.0, byCode[77].NormSum, "la región con máximo mapea a 1")
	assert.Equal(t, 0.0, byCode[50].NormSum, "la región sin actividad mapea a 0")
	assert.Greater(t, byCode[78].NormSum, 0.0)
	assert.Less(t, byCode[78].NormSum, 1.0)

	for _, p := range out {
		assert.GreaterOrEqual(t, p.NormSum, 0.0)
		assert.LessOrEqual(t, p.NormSum, 1.0)
		assert.GreaterOrEqual(t, p.CntNorm, 0.0)
		assert.LessOrEqual(t, p.CntNorm, 1.0)
	}
}

// Regiones mapeadas pero fuera del catálogo no rompen la plantilla del mapa.
func TestVolumesManufacturerRegion_RegionFueraDeCatalogo(t *testing.T) {
	points := []repository.SalePointRegion{{IDSp: "sp-99", RegionCode: 99}}
	rows := []repository.SoldForVolume{
		{Dt: date("2022-02-01"), IDSp: "sp-99", Cnt: 10, Price: price("1000")},
	}

	out := report.VolumesManufacturerRegion(rows, points, testCatalog)
	require.Len(t, out, len(testCatalog))
	for _, p := range out {
		assert.Equal(t, 0.0, p.NormSum)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Online / conteos
// ──────────────────────────────────────────────────────────────────────────────

func TestPopularOnlineGtin_CorteSeptiembre(t *testing.T) {
	rows := []repository.SoldForOnline{
		{Dt: date("2022-09-15"), GTIN: "g-1", TypeOperation: entity.OpRemoteSale, Cnt: 7},
		// Antes del corte online aunque después del corte general.
		{Dt: date("2022-03-01"), GTIN: "g-2", TypeOperation: entity.OpRemoteSale, Cnt: 50},
		// Venta física: no cuenta.
		{Dt: date("2022-10-01"), GTIN: "g-3", TypeOperation: entity.OpRetailSale, Cnt: 9},
	}

	out := report.PopularOnlineGtinManufacturer(rows)
	assert.Equal(t, []string{"g-1"}, out.GTIN)
	assert.Equal(t, []int64{7}, out.Count)
}

func TestShopsManufacturerCountRegion_Top5(t *testing.T) {
	points := make([]repository.SalePointRegion, 0, 7)
	rows := make([]repository.SoldForShopCount, 0, 7)
	for i := 0; i < 7; i++ {
		id := string(rune('a' + i))
		points = append(points, repository.SalePointRegion{IDSp: id, RegionCode: 77})
		rows = append(rows, repository.SoldForShopCount{Dt: date("2022-02-01"), IDSp: id, Cnt: int64(i + 1)})
	}

	out := report.ShopsManufacturerCountRegion(rows, points)
	require.Contains(t, out, "77")
	assert.Len(t, out["77"].ID, 5, "el ranking regional se trunca a 5")
	assert.Equal(t, "g", out["77"].ID[0])
	assert.Equal(t, int64(7), out["77"].Count[0])
}

func TestShopsManufacturerCount_SinJoin(t *testing.T) {
	rows := []repository.SoldForShopCount{
		{Dt: date("2022-02-01"), IDSp: "sp-sin-region", Cnt: 4},
		{Dt: date("2022-02-01"), IDSp: "sp-77a", Cnt: 2},
	}
	out := report.ShopsManufacturerCount(rows)
	assert.Equal(t, []string{"sp-sin-region", "sp-77a"}, out.ID)
}
