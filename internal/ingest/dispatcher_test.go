package ingest_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/goods-trace/internal/domain"
	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/ingest"
)

const testUserID = "00000000-0000-0000-0000-000000000001"

func parse(t *testing.T, csv string) (ingest.Batch, error) {
	t.Helper()
	return ingest.ParseFile(strings.NewReader(csv), testUserID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Detección de cabeceras
// ──────────────────────────────────────────────────────────────────────────────

func TestDetect_LasSieteCabeceras(t *testing.T) {
	cases := []struct {
		header string
		kind   ingest.Kind
	}{
		{"dt,inn,gtin,prid,operation_type,cnt", ingest.KindProduced},
		{"dt,gtin,prid,inn,id_sp_,type_operation,price,cnt", ingest.KindSold},
		{"dt,gtin,prid,sender_inn,receiver_inn,cnt_moved", ingest.KindTransported},
		{"dt,region_code,cnt,cnt_assortment,cnt_brand", ingest.KindAgrProduction},
		{"dt,region_code,sum_price,cnt,cnt_assortment,cnt_brand", ingest.KindAgrSold},
		{"dt,region_code,cnt_moved,cnt_assortment,cnt_brand", ingest.KindAgrTransported},
		{"id_sp_,region_code,city_with_type,postal_code", ingest.KindSalePoints},
	}
	for _, tc := range cases {
		kind, err := ingest.Detect(strings.Split(tc.header, ","))
		require.NoError(t, err, tc.header)
		assert.Equal(t, tc.kind, kind, tc.header)
	}
}

// Cabecera desconocida: error explícito, no un no-op silencioso.
func TestDetect_CabeceraDesconocida(t *testing.T) {
	_, err := ingest.Detect([]string{"dt", "algo", "otro"})
	assert.ErrorIs(t, err, domain.ErrUnknownHeader)
}

// El orden de las columnas cuenta: una permutación no es la misma variante.
func TestDetect_OrdenDistintoNoEmpareja(t *testing.T) {
	_, err := ingest.Detect([]string{"inn", "dt", "gtin", "prid", "operation_type", "cnt"})
	assert.ErrorIs(t, err, domain.ErrUnknownHeader)
}

// ──────────────────────────────────────────────────────────────────────────────
// Parseo por variante
// ──────────────────────────────────────────────────────────────────────────────

func TestParseFile_Produced(t *testing.T) {
	batch, err := parse(t, "dt,inn,gtin,prid,operation_type,cnt\n"+
		"2022-03-01,7701234567,04600000000001,pr-1,production,15\n"+
		"2022-03-02,7701234567,04600000000002,pr-1,production,7\n")
	require.NoError(t, err)

	assert.Equal(t, ingest.KindProduced, batch.Kind)
	require.Len(t, batch.Produced, 2)
	assert.Equal(t, 2, batch.Len())

	row := batch.Produced[0]
	assert.Equal(t, "2022-03-01", row.Dt.Format("2006-01-02"))
	assert.Equal(t, "7701234567", row.INN)
	assert.Equal(t, "04600000000001", row.GTIN)
	assert.Equal(t, "pr-1", row.PrID)
	assert.Equal(t, int64(15), row.Cnt)
	assert.Equal(t, testUserID, row.UserID)
}

func TestParseFile_Sold(t *testing.T) {
	batch, err := parse(t, "dt,gtin,prid,inn,id_sp_,type_operation,price,cnt\n"+
		"2022-04-10,04600000000001,pr-1,7701234567,sp-77,"+entity.OpRetailSale+",199.90,3\n")
	require.NoError(t, err)

	assert.Equal(t, ingest.KindSold, batch.Kind)
	require.Len(t, batch.Sold, 1)

	row := batch.Sold[0]
	assert.Equal(t, "sp-77", row.IDSp)
	assert.Equal(t, entity.OpRetailSale, row.TypeOperation)
	assert.True(t, row.Price.Equal(decimal.RequireFromString("199.90")))
	assert.Equal(t, int64(3), row.Cnt)
}

func TestParseFile_Transported(t *testing.T) {
	batch, err := parse(t, "dt,gtin,prid,sender_inn,receiver_inn,cnt_moved\n"+
		"2022-05-01,04600000000001,pr-1,7701234567,7809876543,120\n")
	require.NoError(t, err)

	assert.Equal(t, ingest.KindTransported, batch.Kind)
	require.Len(t, batch.Transported, 1)
	assert.Equal(t, "7809876543", batch.Transported[0].ReceiverINN)
	assert.Equal(t, int64(120), batch.Transported[0].CntMoved)
}

func TestParseFile_AgrProduction(t *testing.T) {
	batch, err := parse(t, "dt,region_code,cnt,cnt_assortment,cnt_brand\n"+
		"2022-06-01,77,1000,12,4\n")
	require.NoError(t, err)

	require.Len(t, batch.AgrProduction, 1)
	row := batch.AgrProduction[0]
	assert.Equal(t, 77, row.RegionCode)
	assert.Equal(t, int64(1000), row.Cnt)
	assert.Equal(t, int64(12), row.CntAssortment)
	assert.Equal(t, int64(4), row.CntBrand)
}

func TestParseFile_AgrSold(t *testing.T) {
	batch, err := parse(t, "dt,region_code,sum_price,cnt,cnt_assortment,cnt_brand\n"+
		"2022-06-01,78,34500.50,230,9,3\n")
	require.NoError(t, err)

	require.Len(t, batch.AgrSold, 1)
	assert.Equal(t, 78, batch.AgrSold[0].RegionCode)
	assert.True(t, batch.AgrSold[0].SumPrice.Equal(decimal.RequireFromString("34500.50")))
}

func TestParseFile_AgrTransported(t *testing.T) {
	batch, err := parse(t, "dt,region_code,cnt_moved,cnt_assortment,cnt_brand\n"+
		"2022-06-01,50,800,20,6\n")
	require.NoError(t, err)

	require.Len(t, batch.AgrTransported, 1)
	assert.Equal(t, int64(800), batch.AgrTransported[0].CntMoved)
}

func TestParseFile_SalePoints(t *testing.T) {
	batch, err := parse(t, "id_sp_,region_code,city_with_type,postal_code\n"+
		"sp-77,77,г Москва,101000\n"+
		"sp-78,78,г Санкт-Петербург,190000\n")
	require.NoError(t, err)

	assert.Equal(t, ingest.KindSalePoints, batch.Kind)
	require.Len(t, batch.SalePoints, 2)
	assert.Equal(t, "г Москва", batch.SalePoints[0].CityWithType)
	assert.Equal(t, 77, batch.SalePoints[0].RegionCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos de error
// ──────────────────────────────────────────────────────────────────────────────

// Cabecera desconocida: ErrUnknownHeader y cero filas parseadas.
func TestParseFile_CabeceraDesconocida_CeroFilas(t *testing.T) {
	batch, err := parse(t, "dt,foo,bar\n2022-01-01,x,y\n")
	assert.ErrorIs(t, err, domain.ErrUnknownHeader)
	assert.Equal(t, 0, batch.Len())
}

// Un numérico malformado aborta el archivo completo con el número de línea.
func TestParseFile_NumericoMalformado_Aborta(t *testing.T) {
	_, err := parse(t, "dt,inn,gtin,prid,operation_type,cnt\n"+
		"2022-03-01,7701234567,04600000000001,pr-1,production,10\n"+
		"2022-03-02,7701234567,04600000000001,pr-1,production,no-es-numero\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 3")
}

// Una fecha malformada también aborta.
func TestParseFile_FechaMalformada_Aborta(t *testing.T) {
	_, err := parse(t, "dt,inn,gtin,prid,operation_type,cnt\n"+
		"01/03/2022,7701234567,04600000000001,pr-1,production,10\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "línea 2")
}

// Una fila con menos columnas que la cabecera la rechaza el lector CSV.
func TestParseFile_FilaCorta_Aborta(t *testing.T) {
	_, err := parse(t, "dt,inn,gtin,prid,operation_type,cnt\n"+
		"2022-03-01,7701234567\n")
	require.Error(t, err)
}

// Archivo vacío (sin cabecera).
func TestParseFile_Vacio(t *testing.T) {
	_, err := parse(t, "")
	require.Error(t, err)
}

// Archivo con solo cabecera: variante detectada, cero filas, sin error.
func TestParseFile_SoloCabecera(t *testing.T) {
	batch, err := parse(t, "dt,inn,gtin,prid,operation_type,cnt\n")
	require.NoError(t, err)
	assert.Equal(t, ingest.KindProduced, batch.Kind)
	assert.Equal(t, 0, batch.Len())
}
