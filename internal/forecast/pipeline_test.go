package forecast_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/goods-trace/internal/forecast"
)

func flatSeries(seg string, start string, values ...float64) forecast.Series {
	pts := make([]forecast.Point, len(values))
	d := date(start)
	for i, v := range values {
		pts[i] = forecast.Point{Dt: d.AddDate(0, 0, i), Value: v}
	}
	return forecast.Series{seg: pts}
}

func TestPipeline_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volume_agg.pipeline")

	p := forecast.NewPipeline(forecast.ModelMovingAverage, 14, 7, 0)
	p.Fit(flatSeries("77", "2022-06-01", 1, 2, 3, 4, 5))
	require.NoError(t, p.Save(path))

	loaded, err := forecast.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 14, loaded.Horizon())

	// El pipeline cargado pronostica igual que el original.
	ts := flatSeries("77", "2022-06-01", 5, 5, 5, 5, 5)
	assert.Equal(t, p.Forecast(ts), loaded.Forecast(ts))
}

func TestLoad_ArchivoInexistente(t *testing.T) {
	_, err := forecast.Load(filepath.Join(t.TempDir(), "no-existe.pipeline"))
	assert.Error(t, err)
}

func TestForecast_HorizontePorSegmento(t *testing.T) {
	p := forecast.NewPipeline(forecast.ModelMovingAverage, 5, 3, 0)
	ts := forecast.Series{}
	for seg, pts := range flatSeries("77", "2022-06-01", 10, 10, 10) {
		ts[seg] = pts
	}
	for seg, pts := range flatSeries("78", "2022-06-01", 4, 4, 4) {
		ts[seg] = pts
	}

	out := p.Forecast(ts)
	require.Len(t, out, 10, "horizonte 5 por cada uno de los 2 segmentos")

	perSeg := make(map[string]int)
	for _, fp := range out {
		perSeg[fp.Segment]++
	}
	assert.Equal(t, 5, perSeg["77"])
	assert.Equal(t, 5, perSeg["78"])
}

func TestForecast_FechasConsecutivasDesdeElFinal(t *testing.T) {
	p := forecast.NewPipeline(forecast.ModelMovingAverage, 3, 3, 0)
	out := p.Forecast(flatSeries("77", "2022-06-01", 1, 2, 3))

	require.Len(t, out, 3)
	assert.Equal(t, date("2022-06-04"), out[0].Dt)
	assert.Equal(t, date("2022-06-05"), out[1].Dt)
	assert.Equal(t, date("2022-06-06"), out[2].Dt)
}

// Serie constante sin deriva: la media móvil repite el nivel.
func TestForecast_MediaMovilSerieConstante(t *testing.T) {
	p := forecast.NewPipeline(forecast.ModelMovingAverage, 4, 3, 0)
	out := p.Forecast(flatSeries("77", "2022-06-01", 8, 8, 8, 8))
	for _, fp := range out {
		assert.Equal(t, 8.0, fp.Value)
	}
}

// Estacional: el valor de hace una semana se repite.
func TestForecast_EstacionalRepiteCiclo(t *testing.T) {
	p := forecast.NewPipeline(forecast.ModelSeasonalNaive, 7, 0, 7)
	// Dos semanas con un pico los lunes.
	week := []float64{100, 1, 1, 1, 1, 1, 1}
	out := p.Forecast(flatSeries("77", "2022-06-06", append(append([]float64{}, week...), week...)...))

	require.Len(t, out, 7)
	assert.Equal(t, 100.0, out[0].Value, "el pico semanal reaparece en el mismo día del ciclo")
	assert.Equal(t, 1.0, out[1].Value)
}

// La deriva negativa no puede llevar el pronóstico por debajo de cero.
func TestForecast_TruncaEnCero(t *testing.T) {
	p := forecast.NewPipeline(forecast.ModelMovingAverage, 10, 2, 0)
	ts := flatSeries("77", "2022-06-01", 10, 5, 0)
	p.Fit(ts) // deriva (0-10)/2 = -5 por día

	for _, fp := range p.Forecast(ts) {
		assert.GreaterOrEqual(t, fp.Value, 0.0)
	}
}

func TestFit_DerivaPorSegmento(t *testing.T) {
	p := forecast.NewPipeline(forecast.ModelMovingAverage, 2, 2, 0)
	ts := flatSeries("77", "2022-06-01", 0, 10, 20)
	p.Fit(ts)

	out := p.Forecast(flatSeries("77", "2022-06-01", 20, 20))
	require.NotEmpty(t, out)
	// Nivel 20 más deriva 10 por día.
	assert.Equal(t, 30.0, out[0].Value)
}

// Un artefacto con horizonte inválido se rechaza al cargar.
func TestLoad_HorizonteInvalido(t *testing.T) {
	path := filepath.Join(t.TempDir(), "malo.pipeline")
	p := forecast.NewPipeline(forecast.ModelMovingAverage, 0, 3, 0)
	require.NoError(t, p.Save(path))

	_, err := forecast.Load(path)
	assert.Error(t, err)
}

func TestForecast_SegmentoVacioSeOmite(t *testing.T) {
	p := forecast.NewPipeline(forecast.ModelMovingAverage, 3, 3, 0)
	ts := forecast.Series{"77": nil}
	assert.Empty(t, p.Forecast(ts))
}
