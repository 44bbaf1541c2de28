package forecast

import (
	"encoding/gob"
	"fmt"
	"os"
	"time"
)

// Modelos soportados por los artefactos. El modelo en sí es propiedad del
// pipeline de entrenamiento externo; aquí solo se ejecuta su inferencia.
const (
	ModelSeasonalNaive = "seasonal_naive"
	ModelMovingAverage = "moving_average"
)

// pipelineSpec hiperparámetros serializados dentro del artefacto.
type pipelineSpec struct {
	Horizon int    // pasos diarios a pronosticar
	Model   string // seasonal_naive | moving_average
	Window  int    // ventana de moving_average
	Season  int    // periodo estacional de seasonal_naive (días)
}

// artifact contenido gob del archivo .pipeline: hiperparámetros más el estado
// ajustado por segmento (deriva diaria estimada en el entrenamiento offline).
type artifact struct {
	Spec  pipelineSpec
	Drift map[string]float64
}

// Pipeline colaborador de pronóstico cargado desde un artefacto en disco.
// Seguro para lectura concurrente una vez cargado; Fit lo muta y por tanto
// cada petición que re-ajusta debe cargar su propia instancia.
type Pipeline struct {
	spec  pipelineSpec
	drift map[string]float64
}

// ForecastPoint valor pronosticado para un (segmento, fecha futura).
type ForecastPoint struct {
	Dt      time.Time
	Segment string
	Value   float64
}

// Load lee un artefacto gob desde la ruta dada.
func Load(path string) (*Pipeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir artefacto %s: %w", path, err)
	}
	defer f.Close()

	var a artifact
	if err := gob.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("decodificar artefacto %s: %w", path, err)
	}
	if a.Spec.Horizon <= 0 {
		return nil, fmt.Errorf("artefacto %s: horizonte inválido %d", path, a.Spec.Horizon)
	}
	if a.Drift == nil {
		a.Drift = make(map[string]float64)
	}
	return &Pipeline{spec: a.Spec, drift: a.Drift}, nil
}

// Save persiste el pipeline como artefacto gob (lo usa la herramienta de
// entrenamiento offline y los tests).
func (p *Pipeline) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("crear artefacto %s: %w", path, err)
	}
	defer f.Close()
	return gob.NewEncoder(f).Encode(artifact{Spec: p.spec, Drift: p.drift})
}

// Horizon pasos que produce Forecast por segmento.
func (p *Pipeline) Horizon() int { return p.spec.Horizon }

// Fit re-estima la deriva diaria por segmento sobre la serie dada
// (pendiente media entre primer y último valor). Solo los pipelines a nivel
// fabricante se re-ajustan; a nivel agregado se usa la deriva del artefacto.
func (p *Pipeline) Fit(ts Series) {
	drift := make(map[string]float64, len(ts))
	for _, seg := range ts.Segments() {
		pts := ts[seg]
		if len(pts) < 2 {
			drift[seg] = 0
			continue
		}
		span := float64(len(pts) - 1)
		drift[seg] = (pts[len(pts)-1].Value - pts[0].Value) / span
	}
	p.drift = drift
}

// Forecast produce Horizon valores futuros por segmento a partir de la cola
// de la serie: base del modelo (media móvil o valor estacional) más la deriva
// acumulada. Los valores se truncan en cero, el dominio no admite negativos.
func (p *Pipeline) Forecast(ts Series) []ForecastPoint {
	var out []ForecastPoint
	for _, seg := range ts.Segments() {
		pts := ts[seg]
		if len(pts) == 0 {
			continue
		}
		history := make([]float64, len(pts))
		for i, pt := range pts {
			history[i] = pt.Value
		}
		lastDt := pts[len(pts)-1].Dt
		drift := p.drift[seg]

		for step := 1; step <= p.spec.Horizon; step++ {
			base := p.baseValue(history)
			v := base + drift
			if v < 0 {
				v = 0
			}
			history = append(history, v)
			out = append(out, ForecastPoint{
				Dt:      lastDt.AddDate(0, 0, step),
				Segment: seg,
				Value:   v,
			})
		}
	}
	return out
}

func (p *Pipeline) baseValue(history []float64) float64 {
	switch p.spec.Model {
	case ModelSeasonalNaive:
		season := p.spec.Season
		if season <= 0 {
			season = 7
		}
		if len(history) >= season {
			return history[len(history)-season]
		}
		return history[len(history)-1]
	case ModelMovingAverage:
		window := p.spec.Window
		if window <= 0 {
			window = 7
		}
		if window > len(history) {
			window = len(history)
		}
		var sum float64
		for _, v := range history[len(history)-window:] {
			sum += v
		}
		return sum / float64(window)
	default:
		return history[len(history)-1]
	}
}

// NewPipeline construye un pipeline sin entrenar (herramienta offline y tests).
func NewPipeline(model string, horizon, window, season int) *Pipeline {
	return &Pipeline{
		spec:  pipelineSpec{Horizon: horizon, Model: model, Window: window, Season: season},
		drift: make(map[string]float64),
	}
}
