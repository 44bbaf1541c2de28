// Package forecast adapta los datos agregados a la forma que espera el
// pipeline de series temporales, carga artefactos pre-entrenados desde disco
// y convierte el pronóstico de vuelta al vocabulario de reporte.
package forecast

import (
	"sort"
	"time"
)

// Observation fila de entrada cruda: (fecha, segmento, métrica objetivo).
// El segmento es el código de región como string.
type Observation struct {
	Dt      time.Time
	Segment string
	Value   float64
}

// Point valor diario de un segmento.
type Point struct {
	Dt    time.Time
	Value float64
}

// Series serie diaria ancha: segmento -> puntos ordenados por fecha, un punto
// por día calendario.
type Series map[string][]Point

// day trunca a día calendario (las fechas del dominio son naive YYYY-MM-DD).
func day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// collapse deduplica y suma observaciones del mismo (segmento, día).
// Devuelve por segmento el mapa día->suma más su rango [min, max].
func collapse(obs []Observation) map[string]map[time.Time]float64 {
	bySeg := make(map[string]map[time.Time]float64)
	for _, o := range obs {
		if o.Segment == "" || o.Dt.IsZero() {
			continue
		}
		d := day(o.Dt)
		if bySeg[o.Segment] == nil {
			bySeg[o.Segment] = make(map[time.Time]float64)
		}
		bySeg[o.Segment][d] += o.Value
	}
	return bySeg
}

func segmentRange(days map[time.Time]float64) (lo, hi time.Time) {
	first := true
	for d := range days {
		if first {
			lo, hi = d, d
			first = false
			continue
		}
		if d.Before(lo) {
			lo = d
		}
		if d.After(hi) {
			hi = d
		}
	}
	return lo, hi
}

// PrepareAggregate arma la serie por segmento rellenando con cero los días
// calendario faltantes: el dato pre-agregado se asume denso y un hueco
// significa "sin actividad ese día".
func PrepareAggregate(obs []Observation) Series {
	bySeg := collapse(obs)
	out := make(Series, len(bySeg))
	for seg, days := range bySeg {
		lo, hi := segmentRange(days)
		var pts []Point
		for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
			pts = append(pts, Point{Dt: d, Value: days[d]})
		}
		out[seg] = pts
	}
	return out
}

// PrepareManufacturer arma la serie por segmento descartando por completo los
// segmentos con días faltantes: el dato crudo por fabricante es disperso y un
// hueco invalida el ajuste de esa región.
func PrepareManufacturer(obs []Observation) Series {
	bySeg := collapse(obs)
	out := make(Series, len(bySeg))
	for seg, days := range bySeg {
		lo, hi := segmentRange(days)
		expected := int(hi.Sub(lo).Hours()/24) + 1
		if len(days) != expected {
			continue // hueco en el calendario: segmento fuera
		}
		pts := make([]Point, 0, expected)
		for d := lo; !d.After(hi); d = d.AddDate(0, 0, 1) {
			pts = append(pts, Point{Dt: d, Value: days[d]})
		}
		out[seg] = pts
	}
	return out
}

// ImputeRunningMean reemplaza los ceros de cada serie por la media móvil de
// los `window` valores anteriores (transformación previa al re-fit de los
// pipelines a nivel fabricante, ventana 3 en producción).
func ImputeRunningMean(s Series, window int) Series {
	if window <= 0 {
		return s
	}
	out := make(Series, len(s))
	for seg, pts := range s {
		imputed := make([]Point, len(pts))
		copy(imputed, pts)
		for i := range imputed {
			if imputed[i].Value != 0 {
				continue
			}
			var sum float64
			var n int
			for j := i - window; j < i; j++ {
				if j < 0 {
					continue
				}
				sum += imputed[j].Value
				n++
			}
			if n > 0 {
				imputed[i].Value = sum / float64(n)
			}
		}
		out[seg] = imputed
	}
	return out
}

// Segments devuelve los segmentos en orden lexicográfico (salida estable).
func (s Series) Segments() []string {
	segs := make([]string, 0, len(s))
	for seg := range s {
		segs = append(segs, seg)
	}
	sort.Strings(segs)
	return segs
}
