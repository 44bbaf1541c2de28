// Package report implementa las transformaciones de reporte del dashboard
// como funciones puras sobre slices de filas: hash-join contra los puntos de
// venta, group-by con acumulador que conserva orden de inserción, sort
// estable descendente y truncado top-N.
package report

import (
	"sort"

	"github.com/tu-usuario/goods-trace/internal/domain/repository"
)

// regionIndex hash-join side: id_sp_ -> region_code.
type regionIndex map[string]int

func buildRegionIndex(points []repository.SalePointRegion) regionIndex {
	idx := make(regionIndex, len(points))
	for _, p := range points {
		idx[p.IDSp] = p.RegionCode
	}
	return idx
}

// groupAccum acumulador group-by que conserva el orden de primera aparición
// de cada clave. Los empates del sort descendente se resuelven por ese orden.
type groupAccum[K comparable] struct {
	keys []K
	sums map[K]int64
}

func newGroupAccum[K comparable]() *groupAccum[K] {
	return &groupAccum[K]{sums: make(map[K]int64)}
}

func (g *groupAccum[K]) Add(k K, v int64) {
	if _, ok := g.sums[k]; !ok {
		g.keys = append(g.keys, k)
	}
	g.sums[k] += v
}

// groupRow par (clave, suma) ya materializado.
type groupRow[K comparable] struct {
	Key K
	Sum int64
}

// rows devuelve los grupos en orden de primera aparición.
func (g *groupAccum[K]) rows() []groupRow[K] {
	out := make([]groupRow[K], 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, groupRow[K]{Key: k, Sum: g.sums[k]})
	}
	return out
}

// topNDesc ordena descendente por suma (estable: empates conservan el orden
// de entrada) y trunca a n.
func topNDesc[K comparable](rows []groupRow[K], n int) []groupRow[K] {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Sum > rows[j].Sum })
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

// regionKey clave compuesta (región, identificador) para group-by de dos niveles.
type regionKey struct {
	Region int
	ID     string
}

// minMaxNormalize normaliza in-place a [0,1]: el mínimo mapea a 0 y el máximo
// a 1. Si todos los valores son iguales (o el mapa está vacío) todo queda en 0,
// igual que el fillna(0) tras una división 0/0.
func minMaxNormalize(values map[int]float64) {
	if len(values) == 0 {
		return
	}
	first := true
	var lo, hi float64
	for _, v := range values {
		if first {
			lo, hi = v, v
			first = false
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	span := hi - lo
	for k, v := range values {
		if span == 0 {
			values[k] = 0
			continue
		}
		values[k] = (v - lo) / span
	}
}
