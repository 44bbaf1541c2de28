// Package regions carga el catálogo estático de regiones federales desde un
// archivo JSON al arrancar el proceso. El catálogo es un valor de solo
// lectura que se inyecta donde haga falta; no hay estado global de paquete.
package regions

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Region entrada del catálogo: código numérico federal más metadatos legibles.
type Region struct {
	Short string `json:"short"`
	Name  string `json:"name"`
	Code  int    `json:"code"`
}

// Catalog mapa código de región -> metadatos. Solo lectura tras Load.
type Catalog map[int]Region

// Load lee el catálogo desde un JSON con claves numéricas de región:
//
//	{"77": {"short": "Мо", "name": "Москва", "code": 77}, ...}
func Load(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer catálogo de regiones: %w", err)
	}
	var byKey map[string]Region
	if err := json.Unmarshal(raw, &byKey); err != nil {
		return nil, fmt.Errorf("decodificar catálogo de regiones: %w", err)
	}
	cat := make(Catalog, len(byKey))
	for _, r := range byKey {
		if r.Code == 0 {
			return nil, fmt.Errorf("región %q sin código", r.Name)
		}
		cat[r.Code] = r
	}
	return cat, nil
}

// Codes devuelve los códigos del catálogo en orden ascendente (salida estable).
func (c Catalog) Codes() []int {
	codes := make([]int, 0, len(c))
	for code := range c {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
