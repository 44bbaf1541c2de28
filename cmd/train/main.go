// train ajusta los cuatro artefactos de pronóstico desde los rollups
// agregados de la base y los escribe bajo ML_DIR. Se corre offline cuando
// llega un histórico nuevo; el API recarga los artefactos por petición.
//
// Uso: go run ./cmd/train -user <id> [-horizon 30]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	"github.com/tu-usuario/goods-trace/internal/forecast"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/postgres"
	"github.com/tu-usuario/goods-trace/pkg/config"
)

func main() {
	userID := flag.String("user", "", "usuario dueño de la serie agregada (requerido)")
	horizon := flag.Int("horizon", 30, "días a pronosticar")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "Falta -user")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	series, err := postgres.NewAggregateRepository(pool).AgrSoldSeries(ctx, *userID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer serie agregada: %v\n", err)
		os.Exit(1)
	}
	if len(series) == 0 {
		fmt.Fprintln(os.Stderr, "La serie agregada está vacía")
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.ML.Dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Crear ML_DIR: %v\n", err)
		os.Exit(1)
	}

	// Semanal estacional para el agregado (ciclo de compra semanal), media
	// móvil para las series del fabricante, más cortas y ruidosas.
	artifacts := []struct {
		name  string
		model string
		value func(repository.AgrSoldPoint) float64
	}{
		{"volume_agg", forecast.ModelSeasonalNaive, func(p repository.AgrSoldPoint) float64 { return p.SumPrice.InexactFloat64() }},
		{"count_agg", forecast.ModelSeasonalNaive, func(p repository.AgrSoldPoint) float64 { return float64(p.Cnt) }},
		{"volume_manufacturer", forecast.ModelMovingAverage, func(p repository.AgrSoldPoint) float64 { return p.SumPrice.InexactFloat64() }},
		{"count_manufacturer", forecast.ModelMovingAverage, func(p repository.AgrSoldPoint) float64 { return float64(p.Cnt) }},
	}

	for _, a := range artifacts {
		obs := make([]forecast.Observation, 0, len(series))
		for _, p := range series {
			obs = append(obs, forecast.Observation{
				Dt:      p.Dt,
				Segment: strconv.Itoa(p.RegionCode),
				Value:   a.value(p),
			})
		}
		ts := forecast.PrepareAggregate(obs)

		pipe := forecast.NewPipeline(a.model, *horizon, 7, 7)
		pipe.Fit(ts)

		path := cfg.ML.PipelinePath(a.name)
		if err := pipe.Save(path); err != nil {
			fmt.Fprintf(os.Stderr, "Guardar %s: %v\n", path, err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d segmentos, horizonte %d\n", a.name, len(ts.Segments()), *horizon)
	}
}
