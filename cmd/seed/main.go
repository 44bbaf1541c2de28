// seed carga los datos de referencia en PostgreSQL: los puntos de venta
// (sale_points.csv, cabecera id_sp_,region_code,city_with_type,postal_code)
// y el mapeo organización -> región (organization_regions.csv, cabecera
// inn,region_code).
//
// Uso: go run ./cmd/seed -dir ./data [-encoding windows-1251]
// La conexión se toma de las mismas variables de entorno que el API.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/tu-usuario/goods-trace/internal/domain/entity"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/postgres"
	"github.com/tu-usuario/goods-trace/internal/ingest"
	"github.com/tu-usuario/goods-trace/pkg/config"
)

func main() {
	dir := flag.String("dir", "./data", "directorio con sale_points.csv y organization_regions.csv")
	encoding := flag.String("encoding", "", `charset de los CSVs ("" = UTF-8, o windows-1251)`)
	flag.Parse()

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

	refRepo := postgres.NewReferenceRepository(pool)

	points, err := loadSalePoints(filepath.Join(*dir, "sale_points.csv"), *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer sale_points.csv: %v\n", err)
		os.Exit(1)
	}
	n, err := refRepo.UpsertSalePoints(ctx, points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Upsert puntos de venta: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("sale_points: %d filas\n", n)

	orgs, err := loadOrganizationRegions(filepath.Join(*dir, "organization_regions.csv"), *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer organization_regions.csv: %v\n", err)
		os.Exit(1)
	}
	n, err = refRepo.UpsertOrganizationRegions(ctx, orgs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Upsert regiones de organizaciones: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("organization_regions: %d filas\n", n)
}

func openDecoded(path, encoding string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if encoding == "windows-1251" {
		return struct {
			io.Reader
			io.Closer
		}{transform.NewReader(f, charmap.Windows1251.NewDecoder()), f}, nil
	}
	return f, nil
}

// loadSalePoints reutiliza el parser de ingestión: el archivo tiene la misma
// cabecera que los uploads de puntos de venta.
func loadSalePoints(path, encoding string) ([]entity.SalePoint, error) {
	r, err := openDecoded(path, encoding)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	batch, err := ingest.ParseFile(r, "")
	if err != nil {
		return nil, err
	}
	if len(batch.SalePoints) == 0 {
		return nil, fmt.Errorf("el archivo no contiene puntos de venta")
	}
	return batch.SalePoints, nil
}

func loadOrganizationRegions(path, encoding string) ([]entity.OrganizationRegion, error) {
	r, err := openDecoded(path, encoding)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	if len(header) != 2 || header[0] != "inn" || header[1] != "region_code" {
		return nil, fmt.Errorf("cabecera inesperada %v, se espera inn,region_code", header)
	}

	var orgs []entity.OrganizationRegion
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		code, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, fmt.Errorf("línea %d: region_code %q: %w", line, rec[1], err)
		}
		orgs = append(orgs, entity.OrganizationRegion{INN: rec[0], RegionCode: code})
	}
	return orgs, nil
}
