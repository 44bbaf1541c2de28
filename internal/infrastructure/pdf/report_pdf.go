// Package pdf genera la versión imprimible del reporte de volúmenes por
// región (heatmap) para el dashboard.
//
// Layout de la página A4:
//
//	┌──────────────────────────────────────────────────────┐
//	│  HEADER: productor + fecha de generación             │
//	│  ──────────────────────────────────────────────────  │
//	│  TABLA: Código | Región | Facturación | Unidades     │
//	│  (valores normalizados 0–1, una fila por región)     │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/tu-usuario/goods-trace/internal/report"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// RegionVolumesPDF genera el PDF del heatmap de volúmenes por región.
type RegionVolumesPDF struct{}

// NewRegionVolumesPDF construye el generador.
func NewRegionVolumesPDF() *RegionVolumesPDF { return &RegionVolumesPDF{} }

// Generate genera el PDF y devuelve sus bytes.
func (g *RegionVolumesPDF) Generate(username string, points []report.MapPoint) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Volúmenes por región", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(username))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, p := range points {
		m.AddRows(detailRow(p))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generar PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(username string) core.Row {
	return row.New(12).Add(
		col.New(8).Add(
			text.New("Volúmenes de venta por región", props.Text{
				Size: 14, Style: fontstyle.Bold, Color: colorPrimary,
			}),
			text.New("Productor: "+username, props.Text{Top: 7, Size: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(time.Now().Format("2006-01-02"), props.Text{
				Size: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Size: 9, Style: fontstyle.Bold, Color: colorPrimary}
	return row.New(7).Add(
		col.New(2).Add(text.New("Código", header)),
		col.New(5).Add(text.New("Región", header)),
		col.New(3).Add(text.New("Facturación (0–1)", header)),
		col.New(2).Add(text.New("Unidades (0–1)", header)),
	)
}

func detailRow(p report.MapPoint) core.Row {
	cell := props.Text{Size: 8}
	num := props.Text{Size: 8, Align: align.Right}
	return row.New(5).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", p.Code), cell)),
		col.New(5).Add(text.New(p.Name, cell)),
		col.New(3).Add(text.New(fmt.Sprintf("%.3f", p.NormSum), num)),
		col.New(2).Add(text.New(fmt.Sprintf("%.3f", p.CntNorm), num)),
	)
}
