package usecase

import (
	"context"
	"strconv"

	"github.com/tu-usuario/goods-trace/internal/application/dto"
	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	"github.com/tu-usuario/goods-trace/internal/forecast"
	"github.com/tu-usuario/goods-trace/pkg/logger"
)

// Nombres de los artefactos de pronóstico en ML_DIR.
const (
	artifactVolumeAgg          = "volume_agg"
	artifactCountAgg           = "count_agg"
	artifactVolumeManufacturer = "volume_manufacturer"
	artifactCountManufacturer  = "count_manufacturer"
)

// imputeWindow ventana de la media corrida para imputar ceros en las series
// del fabricante antes de re-ajustar la deriva.
const imputeWindow = 3

// PipelinePaths resuelve el nombre de un artefacto a su ruta en disco.
type PipelinePaths interface {
	PipelinePath(name string) string
}

// ForecastUseCase pronósticos de ventas: a nivel agregado (rollups por
// región) y a nivel fabricante (eventos propios del usuario). Los artefactos
// se cargan de disco en cada petición para recoger re-entrenamientos sin
// reiniciar el servicio.
type ForecastUseCase struct {
	agg   repository.AggregateRepository
	goods repository.GoodsRepository
	ref   repository.ReferenceRepository
	paths PipelinePaths
	log   *logger.Logger
}

// NewForecastUseCase construye el caso de uso de pronósticos.
func NewForecastUseCase(
	agg repository.AggregateRepository,
	goods repository.GoodsRepository,
	ref repository.ReferenceRepository,
	paths PipelinePaths,
	log *logger.Logger,
) *ForecastUseCase {
	return &ForecastUseCase{agg: agg, goods: goods, ref: ref, paths: paths, log: log}
}

// PredictVolumeAgg pronóstico de facturación diaria por región sobre los
// rollups agregados.
func (uc *ForecastUseCase) PredictVolumeAgg(ctx context.Context, userID string) ([]dto.VolumeForecastRecord, error) {
	obs, err := uc.aggObservations(ctx, userID, func(p repository.AgrSoldPoint) float64 {
		return p.SumPrice.InexactFloat64()
	})
	if err != nil {
		return nil, err
	}
	points, err := uc.predictAggregate(artifactVolumeAgg, obs)
	if err != nil {
		return nil, err
	}
	return toVolumeRecords(points), nil
}

// PredictCountAgg pronóstico de unidades diarias por región sobre los
// rollups agregados.
func (uc *ForecastUseCase) PredictCountAgg(ctx context.Context, userID string) ([]dto.CountForecastRecord, error) {
	obs, err := uc.aggObservations(ctx, userID, func(p repository.AgrSoldPoint) float64 {
		return float64(p.Cnt)
	})
	if err != nil {
		return nil, err
	}
	points, err := uc.predictAggregate(artifactCountAgg, obs)
	if err != nil {
		return nil, err
	}
	return toCountRecords(points), nil
}

// PredictVolumeManufacturer pronóstico de facturación diaria por región
// construido desde los eventos de venta del propio fabricante.
func (uc *ForecastUseCase) PredictVolumeManufacturer(ctx context.Context, userID string) ([]dto.VolumeForecastRecord, error) {
	obs, err := uc.manufacturerObservations(ctx, userID, func(r repository.SoldForVolume) float64 {
		return r.Price.InexactFloat64()
	})
	if err != nil {
		return nil, err
	}
	points, err := uc.predictManufacturer(artifactVolumeManufacturer, obs)
	if err != nil {
		return nil, err
	}
	return toVolumeRecords(points), nil
}

// PredictCountManufacturer pronóstico de unidades diarias por región
// construido desde los eventos de venta del propio fabricante.
func (uc *ForecastUseCase) PredictCountManufacturer(ctx context.Context, userID string) ([]dto.CountForecastRecord, error) {
	obs, err := uc.manufacturerObservations(ctx, userID, func(r repository.SoldForVolume) float64 {
		return float64(r.Cnt)
	})
	if err != nil {
		return nil, err
	}
	points, err := uc.predictManufacturer(artifactCountManufacturer, obs)
	if err != nil {
		return nil, err
	}
	return toCountRecords(points), nil
}

// aggObservations proyecta la serie agregada de ventas a observaciones
// (fecha, región, métrica).
func (uc *ForecastUseCase) aggObservations(ctx context.Context, userID string, value func(repository.AgrSoldPoint) float64) ([]forecast.Observation, error) {
	series, err := uc.agg.AgrSoldSeries(ctx, userID)
	if err != nil {
		return nil, err
	}
	obs := make([]forecast.Observation, 0, len(series))
	for _, p := range series {
		obs = append(obs, forecast.Observation{
			Dt:      p.Dt,
			Segment: strconv.Itoa(p.RegionCode),
			Value:   value(p),
		})
	}
	return obs, nil
}

// manufacturerObservations proyecta los eventos de venta del usuario a
// observaciones por región: join en memoria con los puntos de venta, las
// filas sin región mapeada se descartan.
func (uc *ForecastUseCase) manufacturerObservations(ctx context.Context, userID string, value func(repository.SoldForVolume) float64) ([]forecast.Observation, error) {
	rows, err := uc.goods.SoldForVolume(ctx, userID)
	if err != nil {
		return nil, err
	}
	points, err := uc.ref.SalePointRegions(ctx)
	if err != nil {
		return nil, err
	}
	byShop := make(map[string]int, len(points))
	for _, p := range points {
		byShop[p.IDSp] = p.RegionCode
	}
	obs := make([]forecast.Observation, 0, len(rows))
	for _, r := range rows {
		region, ok := byShop[r.IDSp]
		if !ok {
			continue
		}
		obs = append(obs, forecast.Observation{
			Dt:      r.Dt,
			Segment: strconv.Itoa(region),
			Value:   value(r),
		})
	}
	return obs, nil
}

// predictAggregate rellena días faltantes con cero y aplica el artefacto tal
// cual, sin re-ajuste.
func (uc *ForecastUseCase) predictAggregate(name string, obs []forecast.Observation) ([]forecast.ForecastPoint, error) {
	ts := forecast.PrepareAggregate(obs)
	p, err := forecast.Load(uc.paths.PipelinePath(name))
	if err != nil {
		return nil, err
	}
	return p.Forecast(ts), nil
}

// predictManufacturer descarta segmentos con huecos, imputa ceros con media
// corrida y re-ajusta la deriva sobre la serie del usuario antes de
// pronosticar.
func (uc *ForecastUseCase) predictManufacturer(name string, obs []forecast.Observation) ([]forecast.ForecastPoint, error) {
	ts := forecast.ImputeRunningMean(forecast.PrepareManufacturer(obs), imputeWindow)
	p, err := forecast.Load(uc.paths.PipelinePath(name))
	if err != nil {
		return nil, err
	}
	p.Fit(ts)
	return p.Forecast(ts), nil
}

func toVolumeRecords(points []forecast.ForecastPoint) []dto.VolumeForecastRecord {
	out := make([]dto.VolumeForecastRecord, 0, len(points))
	for _, p := range points {
		out = append(out, dto.VolumeForecastRecord{
			Dt:         p.Dt.Format("2006-01-02"),
			SumPrice:   p.Value,
			RegionCode: p.Segment,
		})
	}
	return out
}

func toCountRecords(points []forecast.ForecastPoint) []dto.CountForecastRecord {
	out := make([]dto.CountForecastRecord, 0, len(points))
	for _, p := range points {
		out = append(out, dto.CountForecastRecord{
			Dt:         p.Dt.Format("2006-01-02"),
			Cnt:        p.Value,
			RegionCode: p.Segment,
		})
	}
	return out
}
