package usecase

import (
	"context"

	"github.com/tu-usuario/goods-trace/internal/domain/repository"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/cache"
	"github.com/tu-usuario/goods-trace/internal/regions"
	"github.com/tu-usuario/goods-trace/internal/report"
	"github.com/tu-usuario/goods-trace/pkg/logger"
)

// ReportUseCase calcula los reportes analíticos del fabricante: proyección
// SQL estrecha, join y ranking en memoria, y memoización opcional en Redis.
type ReportUseCase struct {
	goods   repository.GoodsRepository
	ref     repository.ReferenceRepository
	catalog regions.Catalog
	cache   *cache.ReportCache // nil = sin caché
	log     *logger.Logger
}

// NewReportUseCase construye el caso de uso de reportes.
func NewReportUseCase(
	goods repository.GoodsRepository,
	ref repository.ReferenceRepository,
	catalog regions.Catalog,
	reportCache *cache.ReportCache,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{goods: goods, ref: ref, catalog: catalog, cache: reportCache, log: log}
}

// cached memoiza el cálculo de un reporte. Un fallo de Redis nunca tumba el
// reporte: se loguea y se recalcula.
func cached[T any](ctx context.Context, uc *ReportUseCase, name, userID string, compute func() (T, error)) (T, error) {
	var out T
	key := cache.Key(name, userID)
	hit, err := uc.cache.Get(ctx, key, &out)
	if err != nil {
		uc.log.Warn().Err(err).Str("report", name).Msg("caché de reportes no disponible")
	}
	if hit {
		return out, nil
	}
	out, err = compute()
	if err != nil {
		return out, err
	}
	if err := uc.cache.Set(ctx, key, out); err != nil {
		uc.log.Warn().Err(err).Str("report", name).Msg("no se pudo guardar el reporte en caché")
	}
	return out, nil
}

// ShopsManufacturer top 5 por región de puntos de venta con más retiros de
// circulación.
func (uc *ReportUseCase) ShopsManufacturer(ctx context.Context, userID string) (map[string]report.IDCount, error) {
	return cached(ctx, uc, "shops_manufacturer", userID, func() (map[string]report.IDCount, error) {
		rows, err := uc.goods.SoldForShops(ctx, userID)
		if err != nil {
			return nil, err
		}
		points, err := uc.ref.SalePointsFull(ctx)
		if err != nil {
			return nil, err
		}
		return report.ShopsManufacturer(rows, points), nil
	})
}

// VolumesManufacturer unidades y facturación total del fabricante.
func (uc *ReportUseCase) VolumesManufacturer(ctx context.Context, userID string) (report.Volumes, error) {
	return cached(ctx, uc, "volumes_manufacturer", userID, func() (report.Volumes, error) {
		rows, err := uc.goods.SoldForVolume(ctx, userID)
		if err != nil {
			return report.Volumes{}, err
		}
		points, err := uc.ref.SalePointRegions(ctx)
		if err != nil {
			return report.Volumes{}, err
		}
		return report.VolumesManufacturer(rows, points), nil
	})
}

// VolumesManufacturerRegion heatmap de facturación y unidades por región,
// normalizado a [0,1] sobre todas las regiones del catálogo.
func (uc *ReportUseCase) VolumesManufacturerRegion(ctx context.Context, userID string) ([]report.MapPoint, error) {
	return cached(ctx, uc, "volumes_manufacturer_region", userID, func() ([]report.MapPoint, error) {
		rows, err := uc.goods.SoldForVolume(ctx, userID)
		if err != nil {
			return nil, err
		}
		points, err := uc.ref.SalePointRegions(ctx)
		if err != nil {
			return nil, err
		}
		return report.VolumesManufacturerRegion(rows, points, uc.catalog), nil
	})
}

// PopularOfflineGtinManufacturerRegion GTIN más vendidos en tienda física,
// top 5 por región.
func (uc *ReportUseCase) PopularOfflineGtinManufacturerRegion(ctx context.Context, userID string) (map[string]report.GtinCount, error) {
	return cached(ctx, uc, "popular_offline_gtin_region", userID, func() (map[string]report.GtinCount, error) {
		rows, err := uc.goods.SoldForOffline(ctx, userID)
		if err != nil {
			return nil, err
		}
		points, err := uc.ref.SalePointRegions(ctx)
		if err != nil {
			return nil, err
		}
		return report.PopularOfflineGtinManufacturerRegion(rows, points), nil
	})
}

// PopularOfflineGtinManufacturer GTIN más vendidos en tienda física, top 10
// sin clave regional.
func (uc *ReportUseCase) PopularOfflineGtinManufacturer(ctx context.Context, userID string) (report.GtinCount, error) {
	return cached(ctx, uc, "popular_offline_gtin", userID, func() (report.GtinCount, error) {
		rows, err := uc.goods.SoldForOffline(ctx, userID)
		if err != nil {
			return report.GtinCount{}, err
		}
		return report.PopularOfflineGtinManufacturer(rows), nil
	})
}

// PopularOnlineGtinManufacturer GTIN más vendidos a distancia, top 5.
func (uc *ReportUseCase) PopularOnlineGtinManufacturer(ctx context.Context, userID string) (report.GtinCount, error) {
	return cached(ctx, uc, "popular_online_gtin", userID, func() (report.GtinCount, error) {
		rows, err := uc.goods.SoldForOnline(ctx, userID)
		if err != nil {
			return report.GtinCount{}, err
		}
		return report.PopularOnlineGtinManufacturer(rows), nil
	})
}

// ShopsManufacturerCountRegion unidades vendidas por punto de venta, top 5
// por región.
func (uc *ReportUseCase) ShopsManufacturerCountRegion(ctx context.Context, userID string) (map[string]report.IDCount, error) {
	return cached(ctx, uc, "shops_manufacturer_count_region", userID, func() (map[string]report.IDCount, error) {
		rows, err := uc.goods.SoldForShopCount(ctx, userID)
		if err != nil {
			return nil, err
		}
		points, err := uc.ref.SalePointRegions(ctx)
		if err != nil {
			return nil, err
		}
		return report.ShopsManufacturerCountRegion(rows, points), nil
	})
}

// ShopsManufacturerCount unidades vendidas por punto de venta, top 5 sin
// clave regional.
func (uc *ReportUseCase) ShopsManufacturerCount(ctx context.Context, userID string) (report.IDCount, error) {
	return cached(ctx, uc, "shops_manufacturer_count", userID, func() (report.IDCount, error) {
		rows, err := uc.goods.SoldForShopCount(ctx, userID)
		if err != nil {
			return report.IDCount{}, err
		}
		return report.ShopsManufacturerCount(rows), nil
	})
}
