package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/goods-trace/internal/application/auth"
	"github.com/tu-usuario/goods-trace/internal/application/usecase"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ItemUC     *usecase.ItemUseCase
	GoodsUC    *usecase.GoodsUseCase
	UploadUC   *usecase.UploadUseCase
	ReportUC   *usecase.ReportUseCase
	ForecastUC *usecase.ForecastUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Perfil (protegido)
	protected.Get("/users/me", authHandler.Me)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", itemHandler.Create)
	items.Get("/", itemHandler.List)

	// Eventos de mercancías y subida de archivos (protegido)
	goods := protected.Group("/goods")
	goodsHandler := NewGoodsHandler(deps.GoodsUC, deps.UploadUC)
	goods.Get("/produced", goodsHandler.ListProduced)
	goods.Get("/sold", goodsHandler.ListSold)
	goods.Get("/transported", goodsHandler.ListTransported)
	goods.Post("/upload", goodsHandler.Upload)

	// Reportes analíticos y pronósticos (protegido)
	ml := protected.Group("/ml")
	reportHandler := NewReportHandler(deps.ReportUC, pdf.NewRegionVolumesPDF())
	ml.Get("/shops_manufacturer", reportHandler.ShopsManufacturer)
	ml.Get("/volumes_manufacturer", reportHandler.VolumesManufacturer)
	ml.Get("/volumes_manufacturer/pdf", reportHandler.VolumesManufacturerPDF)
	ml.Get("/popular_offline_gtin_manufacturer_region", reportHandler.PopularOfflineGtinRegion)
	ml.Get("/popular_offline_gtin_manufacturer", reportHandler.PopularOfflineGtin)
	ml.Get("/popular_online_gtin_manufacturer", reportHandler.PopularOnlineGtin)
	ml.Get("/shops_manufacturer_count_region", reportHandler.ShopsCountRegion)
	ml.Get("/shops_manufacturer_count", reportHandler.ShopsCount)

	forecastHandler := NewForecastHandler(deps.ForecastUC)
	ml.Get("/volume_agg_predict", forecastHandler.PredictVolumeAgg)
	ml.Get("/count_agg_predict", forecastHandler.PredictCountAgg)
	ml.Get("/volume_manufacturer_predict", forecastHandler.PredictVolumeManufacturer)
	ml.Get("/count_manufacturer_predict", forecastHandler.PredictCountManufacturer)

	// Heatmap regional (protegido)
	protected.Get("/map/get", reportHandler.Map)
}
