package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/goods-trace/internal/application/auth"
	"github.com/tu-usuario/goods-trace/internal/application/usecase"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/cache"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/postgres"
	"github.com/tu-usuario/goods-trace/internal/infrastructure/storage"
	"github.com/tu-usuario/goods-trace/internal/ingest"
	"github.com/tu-usuario/goods-trace/internal/interfaces/http"
	"github.com/tu-usuario/goods-trace/internal/regions"
	"github.com/tu-usuario/goods-trace/pkg/config"
	"github.com/tu-usuario/goods-trace/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	catalog, err := regions.Load(cfg.App.RegionsFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.App.RegionsFile).Msg("cargar catálogo de regiones")
	}
	log.Info().Int("regions", len(catalog)).Msg("catálogo de regiones cargado")

	store, err := storage.NewLocalStore(cfg.Storage.Dir)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de uploads")
	}

	reportCache, err := cache.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, time.Duration(cfg.Redis.TTL)*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	if reportCache == nil {
		log.Info().Msg("caché de reportes deshabilitado")
	}
	defer reportCache.Close()

	userRepo := postgres.NewUserRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	fileRepo := postgres.NewFileRepository(pool)
	goodsRepo := postgres.NewGoodsRepository(pool)
	aggRepo := postgres.NewAggregateRepository(pool)
	refRepo := postgres.NewReferenceRepository(pool)

	dispatcher := ingest.NewDispatcher(goodsRepo, aggRepo, refRepo, cfg.Storage.Encoding, log)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	itemUC := usecase.NewItemUseCase(itemRepo)
	goodsUC := usecase.NewGoodsUseCase(goodsRepo)
	uploadUC := usecase.NewUploadUseCase(store, fileRepo, dispatcher, log)
	reportUC := usecase.NewReportUseCase(goodsRepo, refRepo, catalog, reportCache, log)
	forecastUC := usecase.NewForecastUseCase(aggRepo, goodsRepo, refRepo, cfg.ML, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 * 1024 * 1024, // los exportes CSV del regulador pueden ser grandes
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	http.Router(app, http.RouterDeps{
		AuthUC:     authUC,
		ItemUC:     itemUC,
		GoodsUC:    goodsUC,
		UploadUC:   uploadUC,
		ReportUC:   reportUC,
		ForecastUC: forecastUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
