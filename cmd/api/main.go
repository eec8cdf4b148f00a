package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jhoicas/sales-dashboard-api/internal/application/importer"
	"github.com/jhoicas/sales-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/sales-dashboard-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/sales-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/sales-dashboard-api/pkg/config"
	"github.com/jhoicas/sales-dashboard-api/pkg/logger"
	"github.com/jhoicas/sales-dashboard-api/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	salesRepo, closeStore, err := storage.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén de ventas")
	}
	defer closeStore()

	appMetrics := metrics.New()
	importUC := importer.NewImportUseCase(salesRepo, importer.Config{
		Path:     cfg.Import.CSVPath,
		Encoding: cfg.Import.Encoding,
	}, log, appMetrics)
	boot := importer.NewBootstrap(salesRepo, importUC)

	// Carga única: al arrancar o, con IMPORT_ON_STARTUP=false, antes de la primera petición /api.
	// Si falla, el servicio sigue arriba y no se reintenta.
	var lazy httpRouter.Bootstrapper
	if cfg.Import.OnStartup {
		if _, err := boot.Run(ctx); err != nil {
			log.Error().Err(err).Msg("error inicializando la base con el CSV")
		}
	} else {
		lazy = boot
	}

	app := httpRouter.NewApp(httpRouter.RouterDeps{
		AppName:       cfg.App.Name,
		SalesUC:       usecase.NewSalesUseCase(salesRepo),
		Log:           log,
		Metrics:       appMetrics,
		SwaggerFile:   cfg.App.SwaggerFile,
		LazyBootstrap: lazy,
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
