package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/sales-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/sales-dashboard-api/pkg/logger"
	"github.com/jhoicas/sales-dashboard-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	SalesUC     *usecase.SalesUseCase
	Log         *logger.Logger
	Metrics     *metrics.Metrics // nil = sin /metrics
	SwaggerFile string           // vacío o inexistente = sin /docs
	// LazyBootstrap si no es nil se ejecuta antes de la primera petición /api.
	LazyBootstrap Bootstrapper
}

// NewApp crea la aplicación Fiber con middlewares comunes y todas las rutas registradas.
func NewApp(deps RouterDeps) *fiber.App {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(deps.Log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log.Named("http")))
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerFile != "" {
		if _, err := os.Stat(deps.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerFile,
				Path:     "docs",
				Title:    deps.AppName,
			}))
		}
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/", Index)
	app.Get("/health", Health(deps.AppName, deps.SalesUC))

	api := app.Group("/api")
	if deps.LazyBootstrap != nil {
		api.Use(LazyBootstrap(deps.LazyBootstrap, deps.Log.Named("bootstrap")))
	}

	salesHandler := NewSalesHandler(deps.SalesUC, deps.Log)
	api.Get("/data", salesHandler.GetData)
	api.Get("/sort_filter", salesHandler.SortFilter)
	api.Get("/charts", salesHandler.Charts)
}
