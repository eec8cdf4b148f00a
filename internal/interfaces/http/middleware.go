package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sales-dashboard-api/internal/application/dto"
	"github.com/jhoicas/sales-dashboard-api/pkg/logger"
	"github.com/jhoicas/sales-dashboard-api/pkg/metrics"
)

const msgInitError = "Error initializing database with CSV data."

// Bootstrapper inicialización única (esquema + carga). Ver importer.Bootstrap.
type Bootstrapper interface {
	Run(ctx context.Context) (ran bool, err error)
}

// LazyBootstrap ejecuta la inicialización antes de la primera petición que pase por aquí.
// Solo la petición que dispara una inicialización fallida recibe 500; las siguientes continúan.
func LazyBootstrap(boot Bootstrapper, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, err := boot.Run(context.Background()); err != nil {
			log.Error().Err(err).Str("request_id", requestID(c)).Msg("error inicializando la base con el CSV")
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msgInitError})
		}
		return c.Next()
	}
}

// RequestLogger registra cada petición con su request id, código y duración.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("request_id", requestID(c)).
			Msg("http request")
		return err
	}
}

// Metrics cuenta peticiones y latencia por ruta registrada.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		m.ObserveRequest(c.Route().Path, c.Method(), status, time.Since(start))
		return err
	}
}

// ErrorHandler respuesta JSON uniforme para errores que llegan a Fiber (404, 405, pánicos recuperados).
// El texto de errores internos no se expone al cliente.
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			if code < fiber.StatusInternalServerError {
				msg = fe.Message
			}
		}
		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("path", c.Path()).Str("request_id", requestID(c)).Msg("error no controlado")
		}
		return c.Status(code).JSON(dto.ErrorResponse{Error: msg})
	}
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
