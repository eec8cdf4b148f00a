package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sales-dashboard-api/internal/application/dto"
	"github.com/jhoicas/sales-dashboard-api/internal/application/usecase"
)

// Health GET /health: estado del servicio y número de registros cargados.
func Health(service string, uc *usecase.SalesUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		n, err := uc.RecordCount(c.Context())
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.HealthResponse{Status: "unavailable", Service: service})
		}
		return c.JSON(dto.HealthResponse{Status: "ok", Service: service, Records: n})
	}
}
