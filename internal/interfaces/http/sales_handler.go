package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/sales-dashboard-api/internal/application/dto"
	"github.com/jhoicas/sales-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/sales-dashboard-api/internal/domain"
	"github.com/jhoicas/sales-dashboard-api/pkg/logger"
)

// Mensajes fijos por ruta; el detalle del error solo va al log.
const (
	msgInvalidSortField = "Invalid sort field"
	msgDataError        = "Database error, unable to retrieve data."
	msgSortFilterError  = "Database error, unable to sort/filter data."
	msgChartsError      = "Database error, unable to generate chart data."
)

// SalesHandler maneja los endpoints de lectura de ventas.
type SalesHandler struct {
	uc  *usecase.SalesUseCase
	log *logger.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(uc *usecase.SalesUseCase, log *logger.Logger) *SalesHandler {
	return &SalesHandler{uc: uc, log: log.Named("sales_handler")}
}

// GetData godoc
// @Summary      Listado completo de ventas por cliente
// @Tags         sales
// @Produce      json
// @Success      200  {array}   dto.CustomerSalesDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/data [get]
func (h *SalesHandler) GetData(c *fiber.Ctx) error {
	list, err := h.uc.GetAll(c.Context())
	if err != nil {
		return h.internalError(c, err, msgDataError)
	}
	return c.JSON(list)
}

// SortFilter godoc
// @Summary      Listado ordenado por una columna
// @Tags         sales
// @Produce      json
// @Param        sort_by  query  string  false  "Columna (id, customer_id, first_name, ..., sales_2022). Default: id."
// @Param        order    query  string  false  "asc (default) o desc; cualquier otro valor = desc."
// @Success      200  {array}   dto.CustomerSalesDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sort_filter [get]
func (h *SalesHandler) SortFilter(c *fiber.Ctx) error {
	// El valor por defecto aplica solo si el parámetro falta; "?sort_by=" es un campo inválido.
	req := dto.SortFilterRequest{SortBy: "id", Order: "asc"}
	args := c.Context().QueryArgs()
	if args.Has("sort_by") {
		req.SortBy = c.Query("sort_by")
	}
	if args.Has("order") {
		req.Order = c.Query("order")
	}

	list, err := h.uc.GetSortedFiltered(c.Context(), req.SortBy, req.Order)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSortField) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msgInvalidSortField})
		}
		return h.internalError(c, err, msgSortFilterError)
	}
	return c.JSON(list)
}

// Charts godoc
// @Summary      Totales por cliente para gráficas de torta y línea
// @Tags         sales
// @Produce      json
// @Success      200  {object}  dto.ChartDataDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/charts [get]
func (h *SalesHandler) Charts(c *fiber.Ctx) error {
	data, err := h.uc.GetChartData(c.Context())
	if err != nil {
		return h.internalError(c, err, msgChartsError)
	}
	return c.JSON(data)
}

func (h *SalesHandler) internalError(c *fiber.Ctx, err error, msg string) error {
	h.log.Error().
		Err(err).
		Str("path", c.Path()).
		Str("request_id", requestID(c)).
		Msg("error de base de datos")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: msg})
}
