package dto

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
)

// ── Listados ─────────────────────────────────────────────────────────────────

// SortFilterRequest parámetros de GET /api/sort_filter.
type SortFilterRequest struct {
	SortBy string `query:"sort_by"` // columna reconocida; por defecto "id"
	Order  string `query:"order"`   // "asc" (defecto); cualquier otro valor = desc
}

// CustomerSalesDTO proyección de un registro para /api/data y /api/sort_filter.
type CustomerSalesDTO struct {
	CustomerName string `json:"customer_name"` // first_name + " " + last_name
	Sales2021    int64  `json:"sales_2021"`
	Sales2022    int64  `json:"sales_2022"`
}

// ── Gráficas ─────────────────────────────────────────────────────────────────

// SalesTotal suma de ventas para gráficas. Se serializa siempre como número de punto
// flotante: 150 -> 150.0.
type SalesTotal float64

// MarshalJSON agrega ".0" a los valores enteros.
func (t SalesTotal) MarshalJSON() ([]byte, error) {
	f := float64(t)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("total de ventas no representable: %v", f)
	}
	b := strconv.AppendFloat(nil, f, 'f', -1, 64)
	if !bytes.ContainsAny(b, ".") {
		b = append(b, '.', '0')
	}
	return b, nil
}

// PieChartItemDTO total 2022 por cliente.
type PieChartItemDTO struct {
	CustomerID     string     `json:"customer_id"`
	TotalSales2022 SalesTotal `json:"total_sales_2022"`
}

// SalesByYearDTO totales por año; las claves JSON son los años.
type SalesByYearDTO struct {
	Year2021 SalesTotal `json:"2021"`
	Year2022 SalesTotal `json:"2022"`
}

// LineChartItemDTO totales 2021 y 2022 por cliente.
type LineChartItemDTO struct {
	CustomerID string         `json:"customer_id"`
	SalesData  SalesByYearDTO `json:"sales_data"`
}

// ChartDataDTO respuesta completa de GET /api/charts.
type ChartDataDTO struct {
	PieChartData  []PieChartItemDTO  `json:"pie_chart_data"`
	LineChartData []LineChartItemDTO `json:"line_chart_data"`
}

// ── Carga ────────────────────────────────────────────────────────────────────

// ImportReport resultado de una carga del archivo de ventas.
type ImportReport struct {
	RunID      string `json:"run_id"`
	Source     string `json:"source"`
	Inserted   int    `json:"inserted"`
	Skipped    int    `json:"skipped"` // líneas con número de columnas distinto al encabezado
	DurationMS int64  `json:"duration_ms"`
}
