package repository

import (
	"context"

	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CustomerSalesAggregate totales por customer_id.
// Lo produce la DB; el use case lo convierte en DTO de gráficas.
type CustomerSalesAggregate struct {
	CustomerID     string
	TotalSales2021 decimal.Decimal // SUM(sales_2021)
	TotalSales2022 decimal.Decimal // SUM(sales_2022)
}

// CustomerSalesRepository define el puerto de persistencia de la tabla customer_sales.
// Todo error de la implementación cumple errors.Is(err, domain.ErrStore).
type CustomerSalesRepository interface {
	// EnsureSchema crea la tabla si no existe. Idempotente.
	EnsureSchema(ctx context.Context) error

	// Insert agrega un registro y fija su ID.
	Insert(ctx context.Context, record *entity.CustomerSales) error

	// InsertBatch agrega todos los registros o ninguno.
	InsertBatch(ctx context.Context, records []*entity.CustomerSales) error

	// ListAll devuelve todos los registros ordenados por id.
	ListAll(ctx context.Context) ([]*entity.CustomerSales, error)

	// ListSorted devuelve todos los registros ordenados por field; empates por id ascendente.
	ListSorted(ctx context.Context, field entity.SortField, order entity.SortOrder) ([]*entity.CustomerSales, error)

	// AggregateByCustomer suma ventas 2021 y 2022 por customer_id, ordenado por customer_id.
	AggregateByCustomer(ctx context.Context) ([]CustomerSalesAggregate, error)

	// Count número de filas almacenadas.
	Count(ctx context.Context) (int64, error)
}
