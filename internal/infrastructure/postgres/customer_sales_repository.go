package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/sales-dashboard-api/internal/domain"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
)

var _ repository.CustomerSalesRepository = (*CustomerSalesRepo)(nil)

const customerSalesDDL = `
	CREATE TABLE IF NOT EXISTS customer_sales (
	    id                BIGSERIAL PRIMARY KEY,
	    customer_id       TEXT   NOT NULL DEFAULT '',
	    first_name        TEXT   NOT NULL DEFAULT '',
	    last_name         TEXT   NOT NULL DEFAULT '',
	    company           TEXT   NOT NULL DEFAULT '',
	    city              TEXT   NOT NULL DEFAULT '',
	    country           TEXT   NOT NULL DEFAULT '',
	    phone1            TEXT   NOT NULL DEFAULT '',
	    phone2            TEXT   NOT NULL DEFAULT '',
	    email             TEXT   NOT NULL DEFAULT '',
	    subscription_date TEXT   NOT NULL DEFAULT '',
	    website           TEXT   NOT NULL DEFAULT '',
	    sales_2021        BIGINT NOT NULL DEFAULT 0,
	    sales_2022        BIGINT NOT NULL DEFAULT 0
	)`

// insertColumns columnas escritas por Insert/InsertBatch (id lo asigna la secuencia).
var insertColumns = []string{
	"customer_id", "first_name", "last_name", "company", "city", "country",
	"phone1", "phone2", "email", "subscription_date", "website", "sales_2021", "sales_2022",
}

const selectCustomerSales = `
	SELECT id, customer_id, first_name, last_name, company, city, country,
	       phone1, phone2, email, subscription_date, website, sales_2021, sales_2022
	FROM customer_sales`

// CustomerSalesRepo implementación de CustomerSalesRepository sobre PostgreSQL (usable con pool o tx).
type CustomerSalesRepo struct {
	q Querier
}

// NewCustomerSalesRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerSalesRepository(q Querier) *CustomerSalesRepo {
	return &CustomerSalesRepo{q: q}
}

// EnsureSchema crea la tabla customer_sales si no existe.
func (r *CustomerSalesRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, customerSalesDDL); err != nil {
		return domain.StoreError("create table customer_sales", err)
	}
	return nil
}

// Insert persiste un registro y fija record.ID con el valor de la secuencia.
func (r *CustomerSalesRepo) Insert(ctx context.Context, record *entity.CustomerSales) error {
	const query = `
		INSERT INTO customer_sales (customer_id, first_name, last_name, company, city, country,
		                            phone1, phone2, email, subscription_date, website, sales_2021, sales_2022)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, insertValues(record)...).Scan(&record.ID)
	if err != nil {
		return domain.StoreError("insert customer_sales", err)
	}
	return nil
}

// InsertBatch carga los registros con COPY; una sola sentencia, todo o nada.
// Los IDs asignados no se leen de vuelta.
func (r *CustomerSalesRepo) InsertBatch(ctx context.Context, records []*entity.CustomerSales) error {
	if len(records) == 0 {
		return nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"customer_sales"},
		insertColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			return insertValues(records[i]), nil
		}),
	)
	if err != nil {
		return domain.StoreError("copy customer_sales", err)
	}
	if int(n) != len(records) {
		return domain.StoreError("copy customer_sales", fmt.Errorf("copiadas %d de %d filas", n, len(records)))
	}
	return nil
}

// ListAll devuelve todos los registros ordenados por id.
func (r *CustomerSalesRepo) ListAll(ctx context.Context) ([]*entity.CustomerSales, error) {
	return r.list(ctx, "list customer_sales", selectCustomerSales+` ORDER BY id`)
}

// ListSorted ordena por una columna del conjunto fijo de entity.SortField.
func (r *CustomerSalesRepo) ListSorted(ctx context.Context, field entity.SortField, order entity.SortOrder) ([]*entity.CustomerSales, error) {
	if field.IsZero() {
		field = entity.SortByID
	}
	// field.Column() proviene de una lista cerrada; no es entrada del usuario.
	query := fmt.Sprintf("%s ORDER BY %s %s, id ASC", selectCustomerSales, field.Column(), order.SQL())
	return r.list(ctx, "list sorted customer_sales", query)
}

// AggregateByCustomer suma las ventas por customer_id.
func (r *CustomerSalesRepo) AggregateByCustomer(ctx context.Context) ([]repository.CustomerSalesAggregate, error) {
	const query = `
	SELECT
	    customer_id,
	    COALESCE(SUM(sales_2021), 0) AS total_sales_2021,
	    COALESCE(SUM(sales_2022), 0) AS total_sales_2022
	FROM customer_sales
	GROUP BY customer_id
	ORDER BY customer_id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, domain.StoreError("aggregate customer_sales", err)
	}
	defer rows.Close()

	results := make([]repository.CustomerSalesAggregate, 0)
	for rows.Next() {
		var row repository.CustomerSalesAggregate
		if err := rows.Scan(&row.CustomerID, &row.TotalSales2021, &row.TotalSales2022); err != nil {
			return nil, domain.StoreError("aggregate customer_sales scan", err)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("aggregate customer_sales", err)
	}
	return results, nil
}

// Count número de filas de customer_sales.
func (r *CustomerSalesRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM customer_sales`).Scan(&n); err != nil {
		return 0, domain.StoreError("count customer_sales", err)
	}
	return n, nil
}

func (r *CustomerSalesRepo) list(ctx context.Context, op, query string) ([]*entity.CustomerSales, error) {
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, domain.StoreError(op, err)
	}
	defer rows.Close()

	list := make([]*entity.CustomerSales, 0)
	for rows.Next() {
		var c entity.CustomerSales
		if err := rows.Scan(
			&c.ID, &c.CustomerID, &c.FirstName, &c.LastName, &c.Company, &c.City, &c.Country,
			&c.Phone1, &c.Phone2, &c.Email, &c.SubscriptionDate, &c.Website, &c.Sales2021, &c.Sales2022,
		); err != nil {
			return nil, domain.StoreError(op+" scan", err)
		}
		list = append(list, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError(op, err)
	}
	return list, nil
}

func insertValues(c *entity.CustomerSales) []any {
	return []any{
		c.CustomerID, c.FirstName, c.LastName, c.Company, c.City, c.Country,
		c.Phone1, c.Phone2, c.Email, c.SubscriptionDate, c.Website, c.Sales2021, c.Sales2022,
	}
}
