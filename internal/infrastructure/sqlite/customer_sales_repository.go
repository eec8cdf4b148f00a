package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/sales-dashboard-api/internal/domain"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CustomerSalesRepository = (*CustomerSalesRepo)(nil)

const customerSalesDDL = `
	CREATE TABLE IF NOT EXISTS customer_sales (
	    id                INTEGER PRIMARY KEY AUTOINCREMENT,
	    customer_id       TEXT    NOT NULL DEFAULT '',
	    first_name        TEXT    NOT NULL DEFAULT '',
	    last_name         TEXT    NOT NULL DEFAULT '',
	    company           TEXT    NOT NULL DEFAULT '',
	    city              TEXT    NOT NULL DEFAULT '',
	    country           TEXT    NOT NULL DEFAULT '',
	    phone1            TEXT    NOT NULL DEFAULT '',
	    phone2            TEXT    NOT NULL DEFAULT '',
	    email             TEXT    NOT NULL DEFAULT '',
	    subscription_date TEXT    NOT NULL DEFAULT '',
	    website           TEXT    NOT NULL DEFAULT '',
	    sales_2021        INTEGER NOT NULL DEFAULT 0,
	    sales_2022        INTEGER NOT NULL DEFAULT 0
	)`

const insertCustomerSales = `
	INSERT INTO customer_sales (customer_id, first_name, last_name, company, city, country,
	                            phone1, phone2, email, subscription_date, website, sales_2021, sales_2022)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectCustomerSales = `
	SELECT id, customer_id, first_name, last_name, company, city, country,
	       phone1, phone2, email, subscription_date, website, sales_2021, sales_2022
	FROM customer_sales`

// CustomerSalesRepo implementación de CustomerSalesRepository sobre SQLite.
type CustomerSalesRepo struct {
	db *sql.DB
}

// NewCustomerSalesRepository construye el adaptador sobre una base abierta con Open.
func NewCustomerSalesRepository(db *sql.DB) *CustomerSalesRepo {
	return &CustomerSalesRepo{db: db}
}

// EnsureSchema crea la tabla customer_sales si no existe.
func (r *CustomerSalesRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, customerSalesDDL); err != nil {
		return domain.StoreError("create table customer_sales", err)
	}
	return nil
}

// Insert persiste un registro y fija record.ID.
func (r *CustomerSalesRepo) Insert(ctx context.Context, record *entity.CustomerSales) error {
	res, err := r.db.ExecContext(ctx, insertCustomerSales, insertValues(record)...)
	if err != nil {
		return domain.StoreError("insert customer_sales", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.StoreError("insert customer_sales last id", err)
	}
	record.ID = id
	return nil
}

// InsertBatch inserta todos los registros en una transacción y fija sus IDs.
func (r *CustomerSalesRepo) InsertBatch(ctx context.Context, records []*entity.CustomerSales) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.StoreError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertCustomerSales)
	if err != nil {
		return domain.StoreError("prepare insert customer_sales", err)
	}
	defer stmt.Close()

	ids := make([]int64, len(records))
	for i, rec := range records {
		res, err := stmt.ExecContext(ctx, insertValues(rec)...)
		if err != nil {
			return domain.StoreError(fmt.Sprintf("insert customer_sales fila %d", i+1), err)
		}
		if ids[i], err = res.LastInsertId(); err != nil {
			return domain.StoreError("insert customer_sales last id", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.StoreError("commit transaction", err)
	}
	for i, rec := range records {
		rec.ID = ids[i]
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

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.StoreError("aggregate customer_sales", err)
	}
	defer rows.Close()

	results := make([]repository.CustomerSalesAggregate, 0)
	for rows.Next() {
		var (
			customerID string
			t2021      int64
			t2022      int64
		)
		if err := rows.Scan(&customerID, &t2021, &t2022); err != nil {
			return nil, domain.StoreError("aggregate customer_sales scan", err)
		}
		results = append(results, repository.CustomerSalesAggregate{
			CustomerID:     customerID,
			TotalSales2021: decimal.NewFromInt(t2021),
			TotalSales2022: decimal.NewFromInt(t2022),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StoreError("aggregate customer_sales", err)
	}
	return results, nil
}

// Count número de filas de customer_sales.
func (r *CustomerSalesRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customer_sales`).Scan(&n); err != nil {
		return 0, domain.StoreError("count customer_sales", err)
	}
	return n, nil
}

func (r *CustomerSalesRepo) list(ctx context.Context, op, query string) ([]*entity.CustomerSales, error) {
	rows, err := r.db.QueryContext(ctx, query)
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
