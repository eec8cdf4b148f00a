package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
	"github.com/jhoicas/sales-dashboard-api/internal/infrastructure/postgres"
	"github.com/jhoicas/sales-dashboard-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/sales-dashboard-api/pkg/config"
)

// Open conecta el almacén indicado por cfg.Driver y devuelve el repositorio y su cierre.
func Open(ctx context.Context, cfg config.DBConfig) (repository.CustomerSalesRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		return postgres.NewCustomerSalesRepository(pool), pool.Close, nil
	case config.DriverSQLite, "":
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a SQLite: %w", err)
		}
		return sqlite.NewCustomerSalesRepository(db), func() { _ = db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("driver no soportado: %q", cfg.Driver)
	}
}
