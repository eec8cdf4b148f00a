package importer

import (
	"context"
	"fmt"
	"sync"

	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
)

// Bootstrap crea el esquema y ejecuta la carga una sola vez por proceso.
// Llamadas concurrentes esperan a que termine la primera; nunca se reintenta.
type Bootstrap struct {
	repo     repository.CustomerSalesRepository
	importer *ImportUseCase

	once sync.Once
}

// NewBootstrap construye el inicializador.
func NewBootstrap(repo repository.CustomerSalesRepository, importer *ImportUseCase) *Bootstrap {
	return &Bootstrap{repo: repo, importer: importer}
}

// Run ejecuta la inicialización si aún no corrió. Devuelve el error solo a quien la ejecutó;
// las llamadas posteriores devuelven (false, nil).
func (b *Bootstrap) Run(ctx context.Context) (ran bool, err error) {
	b.once.Do(func() {
		ran = true
		err = b.initialize(ctx)
	})
	return ran, err
}

func (b *Bootstrap) initialize(ctx context.Context) error {
	if err := b.repo.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	if _, err := b.importer.Run(ctx); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	return nil
}
