package storetest

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/sales-dashboard-api/internal/domain"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.CustomerSalesRepository = (*Memory)(nil)

// Memory doble en memoria del repositorio para pruebas de casos de uso y HTTP.
// Si Err no es nil, toda operación falla con domain.StoreError(op, Err).
type Memory struct {
	mu      sync.Mutex
	records []entity.CustomerSales
	nextID  int64
	calls   map[string]int

	Err error
}

// NewMemory crea un repositorio vacío, opcionalmente precargado con records.
func NewMemory(records ...*entity.CustomerSales) *Memory {
	m := &Memory{calls: map[string]int{}}
	for _, r := range records {
		m.add(r)
	}
	return m
}

// Calls cuántas veces se invocó op (p. ej. "ListSorted").
func (m *Memory) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls suma de invocaciones de todas las operaciones.
func (m *Memory) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *Memory) enter(op string) error {
	m.calls[op]++
	if m.Err != nil {
		return domain.StoreError(op, m.Err)
	}
	return nil
}

func (m *Memory) add(r *entity.CustomerSales) {
	m.nextID++
	r.ID = m.nextID
	m.records = append(m.records, *r)
}

func (m *Memory) EnsureSchema(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enter("EnsureSchema")
}

func (m *Memory) Insert(ctx context.Context, record *entity.CustomerSales) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Insert"); err != nil {
		return err
	}
	m.add(record)
	return nil
}

func (m *Memory) InsertBatch(ctx context.Context, records []*entity.CustomerSales) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("InsertBatch"); err != nil {
		return err
	}
	for _, r := range records {
		m.add(r)
	}
	return nil
}

func (m *Memory) ListAll(ctx context.Context) ([]*entity.CustomerSales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListAll"); err != nil {
		return nil, err
	}
	return m.snapshot(), nil
}

func (m *Memory) ListSorted(ctx context.Context, field entity.SortField, order entity.SortOrder) ([]*entity.CustomerSales, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("ListSorted"); err != nil {
		return nil, err
	}
	if field.IsZero() {
		field = entity.SortByID
	}
	list := m.snapshot()
	sort.SliceStable(list, func(i, j int) bool {
		c := compare(list[i], list[j], field.Column())
		if order == entity.SortDesc {
			c = -c
		}
		if c == 0 {
			return list[i].ID < list[j].ID
		}
		return c < 0
	})
	return list, nil
}

func (m *Memory) AggregateByCustomer(ctx context.Context) ([]repository.CustomerSalesAggregate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("AggregateByCustomer"); err != nil {
		return nil, err
	}
	byID := map[string]*repository.CustomerSalesAggregate{}
	keys := make([]string, 0)
	for _, r := range m.records {
		a, ok := byID[r.CustomerID]
		if !ok {
			a = &repository.CustomerSalesAggregate{CustomerID: r.CustomerID}
			byID[r.CustomerID] = a
			keys = append(keys, r.CustomerID)
		}
		a.TotalSales2021 = a.TotalSales2021.Add(decimal.NewFromInt(r.Sales2021))
		a.TotalSales2022 = a.TotalSales2022.Add(decimal.NewFromInt(r.Sales2022))
	}
	sort.Strings(keys)
	out := make([]repository.CustomerSalesAggregate, 0, len(keys))
	for _, k := range keys {
		out = append(out, *byID[k])
	}
	return out, nil
}

func (m *Memory) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.enter("Count"); err != nil {
		return 0, err
	}
	return int64(len(m.records)), nil
}

func (m *Memory) snapshot() []*entity.CustomerSales {
	out := make([]*entity.CustomerSales, 0, len(m.records))
	for i := range m.records {
		c := m.records[i]
		out = append(out, &c)
	}
	return out
}
