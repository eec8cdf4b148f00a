// Package storetest contiene la batería de pruebas compartida por las
// implementaciones de repository.CustomerSalesRepository.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
)

// Factory devuelve un repositorio vacío y con el esquema creado.
type Factory func(t *testing.T) repository.CustomerSalesRepository

// Fixtures cuatro filas con customer_id repetido (C001) y empates en varias columnas.
func Fixtures() []*entity.CustomerSales {
	return []*entity.CustomerSales{
		{CustomerID: "C001", FirstName: "John", LastName: "Doe", Company: "Acme", City: "Austin", Country: "USA",
			Phone1: "5550001", Phone2: "5551001", Email: "john@acme.test", SubscriptionDate: "2021-01-10",
			Website: "https://acme.test", Sales2021: 100, Sales2022: 150},
		{CustomerID: "C002", FirstName: "Jane", LastName: "Roe", Company: "Beta", City: "Boston", Country: "Canada",
			Phone1: "5550002", Phone2: "5551002", Email: "jane@beta.test", SubscriptionDate: "2020-05-02",
			Website: "https://beta.test", Sales2021: 200, Sales2022: 50},
		{CustomerID: "C001", FirstName: "Alice", LastName: "Zed", Company: "Core", City: "Chicago", Country: "Mexico",
			Phone1: "5550003", Phone2: "5551003", Email: "alice@core.test", SubscriptionDate: "2022-03-15",
			Website: "https://core.test", Sales2021: 30, Sales2022: 70},
		{CustomerID: "C003", FirstName: "Bob", LastName: "Doe", Company: "Acme", City: "Austin", Country: "USA",
			Phone1: "5550004", Phone2: "5551004", Email: "bob@acme.test", SubscriptionDate: "2021-01-10",
			Website: "https://acme.test", Sales2021: 100, Sales2022: 0},
	}
}

// Run ejecuta la batería completa contra las implementaciones que produce newRepo.
func Run(t *testing.T, newRepo Factory) {
	t.Run("EnsureSchemaIdempotente", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.EnsureSchema(context.Background()))
		require.NoError(t, repo.EnsureSchema(context.Background()))
	})

	t.Run("VacioDevuelveListasVacias", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		agg, err := repo.AggregateByCustomer(ctx)
		require.NoError(t, err)
		assert.NotNil(t, agg)
		assert.Empty(t, agg)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("InsertAsignaIDsUnicos", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		seen := map[int64]bool{}
		for _, rec := range Fixtures() {
			rec.ID = 0
			require.NoError(t, repo.Insert(ctx, rec))
			assert.NotZero(t, rec.ID)
			assert.False(t, seen[rec.ID], "id repetido %d", rec.ID)
			seen[rec.ID] = true
		}

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 4)
		assert.Equal(t, "John", all[0].FirstName)
		assert.Equal(t, "https://acme.test", all[0].Website)
		assert.Equal(t, int64(150), all[0].Sales2022)
	})

	t.Run("InsertBatchYCount", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		require.NoError(t, repo.InsertBatch(ctx, Fixtures()))
		require.NoError(t, repo.InsertBatch(ctx, nil))

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})

	t.Run("ListSortedMismoConjuntoYMonotono", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		require.NoError(t, repo.InsertBatch(ctx, Fixtures()))

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)

		for _, name := range entity.SortFieldNames() {
			field, ok := entity.ParseSortField(name)
			require.True(t, ok)
			for _, order := range []entity.SortOrder{entity.SortAsc, entity.SortDesc} {
				sorted, err := repo.ListSorted(ctx, field, order)
				require.NoError(t, err, "%s %s", name, order)
				assert.ElementsMatch(t, ids(all), ids(sorted), "%s %s", name, order)
				AssertOrdered(t, sorted, name, order)
			}
		}
	})

	t.Run("AggregateByCustomerSuma", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		records := Fixtures()
		require.NoError(t, repo.InsertBatch(ctx, records))

		agg, err := repo.AggregateByCustomer(ctx)
		require.NoError(t, err)
		require.Len(t, agg, 3)

		assert.Equal(t, "C001", agg[0].CustomerID)
		assert.Equal(t, int64(130), agg[0].TotalSales2021.IntPart())
		assert.Equal(t, int64(220), agg[0].TotalSales2022.IntPart())
		assert.Equal(t, "C002", agg[1].CustomerID)
		assert.Equal(t, int64(50), agg[1].TotalSales2022.IntPart())
		assert.Equal(t, "C003", agg[2].CustomerID)
		assert.True(t, agg[2].TotalSales2022.IsZero())

		var want2022, got2022 int64
		for _, r := range records {
			want2022 += r.Sales2022
		}
		for _, a := range agg {
			got2022 += a.TotalSales2022.IntPart()
		}
		assert.Equal(t, want2022, got2022)
	})
}

// AssertOrdered comprueba que list está ordenada por la columna name en la dirección order,
// con empates resueltos por id ascendente.
func AssertOrdered(t *testing.T, list []*entity.CustomerSales, name string, order entity.SortOrder) {
	t.Helper()
	for i := 1; i < len(list); i++ {
		c := compare(list[i-1], list[i], name)
		if order == entity.SortDesc {
			c = -c
		}
		if c == 0 {
			assert.Less(t, list[i-1].ID, list[i].ID, "empate en %s debe ordenarse por id", name)
			continue
		}
		assert.Negative(t, c, "%s %s: posición %d fuera de orden", name, order, i)
	}
}

func compare(a, b *entity.CustomerSales, name string) int {
	if name == "id" || name == "sales_2021" || name == "sales_2022" {
		x, y := intValue(a, name), intValue(b, name)
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	}
	x, y := stringValue(a, name), stringValue(b, name)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func intValue(c *entity.CustomerSales, name string) int64 {
	switch name {
	case "sales_2021":
		return c.Sales2021
	case "sales_2022":
		return c.Sales2022
	}
	return c.ID
}

func stringValue(c *entity.CustomerSales, name string) string {
	switch name {
	case "customer_id":
		return c.CustomerID
	case "first_name":
		return c.FirstName
	case "last_name":
		return c.LastName
	case "company":
		return c.Company
	case "city":
		return c.City
	case "country":
		return c.Country
	case "phone1":
		return c.Phone1
	case "phone2":
		return c.Phone2
	case "email":
		return c.Email
	case "subscription_date":
		return c.SubscriptionDate
	case "website":
		return c.Website
	}
	return ""
}

func ids(list []*entity.CustomerSales) []int64 {
	out := make([]int64, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}
