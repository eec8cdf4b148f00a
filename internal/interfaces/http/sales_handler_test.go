package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sales-dashboard-api/internal/application/usecase"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard-api/internal/infrastructure/storetest"
	apphttp "github.com/jhoicas/sales-dashboard-api/internal/interfaces/http"
	"github.com/jhoicas/sales-dashboard-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func johnAndJane() []*entity.CustomerSales {
	return []*entity.CustomerSales{
		{CustomerID: "C001", FirstName: "John", LastName: "Doe", Sales2021: 100, Sales2022: 150},
		{CustomerID: "C002", FirstName: "Jane", LastName: "Roe", Sales2021: 200, Sales2022: 50},
	}
}

func buildTestApp(repo *storetest.Memory) *fiber.App {
	return apphttp.NewApp(apphttp.RouterDeps{
		AppName: "sales-dashboard-test",
		SalesUC: usecase.NewSalesUseCase(repo),
	})
}

// get lanza un GET y devuelve código y cuerpo.
func get(t *testing.T, app *fiber.App, target string) (int, string, http.Header) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/data
// ──────────────────────────────────────────────────────────────────────────────

func TestGetData_JohnYJane(t *testing.T) {
	app := buildTestApp(storetest.NewMemory(johnAndJane()...))

	code, body, header := get(t, app, "/api/data")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, header.Get(fiber.HeaderContentType), fiber.MIMEApplicationJSON)
	assert.JSONEq(t, `[
		{"customer_name":"John Doe","sales_2021":100,"sales_2022":150},
		{"customer_name":"Jane Roe","sales_2021":200,"sales_2022":50}
	]`, body)
}

func TestGetData_VacioDevuelveArreglo(t *testing.T) {
	code, body, _ := get(t, buildTestApp(storetest.NewMemory()), "/api/data")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, body)
}

func TestGetData_ErrorDeAlmacenNoFiltraDetalle(t *testing.T) {
	repo := storetest.NewMemory(johnAndJane()...)
	repo.Err = errors.New("pq: password authentication failed for user secret")

	code, body, _ := get(t, buildTestApp(repo), "/api/data")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Database error, unable to retrieve data."}`, body)
	assert.NotContains(t, body, "secret")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/sort_filter
// ──────────────────────────────────────────────────────────────────────────────

func TestSortFilter_Sales2022Desc(t *testing.T) {
	app := buildTestApp(storetest.NewMemory(johnAndJane()...))

	code, body, _ := get(t, app, "/api/sort_filter?sort_by=sales_2022&order=desc")

	require.Equal(t, http.StatusOK, code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "John Doe", rows[0]["customer_name"])
	assert.Equal(t, "Jane Roe", rows[1]["customer_name"])
}

func TestSortFilter_ValoresPorDefecto(t *testing.T) {
	app := buildTestApp(storetest.NewMemory(johnAndJane()...))

	code, body, _ := get(t, app, "/api/sort_filter")

	require.Equal(t, http.StatusOK, code)
	assert.True(t, strings.Index(body, "John Doe") < strings.Index(body, "Jane Roe"))
}

func TestSortFilter_CampoInvalido_Retorna400SinConsultar(t *testing.T) {
	repo := storetest.NewMemory(johnAndJane()...)
	app := buildTestApp(repo)

	for _, bad := range []string{"password", "nope", "id%3BDROP%20TABLE%20customer_sales"} {
		code, body, _ := get(t, app, "/api/sort_filter?sort_by="+bad+"&order=asc")
		assert.Equal(t, http.StatusBadRequest, code, bad)
		assert.JSONEq(t, `{"error":"Invalid sort field"}`, body)
	}
	assert.Zero(t, repo.TotalCalls())
}

func TestSortFilter_CampoVacio_Retorna400SinConsultar(t *testing.T) {
	repo := storetest.NewMemory(johnAndJane()...)
	app := buildTestApp(repo)

	for _, target := range []string{"/api/sort_filter?sort_by=&order=asc", "/api/sort_filter?sort_by="} {
		code, body, _ := get(t, app, target)
		assert.Equal(t, http.StatusBadRequest, code, target)
		assert.JSONEq(t, `{"error":"Invalid sort field"}`, body)
	}
	assert.Zero(t, repo.TotalCalls())
}

func TestSortFilter_SoloAscExactoEsAscendente(t *testing.T) {
	app := buildTestApp(storetest.NewMemory(johnAndJane()...))

	for _, order := range []string{"ASC", "%20asc%20", ""} {
		code, body, _ := get(t, app, "/api/sort_filter?sort_by=sales_2022&order="+order)
		require.Equal(t, http.StatusOK, code, order)
		// descendente por sales_2022: John (150) antes que Jane (50)
		assert.Less(t, strings.Index(body, "John Doe"), strings.Index(body, "Jane Roe"), "order=%q", order)
	}

	code, body, _ := get(t, app, "/api/sort_filter?sort_by=sales_2022")
	require.Equal(t, http.StatusOK, code)
	assert.Less(t, strings.Index(body, "Jane Roe"), strings.Index(body, "John Doe"))
}

func TestSortFilter_ErrorDeAlmacen(t *testing.T) {
	repo := storetest.NewMemory()
	repo.Err = errors.New("database is locked")

	code, body, _ := get(t, buildTestApp(repo), "/api/sort_filter?sort_by=city")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Database error, unable to sort/filter data."}`, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/charts
// ──────────────────────────────────────────────────────────────────────────────

func TestCharts_Forma(t *testing.T) {
	app := buildTestApp(storetest.NewMemory(johnAndJane()...))

	code, body, _ := get(t, app, "/api/charts")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{
		"pie_chart_data": [
			{"customer_id":"C001","total_sales_2022":150},
			{"customer_id":"C002","total_sales_2022":50}
		],
		"line_chart_data": [
			{"customer_id":"C001","sales_data":{"2021":100,"2022":150}},
			{"customer_id":"C002","sales_data":{"2021":200,"2022":50}}
		]
	}`, body)
	assert.Contains(t, body, `"total_sales_2022":150.0`)
	assert.Contains(t, body, `"sales_data":{"2021":100.0,"2022":150.0}`)
}

func TestCharts_ErrorDeAlmacen(t *testing.T) {
	repo := storetest.NewMemory()
	repo.Err = errors.New("boom")

	code, body, _ := get(t, buildTestApp(repo), "/api/charts")

	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Database error, unable to generate chart data."}`, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Página, health, métricas, 404
// ──────────────────────────────────────────────────────────────────────────────

func TestIndex_HTMLEstatico(t *testing.T) {
	code, body, header := get(t, buildTestApp(storetest.NewMemory()), "/")

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, header.Get(fiber.HeaderContentType), "text/html")
	assert.Contains(t, body, "<!DOCTYPE html>")
	assert.Contains(t, body, "/api/charts")
}

func TestHealth(t *testing.T) {
	code, body, _ := get(t, buildTestApp(storetest.NewMemory(johnAndJane()...)), "/health")

	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"status":"ok","service":"sales-dashboard-test","records":2}`, body)
}

func TestRutaDesconocida_404JSON(t *testing.T) {
	code, body, _ := get(t, buildTestApp(storetest.NewMemory()), "/api/nope")

	assert.Equal(t, http.StatusNotFound, code)
	var out map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.NotEmpty(t, out["error"])
}

func TestMetrics_Expuestas(t *testing.T) {
	app := apphttp.NewApp(apphttp.RouterDeps{
		AppName: "sales-dashboard-test",
		SalesUC: usecase.NewSalesUseCase(storetest.NewMemory(johnAndJane()...)),
		Metrics: metrics.New(),
	})

	code, _, _ := get(t, app, "/api/data")
	require.Equal(t, http.StatusOK, code)

	code, body, _ := get(t, app, "/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `sales_dashboard_http_requests_total{method="GET",route="/api/data",status="200"} 1`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inicialización diferida
// ──────────────────────────────────────────────────────────────────────────────

type fakeBootstrap struct {
	calls int
	err   error
}

func (b *fakeBootstrap) Run(context.Context) (bool, error) {
	b.calls++
	if b.calls > 1 {
		return false, nil
	}
	return true, b.err
}

func TestLazyBootstrap_FalloSoloEnLaPrimeraPeticion(t *testing.T) {
	boot := &fakeBootstrap{err: errors.New("open data/customers_sales_2021_2022.csv: no such file")}
	app := apphttp.NewApp(apphttp.RouterDeps{
		AppName:       "sales-dashboard-test",
		SalesUC:       usecase.NewSalesUseCase(storetest.NewMemory()),
		LazyBootstrap: boot,
	})

	code, body, _ := get(t, app, "/api/data")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.JSONEq(t, `{"error":"Error initializing database with CSV data."}`, body)

	code, body, _ = get(t, app, "/api/data")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, body)
	assert.Equal(t, 2, boot.calls)
}

func TestLazyBootstrap_NoAplicaAIndex(t *testing.T) {
	boot := &fakeBootstrap{}
	app := apphttp.NewApp(apphttp.RouterDeps{
		SalesUC:       usecase.NewSalesUseCase(storetest.NewMemory()),
		LazyBootstrap: boot,
	})

	code, _, _ := get(t, app, "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Zero(t, boot.calls)
}
