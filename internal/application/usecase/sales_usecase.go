package usecase

import (
	"context"

	"github.com/jhoicas/sales-dashboard-api/internal/application/dto"
	"github.com/jhoicas/sales-dashboard-api/internal/domain"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
	"github.com/jhoicas/sales-dashboard-api/internal/domain/repository"
)

// SalesUseCase consultas de solo lectura sobre customer_sales:
//   - listado completo proyectado a nombre y ventas por año.
//   - listado ordenado por una columna reconocida.
//   - totales por cliente para las gráficas de torta y línea.
type SalesUseCase struct {
	repo repository.CustomerSalesRepository
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(repo repository.CustomerSalesRepository) *SalesUseCase {
	return &SalesUseCase{repo: repo}
}

// GetAll devuelve todos los registros.
func (uc *SalesUseCase) GetAll(ctx context.Context) ([]dto.CustomerSalesDTO, error) {
	list, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCustomerSalesDTOs(list), nil
}

// GetSortedFiltered devuelve todos los registros ordenados por sortBy.
// Un sortBy no reconocido (incluido "") devuelve domain.ErrInvalidSortField sin consultar el almacén.
// Los valores por defecto de los parámetros ausentes los aplica el handler.
func (uc *SalesUseCase) GetSortedFiltered(ctx context.Context, sortBy, order string) ([]dto.CustomerSalesDTO, error) {
	field, ok := entity.ParseSortField(sortBy)
	if !ok {
		return nil, domain.ErrInvalidSortField
	}
	list, err := uc.repo.ListSorted(ctx, field, entity.ParseSortOrder(order))
	if err != nil {
		return nil, err
	}
	return toCustomerSalesDTOs(list), nil
}

// GetChartData arma las series de torta (total 2022) y línea (2021 y 2022) por cliente
// a partir de una sola agregación.
func (uc *SalesUseCase) GetChartData(ctx context.Context) (*dto.ChartDataDTO, error) {
	rows, err := uc.repo.AggregateByCustomer(ctx)
	if err != nil {
		return nil, err
	}

	out := &dto.ChartDataDTO{
		PieChartData:  make([]dto.PieChartItemDTO, 0, len(rows)),
		LineChartData: make([]dto.LineChartItemDTO, 0, len(rows)),
	}
	for _, r := range rows {
		total2021 := dto.SalesTotal(r.TotalSales2021.InexactFloat64())
		total2022 := dto.SalesTotal(r.TotalSales2022.InexactFloat64())
		out.PieChartData = append(out.PieChartData, dto.PieChartItemDTO{
			CustomerID:     r.CustomerID,
			TotalSales2022: total2022,
		})
		out.LineChartData = append(out.LineChartData, dto.LineChartItemDTO{
			CustomerID: r.CustomerID,
			SalesData:  dto.SalesByYearDTO{Year2021: total2021, Year2022: total2022},
		})
	}
	return out, nil
}

// RecordCount número de registros almacenados (health).
func (uc *SalesUseCase) RecordCount(ctx context.Context) (int64, error) {
	return uc.repo.Count(ctx)
}

func toCustomerSalesDTOs(list []*entity.CustomerSales) []dto.CustomerSalesDTO {
	out := make([]dto.CustomerSalesDTO, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CustomerSalesDTO{
			CustomerName: c.CustomerName(),
			Sales2021:    c.Sales2021,
			Sales2022:    c.Sales2022,
		})
	}
	return out
}
