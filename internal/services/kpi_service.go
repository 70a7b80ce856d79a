package services

import (
	"sales-insights/internal/models"

	"github.com/shopspring/decimal"
)

// kpiService implements KPIServiceInterface
type kpiService struct{}

// NewKPIService creates a new KPI service
func NewKPIService() KPIServiceInterface {
	return &kpiService{}
}

// Compute sums the two measure columns and counts the distinct customer and
// stock codes within the filtered view. An empty view yields all-zero KPIs.
func (s *kpiService) Compute(view *models.FilteredView) models.SalesKPIs {
	totalSales := decimal.Zero
	totalCartons := decimal.Zero
	customers := make(map[string]bool)
	skus := make(map[string]bool)

	for i := range view.Rows {
		row := &view.Rows[i]
		totalSales = totalSales.Add(row.NetAmount)
		totalCartons = totalCartons.Add(row.CartonQty)
		customers[row.CustomerCode] = true
		skus[row.StockCode] = true
	}

	return models.SalesKPIs{
		TotalSales:        totalSales,
		TotalCartons:      totalCartons,
		DistinctCustomers: len(customers),
		DistinctSKUs:      len(skus),
	}
}
