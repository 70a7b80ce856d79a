package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesKPIs holds the four scalar summaries computed over a filtered view.
// An empty view yields all-zero KPIs; that is a valid result, not an error.
type SalesKPIs struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalCartons      decimal.Decimal `json:"total_cartons"`
	DistinctCustomers int             `json:"distinct_customers"`
	DistinctSKUs      int             `json:"distinct_skus"`
}

// FormattedKPIs holds the display-string form of SalesKPIs
type FormattedKPIs struct {
	TotalSales        string `json:"total_sales"`
	TotalCartons      string `json:"total_cartons"`
	DistinctCustomers string `json:"distinct_customers"`
	DistinctSKUs      string `json:"distinct_skus"`
}

// SeriesBar is one stacked-bar segment of a chart series
type SeriesBar struct {
	Period PeriodKey       `json:"period"`
	Region string          `json:"region"`
	Value  decimal.Decimal `json:"value"`
}

// SeriesAnnotation is the total label rendered at a period's cumulative top
type SeriesAnnotation struct {
	Period PeriodKey       `json:"period"`
	Total  decimal.Decimal `json:"total"`
	Label  string          `json:"label"`
}

// ChartSeries is the render contract for one stacked bar chart: the bars stack by
// region within each period, the annotations carry the per-period totals.
type ChartSeries struct {
	Granularity Granularity        `json:"granularity"`
	Bars        []SeriesBar        `json:"bars"`
	Annotations []SeriesAnnotation `json:"annotations"`
}

// DashboardSnapshot is one atomic result tuple: the four formatted KPI values and
// the three chart series, all derived from the same filtered view. Snapshots are
// immutable once published.
type DashboardSnapshot struct {
	Selection         []string    `json:"selection"`
	TotalSales        string      `json:"total_sales"`
	TotalCartons      string      `json:"total_cartons"`
	DistinctCustomers string      `json:"distinct_customers"`
	DistinctSKUs      string      `json:"distinct_skus"`
	YearlySeries      ChartSeries `json:"yearly_series"`
	QuarterlySeries   ChartSeries `json:"quarterly_series"`
	MonthlySeries     ChartSeries `json:"monthly_series"`
	GeneratedAt       time.Time   `json:"generated_at"`
}
