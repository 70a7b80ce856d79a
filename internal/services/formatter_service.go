package services

import (
	"fmt"
	"strings"

	"sales-insights/internal/models"

	"github.com/shopspring/decimal"
)

var millionDivisor = decimal.NewFromInt(1_000_000)

// formatterService implements FormatterServiceInterface
type formatterService struct {
	currencySymbol string
}

// NewFormatterService creates a new presentation formatter. The currency symbol
// prefixes sales amounts only; carton quantities render bare.
func NewFormatterService(currencySymbol string) FormatterServiceInterface {
	if currencySymbol == "" {
		currencySymbol = "$"
	}
	return &formatterService{
		currencySymbol: currencySymbol,
	}
}

// FormatKPIs renders the scalar summaries: measures scaled to millions with two
// decimal places and an "M" suffix, counts with thousands separators.
func (s *formatterService) FormatKPIs(kpis models.SalesKPIs) models.FormattedKPIs {
	return models.FormattedKPIs{
		TotalSales:        s.formatCurrencyMillions(kpis.TotalSales),
		TotalCartons:      formatMillions(kpis.TotalCartons),
		DistinctCustomers: formatCount(kpis.DistinctCustomers),
		DistinctSKUs:      formatCount(kpis.DistinctSKUs),
	}
}

// FormatSeries bundles the aggregate rows as stacked bars and the totals as
// text annotations positioned at each period's cumulative top, labelled with
// the same currency-in-millions rule as the total sales KPI.
func (s *formatterService) FormatSeries(granularity models.Granularity, rows []models.AggregateRow, totals []models.TotalRow) models.ChartSeries {
	bars := make([]models.SeriesBar, 0, len(rows))
	for _, row := range rows {
		bars = append(bars, models.SeriesBar{
			Period: row.Period,
			Region: row.Region,
			Value:  row.Amount,
		})
	}

	annotations := make([]models.SeriesAnnotation, 0, len(totals))
	for _, total := range totals {
		annotations = append(annotations, models.SeriesAnnotation{
			Period: total.Period,
			Total:  total.Amount,
			Label:  s.formatCurrencyMillions(total.Amount),
		})
	}

	return models.ChartSeries{
		Granularity: granularity,
		Bars:        bars,
		Annotations: annotations,
	}
}

func (s *formatterService) formatCurrencyMillions(amount decimal.Decimal) string {
	return s.currencySymbol + formatMillions(amount)
}

// formatMillions scales to millions with two decimal places, e.g. 3_000_000 ->
// "3.00M". Negative amounts keep their sign: "-0.50M".
func formatMillions(amount decimal.Decimal) string {
	return amount.Div(millionDivisor).StringFixed(2) + "M"
}

// formatCount renders an integer with comma thousands separators
func formatCount(n int) string {
	if n < 0 {
		return "-" + formatCount(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	var parts []string
	for n >= 1000 {
		parts = append([]string{fmt.Sprintf("%03d", n%1000)}, parts...)
		n /= 1000
	}
	parts = append([]string{fmt.Sprintf("%d", n)}, parts...)
	return strings.Join(parts, ",")
}
