package services

import (
	"testing"

	"sales-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// FormatterServiceTestSuite defines the test suite for the presentation formatter
type FormatterServiceTestSuite struct {
	suite.Suite
	service FormatterServiceInterface
}

// SetupTest runs before each test
func (s *FormatterServiceTestSuite) SetupTest() {
	s.service = NewFormatterService("$")
}

// TestFormatterServiceSuite runs the test suite
func TestFormatterServiceSuite(t *testing.T) {
	suite.Run(t, new(FormatterServiceTestSuite))
}

func (s *FormatterServiceTestSuite) TestFormatKPIs_CurrencyMillions() {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"three million", decimal.NewFromInt(3_000_000), "$3.00M"},
		{"fractional millions", decimal.NewFromInt(1_234_567), "$1.23M"},
		{"zero", decimal.Zero, "$0.00M"},
		{"below one million", decimal.NewFromInt(500_000), "$0.50M"},
		{"negative keeps sign", decimal.NewFromInt(-500_000), "$-0.50M"},
	}

	for _, tt := range tests {
		formatted := s.service.FormatKPIs(models.SalesKPIs{TotalSales: tt.amount})
		s.Equal(tt.want, formatted.TotalSales, tt.name)
	}
}

// Carton totals use the same millions scaling but no currency symbol
func (s *FormatterServiceTestSuite) TestFormatKPIs_CartonsBare() {
	formatted := s.service.FormatKPIs(models.SalesKPIs{
		TotalCartons: decimal.NewFromInt(1_250_000),
	})

	s.Equal("1.25M", formatted.TotalCartons)
}

func (s *FormatterServiceTestSuite) TestFormatKPIs_CountsWithSeparators() {
	tests := []struct {
		count int
		want  string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{45231, "45,231"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		formatted := s.service.FormatKPIs(models.SalesKPIs{DistinctCustomers: tt.count})
		s.Equal(tt.want, formatted.DistinctCustomers)
	}
}

func (s *FormatterServiceTestSuite) TestFormatKPIs_ZeroView() {
	formatted := s.service.FormatKPIs(models.SalesKPIs{})

	s.Equal("$0.00M", formatted.TotalSales)
	s.Equal("0.00M", formatted.TotalCartons)
	s.Equal("0", formatted.DistinctCustomers)
	s.Equal("0", formatted.DistinctSKUs)
}

func (s *FormatterServiceTestSuite) TestFormatSeries_BarsAndAnnotations() {
	period := models.PeriodKey{Label: "2023", Year: 2023}
	rows := []models.AggregateRow{
		{Period: period, Region: "A", Amount: decimal.NewFromInt(1_000_000)},
		{Period: period, Region: "B", Amount: decimal.NewFromInt(2_000_000)},
	}
	totals := []models.TotalRow{
		{Period: period, Amount: decimal.NewFromInt(3_000_000)},
	}

	series := s.service.FormatSeries(models.GranularityYear, rows, totals)

	s.Equal(models.GranularityYear, series.Granularity)
	s.Require().Len(series.Bars, 2)
	s.Equal("A", series.Bars[0].Region)
	s.Equal("B", series.Bars[1].Region)

	s.Require().Len(series.Annotations, 1)
	s.Equal("2023", series.Annotations[0].Period.Label)
	s.Equal("$3.00M", series.Annotations[0].Label)
	s.True(series.Annotations[0].Total.Equal(decimal.NewFromInt(3_000_000)))
}

func (s *FormatterServiceTestSuite) TestFormatSeries_EmptyInputs() {
	series := s.service.FormatSeries(models.GranularityMonth, nil, nil)

	s.Equal(models.GranularityMonth, series.Granularity)
	s.Empty(series.Bars)
	s.Empty(series.Annotations)
}

func (s *FormatterServiceTestSuite) TestCustomCurrencySymbol() {
	service := NewFormatterService("€")

	formatted := service.FormatKPIs(models.SalesKPIs{TotalSales: decimal.NewFromInt(2_000_000)})
	s.Equal("€2.00M", formatted.TotalSales)
}
