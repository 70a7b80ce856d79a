package services

import (
	"testing"
	"time"

	"sales-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AggregationServiceTestSuite defines the test suite for the aggregation engine
type AggregationServiceTestSuite struct {
	suite.Suite
	service AggregationServiceInterface
}

// SetupTest runs before each test
func (s *AggregationServiceTestSuite) SetupTest() {
	s.service = NewAggregationService()
}

// TestAggregationServiceSuite runs the test suite
func TestAggregationServiceSuite(t *testing.T) {
	suite.Run(t, new(AggregationServiceTestSuite))
}

func (s *AggregationServiceTestSuite) buildView(rows ...models.SalesTransaction) *models.FilteredView {
	normalizer := NewNormalizerService()
	table, err := normalizer.Normalize(rows)
	s.Require().NoError(err)

	view, err := NewFilterService().Filter(table, models.NewRegionSelection(table.Regions))
	s.Require().NoError(err)
	return view
}

func amountRow(date time.Time, region string, amount int64) models.SalesTransaction {
	row := sourceRow(date, region)
	row.NetAmount = decimal.NewFromInt(amount)
	return row
}

func (s *AggregationServiceTestSuite) TestAggregate_GroupsByPeriodAndRegion() {
	view := s.buildView(
		amountRow(time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), "A", 1_000_000),
		amountRow(time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC), "B", 2_000_000),
	)

	rows, totals := s.service.Aggregate(view, models.GranularityYear)

	s.Require().Len(rows, 2)
	s.Equal("2023", rows[0].Period.Label)
	s.Equal("A", rows[0].Region)
	s.True(rows[0].Amount.Equal(decimal.NewFromInt(1_000_000)))
	s.Equal("B", rows[1].Region)
	s.True(rows[1].Amount.Equal(decimal.NewFromInt(2_000_000)))

	s.Require().Len(totals, 1)
	s.Equal("2023", totals[0].Period.Label)
	s.True(totals[0].Amount.Equal(decimal.NewFromInt(3_000_000)))
}

func (s *AggregationServiceTestSuite) TestAggregate_SumsWithinGroup() {
	view := s.buildView(
		amountRow(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), "A", 100),
		amountRow(time.Date(2023, 2, 15, 0, 0, 0, 0, time.UTC), "A", 250),
	)

	rows, totals := s.service.Aggregate(view, models.GranularityMonth)

	s.Require().Len(rows, 1)
	s.Equal("2023-02", rows[0].Period.Label)
	s.True(rows[0].Amount.Equal(decimal.NewFromInt(350)))
	s.True(totals[0].Amount.Equal(decimal.NewFromInt(350)))
}

// Each period total must equal the sum of its per-region rows
func (s *AggregationServiceTestSuite) TestAggregate_TotalsMatchGroupSums() {
	view := s.buildView(
		amountRow(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), "A", 111),
		amountRow(time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC), "B", 222),
		amountRow(time.Date(2023, 5, 3, 0, 0, 0, 0, time.UTC), "A", 333),
		amountRow(time.Date(2023, 5, 4, 0, 0, 0, 0, time.UTC), "B", 444),
	)

	for _, granularity := range []models.Granularity{
		models.GranularityYear, models.GranularityQuarter, models.GranularityMonth,
	} {
		rows, totals := s.service.Aggregate(view, granularity)

		for _, total := range totals {
			sum := decimal.Zero
			for _, row := range rows {
				if row.Period == total.Period {
					sum = sum.Add(row.Amount)
				}
			}
			s.True(total.Amount.Equal(sum),
				"total for %s should equal sum of its rows", total.Period.Label)
		}
	}
}

// For one filtered view, the bar sums of all three granularities and the raw
// KPI total must all be the same number
func (s *AggregationServiceTestSuite) TestAggregate_ConservationAcrossGranularities() {
	view := s.buildView(
		amountRow(time.Date(2022, 1, 5, 0, 0, 0, 0, time.UTC), "A", 1_234_567),
		amountRow(time.Date(2022, 11, 9, 0, 0, 0, 0, time.UTC), "B", 765_433),
		amountRow(time.Date(2023, 4, 2, 0, 0, 0, 0, time.UTC), "A", 2_000_000),
		amountRow(time.Date(2023, 4, 18, 0, 0, 0, 0, time.UTC), "C", 999_999),
		amountRow(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), "B", -250_000),
	)

	barSum := func(granularity models.Granularity) decimal.Decimal {
		rows, _ := s.service.Aggregate(view, granularity)
		sum := decimal.Zero
		for _, row := range rows {
			sum = sum.Add(row.Amount)
		}
		return sum
	}

	yearly := barSum(models.GranularityYear)
	quarterly := barSum(models.GranularityQuarter)
	monthly := barSum(models.GranularityMonth)
	kpiTotal := NewKPIService().Compute(view).TotalSales

	s.True(yearly.Equal(quarterly), "yearly %s vs quarterly %s", yearly, quarterly)
	s.True(quarterly.Equal(monthly), "quarterly %s vs monthly %s", quarterly, monthly)
	s.True(monthly.Equal(kpiTotal), "monthly %s vs KPI total %s", monthly, kpiTotal)
	s.True(yearly.Equal(decimal.NewFromInt(4_749_999)))
}

func (s *AggregationServiceTestSuite) TestAggregate_MonthlyOrderingCrossesYearBoundary() {
	view := s.buildView(
		amountRow(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), "A", 1),
		amountRow(time.Date(2019, 12, 1, 0, 0, 0, 0, time.UTC), "A", 1),
		amountRow(time.Date(2019, 2, 1, 0, 0, 0, 0, time.UTC), "A", 1),
	)

	_, totals := s.service.Aggregate(view, models.GranularityMonth)

	s.Require().Len(totals, 3)
	s.Equal("2019-02", totals[0].Period.Label)
	s.Equal("2019-12", totals[1].Period.Label)
	s.Equal("2020-01", totals[2].Period.Label)
}

func (s *AggregationServiceTestSuite) TestAggregate_QuarterKeys() {
	view := s.buildView(
		amountRow(time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC), "A", 1),
		amountRow(time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC), "A", 1),
	)

	_, totals := s.service.Aggregate(view, models.GranularityQuarter)

	s.Require().Len(totals, 2)
	s.Equal("2023-Q1", totals[0].Period.Label)
	s.Equal("2023-Q2", totals[1].Period.Label)
}

// Periods with no rows do not appear; no zero-valued synthetic rows
func (s *AggregationServiceTestSuite) TestAggregate_OmitsEmptyPeriods() {
	view := s.buildView(
		amountRow(time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "A", 1),
		amountRow(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), "A", 1),
	)

	_, totals := s.service.Aggregate(view, models.GranularityMonth)

	s.Len(totals, 2)
}

func (s *AggregationServiceTestSuite) TestAggregate_RegionsLexicalWithinPeriod() {
	view := s.buildView(
		amountRow(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), "West", 1),
		amountRow(time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC), "East", 1),
		amountRow(time.Date(2023, 2, 3, 0, 0, 0, 0, time.UTC), "North", 1),
	)

	rows, _ := s.service.Aggregate(view, models.GranularityMonth)

	s.Require().Len(rows, 3)
	s.Equal("East", rows[0].Region)
	s.Equal("North", rows[1].Region)
	s.Equal("West", rows[2].Region)
}

func (s *AggregationServiceTestSuite) TestAggregate_EmptyView() {
	view := &models.FilteredView{Selection: models.NewRegionSelection([]string{"A"})}

	rows, totals := s.service.Aggregate(view, models.GranularityYear)

	s.Empty(rows)
	s.Empty(totals)
}

// Negative amounts (credit notes) flow through the sums unchanged
func (s *AggregationServiceTestSuite) TestAggregate_NegativeAmounts() {
	view := s.buildView(
		amountRow(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), "A", 500),
		amountRow(time.Date(2023, 2, 2, 0, 0, 0, 0, time.UTC), "A", -200),
	)

	rows, totals := s.service.Aggregate(view, models.GranularityYear)

	s.Require().Len(rows, 1)
	s.True(rows[0].Amount.Equal(decimal.NewFromInt(300)))
	s.True(totals[0].Amount.Equal(decimal.NewFromInt(300)))
}
