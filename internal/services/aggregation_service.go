package services

import (
	"sort"
	"strconv"

	"sales-insights/internal/models"

	"github.com/shopspring/decimal"
)

// aggregationService implements AggregationServiceInterface
type aggregationService struct{}

// NewAggregationService creates a new aggregation service
func NewAggregationService() AggregationServiceInterface {
	return &aggregationService{}
}

// Aggregate performs the two-level grouping for one granularity: a single scan
// of the view builds per-(period, region) sums, then the totals are reduced from
// those group sums. Periods with no matching rows simply do not appear; no
// zero-valued synthetic rows are emitted. Amounts accumulate as decimals with no
// rounding; rounding is the formatter's concern.
func (s *aggregationService) Aggregate(view *models.FilteredView, granularity models.Granularity) ([]models.AggregateRow, []models.TotalRow) {
	type groupKey struct {
		period models.PeriodKey
		region string
	}

	sums := make(map[groupKey]decimal.Decimal)
	periods := make(map[models.PeriodKey]bool)
	regionsByPeriod := make(map[models.PeriodKey]map[string]bool)

	for i := range view.Rows {
		row := &view.Rows[i]
		key := groupKey{period: periodKeyFor(row, granularity), region: row.Region}

		sums[key] = sums[key].Add(row.NetAmount)
		periods[key.period] = true
		if regionsByPeriod[key.period] == nil {
			regionsByPeriod[key.period] = make(map[string]bool)
		}
		regionsByPeriod[key.period][row.Region] = true
	}

	orderedPeriods := make([]models.PeriodKey, 0, len(periods))
	for period := range periods {
		orderedPeriods = append(orderedPeriods, period)
	}
	sort.Slice(orderedPeriods, func(i, j int) bool {
		return orderedPeriods[i].Less(orderedPeriods[j])
	})

	rows := make([]models.AggregateRow, 0, len(sums))
	totals := make([]models.TotalRow, 0, len(orderedPeriods))

	for _, period := range orderedPeriods {
		regions := make([]string, 0, len(regionsByPeriod[period]))
		for region := range regionsByPeriod[period] {
			regions = append(regions, region)
		}
		sort.Strings(regions)

		// Second reduction over the group sums, never the raw rows; this is
		// what keeps totals and rows measure-consistent by construction.
		periodTotal := decimal.Zero
		for _, region := range regions {
			amount := sums[groupKey{period: period, region: region}]
			rows = append(rows, models.AggregateRow{
				Period: period,
				Region: region,
				Amount: amount,
			})
			periodTotal = periodTotal.Add(amount)
		}

		totals = append(totals, models.TotalRow{
			Period: period,
			Amount: periodTotal,
		})
	}

	return rows, totals
}

// periodKeyFor picks the precomputed period key for the granularity. The label
// is render-only: ordering always uses the (Year, Ordinal) pair.
func periodKeyFor(row *models.NormalizedTransaction, granularity models.Granularity) models.PeriodKey {
	switch granularity {
	case models.GranularityQuarter:
		return models.PeriodKey{Label: row.YearQuarterKey, Year: row.Year, Ordinal: row.Quarter}
	case models.GranularityMonth:
		return models.PeriodKey{Label: row.YearMonthKey, Year: row.Year, Ordinal: row.Month}
	default:
		return models.PeriodKey{Label: strconv.Itoa(row.Year), Year: row.Year}
	}
}
