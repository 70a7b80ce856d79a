package models

import "github.com/shopspring/decimal"

// Granularity identifies one of the three period-key resolutions
type Granularity string

const (
	GranularityYear    Granularity = "year"
	GranularityQuarter Granularity = "quarter"
	GranularityMonth   Granularity = "month"
)

// PeriodKey identifies a time bucket. Ordering always compares the (Year, Ordinal)
// pair, never the label string, so key ordering survives any label format change.
// Ordinal is 0 for yearly buckets, 1-4 for quarters and 1-12 for months.
type PeriodKey struct {
	Label   string `json:"label"`
	Year    int    `json:"year"`
	Ordinal int    `json:"ordinal"`
}

// Less reports whether k sorts before other
func (k PeriodKey) Less(other PeriodKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Ordinal < other.Ordinal
}

// AggregateRow is one (period, region) group sum for a granularity
type AggregateRow struct {
	Period PeriodKey       `json:"period"`
	Region string          `json:"region"`
	Amount decimal.Decimal `json:"amount"`
}

// TotalRow is one per-period total, reduced from the AggregateRows of that period
type TotalRow struct {
	Period PeriodKey       `json:"period"`
	Amount decimal.Decimal `json:"amount"`
}
