package models

import (
	"fmt"
	"sort"
	"time"
)

// NormalizedTransaction is a SalesTransaction extended with time-bucket fields
// derived once at load time. The derived fields are pure functions of DocumentDate;
// instances are shared read-only by every downstream component.
type NormalizedTransaction struct {
	SalesTransaction

	Year           int    `json:"year"`
	Quarter        int    `json:"quarter"`
	Month          int    `json:"month"`
	YearQuarterKey string `json:"year_quarter_key"`
	YearMonthKey   string `json:"year_month_key"`
}

// DeriveTimeBuckets computes the period fields from DocumentDate.
// Quarter is ceil(month/3); the month key is zero-padded so it sorts lexically.
func (n *NormalizedTransaction) DeriveTimeBuckets() {
	year, month, _ := n.DocumentDate.Date()
	n.Year = year
	n.Month = int(month)
	n.Quarter = (int(month) + 2) / 3
	n.YearQuarterKey = fmt.Sprintf("%d-Q%d", n.Year, n.Quarter)
	n.YearMonthKey = fmt.Sprintf("%d-%02d", n.Year, n.Month)
}

// NormalizedTable is the immutable result of one normalization run. Row order matches
// the source table; Regions holds the distinct region values observed at load time,
// sorted lexically.
type NormalizedTable struct {
	Rows     []NormalizedTransaction
	Regions  []string
	LoadedAt time.Time
}

// DistinctRegions extracts the sorted distinct regions from a set of rows.
func DistinctRegions(rows []NormalizedTransaction) []string {
	seen := make(map[string]bool, len(rows))
	regions := make([]string, 0)
	for i := range rows {
		if region := rows[i].Region; !seen[region] {
			seen[region] = true
			regions = append(regions, region)
		}
	}
	sort.Strings(regions)
	return regions
}

// FilteredView is the subsequence of a NormalizedTable matching a RegionSelection.
// It is recreated on every selection change and has no identity beyond the selection
// that produced it; Rows share backing records with the table (read-only).
type FilteredView struct {
	Rows      []NormalizedTransaction
	Selection RegionSelection
}

// Len returns the number of rows in the view
func (v *FilteredView) Len() int {
	return len(v.Rows)
}
