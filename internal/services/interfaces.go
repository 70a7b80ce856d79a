package services

import (
	"time"

	"sales-insights/internal/models"
)

// NormalizerServiceInterface validates raw sales rows and derives the canonical
// time-bucket fields. Runs once per dataset load, never per filter event.
type NormalizerServiceInterface interface {
	// Normalize returns a new normalized table or a *SchemaError for the first
	// row that cannot be normalized. There is no partial output.
	Normalize(rows []models.SalesTransaction) (*models.NormalizedTable, error)
}

// FilterServiceInterface applies the region set-membership predicate
type FilterServiceInterface interface {
	// Filter returns the order-preserving subsequence of the table matching the
	// selection. An empty selection fails with ErrEmptySelection.
	Filter(table *models.NormalizedTable, selection models.RegionSelection) (*models.FilteredView, error)
}

// AggregationServiceInterface groups a filtered view by (period, region) and by
// period alone, summing the net amount measure
type AggregationServiceInterface interface {
	// Aggregate is invoked once per granularity. Totals are reduced from the
	// group sums, never from a second scan of the rows, so rows and totals are
	// measure-consistent by construction.
	Aggregate(view *models.FilteredView, granularity models.Granularity) ([]models.AggregateRow, []models.TotalRow)
}

// KPIServiceInterface computes the four scalar summaries over a filtered view
type KPIServiceInterface interface {
	Compute(view *models.FilteredView) models.SalesKPIs
}

// FormatterServiceInterface turns aggregation and KPI outputs into display form.
// Both methods are total functions of well-formed inputs.
type FormatterServiceInterface interface {
	FormatKPIs(kpis models.SalesKPIs) models.FormattedKPIs
	FormatSeries(granularity models.Granularity, rows []models.AggregateRow, totals []models.TotalRow) models.ChartSeries
}

// DashboardServiceInterface is the reactive controller: it owns the normalized
// table and the single mutable region selection, and republishes one atomic
// snapshot per selection change.
type DashboardServiceInterface interface {
	Load() error
	Reload() error
	Regions() []string
	CurrentSelection() models.RegionSelection
	ApplySelection(regions []string) (*models.DashboardSnapshot, error)
	Snapshot() (*models.DashboardSnapshot, error)
	RowCount() int
	LoadedAt() time.Time
}

// SalesDataGeneratorInterface produces realistic sales rows for dev seeding,
// standing in for the excluded spreadsheet loader collaborator
type SalesDataGeneratorInterface interface {
	Generate(count int) []models.SalesTransaction
}

// TokenServiceInterface issues and validates dashboard viewer tokens
type TokenServiceInterface interface {
	GenerateViewerToken(subject string) (string, time.Time, error)
	ValidateViewerToken(tokenString string) (*models.ViewerClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// MetricsRecorderInterface abstracts metric collection from the services
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
