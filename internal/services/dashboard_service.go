package services

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"sales-insights/internal/models"
	"sales-insights/internal/repositories"
)

var (
	ErrDatasetNotLoaded = errors.New("sales dataset not loaded")
)

// dashboardService is the reactive controller. It owns the two pieces of state
// the rest of the core is forbidden to hold: the normalized table and the
// current region selection. Every selection change runs the full
// filter -> aggregate -> KPI -> format pipeline under one mutex, so each
// published snapshot is derived from a single filtered view and concurrent
// selection changes serialize instead of interleaving.
type dashboardService struct {
	repo       repositories.SalesTransactionRepositoryInterface
	normalizer NormalizerServiceInterface
	filter     FilterServiceInterface
	aggregator AggregationServiceInterface
	kpis       KPIServiceInterface
	formatter  FormatterServiceInterface
	metrics    MetricsRecorderInterface

	mu        sync.Mutex
	table     *models.NormalizedTable
	selection models.RegionSelection
	published *models.DashboardSnapshot
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	repo repositories.SalesTransactionRepositoryInterface,
	normalizer NormalizerServiceInterface,
	filter FilterServiceInterface,
	aggregator AggregationServiceInterface,
	kpis KPIServiceInterface,
	formatter FormatterServiceInterface,
	metrics MetricsRecorderInterface,
) DashboardServiceInterface {
	return &dashboardService{
		repo:       repo,
		normalizer: normalizer,
		filter:     filter,
		aggregator: aggregator,
		kpis:       kpis,
		formatter:  formatter,
		metrics:    metrics,
	}
}

// Load reads the source table, normalizes it once, and publishes an initial
// snapshot for the default selection (all regions). A SchemaError aborts the
// load and leaves any previously loaded dataset untouched.
func (s *dashboardService) Load() error {
	rows, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to read source table: %w", err)
	}

	table, err := s.normalizer.Normalize(rows)
	if err != nil {
		s.metrics.IncrementCounter("dataset.load", map[string]string{"status": "failed"})
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.table = table
	s.selection = models.NewRegionSelection(table.Regions)

	snapshot, err := s.computeLocked(s.selection)
	if err != nil {
		// Only possible with an empty source table, which produces an empty
		// region set; there is nothing to select so nothing is published yet.
		if errors.Is(err, ErrEmptySelection) {
			s.published = nil
			s.metrics.RecordGauge("dataset.rows", float64(len(table.Rows)), nil)
			slog.Warn("dataset loaded with no regions; no snapshot published",
				"rows", len(table.Rows))
			return nil
		}
		return err
	}

	s.published = snapshot
	s.metrics.IncrementCounter("dataset.load", map[string]string{"status": "success"})
	s.metrics.RecordGauge("dataset.rows", float64(len(table.Rows)), nil)

	slog.Info("dataset loaded",
		"rows", len(table.Rows),
		"regions", table.Regions,
		"loaded_at", table.LoadedAt)

	return nil
}

// Reload re-runs the load. On failure the previously published dataset and
// snapshot keep serving.
func (s *dashboardService) Reload() error {
	return s.Load()
}

// Regions returns the distinct regions observed at load time
func (s *dashboardService) Regions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return nil
	}

	regions := make([]string, len(s.table.Regions))
	copy(regions, s.table.Regions)
	return regions
}

// CurrentSelection returns the selection the published snapshot derives from
func (s *dashboardService) CurrentSelection() models.RegionSelection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// LoadedAt returns when the current dataset was normalized, or the zero time
// if nothing is loaded
func (s *dashboardService) LoadedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return time.Time{}
	}
	return s.table.LoadedAt
}

// RowCount returns the number of normalized rows currently loaded
func (s *dashboardService) RowCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return 0
	}
	return len(s.table.Rows)
}

// ApplySelection recomputes the dashboard for a new region selection and
// publishes the resulting snapshot. On any error the previous snapshot stays
// published and the selection cell is unchanged.
func (s *dashboardService) ApplySelection(regions []string) (*models.DashboardSnapshot, error) {
	selection := models.NewRegionSelection(regions)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table == nil {
		return nil, ErrDatasetNotLoaded
	}

	started := time.Now()

	snapshot, err := s.computeLocked(selection)
	if err != nil {
		s.metrics.IncrementCounter("dashboard.refresh", map[string]string{"status": "rejected"})
		return nil, err
	}

	s.selection = selection
	s.published = snapshot

	s.metrics.IncrementCounter("dashboard.refresh", map[string]string{"status": "success"})
	s.metrics.RecordProcessingTime("dashboard.refresh", time.Since(started))
	s.metrics.RecordGauge("dashboard.selection_size", float64(selection.Size()), nil)

	slog.Info("dashboard refreshed",
		"selection", selection.Regions(),
		"monthly_periods", len(snapshot.MonthlySeries.Annotations),
		"duration_ms", time.Since(started).Milliseconds())

	return snapshot, nil
}

// Snapshot returns the last published snapshot
func (s *dashboardService) Snapshot() (*models.DashboardSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.published == nil {
		return nil, ErrDatasetNotLoaded
	}
	return s.published, nil
}

// computeLocked runs the pure pipeline for one selection. Caller holds s.mu.
func (s *dashboardService) computeLocked(selection models.RegionSelection) (*models.DashboardSnapshot, error) {
	view, err := s.filter.Filter(s.table, selection)
	if err != nil {
		return nil, err
	}

	kpis := s.kpis.Compute(view)
	formatted := s.formatter.FormatKPIs(kpis)

	yearlyRows, yearlyTotals := s.aggregator.Aggregate(view, models.GranularityYear)
	quarterlyRows, quarterlyTotals := s.aggregator.Aggregate(view, models.GranularityQuarter)
	monthlyRows, monthlyTotals := s.aggregator.Aggregate(view, models.GranularityMonth)

	return &models.DashboardSnapshot{
		Selection:         selection.Regions(),
		TotalSales:        formatted.TotalSales,
		TotalCartons:      formatted.TotalCartons,
		DistinctCustomers: formatted.DistinctCustomers,
		DistinctSKUs:      formatted.DistinctSKUs,
		YearlySeries:      s.formatter.FormatSeries(models.GranularityYear, yearlyRows, yearlyTotals),
		QuarterlySeries:   s.formatter.FormatSeries(models.GranularityQuarter, quarterlyRows, quarterlyTotals),
		MonthlySeries:     s.formatter.FormatSeries(models.GranularityMonth, monthlyRows, monthlyTotals),
		GeneratedAt:       time.Now().UTC(),
	}, nil
}
