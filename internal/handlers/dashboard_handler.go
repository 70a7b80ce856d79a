package handlers

import (
	"errors"
	"net/http"

	"sales-insights/internal/dto"
	apierrors "sales-insights/internal/errors"
	"sales-insights/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandler exposes the reactive sales dashboard over HTTP: the current
// snapshot, the region catalog, selection changes, and dataset reloads.
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the current dashboard snapshot
//
// Method: GET /api/v1/dashboard
// Authentication: Viewer token (when enabled)
//
// Success Response: 200 OK
//   - selection: Array of selected region labels
//   - total_sales: Formatted currency string, e.g. "$3.00M"
//   - total_cartons: Formatted quantity string, e.g. "1.25M"
//   - distinct_customers: Comma-separated count string
//   - distinct_skus: Comma-separated count string
//   - yearly_series, quarterly_series, monthly_series: Stacked bar chart series
//   - generated_at: ISO 8601 timestamp
//
// Error Responses:
//   - 401: Unauthorized (missing or invalid viewer token)
//   - 503: Dataset not loaded
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	snapshot, err := h.dashboardService.Snapshot()
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: snapshot,
	})
}

// ListRegions returns the distinct regions present in the loaded dataset
//
// Method: GET /api/v1/regions
// Authentication: Viewer token (when enabled)
//
// Success Response: 200 OK
//   - regions: Sorted array of region labels
//   - count: Number of regions
//
// Error Responses:
//   - 401: Unauthorized (missing or invalid viewer token)
//   - 503: Dataset not loaded
func (h *DashboardHandler) ListRegions(c echo.Context) error {
	// A dataset that loaded empty still answers with an empty catalog; only a
	// dataset that never loaded is a 503
	if h.dashboardService.LoadedAt().IsZero() {
		return SendError(c, apierrors.DatasetNotLoaded)
	}

	regions := h.dashboardService.Regions()

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.RegionsResponse{
			Regions: regions,
			Count:   len(regions),
		},
	})
}

// UpdateSelection replaces the active region selection and returns the
// recomputed snapshot
//
// Method: PUT /api/v1/dashboard/selection
// Authentication: Viewer token (when enabled)
//
// Request Body:
//   - regions: Non-empty array of region labels
//
// Success Response: 200 OK
//   - The new dashboard snapshot (same shape as GET /api/v1/dashboard)
//
// Error Responses:
//   - 400: Empty or malformed selection (previous snapshot remains active)
//   - 401: Unauthorized (missing or invalid viewer token)
//   - 503: Dataset not loaded
func (h *DashboardHandler) UpdateSelection(c echo.Context) error {
	var req dto.SelectionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, apierrors.SelectionInvalid, apierrors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return err
	}

	snapshot, err := h.dashboardService.ApplySelection(req.Regions)
	if err != nil {
		return h.handleServiceError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: snapshot,
	})
}

// ReloadDataset re-reads the sales table from the database and rebuilds the
// snapshot under the current selection policy
//
// Method: POST /api/v1/dataset/reload
// Authentication: Viewer token (when enabled)
//
// Success Response: 200 OK
//   - row_count: Number of normalized rows
//   - regions: Sorted array of region labels
//   - loaded_at: ISO 8601 timestamp
//
// Error Responses:
//   - 401: Unauthorized (missing or invalid viewer token)
//   - 422: Source row failed normalization (previous dataset is still served)
//   - 500: Database error
func (h *DashboardHandler) ReloadDataset(c echo.Context) error {
	if err := h.dashboardService.Reload(); err != nil {
		var schemaErr *services.SchemaError
		if errors.As(err, &schemaErr) {
			return SendError(c, apierrors.DatasetReloadFailed,
				apierrors.WithDetails(schemaErr.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.ReloadResponse{
			RowCount: h.dashboardService.RowCount(),
			Regions:  h.dashboardService.Regions(),
			LoadedAt: h.dashboardService.LoadedAt(),
		},
		Message: "dataset reloaded",
	})
}

func (h *DashboardHandler) handleServiceError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrDatasetNotLoaded) {
		return SendError(c, apierrors.DatasetNotLoaded)
	}

	if errors.Is(err, services.ErrEmptySelection) {
		return SendError(c, apierrors.SelectionEmpty)
	}

	return SendSystemError(c, err)
}
