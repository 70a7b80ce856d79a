package handlers

import (
	"net/http"
	"time"

	"sales-insights/internal/errors"
	"sales-insights/internal/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	db        *gorm.DB
	dashboard services.DashboardServiceInterface
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db *gorm.DB, dashboard services.DashboardServiceInterface) *HealthCheckHandler {
	return &HealthCheckHandler{db: db, dashboard: dashboard}
}

// HealthCheck reports API, database, and dataset status
//
// Method: GET /health
// Authentication: None
//
// Success Response: 200 OK
//   - status: "healthy"
//   - dataset_rows: Number of normalized rows currently served
//   - time: ISO 8601 timestamp
//
// Error Responses:
//   - 503: Database connection failed
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return h.unavailable(c)
	}

	if err := sqlDB.Ping(); err != nil {
		return h.unavailable(c)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":       "healthy",
		"dataset_rows": h.dashboard.RowCount(),
		"time":         time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthCheckHandler) unavailable(c echo.Context) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(
		errors.SystemServiceUnavailable,
		traceID,
		errors.WithDetails("Database connection failed"),
	)
	return c.JSON(http.StatusServiceUnavailable, errorResponse)
}
