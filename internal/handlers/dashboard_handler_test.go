package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"sales-insights/internal/models"
	"sales-insights/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// stubSalesRepo serves a fixed row slice, standing in for the database
type stubSalesRepo struct {
	rows []models.SalesTransaction
}

func (r *stubSalesRepo) GetAll() ([]models.SalesTransaction, error) { return r.rows, nil }
func (r *stubSalesRepo) Count() (int64, error)                      { return int64(len(r.rows)), nil }
func (r *stubSalesRepo) DistinctRegions() ([]string, error)         { return nil, nil }
func (r *stubSalesRepo) BulkInsert(rows []models.SalesTransaction) error {
	r.rows = append(r.rows, rows...)
	return nil
}
func (r *stubSalesRepo) DeleteAll() error { r.rows = nil; return nil }

// noopMetrics discards all recordings
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string)     {}
func (noopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}

type DashboardHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	repo    *stubSalesRepo
	service services.DashboardServiceInterface
	handler *DashboardHandler
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()

	s.repo = &stubSalesRepo{
		rows: []models.SalesTransaction{
			{
				DocumentDate: time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
				Region:       "North",
				CustomerCode: "C1",
				StockCode:    "S1",
				NetAmount:    decimal.NewFromInt(1_000_000),
				CartonQty:    decimal.NewFromInt(10),
			},
			{
				DocumentDate: time.Date(2023, 5, 20, 0, 0, 0, 0, time.UTC),
				Region:       "South",
				CustomerCode: "C2",
				StockCode:    "S2",
				NetAmount:    decimal.NewFromInt(2_000_000),
				CartonQty:    decimal.NewFromInt(20),
			},
		},
	}

	s.service = services.NewDashboardService(
		s.repo,
		services.NewNormalizerService(),
		services.NewFilterService(),
		services.NewAggregationService(),
		services.NewKPIService(),
		services.NewFormatterService("$"),
		noopMetrics{},
	)
	s.handler = NewDashboardHandler(s.service)
}

func (s *DashboardHandlerTestSuite) loadDataset() {
	s.Require().NoError(s.service.Load())
}

func (s *DashboardHandlerTestSuite) decodeData(rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	data, ok := body["data"].(map[string]interface{})
	s.Require().True(ok, "response has no data object: %s", rec.Body.String())
	return data
}

func (s *DashboardHandlerTestSuite) decodeErrorCode(rec *httptest.ResponseRecorder) string {
	var body map[string]map[string]interface{}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	code, _ := body["error"]["code"].(string)
	return code
}

// ========================================
// GET /api/v1/dashboard Tests
// ========================================

func (s *DashboardHandlerTestSuite) TestGetDashboard_Success() {
	s.loadDataset()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	data := s.decodeData(rec)
	s.Equal("$3.00M", data["total_sales"])
	s.Equal("2", data["distinct_customers"])
	s.Equal("2", data["distinct_skus"])
	s.ElementsMatch([]interface{}{"North", "South"}, data["selection"])
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_NotLoaded() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("DATASET_001", s.decodeErrorCode(rec))
}

// ========================================
// GET /api/v1/regions Tests
// ========================================

func (s *DashboardHandlerTestSuite) TestListRegions_Success() {
	s.loadDataset()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.ListRegions(c))
	s.Equal(http.StatusOK, rec.Code)

	data := s.decodeData(rec)
	s.Equal([]interface{}{"North", "South"}, data["regions"])
	s.Equal(float64(2), data["count"])
}

// An empty source table still counts as a loaded dataset; the catalog is
// just empty rather than unavailable
func (s *DashboardHandlerTestSuite) TestListRegions_LoadedButEmpty() {
	s.repo.rows = nil
	s.loadDataset()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.ListRegions(c))
	s.Equal(http.StatusOK, rec.Code)

	data := s.decodeData(rec)
	s.Empty(data["regions"])
	s.Equal(float64(0), data["count"])
}

func (s *DashboardHandlerTestSuite) TestListRegions_NotLoaded() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/regions", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.ListRegions(c))
	s.Equal(http.StatusServiceUnavailable, rec.Code)
}

// ========================================
// PUT /api/v1/dashboard/selection Tests
// ========================================

func (s *DashboardHandlerTestSuite) putSelection(body string) (*httptest.ResponseRecorder, error) {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/dashboard/selection", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	return rec, s.handler.UpdateSelection(c)
}

func (s *DashboardHandlerTestSuite) TestUpdateSelection_Narrowing() {
	s.loadDataset()

	rec, err := s.putSelection(`{"regions":["North"]}`)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	data := s.decodeData(rec)
	s.Equal("$1.00M", data["total_sales"])
	s.Equal([]interface{}{"North"}, data["selection"])
}

// Region labels are taken verbatim from the source table; punctuation,
// accents, and leading digits must round-trip through selection updates
func (s *DashboardHandlerTestSuite) TestUpdateSelection_PunctuatedRegionLabel() {
	s.repo.rows = append(s.repo.rows, models.SalesTransaction{
		DocumentDate: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		Region:       "Africa & Middle East",
		CustomerCode: "C3",
		StockCode:    "S3",
		NetAmount:    decimal.NewFromInt(500_000),
		CartonQty:    decimal.NewFromInt(5),
	})
	s.loadDataset()

	rec, err := s.putSelection(`{"regions":["Africa & Middle East"]}`)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	data := s.decodeData(rec)
	s.Equal("$0.50M", data["total_sales"])
	s.Equal([]interface{}{"Africa & Middle East"}, data["selection"])
}

func (s *DashboardHandlerTestSuite) TestUpdateSelection_BlankRegionRejected() {
	s.loadDataset()

	_, err := s.putSelection(`{"regions":["   "]}`)
	s.Require().Error(err)

	var validationErrs validator.ValidationErrors
	s.ErrorAs(err, &validationErrs)
}

func (s *DashboardHandlerTestSuite) TestUpdateSelection_UnknownRegionZeroMatch() {
	s.loadDataset()

	rec, err := s.putSelection(`{"regions":["Atlantis"]}`)
	s.Require().NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	data := s.decodeData(rec)
	s.Equal("$0.00M", data["total_sales"])
	s.Equal("0", data["distinct_customers"])
}

// Validation failures bubble up as validator errors for the central HTTP
// error handler, which maps them to 400 responses
func (s *DashboardHandlerTestSuite) TestUpdateSelection_EmptyListRejected() {
	s.loadDataset()

	_, err := s.putSelection(`{"regions":[]}`)
	s.Require().Error(err)

	var validationErrs validator.ValidationErrors
	s.ErrorAs(err, &validationErrs)
}

func (s *DashboardHandlerTestSuite) TestUpdateSelection_MissingFieldRejected() {
	s.loadDataset()

	_, err := s.putSelection(`{}`)
	s.Require().Error(err)

	var validationErrs validator.ValidationErrors
	s.ErrorAs(err, &validationErrs)
}

func (s *DashboardHandlerTestSuite) TestUpdateSelection_MalformedBody() {
	s.loadDataset()

	rec, err := s.putSelection(`{"regions": "North"}`)
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("SELECTION_002", s.decodeErrorCode(rec))
}

func (s *DashboardHandlerTestSuite) TestUpdateSelection_NotLoaded() {
	rec, err := s.putSelection(`{"regions":["North"]}`)
	s.Require().NoError(err)
	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("DATASET_001", s.decodeErrorCode(rec))
}

// A rejected selection leaves the previous snapshot in place
func (s *DashboardHandlerTestSuite) TestUpdateSelection_RejectionKeepsSnapshot() {
	s.loadDataset()

	_, err := s.putSelection(`{"regions":[]}`)
	s.Require().Error(err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	getRec := httptest.NewRecorder()
	c := s.echo.NewContext(req, getRec)

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, getRec.Code)
	s.Equal("$3.00M", s.decodeData(getRec)["total_sales"])
}

// ========================================
// POST /api/v1/dataset/reload Tests
// ========================================

func (s *DashboardHandlerTestSuite) TestReloadDataset_Success() {
	s.loadDataset()

	s.repo.rows = append(s.repo.rows, models.SalesTransaction{
		DocumentDate: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Region:       "East",
		CustomerCode: "C3",
		StockCode:    "S3",
		NetAmount:    decimal.NewFromInt(500_000),
		CartonQty:    decimal.NewFromInt(5),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dataset/reload", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.ReloadDataset(c))
	s.Equal(http.StatusOK, rec.Code)

	data := s.decodeData(rec)
	s.Equal(float64(3), data["row_count"])
	s.Equal([]interface{}{"East", "North", "South"}, data["regions"])
}

func (s *DashboardHandlerTestSuite) TestReloadDataset_SchemaErrorKeepsServing() {
	s.loadDataset()

	s.repo.rows = append(s.repo.rows, models.SalesTransaction{
		Region:       "East",
		CustomerCode: "C3",
		StockCode:    "S3",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dataset/reload", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Require().NoError(s.handler.ReloadDataset(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Equal("DATASET_002", s.decodeErrorCode(rec))

	// Previous snapshot still serves
	getReq := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	getRec := httptest.NewRecorder()
	s.Require().NoError(s.handler.GetDashboard(s.echo.NewContext(getReq, getRec)))
	s.Equal(http.StatusOK, getRec.Code)
	s.Equal("$3.00M", s.decodeData(getRec)["total_sales"])
}
