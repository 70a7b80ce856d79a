package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// RequestIDTestSuite defines the test suite for request ID middleware
type RequestIDTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *RequestIDTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestRequestIDTestSuite runs the test suite
func TestRequestIDTestSuite(t *testing.T) {
	suite.Run(t, new(RequestIDTestSuite))
}

// TestRequestID_GeneratesTraceID tests that middleware generates a trace ID
func (s *RequestIDTestSuite) TestRequestID_GeneratesTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		traceID := c.Get(TraceIDContextKey)
		s.NotNil(traceID)
		s.NotEmpty(traceID.(string))
		return c.NoContent(http.StatusOK)
	})

	s.NoError(handler(c))
	s.NotEmpty(rec.Header().Get(TraceIDHeader))
}

// TestRequestID_UsesExistingTraceID tests that an inbound trace ID is propagated
func (s *RequestIDTestSuite) TestRequestID_UsesExistingTraceID() {
	existingTraceID := "existing-trace-id-12345"

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(TraceIDHeader, existingTraceID)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		s.Equal(existingTraceID, c.Get(TraceIDContextKey).(string))
		return c.NoContent(http.StatusOK)
	})

	s.NoError(handler(c))
	s.Equal(existingTraceID, rec.Header().Get(TraceIDHeader))
}

// TestGetTraceID tests the context accessor
func (s *RequestIDTestSuite) TestGetTraceID() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.Empty(GetTraceID(c))

	c.Set(TraceIDContextKey, "abc-123")
	s.Equal("abc-123", GetTraceID(c))
}
