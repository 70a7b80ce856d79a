package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID on both request and response
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey is the echo context key the trace ID is stored under
	TraceIDContextKey = "trace_id"
)

// RequestID tags every request with a trace ID. An inbound X-Trace-ID header
// is propagated unchanged so callers can correlate across services; otherwise
// a fresh UUID is minted.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)

			return next(c)
		}
	}
}

// GetTraceID returns the trace ID for the request, or "" if the RequestID
// middleware has not run
func GetTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
