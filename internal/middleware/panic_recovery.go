package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"sales-insights/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts panics in downstream handlers into a SYSTEM_001
// response so a single bad request cannot take the server down
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					recoverToResponse(c, r)
				}
			}()

			return next(c)
		}
	}
}

func recoverToResponse(c echo.Context, panicValue any) {
	traceID := GetTraceID(c)
	if traceID == "" {
		traceID = "unknown"
	}

	slog.Error("Panic recovered",
		"trace_id", traceID,
		"panic", fmt.Sprintf("%v", panicValue),
		"stack_trace", string(debug.Stack()),
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	resp := errors.NewErrorResponse(errors.SystemInternalError, traceID)
	if err := c.JSON(http.StatusInternalServerError, resp); err != nil {
		slog.Error("Failed to send panic recovery response",
			"trace_id", traceID,
			"error", err.Error(),
		)
	}
}
