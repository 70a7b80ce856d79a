package handlers

import (
	"net/http"

	"sales-insights/internal/dto"
	apierrors "sales-insights/internal/errors"
	"sales-insights/internal/services"

	"github.com/labstack/echo/v4"
)

// DevHandler handles development-only endpoints
// These endpoints should only be available in development environments
type DevHandler struct {
	tokenService services.TokenServiceInterface
	metrics      services.MetricsRecorderInterface
}

// NewDevHandler creates a new development handler
func NewDevHandler(tokenService services.TokenServiceInterface, metrics services.MetricsRecorderInterface) *DevHandler {
	return &DevHandler{
		tokenService: tokenService,
		metrics:      metrics,
	}
}

// IssueViewerToken issues a short-lived viewer token for local development
//
// Method: POST /api/v1/dev/token
// Authentication: None
// Environment: Development only
//
// Query parameters:
//   - subject: Token subject (default: "dev-viewer")
//
// Success Response: 200 OK
//   - token: Signed JWT
//   - token_type: "viewer"
//   - expires_at: ISO 8601 timestamp
//
// Error Responses:
//   - 500: Token signing failed
func (h *DevHandler) IssueViewerToken(c echo.Context) error {
	subject := c.QueryParam("subject")
	if subject == "" {
		subject = "dev-viewer"
	}

	token, expiresAt, err := h.tokenService.GenerateViewerToken(subject)
	if err != nil {
		return SendError(c, apierrors.SystemConfigurationError,
			apierrors.WithDetails("Failed to sign viewer token"))
	}

	h.metrics.IncrementCounter("viewer_token.issued", nil)

	return c.JSON(http.StatusOK, SuccessResponse{
		Data: dto.TokenResponse{
			Token:     token,
			TokenType: services.TokenTypeViewer,
			ExpiresAt: expiresAt,
		},
	})
}
