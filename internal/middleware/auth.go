package middleware

import (
	"sales-insights/internal/errors"
	"sales-insights/internal/handlers"
	"sales-insights/internal/services"

	"github.com/labstack/echo/v4"
)

// RequireViewer creates a middleware that requires a valid viewer JWT token.
// All dashboard endpoints are read-only, so a single viewer role suffices.
func RequireViewer(tokenService services.TokenServiceInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return handlers.SendError(c, errors.AuthMissingToken)
			}

			token, err := tokenService.ExtractTokenFromHeader(authHeader)
			if err != nil {
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			claims, err := tokenService.ValidateViewerToken(token)
			if err != nil {
				if err == services.ErrExpiredToken {
					return handlers.SendError(c, errors.AuthExpiredToken)
				}
				return handlers.SendError(c, errors.AuthInvalidTokenFormat)
			}

			c.Set("viewer_subject", claims.Subject)
			c.Set("token_jti", claims.ID)

			return next(c)
		}
	}
}
