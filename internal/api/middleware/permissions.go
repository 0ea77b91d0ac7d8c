package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
)

// RequirePermissions lets the request through only when the caller's role
// holds every listed permission. It must run after Auth.
func RequirePermissions(authz ports.Authorizer, permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Claims(c)
			if !ok {
				return domain.ErrMissingToken
			}
			if err := authz.Authorize(*claims, permissions...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
