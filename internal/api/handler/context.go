package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/api/middleware"
	"github.com/ferremas/storefront-api/internal/core/domain"
)

// ctxClaims returns the caller injected by the Auth middleware. A route
// reached without it is treated as unauthenticated.
func ctxClaims(c echo.Context) (domain.Claims, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return domain.Claims{}, domain.ErrMissingToken
	}
	return *claims, nil
}
