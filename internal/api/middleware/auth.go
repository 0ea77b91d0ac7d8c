package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
)

// ClaimsKey is the echo context key holding the caller's *domain.Claims.
const ClaimsKey = "claims"

// HeaderAuthToken is checked before the Authorization header.
const HeaderAuthToken = "x-auth-token"

// Auth verifies the session token and injects the claims into the context.
func Auth(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFrom(c.Request().Header.Get(HeaderAuthToken), c.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return domain.ErrMissingToken
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				return err
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// tokenFrom prefers x-auth-token, then takes the second space-separated
// field of the Authorization header whatever the scheme.
func tokenFrom(authToken, authorization string) string {
	if authToken != "" {
		return authToken
	}
	parts := strings.Split(authorization, " ")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// Claims returns the claims injected by Auth, if any.
func Claims(c echo.Context) (*domain.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}
