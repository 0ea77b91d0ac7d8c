package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/api/handler"
	"github.com/ferremas/storefront-api/internal/core/domain"
)

const (
	msgServerError     = "Error en el servidor"
	msgUpstreamFailed  = "Error al obtener los datos de la API externa"
	msgPaymentFailed   = "Error al procesar el pago"
	msgRateUnavailable = "No se pudo obtener la tasa de cambio"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status and Spanish message.
//   - Relays upstream statuses and error text for catalog failures.
//   - Logs unexpected errors without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var se *domain.SignatureError
		if errors.As(err, &se) {
			_ = c.String(http.StatusBadRequest, "Webhook Error: "+se.Reason)
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorResponse) {
	// Echo's own errors (bind failures, validation, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, handler.ErrorResponse{Message: fmt.Sprintf("%v", he.Message)}
	}

	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized, handler.ErrorResponse{Message: "Token no proporcionado"}
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, handler.ErrorResponse{Message: "Token inválido"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, handler.ErrorResponse{Message: "Credenciales inválidas"}
	case errors.Is(err, domain.ErrUnknownRole):
		return http.StatusForbidden, handler.ErrorResponse{Message: "Rol no válido"}
	case errors.Is(err, domain.ErrInsufficientPermission):
		return http.StatusForbidden, handler.ErrorResponse{Message: "No tienes permisos suficientes para esta acción"}
	case errors.Is(err, domain.ErrOrderForbidden):
		return http.StatusForbidden, handler.ErrorResponse{Message: "No tienes permiso para ver este pedido"}
	case errors.Is(err, domain.ErrArticleNotFound):
		return http.StatusNotFound, handler.ErrorResponse{Message: "Artículo no encontrado"}
	case errors.Is(err, domain.ErrSellerNotFound):
		return http.StatusNotFound, handler.ErrorResponse{Message: "Vendedor no encontrado"}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, handler.ErrorResponse{Message: "Pedido no encontrado"}
	case errors.Is(err, domain.ErrUnsupportedCurrency):
		return http.StatusBadRequest, handler.ErrorResponse{Message: "Moneda no soportada"}
	}

	var stock *domain.InsufficientStockError
	if errors.As(err, &stock) {
		available := stock.Available
		return http.StatusBadRequest, handler.ErrorResponse{Message: "Stock insuficiente", StockDisponible: &available}
	}

	var pe *domain.PaymentError
	if errors.As(err, &pe) {
		msg := pe.Message
		if msg == "" {
			msg = msgPaymentFailed
		}
		return http.StatusBadRequest, handler.ErrorResponse{Message: msg}
	}

	var ext *domain.ExternalError
	if errors.As(err, &ext) {
		code := ext.Status
		if code < 400 || code > 599 {
			code = http.StatusInternalServerError
		}
		log.Warn().Err(err).Int("upstream_status", ext.Status).Str("path", c.Path()).Msg("upstream request failed")
		return code, handler.ErrorResponse{Message: routeMessage(err, msgUpstreamFailed), Error: ext.Message}
	}

	if errors.Is(err, domain.ErrRateUnavailable) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("exchange rate unavailable")
		return http.StatusInternalServerError, handler.ErrorResponse{Message: routeMessage(err, msgRateUnavailable), Error: domain.ErrRateUnavailable.Error()}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorResponse{Message: routeMessage(err, msgServerError)}
}

// routeMessage returns the failure message attached by the handler, or def.
func routeMessage(err error, def string) string {
	var re *handler.RouteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return def
}
