package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/core/ports"
)

type CurrencyHandler struct {
	service ports.CurrencyService
}

func NewCurrencyHandler(service ports.CurrencyService) *CurrencyHandler {
	return &CurrencyHandler{service: service}
}

// Convert converts an amount between CLP and USD at the current rate.
//
// @Summary      Convert currency
// @Tags         currency
// @Produce      json
// @Param        amount  query     number  true   "Amount to convert"
// @Param        from    query     string  false  "CLP (default) or USD"
// @Success      200     {object}  conversionResponse
// @Failure      400     {object}  ErrorResponse
// @Failure      500     {object}  ErrorResponse
// @Router       /api/currency/convert [get]
func (h *CurrencyHandler) Convert(c echo.Context) error {
	amount, err := strconv.ParseFloat(strings.TrimSpace(c.QueryParam("amount")), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidAmount)
	}

	conv, err := h.service.Convert(c.Request().Context(), amount, c.QueryParam("from"))
	if err != nil {
		return failed(msgConvertFailed, err)
	}
	return c.JSON(http.StatusOK, conversionResponse{Success: true, Data: *conv})
}
