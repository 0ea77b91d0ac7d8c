package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/core/ports"
)

const headerStripeSignature = "Stripe-Signature"

// maxWebhookBody caps the raw webhook payload read into memory.
const maxWebhookBody = 64 << 10

type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// CreateIntent opens a payment intent for an order.
//
// @Summary      Create payment intent
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      paymentIntentRequest  true  "Order id and amount"
// @Success      200   {object}  paymentIntentResponse
// @Failure      400   {object}  ErrorResponse
// @Router       /api/payments/create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(c echo.Context) error {
	var req paymentIntentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	secret, err := h.service.CreatePaymentIntent(c.Request().Context(), req.PedidoID, req.Amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, paymentIntentResponse{ClientSecret: secret})
}

// Webhook receives provider events. The raw body is read untouched so the
// signature can be checked against the exact bytes sent.
//
// @Summary      Payment webhook
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        Stripe-Signature  header    string  true  "Provider signature"
// @Success      200               {object}  webhookAck
// @Failure      400               {string}  string
// @Failure      413               {object}  ErrorResponse
// @Router       /api/payments/webhook [post]
func (h *PaymentHandler) Webhook(c echo.Context) error {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Response(), c.Request().Body, maxWebhookBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return echo.NewHTTPError(http.StatusRequestEntityTooLarge, msgPayloadTooLarge)
		}
		return echo.NewHTTPError(http.StatusBadRequest, msgInvalidPayload)
	}

	if err := h.service.HandleWebhook(c.Request().Context(), payload, c.Request().Header.Get(headerStripeSignature)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, webhookAck{Received: true})
}
