package handler

import "github.com/ferremas/storefront-api/internal/core/domain"

// ErrorResponse is the envelope for 4xx/5xx responses. Error carries the
// upstream error text when a dependency failed.
type ErrorResponse struct {
	Message         string `json:"message"`
	Error           string `json:"error,omitempty"`
	StockDisponible *int   `json:"stockDisponible,omitempty"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string         `json:"token"`
	User  domain.Profile `json:"user"`
}

type verifyResponse struct {
	User domain.Profile `json:"user"`
}

// --- Catalog ---

type noveltyRequest struct {
	IsNovedad bool `json:"isNovedad"`
}

type promotionRequest struct {
	IsPromocion bool     `json:"isPromocion"`
	Descuento   *float64 `json:"descuento"`
}

type contactRequest struct {
	Mensaje      string `json:"mensaje"`
	TipoContacto string `json:"tipo_contacto"`
}

type contactResponse struct {
	Message  string                `json:"message"`
	Detalles domain.ContactRequest `json:"detalles"`
}

// --- Orders ---

type createOrderRequest struct {
	ArticuloID       string `json:"articuloId"       validate:"required"`
	Cantidad         int    `json:"cantidad"         validate:"gt=0"`
	DireccionEntrega string `json:"direccionEntrega" validate:"required"`
}

// --- Payments ---

type paymentIntentRequest struct {
	PedidoID string  `json:"pedidoId" validate:"required"`
	Amount   float64 `json:"amount"   validate:"gt=0"`
}

type paymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type webhookAck struct {
	Received bool `json:"received"`
}

// --- Currency ---

type conversionResponse struct {
	Success bool              `json:"success"`
	Data    domain.Conversion `json:"data"`
}
