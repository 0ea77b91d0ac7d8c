package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/core/ports"
)

// OrderHandler handles HTTP requests for order operations.
type OrderHandler struct {
	service ports.OrderService
}

func NewOrderHandler(service ports.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create places an order for the caller.
//
// @Summary      Create order
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOrderRequest  true  "Order"
// @Success      200   {object}  domain.Order
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Router       /data/pedidos/nuevo [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.service.CreateOrder(c.Request().Context(), ports.CreateOrderInput{
		ClientID:         claims.Subject,
		ArticuloID:       req.ArticuloID,
		Cantidad:         req.Cantidad,
		DireccionEntrega: req.DireccionEntrega,
	})
	if err != nil {
		return failed(msgCreateOrder, err)
	}
	return c.JSON(http.StatusOK, order)
}

// List returns the caller's orders, newest first.
//
// @Summary      List own orders
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Order
// @Router       /data/pedidos [get]
func (h *OrderHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	orders, err := h.service.ListOrders(c.Request().Context(), claims.Subject)
	if err != nil {
		return failed(msgListOrders, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get returns one order. Only its owner or an admin may read it.
//
// @Summary      Get order
// @Tags         pedidos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /data/pedidos/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	order, err := h.service.GetOrder(c.Request().Context(), c.Param("id"), claims)
	if err != nil {
		return failed(msgGetOrder, err)
	}
	return c.JSON(http.StatusOK, order)
}
