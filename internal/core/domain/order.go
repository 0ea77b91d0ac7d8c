package domain

import (
	"errors"
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending OrderStatus = "pendiente"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrOrderForbidden = errors.New("order belongs to another client")
	ErrDuplicateOrder = errors.New("order already exists")
)

// InsufficientStockError reports a purchase that exceeds the article's stock.
type InsufficientStockError struct {
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: requested %d, available %d", e.Requested, e.Available)
}

// ArticleSnapshot is the copy of catalog fields frozen into an order.
type ArticleSnapshot struct {
	ID          string  `json:"id" bson:"id"`
	Nombre      string  `json:"nombre" bson:"nombre"`
	Precio      float64 `json:"precio" bson:"precio"`
	Descripcion string  `json:"descripcion" bson:"descripcion"`
}

// Order is a purchase placed by a client.
type Order struct {
	ID               string          `json:"id" bson:"_id"`
	ArticuloID       string          `json:"articuloId" bson:"articulo_id"`
	Cantidad         int             `json:"cantidad" bson:"cantidad"`
	DireccionEntrega string          `json:"direccionEntrega" bson:"direccion_entrega"`
	Estado           OrderStatus     `json:"estado" bson:"estado"`
	FechaCreacion    time.Time       `json:"fechaCreacion" bson:"fecha_creacion"`
	Total            float64         `json:"total" bson:"total"`
	ClienteID        string          `json:"clienteId" bson:"cliente_id"`
	Articulo         ArticleSnapshot `json:"articulo" bson:"articulo"`
}

// NewOrder builds a pending order for quantity units of article.
func NewOrder(id string, article Article, quantity int, address, clientID string, now time.Time) *Order {
	return &Order{
		ID:               id,
		ArticuloID:       article.ID,
		Cantidad:         quantity,
		DireccionEntrega: address,
		Estado:           OrderPending,
		FechaCreacion:    now,
		Total:            article.Precio * float64(quantity),
		ClienteID:        clientID,
		Articulo: ArticleSnapshot{
			ID:          article.ID,
			Nombre:      article.Nombre,
			Precio:      article.Precio,
			Descripcion: article.Descripcion,
		},
	}
}

// CheckStock fails with InsufficientStockError when quantity exceeds stock.
func (a Article) CheckStock(quantity int) error {
	if quantity > a.Stock {
		return &InsufficientStockError{Requested: quantity, Available: a.Stock}
	}
	return nil
}

// VisibleTo reports whether the order may be read by the given caller.
func (o *Order) VisibleTo(c Claims) bool {
	return o.ClienteID == c.Subject || c.IsAdmin()
}
