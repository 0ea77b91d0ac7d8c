package domain

import (
	"encoding/json"
	"errors"
	"slices"
	"strconv"
	"strings"
	"time"
)

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrSellerNotFound  = errors.New("seller not found")
)

const noveltyCount = 5

// ExchangeRateInfo is the rate decoration attached to converted articles.
type ExchangeRateInfo struct {
	CLPUSD    float64 `json:"CLP_USD"`
	Timestamp string  `json:"timestamp"`
}

// Article is a product as served by the external catalog. Only the fields
// this service reads are parsed; the rest of the upstream object is kept and
// relayed untouched. The pointer fields are decorations added here and are
// never persisted.
type Article struct {
	ID           string            `json:"id"`
	Nombre       string            `json:"nombre"`
	Descripcion  string            `json:"descripcion"`
	Precio       float64           `json:"precio"`
	Stock        int               `json:"stock"`
	IsNovedad    *bool             `json:"isNovedad,omitempty"`
	IsPromocion  *bool             `json:"isPromocion,omitempty"`
	Descuento    *float64          `json:"descuento,omitempty"`
	PrecioUSD    *float64          `json:"precio_usd,omitempty"`
	ExchangeRate *ExchangeRateInfo `json:"exchange_rate,omitempty"`

	raw upstreamObject
}

type articleFields Article

func (a *Article) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	r := fieldReader{obj: obj}
	*a = Article{
		ID:          r.text("id"),
		Nombre:      r.text("nombre"),
		Descripcion: r.text("descripcion"),
		Precio:      r.number("precio"),
		Stock:       int(r.number("stock")),
		raw:         obj,
	}
	return r.err
}

// MarshalJSON writes the upstream object with the decorations merged over
// it. Articles built in code are written from their fields.
func (a Article) MarshalJSON() ([]byte, error) {
	if a.raw == nil {
		return json.Marshal(articleFields(a))
	}
	extra := make(map[string]any, 5)
	if a.IsNovedad != nil {
		extra["isNovedad"] = *a.IsNovedad
	}
	if a.IsPromocion != nil {
		extra["isPromocion"] = *a.IsPromocion
	}
	if a.Descuento != nil {
		extra["descuento"] = *a.Descuento
	}
	if a.PrecioUSD != nil {
		extra["precio_usd"] = *a.PrecioUSD
	}
	if a.ExchangeRate != nil {
		extra["exchange_rate"] = a.ExchangeRate
	}
	return a.raw.encode(extra)
}

// Branch is a physical store location.
type Branch struct {
	ID        string `json:"id"`
	Localidad string `json:"localidad"`

	raw upstreamObject
}

type branchFields Branch

func (b *Branch) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	r := fieldReader{obj: obj}
	*b = Branch{ID: r.text("id"), Localidad: r.text("localidad"), raw: obj}
	return r.err
}

func (b Branch) MarshalJSON() ([]byte, error) {
	if b.raw == nil {
		return json.Marshal(branchFields(b))
	}
	return b.raw.encode(nil)
}

// Seller is a sales representative attached to a branch.
type Seller struct {
	ID       string `json:"id"`
	Nombre   string `json:"nombre"`
	Sucursal string `json:"sucursal"`
	Cargo    string `json:"cargo"`

	raw upstreamObject
}

type sellerFields Seller

func (s *Seller) UnmarshalJSON(data []byte) error {
	obj, err := decodeObject(data)
	if err != nil {
		return err
	}
	r := fieldReader{obj: obj}
	*s = Seller{
		ID:       r.text("id"),
		Nombre:   r.text("nombre"),
		Sucursal: r.text("sucursal"),
		Cargo:    r.text("cargo"),
		raw:      obj,
	}
	return r.err
}

func (s Seller) MarshalJSON() ([]byte, error) {
	if s.raw == nil {
		return json.Marshal(sellerFields(s))
	}
	return s.raw.encode(nil)
}

// ContactRequest is the acknowledgement returned when a client asks to be
// contacted by a seller. No notification is actually delivered.
type ContactRequest struct {
	Vendedor     string    `json:"vendedor"`
	Cliente      string    `json:"cliente"`
	Fecha        time.Time `json:"fecha"`
	Estado       string    `json:"estado"`
	TipoContacto string    `json:"tipo_contacto"`
	Mensaje      string    `json:"mensaje"`
}

const ContactPending = "pendiente"

// FindArticle returns the article with the given id from a catalog listing.
func FindArticle(articles []Article, id string) (*Article, error) {
	for i := range articles {
		if articles[i].ID == id {
			a := articles[i]
			return &a, nil
		}
	}
	return nil, ErrArticleNotFound
}

// FindSeller returns the seller with the given id from a catalog listing.
func FindSeller(sellers []Seller, id string) (*Seller, error) {
	for i := range sellers {
		if sellers[i].ID == id {
			s := sellers[i]
			return &s, nil
		}
	}
	return nil, ErrSellerNotFound
}

// PriceString renders a price the way the catalog's clients print numbers:
// shortest decimal form, no exponent, no trailing zeros.
func PriceString(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

// Promotions selects the articles whose price string ends in "99".
// The catalog has no promotion flag; this rule stands in for one.
func Promotions(articles []Article) []Article {
	out := make([]Article, 0)
	for _, a := range articles {
		if strings.HasSuffix(PriceString(a.Precio), "99") {
			out = append(out, a)
		}
	}
	return out
}

// Novelties returns the most expensive articles, highest price first.
// Equal prices keep their catalog order.
func Novelties(articles []Article) []Article {
	sorted := make([]Article, len(articles))
	copy(sorted, articles)
	slices.SortStableFunc(sorted, func(a, b Article) int {
		switch {
		case a.Precio > b.Precio:
			return -1
		case a.Precio < b.Precio:
			return 1
		}
		return 0
	})
	if len(sorted) > noveltyCount {
		sorted = sorted[:noveltyCount]
	}
	return sorted
}

// WithNovelty returns a copy of a flagged as a novelty (or not).
func (a Article) WithNovelty(flag bool) Article {
	a.IsNovedad = &flag
	return a
}

// WithPromotion returns a copy of a flagged as a promotion with the given discount.
func (a Article) WithPromotion(flag bool, discount *float64) Article {
	a.IsPromocion = &flag
	a.Descuento = discount
	return a
}
