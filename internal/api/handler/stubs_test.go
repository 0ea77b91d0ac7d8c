package handler

import (
	"context"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/api/middleware"
	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
)

// newContext builds an echo context with the validator installed and,
// when claims is non-nil, an authenticated caller.
func newContext(method, target, body string, claims *domain.Claims) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(middleware.ClaimsKey, claims)
	}
	return c, rec
}

type stubAuthService struct {
	loginFn func(ctx context.Context, username, password string) (string, *domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Verify(string) (*domain.Claims, error) { return nil, domain.ErrInvalidToken }

func (s *stubAuthService) Authorize(domain.Claims, ...string) error { return nil }

type stubCatalogService struct {
	ports.CatalogService
	listFn    func(ctx context.Context, currency string) ([]domain.Article, error)
	promoFn   func(ctx context.Context, in ports.MarkPromotionInput) (*domain.Article, error)
	contactFn func(ctx context.Context, in ports.ContactSellerInput) (*domain.ContactRequest, error)
}

func (s *stubCatalogService) ListArticles(ctx context.Context, currency string) ([]domain.Article, error) {
	return s.listFn(ctx, currency)
}

func (s *stubCatalogService) MarkPromotion(ctx context.Context, in ports.MarkPromotionInput) (*domain.Article, error) {
	return s.promoFn(ctx, in)
}

func (s *stubCatalogService) ContactSeller(ctx context.Context, in ports.ContactSellerInput) (*domain.ContactRequest, error) {
	return s.contactFn(ctx, in)
}

type stubOrderService struct {
	createFn func(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error)
	listFn   func(ctx context.Context, clientID string) ([]*domain.Order, error)
	getFn    func(ctx context.Context, id string, caller domain.Claims) (*domain.Order, error)
}

func (s *stubOrderService) CreateOrder(ctx context.Context, in ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, in)
}

func (s *stubOrderService) ListOrders(ctx context.Context, clientID string) ([]*domain.Order, error) {
	return s.listFn(ctx, clientID)
}

func (s *stubOrderService) GetOrder(ctx context.Context, id string, caller domain.Claims) (*domain.Order, error) {
	return s.getFn(ctx, id, caller)
}

type stubPaymentService struct {
	intentFn  func(ctx context.Context, orderID string, amount float64) (string, error)
	webhookFn func(ctx context.Context, payload []byte, sig string) error
}

func (s *stubPaymentService) CreatePaymentIntent(ctx context.Context, orderID string, amount float64) (string, error) {
	return s.intentFn(ctx, orderID, amount)
}

func (s *stubPaymentService) HandleWebhook(ctx context.Context, payload []byte, sig string) error {
	return s.webhookFn(ctx, payload, sig)
}

type stubCurrencyService struct {
	ports.CurrencyService
	convertFn func(ctx context.Context, amount float64, from string) (*domain.Conversion, error)
}

func (s *stubCurrencyService) Convert(ctx context.Context, amount float64, from string) (*domain.Conversion, error) {
	return s.convertFn(ctx, amount, from)
}
