package api

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/api/handler"
	"github.com/ferremas/storefront-api/internal/api/middleware"
	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
	infrahttp "github.com/ferremas/storefront-api/internal/infrastructure/http"
	"github.com/ferremas/storefront-api/internal/infrastructure/http/handlers"
)

// Services are the use cases the HTTP layer exposes.
type Services struct {
	Auth     ports.AuthService
	Catalog  ports.CatalogService
	Orders   ports.OrderService
	Payments ports.PaymentService
	Currency ports.CurrencyService
}

type Options struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
	// Readiness lists the backing services probed by /health/ready.
	Readiness []handlers.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(opts.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization, middleware.HeaderAuthToken},
		AllowCredentials: true,
	}))
	e.Use(metricsMiddleware())

	// --- Guards ---
	auth := middleware.Auth(svc.Auth)
	can := func(perms ...string) echo.MiddlewareFunc {
		return middleware.RequirePermissions(svc.Auth, perms...)
	}

	authHandler := handler.NewAuthHandler(svc.Auth)
	catalogHandler := handler.NewCatalogHandler(svc.Catalog)
	orderHandler := handler.NewOrderHandler(svc.Orders)
	paymentHandler := handler.NewPaymentHandler(svc.Payments)
	currencyHandler := handler.NewCurrencyHandler(svc.Currency)

	// --- Auth ---
	e.POST("/api/auth/login", authHandler.Login)
	e.GET("/api/auth/verify", authHandler.Verify, auth)

	// --- Catalog ---
	articulos := e.Group("/api/articulos", auth)
	articulos.GET("", catalogHandler.ListArticles, can(domain.PermProductsRead))
	articulos.GET("/promociones", catalogHandler.ListPromotions, can(domain.PermProductsRead))
	articulos.GET("/novedades", catalogHandler.ListNovelties, can(domain.PermProductsRead))
	articulos.GET("/:id", catalogHandler.GetArticle, can(domain.PermProductsRead))
	articulos.POST("/:id/novedad", catalogHandler.MarkNovelty, can(domain.PermProductsWrite))
	articulos.POST("/:id/promocion", catalogHandler.MarkPromotion, can(domain.PermProductsWrite))

	e.GET("/api/sucursales", catalogHandler.ListBranches, auth)

	vendedores := e.Group("/api/vendedores", auth)
	vendedores.GET("", catalogHandler.ListSellers, can(domain.PermSellersRead))
	vendedores.GET("/:id", catalogHandler.GetSeller, can(domain.PermSellersRead))
	vendedores.POST("/:id/contacto", catalogHandler.ContactSeller)

	// --- Orders ---
	pedidos := e.Group("/data/pedidos", auth)
	pedidos.POST("/nuevo", orderHandler.Create, can(domain.PermOrdersCreate))
	pedidos.GET("", orderHandler.List, can(domain.PermOrdersRead))
	pedidos.GET("/:id", orderHandler.Get, can(domain.PermOrdersRead))

	// --- Payments ---
	e.POST("/api/payments/create-payment-intent", paymentHandler.CreateIntent, auth)
	e.POST("/api/payments/webhook", paymentHandler.Webhook)

	// --- Currency ---
	e.GET("/api/currency/convert", currencyHandler.Convert)

	// --- Ops (no auth required) ---
	infrahttp.RegisterOps(e, opts.Readiness...)

	return e
}

var (
	metricsOnce sync.Once
	metricsMW   echo.MiddlewareFunc
)

// metricsMiddleware registers the HTTP collectors once per process so that
// several routers can coexist.
func metricsMiddleware() echo.MiddlewareFunc {
	metricsOnce.Do(func() {
		metricsMW = echoprometheus.NewMiddleware("storefront")
	})
	return metricsMW
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
