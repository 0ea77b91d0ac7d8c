// Command api runs the Ferremas storefront backend.
//
// @title                       Ferremas Storefront API
// @version                     1.0
// @description                 Catalog, orders and payments for the Ferremas hardware store.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ferremas/storefront-api/docs"
	"github.com/ferremas/storefront-api/internal/api"
	"github.com/ferremas/storefront-api/internal/core/ports"
	"github.com/ferremas/storefront-api/internal/core/service"
	"github.com/ferremas/storefront-api/internal/infrastructure/catalog"
	"github.com/ferremas/storefront-api/internal/infrastructure/db/memory"
	"github.com/ferremas/storefront-api/internal/infrastructure/db/mongo"
	"github.com/ferremas/storefront-api/internal/infrastructure/db/redis"
	"github.com/ferremas/storefront-api/internal/infrastructure/directory"
	"github.com/ferremas/storefront-api/internal/infrastructure/exchange"
	"github.com/ferremas/storefront-api/internal/infrastructure/http/handlers"
	"github.com/ferremas/storefront-api/internal/infrastructure/payments"
	"github.com/ferremas/storefront-api/internal/infrastructure/queue"
	"github.com/ferremas/storefront-api/internal/pkg/config"
	"github.com/ferremas/storefront-api/pkg/logger"
)

const (
	exchangeTimeout = 10 * time.Second
	dedupTTL        = 72 * time.Hour
	shutdownTimeout = 10 * time.Second
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.PrettyLogs(),
		Service: "storefront-api",
		Env:     cfg.Env,
	})
	if cfg.UsingDefaultJWTSecret() {
		log.Warn().Msg("JWT_SECRET not set, signing tokens with the built-in development secret")
	}
	if cfg.Stripe.SecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY not set, payment intents will be rejected")
	}
	if cfg.Stripe.WebhookSecret == "" {
		log.Warn().Msg("STRIPE_WEBHOOK_SECRET not set, every webhook delivery will be rejected")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Directory ---
	users, err := directory.LoadUsers(cfg.UsersFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load users")
	}
	roles, err := directory.LoadRoles(cfg.RolesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load roles")
	}
	log.Info().Int("users", users.Len()).Int("roles", len(roles)).Msg("directory loaded")

	// --- Optional backing stores ---
	var (
		readiness   []handlers.Pinger
		mongoClient *mongodriver.Client
		redisClient *goredis.Client
		orderRepo   ports.OrderRepository = memory.NewOrderRepository()
		auditLog    ports.PaymentEventLog
		dedup       ports.WebhookDeduplicator
	)

	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		mongoClient = client
		readiness = append(readiness, mongo.NewPinger(db))

		events := mongo.NewPaymentEventRepository(db)
		if err := events.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to create payment event indexes")
		}
		auditLog = events

		if cfg.OrderStore == "mongo" {
			orders := mongo.NewOrderRepository(db)
			if err := orders.EnsureIndexes(ctx); err != nil {
				log.Fatal().Err(err).Msg("failed to create order indexes")
			}
			orderRepo = orders
		}
		log.Info().Str("database", cfg.Mongo.Database).Str("order_store", cfg.OrderStore).Msg("connected to MongoDB")
	}

	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
		redisClient = client
		readiness = append(readiness, redis.NewPinger(client))
		dedup = redis.NewWebhookDedup(client, dedupTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to Redis, webhook de-duplication enabled")
	}

	// --- Upstreams ---
	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.APIKey, cfg.Catalog.Timeout, logger.Component("catalog"))
	rates := exchange.NewCachedRates(
		exchange.NewClient(cfg.Exchange.URL, exchangeTimeout, logger.Component("exchange")),
		cfg.Exchange.CacheTTL,
	)

	// --- Payment events ---
	dispatcher := queue.NewDispatcher(
		cfg.WebhookWorkers,
		service.NewPaymentEventService(auditLog, logger.Component("payment_events")),
		logger.Component("dispatcher"),
	)
	// Workers outlive the signal context so queued events drain on shutdown.
	dispatcher.Start(context.Background())

	// --- Services ---
	currencySvc := service.NewCurrencyService(rates, logger.Component("currency"))
	svc := api.Services{
		Auth:     service.NewAuthService(users, roles, cfg.SigningSecret(), cfg.TokenTTL),
		Catalog:  service.NewCatalogService(catalogClient, currencySvc, logger.Component("catalog")),
		Orders:   service.NewOrderService(orderRepo, catalogClient, logger.Component("orders")),
		Currency: currencySvc,
		Payments: service.NewPaymentService(
			payments.NewStripeProvider(cfg.Stripe.SecretKey, logger.Component("stripe")),
			payments.NewStripeVerifier(cfg.Stripe.WebhookSecret),
			dispatcher,
			dedup,
			cfg.Stripe.Currency,
			logger.Component("payments"),
		),
	}

	e := api.NewRouter(svc, api.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Logger:         log,
		Readiness:      readiness,
	})
	e.Server.ReadHeaderTimeout = 5 * time.Second
	e.Server.ReadTimeout = 15 * time.Second
	e.Server.WriteTimeout = 30 * time.Second

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("payment event dispatcher did not drain")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}
	log.Info().Msg("stopped")
}
