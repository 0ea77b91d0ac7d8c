package config

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. It is public; callers
// should warn when it is in effect.
const DefaultJWTSecret = "tu_secreto_seguro_temporal"

type Config struct {
	Port      string        `env:"PORT,       default=3001"`
	Env       string        `env:"ENV,        default=development"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`
	LogPretty bool          `env:"LOG_PRETTY, default=false"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// UsersFile and RolesFile override the embedded user and role tables.
	UsersFile string `env:"USERS_FILE"`
	RolesFile string `env:"ROLES_FILE"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS, default=https://ferremasfrontend.vercel.app,http://localhost:5173"`

	// OrderStore selects the order repository: "memory" or "mongo".
	OrderStore     string `env:"ORDER_STORE,     default=memory"`
	WebhookWorkers int    `env:"WEBHOOK_WORKERS, default=4"`

	Catalog  CatalogConfig
	Exchange ExchangeConfig
	Stripe   StripeConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type CatalogConfig struct {
	BaseURL string        `env:"CATALOG_BASE_URL, default=https://ea2p2assets-production.up.railway.app"`
	APIKey  string        `env:"CATALOG_API_KEY,  default=SaGrP9ojGS39hU9ljqbXxQ=="`
	Timeout time.Duration `env:"CATALOG_TIMEOUT,  default=10s"`
}

type ExchangeConfig struct {
	URL      string        `env:"EXCHANGE_RATE_URL,       default=https://open.er-api.com/v6/latest/CLP"`
	CacheTTL time.Duration `env:"EXCHANGE_RATE_CACHE_TTL, default=60s"`
}

type StripeConfig struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET"`
	Currency      string `env:"PAYMENT_CURRENCY, default=clp"`
}

// MongoConfig is optional: an empty URI disables order persistence in
// Mongo and the payment audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=ferremas"`
}

// RedisConfig is optional: an empty Addr disables webhook de-duplication.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	return load(context.Background(), envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.OrderStore {
	case "memory":
	case "mongo":
		if c.Mongo.URI == "" {
			return fmt.Errorf("config: ORDER_STORE=mongo requires MONGO_URI")
		}
	default:
		return fmt.Errorf("config: unknown ORDER_STORE %q", c.OrderStore)
	}
	if c.WebhookWorkers < 1 {
		return fmt.Errorf("config: WEBHOOK_WORKERS must be positive")
	}
	c.Stripe.Currency = strings.ToLower(c.Stripe.Currency)
	return nil
}

// UsingDefaultJWTSecret reports whether tokens are signed with the public
// fallback secret.
func (c *Config) UsingDefaultJWTSecret() bool {
	return c.JWTSecret == ""
}

// SigningSecret returns the configured JWT secret or the fallback.
func (c *Config) SigningSecret() string {
	if c.JWTSecret == "" {
		return DefaultJWTSecret
	}
	return c.JWTSecret
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// PrettyLogs reports whether the console log writer should be used. It is
// honoured only in development; other environments always log JSON.
func (c *Config) PrettyLogs() bool {
	return c.LogPretty && c.IsDevelopment()
}
