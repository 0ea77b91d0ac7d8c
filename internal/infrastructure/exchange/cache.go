package exchange

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
	"github.com/ferremas/storefront-api/internal/pkg/metrics"
)

const rateKey = "CLP_USD"

// CachedRates serves the rate from a TTL cache and falls through to the
// wrapped provider on a miss. Failures are never cached.
type CachedRates struct {
	next  ports.RateProvider
	cache *expirable.LRU[string, domain.ExchangeRate]
}

// NewCachedRates wraps next. A non-positive ttl disables caching.
func NewCachedRates(next ports.RateProvider, ttl time.Duration) ports.RateProvider {
	if ttl <= 0 {
		return next
	}
	return &CachedRates{
		next:  next,
		cache: expirable.NewLRU[string, domain.ExchangeRate](1, nil, ttl),
	}
}

func (c *CachedRates) CLPToUSD(ctx context.Context) (domain.ExchangeRate, error) {
	if rate, ok := c.cache.Get(rateKey); ok {
		metrics.ExchangeRateCacheTotal.WithLabelValues("hit").Inc()
		return rate, nil
	}
	metrics.ExchangeRateCacheTotal.WithLabelValues("miss").Inc()

	rate, err := c.next.CLPToUSD(ctx)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	c.cache.Add(rateKey, rate)
	return rate, nil
}
