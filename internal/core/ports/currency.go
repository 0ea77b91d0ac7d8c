package ports

import (
	"context"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// RateProvider fetches the current CLP→USD exchange rate.
type RateProvider interface {
	CLPToUSD(ctx context.Context) (domain.ExchangeRate, error)
}

// CurrencyService converts amounts and decorates articles with USD prices.
type CurrencyService interface {
	Convert(ctx context.Context, amount float64, from string) (*domain.Conversion, error)
	WithUSDPrices(ctx context.Context, articles []domain.Article) ([]domain.Article, error)
}
