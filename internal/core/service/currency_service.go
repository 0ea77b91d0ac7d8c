package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
)

type CurrencyService struct {
	rates  ports.RateProvider
	logger zerolog.Logger
}

func NewCurrencyService(rates ports.RateProvider, logger zerolog.Logger) *CurrencyService {
	return &CurrencyService{rates: rates, logger: logger}
}

// Convert converts amount from the given currency (CLP by default) to the other one.
func (s *CurrencyService) Convert(ctx context.Context, amount float64, from string) (*domain.Conversion, error) {
	from = domain.NormalizeCurrency(from)
	if from != domain.CurrencyCLP && from != domain.CurrencyUSD {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedCurrency, from)
	}

	rate, err := s.rates.CLPToUSD(ctx)
	if err != nil {
		return nil, err
	}

	conv := &domain.Conversion{
		From:      from,
		Amount:    amount,
		Rate:      rate.Rate,
		Timestamp: rate.Timestamp,
	}
	if from == domain.CurrencyCLP {
		conv.To = domain.CurrencyUSD
		conv.ConvertedAmount = domain.CLPToUSD(amount, rate.Rate)
	} else {
		conv.To = domain.CurrencyCLP
		conv.ConvertedAmount = domain.USDToCLP(amount, rate.Rate)
	}
	return conv, nil
}

// WithUSDPrices returns copies of articles decorated with precio_usd and the rate used.
func (s *CurrencyService) WithUSDPrices(ctx context.Context, articles []domain.Article) ([]domain.Article, error) {
	rate, err := s.rates.CLPToUSD(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to add USD prices")
		return nil, err
	}

	out := make([]domain.Article, len(articles))
	for i, a := range articles {
		out[i] = a.WithUSDPrice(rate)
	}
	return out, nil
}
