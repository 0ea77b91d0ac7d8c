package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	CurrencyCLP = "CLP"
	CurrencyUSD = "USD"
)

var (
	ErrRateUnavailable     = errors.New("exchange rate unavailable")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// ExchangeRate is the CLP→USD rate reported by the rate provider.
type ExchangeRate struct {
	Rate      float64
	Timestamp string
}

// Conversion is the result of converting an amount between CLP and USD.
type Conversion struct {
	From            string  `json:"from"`
	To              string  `json:"to"`
	Amount          float64 `json:"amount"`
	ConvertedAmount float64 `json:"convertedAmount"`
	Rate            float64 `json:"rate"`
	Timestamp       string  `json:"timestamp"`
}

// CLPToUSD converts a peso amount to dollars, rounded to cents.
func CLPToUSD(clp, rate float64) float64 {
	return decimal.NewFromFloat(clp).
		Mul(decimal.NewFromFloat(rate)).
		Round(2).
		InexactFloat64()
}

// USDToCLP converts a dollar amount to whole pesos.
func USDToCLP(usd, rate float64) float64 {
	if rate == 0 {
		return 0
	}
	return decimal.NewFromFloat(usd).
		Div(decimal.NewFromFloat(rate)).
		Round(0).
		InexactFloat64()
}

// MinorUnits converts a major-unit amount into the integer count of minor
// units (amount × 100, rounded half away from zero) expected by the payment provider.
func MinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Round(0).IntPart()
}

// NormalizeCurrency upper-cases a currency code; empty means CLP.
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return CurrencyCLP
	}
	return code
}

// WithUSDPrice returns a copy of a decorated with its dollar price.
func (a Article) WithUSDPrice(rate ExchangeRate) Article {
	usd := CLPToUSD(a.Precio, rate.Rate)
	a.PrecioUSD = &usd
	a.ExchangeRate = &ExchangeRateInfo{CLPUSD: rate.Rate, Timestamp: rate.Timestamp}
	return a
}
