// Package exchange fetches the CLP→USD rate from the open.er-api.com feed.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/pkg/metrics"
)

const (
	defaultTimeout = 10 * time.Second
	upstreamName   = "exchange_rate"
)

type latestResponse struct {
	Result            string             `json:"result"`
	TimeLastUpdateUTC string             `json:"time_last_update_utc"`
	Rates             map[string]float64 `json:"rates"`
}

// Client implements ports.RateProvider against a CLP-based rates feed.
type Client struct {
	http *http.Client
	url  string
	log  zerolog.Logger
}

func NewClient(url string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}, url: url, log: log}
}

// CLPToUSD returns the current rate. Request failures are reported as
// *domain.ExternalError carrying the upstream status, or zero when no
// response arrived; a feed without a positive USD rate wraps
// domain.ErrRateUnavailable.
func (c *Client) CLPToUSD(ctx context.Context) (domain.ExchangeRate, error) {
	start := time.Now()
	outcome := "transport_error"
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(upstreamName, outcome).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, http.NoBody)
	if err != nil {
		return domain.ExchangeRate{}, &domain.ExternalError{Message: err.Error()}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("exchange rate request failed")
		return domain.ExchangeRate{}, &domain.ExternalError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Error().Int("status", resp.StatusCode).Msg("exchange rate feed returned an error status")
		return domain.ExchangeRate{}, &domain.ExternalError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		}
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		outcome = "decode_error"
		c.log.Error().Err(err).Msg("exchange rate feed returned an undecodable body")
		return domain.ExchangeRate{}, &domain.ExternalError{Message: "decode exchange rate response: " + err.Error()}
	}

	outcome = "ok"
	rate := body.Rates[domain.CurrencyUSD]
	if rate <= 0 {
		return domain.ExchangeRate{}, fmt.Errorf("%w: USD rate missing", domain.ErrRateUnavailable)
	}
	return domain.ExchangeRate{Rate: rate, Timestamp: body.TimeLastUpdateUTC}, nil
}
