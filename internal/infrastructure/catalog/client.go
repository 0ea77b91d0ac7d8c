// Package catalog reads articles, branches and sellers from the external
// Ferremas assets API.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/pkg/metrics"
)

const (
	apiKeyHeader   = "x-authentication"
	defaultTimeout = 10 * time.Second
	upstreamName   = "catalog"
)

// Client implements ports.CatalogGateway. Every call goes upstream; nothing
// is cached.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	log     zerolog.Logger
}

// NewClient builds a client for baseURL. A non-positive timeout uses
// defaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		log:     log,
	}
}

func (c *Client) Articles(ctx context.Context) ([]domain.Article, error) {
	var out []domain.Article
	if err := c.get(ctx, "/data/articulos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Branches(ctx context.Context) ([]domain.Branch, error) {
	var out []domain.Branch
	if err := c.get(ctx, "/data/sucursales", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Sellers(ctx context.Context) ([]domain.Seller, error) {
	var out []domain.Seller
	if err := c.get(ctx, "/data/vendedores", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// get fetches path and decodes the JSON body into dst. Any failure is
// reported as *domain.ExternalError carrying the upstream status, or zero
// when no response arrived.
func (c *Client) get(ctx context.Context, path string, dst any) error {
	start := time.Now()
	outcome := "transport_error"
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(upstreamName, outcome).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return &domain.ExternalError{Message: err.Error()}
	}
	req.Header.Set(apiKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("path", path).Msg("catalog request failed")
		return &domain.ExternalError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = "http_error"
		_, _ = io.Copy(io.Discard, resp.Body)
		c.log.Error().Int("status", resp.StatusCode).Str("path", path).Msg("catalog returned an error status")
		return &domain.ExternalError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("Request failed with status code %d", resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		outcome = "decode_error"
		c.log.Error().Err(err).Str("path", path).Msg("catalog returned an undecodable body")
		return &domain.ExternalError{Message: "decode catalog response: " + err.Error()}
	}

	outcome = "ok"
	return nil
}
