// Package metrics defines and registers all custom Prometheus metrics for the
// Ferremas storefront API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init;
// the /metrics route exposes them next to the HTTP request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts orders stored successfully.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created.",
	},
)

// OrdersRejectedTotal counts purchase requests refused before storage.
// Label:
//   - reason: e.g. "insufficient_stock"
var OrdersRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_rejected_total",
		Help:      "Total number of purchase requests rejected before an order was stored.",
	},
	[]string{"reason"},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentIntentsTotal counts payment intent requests.
// Label:
//   - result: "created" or "rejected"
var PaymentIntentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_intents_total",
		Help:      "Total number of payment intent requests, by result.",
	},
	[]string{"result"},
)

// WebhookEventsTotal counts webhook deliveries.
// Labels:
//   - type: provider event type, "unknown" when the signature failed
//   - result: "accepted", "duplicate" or "rejected"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of payment webhook deliveries, by event type and result.",
	},
	[]string{"type", "result"},
)

// WebhookQueueDepth tracks the events waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var WebhookQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "webhook_queue_depth",
		Help:      "Current number of payment events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Upstream metrics ──────────────────────────────────────────────────────────

// UpstreamRequestDuration measures calls to external APIs.
// Labels:
//   - upstream: "catalog" or "exchange_rate"
//   - outcome: "ok", "http_error", "transport_error" or "decode_error"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of calls to external APIs.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"upstream", "outcome"},
)

// ExchangeRateCacheTotal counts exchange-rate cache lookups.
// Label:
//   - result: "hit" or "miss"
var ExchangeRateCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "exchange_rate_cache_total",
		Help:      "Total number of exchange-rate cache lookups, by result.",
	},
	[]string{"result"},
)
