package ports

import (
	"context"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// PaymentProvider creates payment intents. Rejections are reported as
// *domain.PaymentError.
type PaymentProvider interface {
	CreateIntent(ctx context.Context, intent domain.PaymentIntent) (clientSecret string, err error)
}

// WebhookVerifier authenticates a raw webhook delivery and decodes it.
// Verification failures are reported as *domain.SignatureError.
type WebhookVerifier interface {
	Verify(payload []byte, signature string) (*domain.PaymentEvent, error)
}

// PaymentEventSink receives verified payment events for processing.
type PaymentEventSink interface {
	Enqueue(event domain.PaymentEvent)
}

// PaymentEventProcessor reacts to a single verified payment event.
type PaymentEventProcessor interface {
	Process(ctx context.Context, event domain.PaymentEvent) error
}

// PaymentEventLog is the audit trail of verified payment events.
type PaymentEventLog interface {
	Insert(ctx context.Context, event domain.PaymentEvent) error
}

// WebhookDeduplicator remembers delivered event ids so provider retries
// are acknowledged without being processed twice.
type WebhookDeduplicator interface {
	FirstDelivery(ctx context.Context, eventID string) (bool, error)
}

// PaymentService defines use-case operations for payments.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, orderID string, amount float64) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}
