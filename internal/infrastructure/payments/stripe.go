// Package payments bridges the storefront to Stripe.
package payments

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

// StripeProvider implements ports.PaymentProvider.
type StripeProvider struct {
	client paymentintent.Client
	log    zerolog.Logger
}

// NewStripeProvider uses the default API backend.
func NewStripeProvider(secretKey string, log zerolog.Logger) *StripeProvider {
	return NewStripeProviderWithBackend(secretKey, stripe.GetBackend(stripe.APIBackend), log)
}

func NewStripeProviderWithBackend(secretKey string, backend stripe.Backend, log zerolog.Logger) *StripeProvider {
	return &StripeProvider{
		client: paymentintent.Client{B: backend, Key: secretKey},
		log:    log,
	}
}

// CreateIntent creates a payment intent and returns its client secret.
// Stripe rejections surface as *domain.PaymentError with Stripe's message.
func (p *StripeProvider) CreateIntent(ctx context.Context, intent domain.PaymentIntent) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(intent.AmountMinor),
		Currency: stripe.String(intent.Currency),
	}
	params.Context = ctx
	for k, v := range intent.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.client.New(params)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.Msg != "" {
			return "", &domain.PaymentError{Message: se.Msg}
		}
		return "", &domain.PaymentError{Message: err.Error()}
	}

	p.log.Debug().Str("intent_id", pi.ID).Str("order_id", intent.OrderID).Msg("stripe payment intent created")
	return pi.ClientSecret, nil
}

// StripeVerifier implements ports.WebhookVerifier with Stripe's signing
// scheme.
type StripeVerifier struct {
	secret string
	now    func() time.Time
}

func NewStripeVerifier(webhookSecret string) *StripeVerifier {
	return &StripeVerifier{secret: webhookSecret, now: time.Now}
}

// Verify checks the Stripe-Signature header against the raw payload and
// decodes the event. The order id is read from the intent metadata.
func (v *StripeVerifier) Verify(payload []byte, signature string) (*domain.PaymentEvent, error) {
	if v.secret == "" {
		return nil, &domain.SignatureError{Reason: "webhook secret not configured"}
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, v.secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, &domain.SignatureError{Reason: err.Error()}
	}

	out := &domain.PaymentEvent{
		ID:         event.ID,
		Type:       string(event.Type),
		ReceivedAt: v.now().UTC(),
	}

	if event.Data != nil && len(event.Data.Raw) > 0 {
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
			out.IntentID = pi.ID
			out.OrderID = pi.Metadata[domain.MetadataOrderID]
		}
	}
	return out, nil
}
