package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
	"github.com/ferremas/storefront-api/internal/pkg/metrics"
)

const integrationCheck = "accept_a_payment"

type PaymentService struct {
	provider ports.PaymentProvider
	verifier ports.WebhookVerifier
	sink     ports.PaymentEventSink
	dedup    ports.WebhookDeduplicator
	currency string
	logger   zerolog.Logger
}

// NewPaymentService wires the payment bridge. dedup may be nil, in which
// case every verified delivery is processed.
func NewPaymentService(
	provider ports.PaymentProvider,
	verifier ports.WebhookVerifier,
	sink ports.PaymentEventSink,
	dedup ports.WebhookDeduplicator,
	currency string,
	logger zerolog.Logger,
) *PaymentService {
	return &PaymentService{
		provider: provider,
		verifier: verifier,
		sink:     sink,
		dedup:    dedup,
		currency: currency,
		logger:   logger,
	}
}

// CreatePaymentIntent asks the provider for an intent of amount (major units)
// tagged with the order id and returns its client secret.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, orderID string, amount float64) (string, error) {
	intent := domain.PaymentIntent{
		OrderID:     orderID,
		AmountMinor: domain.MinorUnits(amount),
		Currency:    s.currency,
		Metadata: map[string]string{
			domain.MetadataOrderID: orderID,
			"integration_check":    integrationCheck,
		},
	}

	secret, err := s.provider.CreateIntent(ctx, intent)
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("rejected").Inc()
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("error creating payment intent")

		var pe *domain.PaymentError
		if errors.As(err, &pe) {
			return "", pe
		}
		return "", &domain.PaymentError{Message: err.Error()}
	}

	metrics.PaymentIntentsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("order_id", orderID).Int64("amount_minor", intent.AmountMinor).Msg("payment intent created")
	return secret, nil
}

// HandleWebhook verifies a raw webhook delivery before anything else reads
// it. Verified events are handed to the sink; unverified ones are dropped.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.verifier.Verify(payload, signature)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues("unknown", "rejected").Inc()
		s.logger.Warn().Err(err).Msg("error verifying webhook signature")

		var se *domain.SignatureError
		if errors.As(err, &se) {
			return se
		}
		return &domain.SignatureError{Reason: err.Error()}
	}

	if s.dedup != nil && event.ID != "" {
		first, err := s.dedup.FirstDelivery(ctx, event.ID)
		if err != nil {
			s.logger.Warn().Err(err).Str("event_id", event.ID).Msg("dedup check failed, processing anyway")
		} else if !first {
			metrics.WebhookEventsTotal.WithLabelValues(event.Type, "duplicate").Inc()
			s.logger.Debug().Str("event_id", event.ID).Msg("duplicate webhook delivery skipped")
			return nil
		}
	}

	metrics.WebhookEventsTotal.WithLabelValues(event.Type, "accepted").Inc()
	s.sink.Enqueue(*event)
	return nil
}
