package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
	"github.com/ferremas/storefront-api/internal/core/ports"
)

type paymentEventService struct {
	audit ports.PaymentEventLog
	log   zerolog.Logger
}

// NewPaymentEventService returns the processor for verified payment events.
// audit may be nil when no event store is configured.
func NewPaymentEventService(audit ports.PaymentEventLog, log zerolog.Logger) ports.PaymentEventProcessor {
	return &paymentEventService{audit: audit, log: log}
}

// Process logs the outcome of a payment and records the event in the audit
// trail. Orders are not modified.
func (s *paymentEventService) Process(ctx context.Context, event domain.PaymentEvent) error {
	switch event.Type {
	case domain.EventPaymentSucceeded:
		// TODO: set the order to paid once OrderRepository grows an UpdateStatus method.
		s.log.Info().
			Str("order_id", event.OrderID).
			Str("intent_id", event.IntentID).
			Msg("payment succeeded")
	case domain.EventPaymentFailed:
		s.log.Warn().
			Str("order_id", event.OrderID).
			Str("intent_id", event.IntentID).
			Msg("payment failed")
	default:
		s.log.Debug().Str("type", event.Type).Str("event_id", event.ID).Msg("unhandled payment event")
		return nil
	}

	if s.audit == nil {
		return nil
	}
	// Audit failures are non-fatal; the provider already got its ack.
	if err := s.audit.Insert(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("event_id", event.ID).Msg("failed to insert payment audit event")
	}
	return nil
}
