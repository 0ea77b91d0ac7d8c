package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

type stubAudit struct {
	inserted []domain.PaymentEvent
	err      error
}

func (a *stubAudit) Insert(_ context.Context, e domain.PaymentEvent) error {
	if a.err != nil {
		return a.err
	}
	a.inserted = append(a.inserted, e)
	return nil
}

func TestPaymentEventService_SucceededLogsOrder(t *testing.T) {
	var buf bytes.Buffer
	audit := &stubAudit{}
	svc := NewPaymentEventService(audit, zerolog.New(&buf))

	err := svc.Process(context.Background(), domain.PaymentEvent{ID: "evt_1", Type: domain.EventPaymentSucceeded, OrderID: "PED-42"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"order_id":"PED-42"`) || !strings.Contains(out, "payment succeeded") {
		t.Fatalf("expected success log for PED-42, got %s", out)
	}
	if len(audit.inserted) != 1 {
		t.Fatalf("expected audit insert, got %d", len(audit.inserted))
	}
}

func TestPaymentEventService_FailedLogsOrder(t *testing.T) {
	var buf bytes.Buffer
	svc := NewPaymentEventService(nil, zerolog.New(&buf))

	if err := svc.Process(context.Background(), domain.PaymentEvent{Type: domain.EventPaymentFailed, OrderID: "PED-7"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "payment failed") {
		t.Fatalf("expected failure log, got %s", buf.String())
	}
}

func TestPaymentEventService_OtherEventsIgnored(t *testing.T) {
	audit := &stubAudit{}
	svc := NewPaymentEventService(audit, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.PaymentEvent{Type: "charge.refunded"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(audit.inserted) != 0 {
		t.Fatalf("unhandled events must not be audited")
	}
}

func TestPaymentEventService_AuditFailureIsNonFatal(t *testing.T) {
	svc := NewPaymentEventService(&stubAudit{err: errors.New("mongo down")}, zerolog.Nop())

	if err := svc.Process(context.Background(), domain.PaymentEvent{Type: domain.EventPaymentSucceeded}); err != nil {
		t.Fatalf("audit failure must not fail processing: %v", err)
	}
}
