package domain

import "time"

// Payment event types delivered by the provider's webhook.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
)

// MetadataOrderID is the intent metadata key that carries the order id.
const MetadataOrderID = "pedidoId"

// PaymentIntent is the request sent to the payment provider.
type PaymentIntent struct {
	OrderID     string
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// PaymentEvent is a verified webhook notification.
type PaymentEvent struct {
	ID         string    `bson:"event_id"`
	Type       string    `bson:"type"`
	IntentID   string    `bson:"intent_id"`
	OrderID    string    `bson:"order_id"`
	ReceivedAt time.Time `bson:"received_at"`
}

// PaymentError reports a rejection from the payment provider.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string {
	if e.Message == "" {
		return "payment rejected"
	}
	return e.Message
}

// SignatureError reports a webhook whose signature could not be verified.
type SignatureError struct {
	Reason string
}

func (e *SignatureError) Error() string {
	return "webhook signature verification failed: " + e.Reason
}
