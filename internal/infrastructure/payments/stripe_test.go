package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

const testSecret = "whsec_test"

func sign(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = fmt.Fprintf(mac, "%d.%s", ts, payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

const succeededPayload = `{
  "id": "evt_123",
  "object": "event",
  "type": "payment_intent.succeeded",
  "api_version": "2020-08-27",
  "data": {"object": {"id": "pi_123", "object": "payment_intent", "metadata": {"pedidoId": "PED-42", "integration_check": "accept_a_payment"}}}
}`

func TestStripeVerifier_ValidSignature(t *testing.T) {
	v := NewStripeVerifier(testSecret)
	payload := []byte(succeededPayload)

	event, err := v.Verify(payload, sign(payload, testSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, domain.EventPaymentSucceeded, event.Type)
	assert.Equal(t, "pi_123", event.IntentID)
	assert.Equal(t, "PED-42", event.OrderID)
	assert.False(t, event.ReceivedAt.IsZero())
}

func TestStripeVerifier_Rejections(t *testing.T) {
	payload := []byte(succeededPayload)
	cases := map[string]struct {
		verifier *StripeVerifier
		payload  []byte
		header   string
	}{
		"wrong secret":     {NewStripeVerifier(testSecret), payload, sign(payload, "whsec_other", time.Now())},
		"tampered payload": {NewStripeVerifier(testSecret), []byte(succeededPayload + " "), sign(payload, testSecret, time.Now())},
		"stale timestamp":  {NewStripeVerifier(testSecret), payload, sign(payload, testSecret, time.Now().Add(-time.Hour))},
		"missing header":   {NewStripeVerifier(testSecret), payload, ""},
		"no secret":        {NewStripeVerifier(""), payload, sign(payload, "", time.Now())},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tc.verifier.Verify(tc.payload, tc.header)
			var se *domain.SignatureError
			assert.True(t, errors.As(err, &se), "expected SignatureError, got %v", err)
		})
	}
}

type capturedRequest struct {
	path string
	form url.Values
}

func stubStripe(t *testing.T, status int, body string, seen *capturedRequest) stripe.Backend {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		seen.path = r.URL.Path
		seen.form = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	maxRetries := int64(0)
	return stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		HTTPClient:        srv.Client(),
		MaxNetworkRetries: &maxRetries,
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
}

func TestStripeProvider_CreateIntent(t *testing.T) {
	var seen capturedRequest
	backend := stubStripe(t, http.StatusOK, `{"id":"pi_1","object":"payment_intent","client_secret":"pi_1_secret_x"}`, &seen)
	p := NewStripeProviderWithBackend("sk_test_123", backend, zerolog.Nop())

	secret, err := p.CreateIntent(context.Background(), domain.PaymentIntent{
		OrderID:     "PED-1",
		AmountMinor: 100000,
		Currency:    "clp",
		Metadata:    map[string]string{"pedidoId": "PED-1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_x", secret)
	assert.Equal(t, "/v1/payment_intents", seen.path)
	assert.Equal(t, "100000", seen.form.Get("amount"))
	assert.Equal(t, "clp", seen.form.Get("currency"))
	assert.Equal(t, "PED-1", seen.form.Get("metadata[pedidoId]"))
}

func TestStripeProvider_Rejected(t *testing.T) {
	var seen capturedRequest
	backend := stubStripe(t, http.StatusPaymentRequired,
		`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`, &seen)
	p := NewStripeProviderWithBackend("sk_test_123", backend, zerolog.Nop())

	_, err := p.CreateIntent(context.Background(), domain.PaymentIntent{AmountMinor: 100, Currency: "clp"})

	var pe *domain.PaymentError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "Your card was declined.", pe.Message)
}
