package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ferremas/storefront-api/internal/core/domain"
)

func TestCurrencyHandler_Convert(t *testing.T) {
	stub := &stubCurrencyService{
		convertFn: func(_ context.Context, amount float64, from string) (*domain.Conversion, error) {
			if amount != 10000 || from != "" {
				t.Fatalf("unexpected args %v %q", amount, from)
			}
			return &domain.Conversion{From: "CLP", To: "USD", Amount: 10000, ConvertedAmount: 10.5, Rate: 0.00105, Timestamp: "ts"}, nil
		},
	}
	c, rec := newContext(http.MethodGet, "/api/currency/convert?amount=10000", "", nil)

	if err := NewCurrencyHandler(stub).Convert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	data, _ := resp["data"].(map[string]any)
	if resp["success"] != true || data["convertedAmount"] != 10.5 || data["from"] != "CLP" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCurrencyHandler_Convert_InvalidAmount(t *testing.T) {
	stub := &stubCurrencyService{
		convertFn: func(context.Context, float64, string) (*domain.Conversion, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	for _, target := range []string{"/?amount=", "/?amount=abc", "/", "/?amount=NaN"} {
		c, _ := newContext(http.MethodGet, target, "", nil)

		err := NewCurrencyHandler(stub).Convert(c)
		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusBadRequest || he.Message != msgInvalidAmount {
			t.Fatalf("%s: expected 400 invalid amount, got %v", target, err)
		}
	}
}
