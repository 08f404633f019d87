package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for nil config, got: %v", err)
	}
	if err := ValidateConfig(&Config{}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for missing secret, got: %v", err)
	}
	if err := ValidateConfig(&Config{SecretKey: "sk_test_123", APIBaseURL: "::bad::"}); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for bad base url, got: %v", err)
	}
	if err := ValidateConfig(&Config{SecretKey: "sk_test_123"}); err != nil {
		t.Fatalf("validate config failed: %v", err)
	}
}

func TestParseIntentID(t *testing.T) {
	id, err := ParseIntentID("pi_123_secret_abc")
	if err != nil {
		t.Fatalf("parse intent id failed: %v", err)
	}
	if id != "pi_123" {
		t.Fatalf("expected pi_123, got %s", id)
	}

	if _, err := ParseIntentID(""); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for empty secret, got: %v", err)
	}
	if _, err := ParseIntentID("cs_test_123"); !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid for non-intent secret, got: %v", err)
	}
}

func TestConfirmPaymentSucceeded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents/pi_123/confirm" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test_123" {
			t.Errorf("unexpected authorization header: %s", r.Header.Get("Authorization"))
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form failed: %v", err)
		}
		if r.PostForm.Get("payment_method") != "pm_card_visa" {
			t.Errorf("unexpected payment_method: %s", r.PostForm.Get("payment_method"))
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "pi_123",
			"status": "succeeded",
		})
	}))
	defer server.Close()

	result, err := ConfirmPayment(context.Background(), &Config{
		SecretKey:  "sk_test_123",
		APIBaseURL: server.URL,
	}, ConfirmInput{
		ClientSecret:    "pi_123_secret_abc",
		PaymentMethodID: "pm_card_visa",
	})
	if err != nil {
		t.Fatalf("confirm payment failed: %v", err)
	}
	if result.PaymentIntentID != "pi_123" || result.Status != "succeeded" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestConfirmPaymentDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{
				"message": "Your card was declined.",
				"code":    "card_declined",
			},
		})
	}))
	defer server.Close()

	_, err := ConfirmPayment(context.Background(), &Config{
		SecretKey:  "sk_test_123",
		APIBaseURL: server.URL,
	}, ConfirmInput{
		ClientSecret:    "pi_123_secret_abc",
		PaymentMethodID: "pm_card_visa",
	})
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got: %v", err)
	}
}

func TestConfirmPaymentRequiresActionTreatedAsDeclined(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":     "pi_123",
			"status": "requires_action",
			"last_payment_error": map[string]interface{}{
				"message": "Authentication required.",
			},
		})
	}))
	defer server.Close()

	_, err := ConfirmPayment(context.Background(), &Config{
		SecretKey:  "sk_test_123",
		APIBaseURL: server.URL,
	}, ConfirmInput{
		ClientSecret:    "pi_123_secret_abc",
		PaymentMethodID: "pm_card_visa",
	})
	if !errors.Is(err, ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined for requires_action, got: %v", err)
	}
}

func TestConfirmPaymentMissingPaymentMethod(t *testing.T) {
	_, err := ConfirmPayment(context.Background(), &Config{SecretKey: "sk_test_123"}, ConfirmInput{
		ClientSecret: "pi_123_secret_abc",
	})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got: %v", err)
	}
}
