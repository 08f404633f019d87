package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("stripe config invalid")
	ErrRequestFailed   = errors.New("stripe request failed")
	ErrResponseInvalid = errors.New("stripe response invalid")
	ErrPaymentDeclined = errors.New("stripe payment declined")
)

const (
	defaultAPIBaseURL = "https://api.stripe.com"
	defaultTimeout    = 12 * time.Second
)

// Config Stripe 渠道配置。
type Config struct {
	SecretKey  string `json:"secret_key"`
	APIBaseURL string `json:"api_base_url"`
	TimeoutMS  int    `json:"timeout_ms"`
}

// ConfirmInput 确认支付输入。
type ConfirmInput struct {
	ClientSecret    string
	PaymentMethodID string
}

// ConfirmResult 确认支付返回。
type ConfirmResult struct {
	PaymentIntentID string
	Status          string
	Raw             map[string]interface{}
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	baseURL := strings.TrimSpace(cfg.APIBaseURL)
	if baseURL != "" {
		if _, err := url.ParseRequestURI(baseURL); err != nil {
			return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
		}
	}
	return nil
}

// ConfirmPayment 确认 PaymentIntent；支付被拒时返回携带拒付原因的 ErrPaymentDeclined。
func ConfirmPayment(ctx context.Context, cfg *Config, input ConfirmInput) (*ConfirmResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	intentID, err := ParseIntentID(input.ClientSecret)
	if err != nil {
		return nil, err
	}
	paymentMethodID := strings.TrimSpace(input.PaymentMethodID)
	if paymentMethodID == "" {
		return nil, fmt.Errorf("%w: payment_method is required", ErrConfigInvalid)
	}

	form := url.Values{}
	form.Set("payment_method", paymentMethodID)

	path := fmt.Sprintf("/v1/payment_intents/%s/confirm", url.PathEscape(intentID))
	respBody, statusCode, err := doFormRequest(ctx, cfg, http.MethodPost, path, form)
	if err != nil {
		return nil, err
	}

	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		reason := readErrorMessage(raw)
		if reason == "" {
			reason = fmt.Sprintf("confirm status %d", statusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, reason)
	}

	result := &ConfirmResult{Raw: raw}
	result.PaymentIntentID = strings.TrimSpace(readString(raw, "id"))
	result.Status = strings.ToLower(strings.TrimSpace(readString(raw, "status")))
	if result.PaymentIntentID == "" {
		return nil, fmt.Errorf("%w: missing payment intent id", ErrResponseInvalid)
	}

	switch result.Status {
	case "succeeded", "processing", "requires_capture":
		return result, nil
	default:
		reason := readLastPaymentError(raw)
		if reason == "" {
			reason = fmt.Sprintf("status %s", result.Status)
		}
		return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, reason)
	}
}

// ParseIntentID 从 client_secret 解析 PaymentIntent ID（pi_xxx_secret_yyy -> pi_xxx）。
func ParseIntentID(clientSecret string) (string, error) {
	trimmed := strings.TrimSpace(clientSecret)
	if trimmed == "" {
		return "", fmt.Errorf("%w: client_secret is required", ErrConfigInvalid)
	}
	if idx := strings.Index(trimmed, "_secret_"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	if !strings.HasPrefix(trimmed, "pi_") {
		return "", fmt.Errorf("%w: client_secret is invalid", ErrConfigInvalid)
	}
	return trimmed, nil
}

func doFormRequest(ctx context.Context, cfg *Config, method, path string, form url.Values) ([]byte, int, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	if baseURL == "" {
		baseURL = defaultAPIBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(cfg.SecretKey))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	timeout := defaultTimeout
	if cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return body, resp.StatusCode, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readErrorMessage(raw map[string]interface{}) string {
	errMap := readMap(raw, "error")
	if errMap == nil {
		return ""
	}
	if message := strings.TrimSpace(readString(errMap, "message")); message != "" {
		return message
	}
	return strings.TrimSpace(readString(errMap, "code"))
}

func readLastPaymentError(raw map[string]interface{}) string {
	errMap := readMap(raw, "last_payment_error")
	if errMap == nil {
		return ""
	}
	if message := strings.TrimSpace(readString(errMap, "message")); message != "" {
		return message
	}
	return strings.TrimSpace(readString(errMap, "decline_code"))
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil || strings.TrimSpace(key) == "" {
		return ""
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	typed, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(typed)
}

func readMap(raw map[string]interface{}, key string) map[string]interface{} {
	if raw == nil || strings.TrimSpace(key) == "" {
		return nil
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return nil
	}
	mapped, ok := value.(map[string]interface{})
	if !ok {
		return nil
	}
	return mapped
}
