package service

import (
	"context"

	"github.com/giftmart/internal/config"
	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/payment/stripe"
)

// PaymentService 支付确认服务
type PaymentService struct {
	cfg *config.StripeConfig
}

// NewPaymentService 创建支付服务
func NewPaymentService(cfg *config.StripeConfig) *PaymentService {
	return &PaymentService{cfg: cfg}
}

// Enabled 支付渠道是否启用
func (s *PaymentService) Enabled() bool {
	return s != nil && s.cfg != nil && s.cfg.Enabled
}

// Confirm 向支付渠道确认付款
func (s *PaymentService) Confirm(ctx context.Context, clientSecret, paymentMethodID string) error {
	if !s.Enabled() {
		return nil
	}
	result, err := stripe.ConfirmPayment(ctx, &stripe.Config{
		SecretKey:  s.cfg.SecretKey,
		APIBaseURL: s.cfg.APIBaseURL,
		TimeoutMS:  s.cfg.TimeoutMS,
	}, stripe.ConfirmInput{
		ClientSecret:    clientSecret,
		PaymentMethodID: paymentMethodID,
	})
	if err != nil {
		return err
	}
	logger.Infow("payment_confirmed",
		"payment_intent_id", result.PaymentIntentID,
		"status", result.Status,
	)
	return nil
}
