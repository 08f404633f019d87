package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/giftmart/internal/logger"
	"github.com/giftmart/internal/pdf"
	"github.com/giftmart/internal/provider"
	"github.com/giftmart/internal/queue"
	"github.com/giftmart/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

// handleOrderConfirmationEmail 渲染发票并发送订单确认邮件。
// 返回 error 时由队列按策略重试；永久性问题直接吞掉，避免死循环。
func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_confirmation_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_confirmation_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_confirmation_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	receiverEmail := strings.TrimSpace(order.Email)
	if receiverEmail == "" && order.UserID != 0 {
		user, err := c.UserRepo.GetByID(order.UserID)
		if err != nil {
			logger.Warnw("worker_order_confirmation_fetch_user_failed",
				"order_id", order.ID,
				"user_id", order.UserID,
				"error", err,
			)
			return err
		}
		if user != nil {
			receiverEmail = strings.TrimSpace(user.Email)
		}
	}
	if receiverEmail == "" {
		logger.Debugw("worker_order_confirmation_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_order_confirmation_skip_email_disabled", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	var attachment *service.OrderConfirmationAttachment
	data, filename, err := pdf.RenderInvoice(order)
	if err != nil {
		logger.Warnw("worker_order_confirmation_render_invoice_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"error", err,
		)
	} else {
		attachment = &service.OrderConfirmationAttachment{
			Filename:    filename,
			ContentType: "application/pdf",
			Data:        data,
		}
	}

	if err := c.EmailService.SendOrderConfirmationEmail(receiverEmail, order, attachment); err != nil {
		if errors.Is(err, service.ErrEmailDisabled) {
			logger.Debugw("worker_order_confirmation_skip_email_disabled", "order_id", order.ID)
			return nil
		}
		logger.Warnw("worker_order_confirmation_send_failed",
			"order_id", order.ID,
			"order_no", order.OrderNo,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}

	logger.Infow("worker_order_confirmation_sent",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"receiver_email", receiverEmail,
	)
	return nil
}
