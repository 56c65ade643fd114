package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ratna-shop/internal/logger"
	"github.com/ratna-shop/internal/provider"
	"github.com/ratna-shop/internal/queue"
	"github.com/ratna-shop/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer handles the asynchronous tasks.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates the task consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds the task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.handleOrderStatusNotify)
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.handleOrderTimeoutCancel)
	mux.HandleFunc(queue.TaskWhatsAppSend, c.handleWhatsAppSend)
}

func (c *Consumer) handleOrderStatusNotify(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_notify_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_notify_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_order_status_notify_skip_service_nil", "order_id", payload.OrderID)
		return nil
	}

	err := c.NotificationService.NotifyOrderStatus(payload.OrderID, payload.Status)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			logger.Debugw("worker_order_status_notify_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_status_notify_failed", "order_id", payload.OrderID, "status", payload.Status, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleOrderTimeoutCancel(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_timeout_cancel_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_timeout_cancel_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_timeout_cancel_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}

	_, err := c.OrderService.CancelExpiredOrder(payload.OrderID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			logger.Debugw("worker_order_timeout_cancel_skip_order_not_found", "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrOrderStatusConflict):
			// The order was paid or canceled before the timer fired.
			logger.Debugw("worker_order_timeout_cancel_skip_already_settled", "order_id", payload.OrderID)
			return nil
		default:
			logger.Warnw("worker_order_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleWhatsAppSend(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		return nil
	}
	var payload queue.WhatsAppSendPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_whatsapp_send_unmarshal_failed", "error", err)
		return err
	}
	if payload.To == "" || payload.Body == "" {
		logger.Debugw("worker_whatsapp_send_skip_invalid_payload", "to", payload.To)
		return nil
	}
	if c.WhatsAppClient == nil {
		logger.Warnw("worker_whatsapp_send_skip_client_nil", "to", payload.To)
		return nil
	}

	result, err := c.WhatsAppClient.Send(ctx, payload.To, payload.Body)
	if err != nil {
		logger.Warnw("worker_whatsapp_send_failed", "to", payload.To, "error", err)
		return err
	}
	logger.Debugw("worker_whatsapp_send_ok", "to", payload.To, "message_sid", result.MessageSID)
	return nil
}
