package queue

import (
	"encoding/json"

	"github.com/ratna-shop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderStatusNotify notifies a customer about an order status change.
	TaskOrderStatusNotify = constants.TaskOrderStatusNotify
	// TaskOrderTimeoutCancel cancels an unpaid order after its window lapses.
	TaskOrderTimeoutCancel = constants.TaskOrderTimeoutCancel
	// TaskWhatsAppSend delivers one WhatsApp message via the provider.
	TaskWhatsAppSend = constants.TaskWhatsAppSend
)

// OrderStatusNotifyPayload carries the order status notification task.
type OrderStatusNotifyPayload struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

// OrderTimeoutCancelPayload carries the timeout cancel task.
type OrderTimeoutCancelPayload struct {
	OrderID uint `json:"order_id"`
}

// WhatsAppSendPayload carries one outbound WhatsApp message.
type WhatsAppSendPayload struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

// NewOrderStatusNotifyTask builds an order status notification task.
func NewOrderStatusNotifyTask(payload OrderStatusNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderStatusNotify, body), nil
}

// NewOrderTimeoutCancelTask builds a timeout cancel task.
func NewOrderTimeoutCancelTask(payload OrderTimeoutCancelPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderTimeoutCancel, body), nil
}

// NewWhatsAppSendTask builds a WhatsApp delivery task.
func NewWhatsAppSendTask(payload WhatsAppSendPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWhatsAppSend, body), nil
}
