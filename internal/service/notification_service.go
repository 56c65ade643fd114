package service

import (
	"fmt"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"
)

// orderStatusTitles are the notification headlines per order status.
var orderStatusTitles = map[string]string{
	constants.OrderStatusPaid:      "Order confirmed",
	constants.OrderStatusShipped:   "Order shipped",
	constants.OrderStatusDelivered: "Order delivered",
	constants.OrderStatusCompleted: "Order completed",
	constants.OrderStatusCanceled:  "Order canceled",
}

// NotificationService handles in-app user notifications.
type NotificationService struct {
	repo      repository.NotificationRepository
	orderRepo repository.OrderRepository
}

// NewNotificationService creates the notification service.
func NewNotificationService(repo repository.NotificationRepository, orderRepo repository.OrderRepository) *NotificationService {
	return &NotificationService{
		repo:      repo,
		orderRepo: orderRepo,
	}
}

// NotifyOrderStatus records an order status notification for the
// order's owner. Called from the queue worker.
func (s *NotificationService) NotifyOrderStatus(orderID uint, status string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	title, ok := orderStatusTitles[status]
	if !ok {
		title = "Order updated"
	}
	notification := &models.Notification{
		UserID: order.UserID,
		Kind:   constants.NotificationKindOrderStatus,
		Title:  title,
		Body:   fmt.Sprintf("Order %s is now %s.", order.OrderNo, status),
		DataJSON: models.JSON{
			"order_id": order.ID,
			"order_no": order.OrderNo,
			"status":   status,
		},
	}
	return s.repo.Create(notification)
}

// NotifyContact records a contact-form message for back-office review.
func (s *NotificationService) NotifyContact(userID uint, subject, message string) error {
	notification := &models.Notification{
		UserID: userID,
		Kind:   constants.NotificationKindContact,
		Title:  subject,
		Body:   message,
	}
	return s.repo.Create(notification)
}

// List returns a user's notification page.
func (s *NotificationService) List(filter repository.NotificationListFilter) ([]models.Notification, int64, error) {
	return s.repo.List(filter)
}

// CountUnread returns a user's unread notification count.
func (s *NotificationService) CountUnread(userID uint) (int64, error) {
	return s.repo.CountUnread(userID)
}

// MarkRead marks the given notifications read, scoped to the owner.
func (s *NotificationService) MarkRead(userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	return s.repo.MarkRead(userID, ids, time.Now())
}

// MarkAllRead marks every unread notification read for the owner.
func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	return s.repo.MarkAllRead(userID, time.Now())
}

// Delete removes one notification, scoped to the owner.
func (s *NotificationService) Delete(userID, id uint) error {
	affected, err := s.repo.Delete(userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
