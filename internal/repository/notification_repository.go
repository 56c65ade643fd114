package repository

import (
	"errors"
	"time"

	"github.com/ratna-shop/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository is the user notification data access interface.
type NotificationRepository interface {
	GetByID(id uint) (*models.Notification, error)
	Create(notification *models.Notification) error
	CreateBatch(notifications []models.Notification) error
	List(filter NotificationListFilter) ([]models.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(userID uint, ids []uint, at time.Time) (int64, error)
	MarkAllRead(userID uint, at time.Time) (int64, error)
	Delete(userID, id uint) (int64, error)
	WithTx(tx *gorm.DB) *GormNotificationRepository
}

// NotificationListFilter filters the notification list.
type NotificationListFilter struct {
	UserID     uint
	Kind       string
	UnreadOnly bool
	Page       int
	PageSize   int
}

// GormNotificationRepository is the GORM implementation.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository.
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) *GormNotificationRepository {
	if tx == nil {
		return r
	}
	return &GormNotificationRepository{db: tx}
}

// GetByID fetches a notification by ID.
func (r *GormNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &notification, nil
}

// Create inserts a notification.
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// CreateBatch inserts a batch of notifications.
func (r *GormNotificationRepository) CreateBatch(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.db.Create(&notifications).Error
}

// List returns a filtered notification page, newest first.
func (r *GormNotificationRepository) List(filter NotificationListFilter) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	query := r.db.Model(&models.Notification{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.UnreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&notifications).Error; err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

// CountUnread counts a user's unread notifications.
func (r *GormNotificationRepository) CountUnread(userID uint) (int64, error) {
	var total int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// MarkRead marks the given notifications read, scoped to the owner.
func (r *GormNotificationRepository) MarkRead(userID uint, ids []uint, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND id IN ? AND read_at IS NULL", userID, ids).
		Update("read_at", at)
	return result.RowsAffected, result.Error
}

// MarkAllRead marks every unread notification of a user read.
func (r *GormNotificationRepository) MarkAllRead(userID uint, at time.Time) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", at)
	return result.RowsAffected, result.Error
}

// Delete removes a notification, scoped to the owner.
func (r *GormNotificationRepository) Delete(userID, id uint) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.Notification{}, id)
	return result.RowsAffected, result.Error
}
