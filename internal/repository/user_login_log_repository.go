package repository

import (
	"time"

	"github.com/ratna-shop/internal/models"

	"gorm.io/gorm"
)

// UserLoginLogRepository is the login audit data access interface.
type UserLoginLogRepository interface {
	Create(log *models.UserLoginLog) error
	List(filter UserLoginLogFilter) ([]models.UserLoginLog, int64, error)
	CountRecentFailures(email string, since time.Time) (int64, error)
	WithTx(tx *gorm.DB) *GormUserLoginLogRepository
}

// UserLoginLogFilter filters the login log list.
type UserLoginLogFilter struct {
	UserID   uint
	Email    string
	Status   string
	Page     int
	PageSize int
}

// GormUserLoginLogRepository is the GORM implementation.
type GormUserLoginLogRepository struct {
	db *gorm.DB
}

// NewUserLoginLogRepository creates a login log repository.
func NewUserLoginLogRepository(db *gorm.DB) *GormUserLoginLogRepository {
	return &GormUserLoginLogRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormUserLoginLogRepository) WithTx(tx *gorm.DB) *GormUserLoginLogRepository {
	if tx == nil {
		return r
	}
	return &GormUserLoginLogRepository{db: tx}
}

// Create inserts a login log row.
func (r *GormUserLoginLogRepository) Create(log *models.UserLoginLog) error {
	return r.db.Create(log).Error
}

// List returns a filtered login log page.
func (r *GormUserLoginLogRepository) List(filter UserLoginLogFilter) ([]models.UserLoginLog, int64, error) {
	var logs []models.UserLoginLog
	query := r.db.Model(&models.UserLoginLog{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", "%"+filter.Email+"%")
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// CountRecentFailures counts failed attempts for one email since a cutoff.
func (r *GormUserLoginLogRepository) CountRecentFailures(email string, since time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.UserLoginLog{}).
		Where("lower(email) = lower(?)", email).
		Where("status = ?", "failed").
		Where("created_at >= ?", since).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}
