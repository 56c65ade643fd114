package repository

import (
	"errors"

	"github.com/ratna-shop/internal/models"

	"gorm.io/gorm"
)

// UserIdentityRepository is the federated identity data access interface.
type UserIdentityRepository interface {
	GetByProviderSubject(provider, subjectID string) (*models.UserIdentity, error)
	ListByUserID(userID uint) ([]models.UserIdentity, error)
	Create(identity *models.UserIdentity) error
	DeleteByUserID(userID uint) error
	WithTx(tx *gorm.DB) *GormUserIdentityRepository
}

// GormUserIdentityRepository is the GORM implementation.
type GormUserIdentityRepository struct {
	db *gorm.DB
}

// NewUserIdentityRepository creates a user identity repository.
func NewUserIdentityRepository(db *gorm.DB) *GormUserIdentityRepository {
	return &GormUserIdentityRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormUserIdentityRepository) WithTx(tx *gorm.DB) *GormUserIdentityRepository {
	if tx == nil {
		return r
	}
	return &GormUserIdentityRepository{db: tx}
}

// GetByProviderSubject fetches the identity row for one provider subject.
func (r *GormUserIdentityRepository) GetByProviderSubject(provider, subjectID string) (*models.UserIdentity, error) {
	var identity models.UserIdentity
	err := r.db.Where("provider = ? AND subject_id = ?", provider, subjectID).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

// ListByUserID lists all linked identities of one user.
func (r *GormUserIdentityRepository) ListByUserID(userID uint) ([]models.UserIdentity, error) {
	var identities []models.UserIdentity
	if err := r.db.Where("user_id = ?", userID).Order("id asc").Find(&identities).Error; err != nil {
		return nil, err
	}
	return identities, nil
}

// Create inserts an identity row.
func (r *GormUserIdentityRepository) Create(identity *models.UserIdentity) error {
	return r.db.Create(identity).Error
}

// DeleteByUserID removes all identity rows of one user.
func (r *GormUserIdentityRepository) DeleteByUserID(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.UserIdentity{}).Error
}
