package repository

import (
	"errors"

	"github.com/ratna-shop/internal/models"

	"gorm.io/gorm"
)

// AddressRepository is the saved address data access interface.
type AddressRepository interface {
	GetByID(id uint) (*models.Address, error)
	ListByUserID(userID uint) ([]models.Address, error)
	Create(address *models.Address) error
	Update(address *models.Address) error
	Delete(id uint) error
	ClearDefault(userID uint) error
	WithTx(tx *gorm.DB) *GormAddressRepository
}

// GormAddressRepository is the GORM implementation.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates an address repository.
func NewAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormAddressRepository) WithTx(tx *gorm.DB) *GormAddressRepository {
	if tx == nil {
		return r
	}
	return &GormAddressRepository{db: tx}
}

// GetByID fetches an address by ID.
func (r *GormAddressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

// ListByUserID lists a user's addresses, default first.
func (r *GormAddressRepository) ListByUserID(userID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("user_id = ?", userID).
		Order("is_default desc, id desc").
		Find(&addresses).Error
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// Create inserts an address.
func (r *GormAddressRepository) Create(address *models.Address) error {
	return r.db.Create(address).Error
}

// Update saves an address.
func (r *GormAddressRepository) Update(address *models.Address) error {
	return r.db.Save(address).Error
}

// Delete soft-deletes an address.
func (r *GormAddressRepository) Delete(id uint) error {
	return r.db.Delete(&models.Address{}, id).Error
}

// ClearDefault unsets the default flag on all of a user's addresses.
func (r *GormAddressRepository) ClearDefault(userID uint) error {
	return r.db.Model(&models.Address{}).
		Where("user_id = ?", userID).
		Update("is_default", false).Error
}
