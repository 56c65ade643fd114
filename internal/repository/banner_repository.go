package repository

import (
	"errors"

	"github.com/ratna-shop/internal/models"

	"gorm.io/gorm"
)

// BannerRepository is the banner data access interface.
type BannerRepository interface {
	GetByID(id uint) (*models.Banner, error)
	Create(banner *models.Banner) error
	Update(banner *models.Banner) error
	Delete(id uint) error
	List(filter BannerListFilter) ([]models.Banner, int64, error)
	ListActive(position string) ([]models.Banner, error)
	WithTx(tx *gorm.DB) *GormBannerRepository
}

// BannerListFilter filters the banner list.
type BannerListFilter struct {
	Position string
	IsActive *bool
	Page     int
	PageSize int
}

// GormBannerRepository is the GORM implementation.
type GormBannerRepository struct {
	db *gorm.DB
}

// NewBannerRepository creates a banner repository.
func NewBannerRepository(db *gorm.DB) *GormBannerRepository {
	return &GormBannerRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormBannerRepository) WithTx(tx *gorm.DB) *GormBannerRepository {
	if tx == nil {
		return r
	}
	return &GormBannerRepository{db: tx}
}

// GetByID fetches a banner by ID.
func (r *GormBannerRepository) GetByID(id uint) (*models.Banner, error) {
	var banner models.Banner
	if err := r.db.First(&banner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &banner, nil
}

// Create inserts a banner.
func (r *GormBannerRepository) Create(banner *models.Banner) error {
	return r.db.Create(banner).Error
}

// Update saves a banner.
func (r *GormBannerRepository) Update(banner *models.Banner) error {
	return r.db.Save(banner).Error
}

// Delete removes a banner.
func (r *GormBannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}

// List returns a filtered banner page.
func (r *GormBannerRepository) List(filter BannerListFilter) ([]models.Banner, int64, error) {
	var banners []models.Banner
	query := r.db.Model(&models.Banner{})

	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("sort_order asc, id desc").Find(&banners).Error; err != nil {
		return nil, 0, err
	}
	return banners, total, nil
}

// ListActive returns active banners for one storefront position.
func (r *GormBannerRepository) ListActive(position string) ([]models.Banner, error) {
	var banners []models.Banner
	query := r.db.Where("is_active = ?", true)
	if position != "" {
		query = query.Where("position = ?", position)
	}
	if err := query.Order("sort_order asc, id desc").Find(&banners).Error; err != nil {
		return nil, err
	}
	return banners, nil
}
