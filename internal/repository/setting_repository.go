package repository

import (
	"errors"

	"github.com/ratna-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository is the site setting data access interface.
type SettingRepository interface {
	GetByKey(key string) (*models.Setting, error)
	ListByKeys(keys []string) ([]models.Setting, error)
	ListAll() ([]models.Setting, error)
	Upsert(setting *models.Setting) error
	WithTx(tx *gorm.DB) *GormSettingRepository
}

// GormSettingRepository is the GORM implementation.
type GormSettingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a setting repository.
func NewSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// WithTx binds a transaction.
func (r *GormSettingRepository) WithTx(tx *gorm.DB) *GormSettingRepository {
	if tx == nil {
		return r
	}
	return &GormSettingRepository{db: tx}
}

// GetByKey fetches a setting by key.
func (r *GormSettingRepository) GetByKey(key string) (*models.Setting, error) {
	var setting models.Setting
	if err := r.db.Where("key = ?", key).First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// ListByKeys fetches a batch of settings.
func (r *GormSettingRepository) ListByKeys(keys []string) ([]models.Setting, error) {
	if len(keys) == 0 {
		return []models.Setting{}, nil
	}
	var settings []models.Setting
	if err := r.db.Where("key IN ?", keys).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// ListAll returns every setting row.
func (r *GormSettingRepository) ListAll() ([]models.Setting, error) {
	var settings []models.Setting
	if err := r.db.Order("key asc").Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

// Upsert inserts or updates a setting keyed by its name.
func (r *GormSettingRepository) Upsert(setting *models.Setting) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value_json", "updated_at"}),
	}).Create(setting).Error
}
