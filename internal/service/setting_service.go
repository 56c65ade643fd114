package service

import (
	"strings"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// publicSettingKeys are the setting groups exposed on the storefront
// config endpoint. Everything else stays admin-only.
var publicSettingKeys = []string{
	constants.SettingKeySite,
	constants.SettingKeyContact,
	constants.SettingKeyShipping,
}

// SettingService handles the key/value site configuration store.
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService creates the setting service.
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey returns a setting value, nil when unset.
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// GetPublicConfig returns the storefront-visible settings keyed by group.
func (s *SettingService) GetPublicConfig() (map[string]models.JSON, error) {
	settings, err := s.repo.ListByKeys(publicSettingKeys)
	if err != nil {
		return nil, err
	}
	config := make(map[string]models.JSON, len(publicSettingKeys))
	for _, key := range publicSettingKeys {
		config[key] = models.JSON{}
	}
	for _, setting := range settings {
		config[setting.Key] = setting.ValueJSON
	}
	return config, nil
}

// ListAll returns every setting row for the back office.
func (s *SettingService) ListAll() ([]models.Setting, error) {
	return s.repo.ListAll()
}

// Update upserts a setting value.
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrSettingKeyInvalid
	}
	setting := &models.Setting{
		Key:       key,
		ValueJSON: models.JSON(value),
	}
	if err := s.repo.Upsert(setting); err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// ShippingCharge resolves the shipping fee for a cart subtotal from
// the shipping setting. Missing or malformed values mean free shipping.
func (s *SettingService) ShippingCharge(subtotal models.Money) (models.Money, error) {
	value, err := s.GetByKey(constants.SettingKeyShipping)
	if err != nil {
		return models.Money{}, err
	}
	flatRate := settingDecimal(value, "flat_rate")
	if flatRate.LessThanOrEqual(decimal.Zero) {
		return models.NewMoneyFromDecimal(decimal.Zero), nil
	}
	freeAbove := settingDecimal(value, "free_above")
	if freeAbove.GreaterThan(decimal.Zero) && subtotal.Decimal.GreaterThanOrEqual(freeAbove) {
		return models.NewMoneyFromDecimal(decimal.Zero), nil
	}
	return models.NewMoneyFromDecimal(flatRate.Round(2)), nil
}

// SiteCurrency resolves the display currency, defaulting to INR.
func (s *SettingService) SiteCurrency() string {
	value, err := s.GetByKey(constants.SettingKeySite)
	if err != nil || value == nil {
		return constants.SiteCurrencyDefault
	}
	if raw, ok := value[constants.SettingFieldSiteCurrency].(string); ok {
		if currency := strings.ToUpper(strings.TrimSpace(raw)); currency != "" {
			return currency
		}
	}
	return constants.SiteCurrencyDefault
}

func settingDecimal(value models.JSON, field string) decimal.Decimal {
	if value == nil {
		return decimal.Zero
	}
	switch raw := value[field].(type) {
	case float64:
		return decimal.NewFromFloat(raw)
	case string:
		parsed, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return decimal.Zero
		}
		return parsed
	default:
		return decimal.Zero
	}
}
