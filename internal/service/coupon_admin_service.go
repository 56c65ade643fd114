package service

import (
	"strings"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService handles back-office coupon management.
type CouponAdminService struct {
	repo repository.CouponRepository
}

// NewCouponAdminService creates the coupon admin service.
func NewCouponAdminService(repo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{repo: repo}
}

// CouponInput is the create/update payload for a coupon.
type CouponInput struct {
	Code           string
	Type           string
	Value          decimal.Decimal
	MinOrderAmount decimal.Decimal
	MaxDiscount    decimal.Decimal
	StartsAt       *time.Time
	EndsAt         *time.Time
	Visibility     string
	IsActive       *bool
}

// List returns a filtered coupon page.
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.repo.List(filter)
}

// GetByID returns a coupon for the back office.
func (s *CouponAdminService) GetByID(id uint) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// Create inserts a coupon after validation and a code uniqueness check.
func (s *CouponAdminService) Create(input CouponInput) (*models.Coupon, error) {
	code := strings.TrimSpace(input.Code)
	couponType, visibility, err := validateCouponInput(code, input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCouponCodeExists
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	coupon := models.Coupon{
		Code:           code,
		Type:           couponType,
		Value:          models.NewMoneyFromDecimal(input.Value.Round(2)),
		MinOrderAmount: models.NewMoneyFromDecimal(input.MinOrderAmount.Round(2)),
		MaxDiscount:    models.NewMoneyFromDecimal(input.MaxDiscount.Round(2)),
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		Visibility:     visibility,
		IsActive:       isActive,
	}
	if err := s.repo.Create(&coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

// Update rewrites a coupon after validation and a code uniqueness check.
func (s *CouponAdminService) Update(id uint, input CouponInput) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}

	code := strings.TrimSpace(input.Code)
	couponType, visibility, err := validateCouponInput(code, input)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		return nil, ErrCouponCodeExists
	}

	coupon.Code = code
	coupon.Type = couponType
	coupon.Value = models.NewMoneyFromDecimal(input.Value.Round(2))
	coupon.MinOrderAmount = models.NewMoneyFromDecimal(input.MinOrderAmount.Round(2))
	coupon.MaxDiscount = models.NewMoneyFromDecimal(input.MaxDiscount.Round(2))
	coupon.StartsAt = input.StartsAt
	coupon.EndsAt = input.EndsAt
	coupon.Visibility = visibility
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}

	if err := s.repo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete soft-deletes a coupon.
func (s *CouponAdminService) Delete(id uint) error {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if coupon == nil {
		return ErrCouponNotFound
	}
	return s.repo.Delete(id)
}

func validateCouponInput(code string, input CouponInput) (couponType, visibility string, err error) {
	if code == "" {
		return "", "", ErrCouponInvalid
	}
	couponType = strings.ToLower(strings.TrimSpace(input.Type))
	if couponType != constants.CouponTypeFixed && couponType != constants.CouponTypePercent {
		return "", "", ErrCouponInvalid
	}
	if input.Value.LessThanOrEqual(decimal.Zero) {
		return "", "", ErrCouponInvalid
	}
	if couponType == constants.CouponTypePercent && input.Value.GreaterThan(decimal.NewFromInt(100)) {
		return "", "", ErrCouponInvalid
	}
	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return "", "", ErrCouponInvalid
	}

	visibility = strings.ToLower(strings.TrimSpace(input.Visibility))
	switch visibility {
	case "":
		visibility = constants.CouponVisibilityPublic
	case constants.CouponVisibilityPublic, constants.CouponVisibilityHidden:
	default:
		return "", "", ErrCouponInvalid
	}
	return couponType, visibility, nil
}
