package service

import (
	"strings"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"
	"github.com/ratna-shop/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponService evaluates discount codes against cart totals.
type CouponService struct {
	couponRepo repository.CouponRepository
}

// NewCouponService creates the coupon service.
func NewCouponService(couponRepo repository.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// ApplyCoupon resolves a code and computes the discount for the cart
// total. The returned coupon is non-nil whenever a rule matched, even
// on validation failure, so callers can surface its constraints.
func (s *CouponService) ApplyCoupon(code string, cartTotal models.Money, includeHidden bool) (models.Money, *models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return models.Money{}, nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return models.Money{}, nil, err
	}
	if coupon == nil {
		return models.Money{}, nil, ErrCouponNotFound
	}
	if coupon.Visibility == constants.CouponVisibilityHidden && !includeHidden {
		return models.Money{}, nil, ErrCouponNotFound
	}

	discount, err := EvaluateCoupon(coupon, cartTotal, time.Now())
	if err != nil {
		return models.Money{}, coupon, err
	}
	return discount, coupon, nil
}

// EvaluateCoupon computes the discount one rule grants for a cart
// total at a given instant. It performs no I/O and records nothing.
//
// Percentage discounts are rounded to two decimals and clamped to the
// rule's max discount when one is set. Fixed discounts apply verbatim
// and are deliberately not clamped to the cart total.
func EvaluateCoupon(coupon *models.Coupon, cartTotal models.Money, now time.Time) (models.Money, error) {
	if coupon == nil {
		return models.Money{}, ErrCouponNotFound
	}
	// The minimum-order gate is checked before activity and window so a
	// below-minimum cart always fails the same way.
	if coupon.MinOrderAmount.Decimal.GreaterThan(decimal.Zero) &&
		cartTotal.Decimal.LessThan(coupon.MinOrderAmount.Decimal) {
		return models.Money{}, ErrCouponMinAmount
	}
	if !coupon.IsActive {
		return models.Money{}, ErrCouponInactive
	}
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return models.Money{}, ErrCouponNotStarted
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return models.Money{}, ErrCouponExpired
	}

	switch strings.ToLower(strings.TrimSpace(coupon.Type)) {
	case constants.CouponTypeFixed:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponInvalid
		}
		return models.NewMoneyFromDecimal(coupon.Value.Decimal), nil
	case constants.CouponTypePercent:
		if coupon.Value.Decimal.LessThanOrEqual(decimal.Zero) {
			return models.Money{}, ErrCouponInvalid
		}
		percent := coupon.Value.Decimal.Div(decimal.NewFromInt(100))
		discount := cartTotal.Decimal.Mul(percent).Round(2)
		if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) &&
			discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
		return models.NewMoneyFromDecimal(discount), nil
	default:
		return models.Money{}, ErrCouponInvalid
	}
}
