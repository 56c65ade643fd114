package service

import (
	"errors"
	"testing"
	"time"

	"github.com/ratna-shop/internal/constants"
	"github.com/ratna-shop/internal/models"

	"github.com/shopspring/decimal"
)

func money(value string) models.Money {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return models.NewMoneyFromDecimal(d)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestEvaluateCouponPercentageClampedToMax(t *testing.T) {
	coupon := &models.Coupon{
		Code:        "SAVE20",
		Type:        constants.CouponTypePercent,
		Value:       money("20"),
		MaxDiscount: money("500"),
		IsActive:    true,
	}

	// 20% of 3000 is 600, capped at 500.
	discount, err := EvaluateCoupon(coupon, money("3000"), time.Now())
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("discount want 500 got %s", discount.Decimal)
	}

	// 20% of 2000 is 400, below the cap.
	discount, err = EvaluateCoupon(coupon, money("2000"), time.Now())
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(400)) {
		t.Fatalf("discount want 400 got %s", discount.Decimal)
	}
}

func TestEvaluateCouponPercentageRounding(t *testing.T) {
	coupon := &models.Coupon{
		Code:     "SAVE15",
		Type:     constants.CouponTypePercent,
		Value:    money("15"),
		IsActive: true,
	}
	discount, err := EvaluateCoupon(coupon, money("999.99"), time.Now())
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	// 149.9985 rounds to 150.00.
	if !discount.Decimal.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("discount want 150 got %s", discount.Decimal)
	}
}

func TestEvaluateCouponBelowMinimum(t *testing.T) {
	coupon := &models.Coupon{
		Code:           "FLAT100",
		Type:           constants.CouponTypeFixed,
		Value:          money("100"),
		MinOrderAmount: money("200"),
		IsActive:       true,
	}
	_, err := EvaluateCoupon(coupon, money("150"), time.Now())
	if !errors.Is(err, ErrCouponMinAmount) {
		t.Fatalf("want ErrCouponMinAmount got %v", err)
	}

	discount, err := EvaluateCoupon(coupon, money("200"), time.Now())
	if err != nil {
		t.Fatalf("exact minimum should pass: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("discount want 100 got %s", discount.Decimal)
	}
}

func TestEvaluateCouponBelowMinimumWinsOverWindow(t *testing.T) {
	// A below-minimum cart reports the minimum failure even when the
	// rule is also expired, not started, or inactive.
	now := time.Now()
	cases := []struct {
		name   string
		coupon models.Coupon
	}{
		{
			name: "expired",
			coupon: models.Coupon{
				Code:           "FLAT100",
				Type:           constants.CouponTypeFixed,
				Value:          money("100"),
				MinOrderAmount: money("200"),
				EndsAt:         timePtr(now.Add(-time.Hour)),
				IsActive:       true,
			},
		},
		{
			name: "not started",
			coupon: models.Coupon{
				Code:           "FLAT100",
				Type:           constants.CouponTypeFixed,
				Value:          money("100"),
				MinOrderAmount: money("200"),
				StartsAt:       timePtr(now.Add(time.Hour)),
				IsActive:       true,
			},
		},
		{
			name: "inactive",
			coupon: models.Coupon{
				Code:           "FLAT100",
				Type:           constants.CouponTypeFixed,
				Value:          money("100"),
				MinOrderAmount: money("200"),
				IsActive:       false,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := EvaluateCoupon(&tc.coupon, money("150"), now)
			if !errors.Is(err, ErrCouponMinAmount) {
				t.Fatalf("want ErrCouponMinAmount got %v", err)
			}
		})
	}
}

func TestEvaluateCouponFixedNotClampedToTotal(t *testing.T) {
	coupon := &models.Coupon{
		Code:     "FLAT500",
		Type:     constants.CouponTypeFixed,
		Value:    money("500"),
		IsActive: true,
	}
	discount, err := EvaluateCoupon(coupon, money("300"), time.Now())
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !discount.Decimal.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("fixed discount applies verbatim, want 500 got %s", discount.Decimal)
	}
}

func TestEvaluateCouponValidityWindow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	coupon := &models.Coupon{
		Code:     "WINDOW",
		Type:     constants.CouponTypeFixed,
		Value:    money("50"),
		StartsAt: timePtr(now.Add(24 * time.Hour)),
		IsActive: true,
	}
	if _, err := EvaluateCoupon(coupon, money("1000"), now); !errors.Is(err, ErrCouponNotStarted) {
		t.Fatalf("want ErrCouponNotStarted got %v", err)
	}

	coupon.StartsAt = timePtr(now.Add(-48 * time.Hour))
	coupon.EndsAt = timePtr(now.Add(-24 * time.Hour))
	if _, err := EvaluateCoupon(coupon, money("1000"), now); !errors.Is(err, ErrCouponExpired) {
		t.Fatalf("want ErrCouponExpired got %v", err)
	}

	coupon.EndsAt = timePtr(now.Add(24 * time.Hour))
	if _, err := EvaluateCoupon(coupon, money("1000"), now); err != nil {
		t.Fatalf("inside window should pass: %v", err)
	}
}

func TestEvaluateCouponInactive(t *testing.T) {
	coupon := &models.Coupon{
		Code:  "OLD",
		Type:  constants.CouponTypeFixed,
		Value: money("50"),
	}
	if _, err := EvaluateCoupon(coupon, money("1000"), time.Now()); !errors.Is(err, ErrCouponInactive) {
		t.Fatalf("want ErrCouponInactive got %v", err)
	}
}
