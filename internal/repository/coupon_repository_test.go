package repository

import (
	"testing"

	"github.com/ratna-shop/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponRepositoryTest(t *testing.T) *GormCouponRepository {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("migrate coupon failed: %v", err)
	}
	return NewCouponRepository(db)
}

func TestCouponGetByCodeIsCaseInsensitive(t *testing.T) {
	repo := setupCouponRepositoryTest(t)

	coupon := &models.Coupon{
		Code:     "SAVE20",
		Type:     "percentage",
		Value:    models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
		IsActive: true,
	}
	if err := repo.Create(coupon); err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	for _, code := range []string{"SAVE20", "save20", "Save20"} {
		got, err := repo.GetByCode(code)
		if err != nil {
			t.Fatalf("get by code %q failed: %v", code, err)
		}
		if got == nil || got.ID != coupon.ID {
			t.Fatalf("get by code %q want id=%d got %+v", code, coupon.ID, got)
		}
	}

	got, err := repo.GetByCode("MISSING")
	if err != nil {
		t.Fatalf("get missing code failed: %v", err)
	}
	if got != nil {
		t.Fatalf("missing code want nil got %+v", got)
	}
}
