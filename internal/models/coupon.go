package models

import (
	"time"

	"gorm.io/gorm"
)

// Coupon is a discount rule applied to a cart total.
// Code matching is case-insensitive; the stored code keeps its original case.
type Coupon struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	Code           string         `gorm:"uniqueIndex;not null" json:"code"`
	Type           string         `gorm:"not null" json:"type"` // fixed / percentage
	Value          Money          `gorm:"type:decimal(20,2);not null" json:"value"`
	MinOrderAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"min_order_amount"`
	MaxDiscount    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"max_discount"` // percentage cap, 0 = uncapped
	StartsAt       *time.Time     `gorm:"index" json:"starts_at"`
	EndsAt         *time.Time     `gorm:"index" json:"ends_at"`
	Visibility     string         `gorm:"not null;default:'public';index" json:"visibility"` // public / hidden
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Coupon) TableName() string {
	return "coupons"
}
