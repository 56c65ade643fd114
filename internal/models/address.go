package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a saved shipping address on a user's account.
type Address struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	UserID         uint           `gorm:"index;not null" json:"user_id"`
	RecipientName  string         `gorm:"not null" json:"recipient_name"`
	RecipientPhone string         `gorm:"not null" json:"recipient_phone"`
	AddressLine1   string         `gorm:"not null" json:"address_line1"`
	AddressLine2   string         `json:"address_line2"`
	City           string         `gorm:"not null" json:"city"`
	State          string         `gorm:"not null" json:"state"`
	Pincode        string         `gorm:"not null" json:"pincode"`
	Country        string         `gorm:"not null;default:'India'" json:"country"`
	IsDefault      bool           `gorm:"index;not null;default:false" json:"is_default"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Address) TableName() string {
	return "addresses"
}
