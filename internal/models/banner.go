package models

import "time"

// Banner is a storefront hero or promo slot managed from the back office.
type Banner struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Title     string    `gorm:"not null" json:"title"`
	ImageURL  string    `gorm:"not null" json:"image_url"`
	LinkURL   string    `json:"link_url"`
	Position  string    `gorm:"index;not null;default:'home_hero'" json:"position"`
	SortOrder int       `gorm:"index;not null;default:0" json:"sort_order"`
	IsActive  bool      `gorm:"index;not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (Banner) TableName() string {
	return "banners"
}
