package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a jewellery catalog item.
// Pricing is split into metal value, stone charge and making charge so the
// storefront can show a price breakup; PriceAmount is the listed sale price.
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	CategoryID       uint           `gorm:"not null;index" json:"category_id"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	SKUCode          string         `gorm:"uniqueIndex;not null" json:"sku_code"`
	Title            string         `gorm:"not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	SeoMetaJSON      JSON           `gorm:"type:json" json:"seo_meta"`
	PriceAmount      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`
	MakingCharge     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"making_charge"`
	MetalType        string         `gorm:"type:varchar(20);index" json:"metal_type"`
	Purity           string         `gorm:"type:varchar(20)" json:"purity"` // e.g. 22K, 925
	GrossWeight      Grams          `gorm:"type:decimal(12,3);not null;default:0" json:"gross_weight"`
	NetWeight        Grams          `gorm:"type:decimal(12,3);not null;default:0" json:"net_weight"`
	StoneType        string         `gorm:"type:varchar(40)" json:"stone_type"`
	StoneWeight      Grams          `gorm:"type:decimal(12,3);not null;default:0" json:"stone_weight"`
	StoneCharge      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"stone_charge"`
	Images           StringArray    `gorm:"type:json" json:"images"`
	Tags             StringArray    `gorm:"type:json" json:"tags"`
	StockQuantity    int            `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder        int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}
