package models

import "time"

// OrderItem snapshots one product line at checkout. Title, SKU and
// unit price are copied so catalog edits never change placed orders.
type OrderItem struct {
	ID        uint  `gorm:"primarykey" json:"id"`
	OrderID   uint  `gorm:"index;not null" json:"order_id"`
	ProductID uint  `gorm:"index;not null" json:"product_id"`

	Title     string `gorm:"not null" json:"title"`
	SKUCode   string `gorm:"not null" json:"sku_code"`
	UnitPrice Money  `gorm:"type:decimal(20,2);not null" json:"unit_price"`
	Quantity  int    `gorm:"not null" json:"quantity"`
	Total     Money  `gorm:"type:decimal(20,2);not null" json:"total"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
