package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is a customer purchase. Address fields are snapshotted at
// checkout so later address edits never rewrite order history.
type Order struct {
	ID      uint   `gorm:"primarykey" json:"id"`
	OrderNo string `gorm:"uniqueIndex;not null" json:"order_no"`
	UserID  uint   `gorm:"index;not null" json:"user_id"`

	Status   string `gorm:"index;not null;default:'pending_payment'" json:"status"`
	Currency string `gorm:"not null;default:'INR'" json:"currency"`

	PaymentMode string `gorm:"not null;default:'prepaid'" json:"payment_mode"` // prepaid / cod

	// Shipping address snapshot.
	RecipientName  string `gorm:"not null" json:"recipient_name"`
	RecipientPhone string `gorm:"not null" json:"recipient_phone"`
	AddressLine1   string `gorm:"not null" json:"address_line1"`
	AddressLine2   string `json:"address_line2"`
	City           string `gorm:"not null" json:"city"`
	State          string `gorm:"not null" json:"state"`
	Pincode        string `gorm:"not null" json:"pincode"`
	Country        string `gorm:"not null;default:'India'" json:"country"`

	Subtotal       Money `gorm:"type:decimal(20,2);not null" json:"subtotal"`
	DiscountAmount Money `gorm:"type:decimal(20,2);not null;default:0" json:"discount_amount"`
	ShippingAmount Money `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_amount"`
	TotalAmount    Money `gorm:"type:decimal(20,2);not null" json:"total_amount"`

	CouponID   *uint  `gorm:"index" json:"coupon_id"`
	CouponCode string `json:"coupon_code"` // snapshot of the code as entered

	// Logistics provider handles, set once a shipment is created.
	ShipmentOrderID string `gorm:"index" json:"shipment_order_id"`
	ShipmentID      string `gorm:"index" json:"shipment_id"`
	AWBCode         string `json:"awb_code"`
	CourierName     string `json:"courier_name"`

	ExpiresAt  *time.Time `gorm:"index" json:"expires_at"`
	PaidAt     *time.Time `json:"paid_at"`
	ShippedAt  *time.Time `json:"shipped_at"`
	CanceledAt *time.Time `json:"canceled_at"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}
