package models

import "time"

// Payment records one payment attempt against an order. An order can
// accumulate several attempts; at most one ends up in status paid.
type Payment struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	PaymentNo string `gorm:"uniqueIndex;not null" json:"payment_no"`
	OrderID   uint   `gorm:"index;not null" json:"order_id"`

	Provider string `gorm:"not null" json:"provider"` // razorpay / cod
	Status   string `gorm:"index;not null;default:'initiated'" json:"status"`
	Amount   Money  `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency string `gorm:"not null;default:'INR'" json:"currency"`

	ProviderOrderID   string `gorm:"index" json:"provider_order_id"`
	ProviderPaymentID string `gorm:"index" json:"provider_payment_id"`
	ProviderSignature string `json:"-"`
	RawJSON           JSON   `gorm:"type:text" json:"-"` // last raw provider payload

	PaidAt    *time.Time `json:"paid_at"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName sets the table name.
func (Payment) TableName() string {
	return "payments"
}
