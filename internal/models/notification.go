package models

import "time"

// Notification is an in-app message shown to a user. ReadAt nil means unread.
type Notification struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	Kind      string     `gorm:"index;not null" json:"kind"`
	Title     string     `gorm:"not null" json:"title"`
	Body      string     `gorm:"type:text" json:"body"`
	DataJSON  JSON       `gorm:"type:text" json:"data"`
	ReadAt    *time.Time `gorm:"index" json:"read_at"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Notification) TableName() string {
	return "notifications"
}
