package models

import "time"

// Setting is a key/value site configuration row. Values are JSON so a
// single table covers strings, numbers and structured blobs alike.
type Setting struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"uniqueIndex;not null" json:"key"`
	ValueJSON JSON      `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name.
func (Setting) TableName() string {
	return "settings"
}
