package models

import "time"

// UserLoginLog records one login attempt, successful or not.
type UserLoginLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     *uint     `gorm:"index" json:"user_id"` // nil when the account could not be resolved
	Email      string    `gorm:"index" json:"email"`
	Provider   string    `gorm:"index;not null;default:'password'" json:"provider"`
	Status     string    `gorm:"index;not null" json:"status"` // success / failed
	FailReason string    `json:"fail_reason"`
	IP         string    `json:"ip"`
	UserAgent  string    `json:"user_agent"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (UserLoginLog) TableName() string {
	return "user_login_logs"
}
