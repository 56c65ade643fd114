package models

import "time"

// UserIdentity links a local user to an external identity provider subject.
// At most one row per (provider, subject) pair; creation is idempotent.
type UserIdentity struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Provider  string    `gorm:"uniqueIndex:idx_identity_provider_subject;not null" json:"provider"`
	SubjectID string    `gorm:"uniqueIndex:idx_identity_provider_subject;not null" json:"subject_id"`
	Email     string    `gorm:"index;not null" json:"email"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (UserIdentity) TableName() string {
	return "user_identities"
}
