package model

import "time"

// PasswordReset stores one reset request. Only the SHA-256 hash of the raw
// token is persisted; the raw token travels exclusively in the reset email.
type PasswordReset struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	TokenHash string `gorm:"uniqueIndex;size:128;not null"`
	ExpiresAt time.Time
	Used      bool `gorm:"not null;default:false"`
	CreatedAt time.Time

	Usuario *Usuario `gorm:"foreignKey:UserID"`
}

func (PasswordReset) TableName() string { return "password_resets" }
