package models

import "time"

// User mirrors an identity-provider account. The provider's stable id is the
// primary key; rows are only written by the webhook receiver.
type User struct {
	ID            string `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	Name          *string
	Image         *string
	EmailVerified *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Session mirrors an identity-provider session.
type Session struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	Expires   time.Time
	CreatedAt time.Time
}
