package models

import "time"

type PasswordReset struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email     string    `gorm:"size:100;index;not null" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	Attempts  int       `gorm:"default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
