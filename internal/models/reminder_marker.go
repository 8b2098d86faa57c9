package models

import "time"

// ReminderMarker records that a reminder threshold was already claimed.
type ReminderMarker struct {
	ID        uint      `gorm:"primaryKey"`
	Key       string    `gorm:"column:marker_key;size:120;uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}
