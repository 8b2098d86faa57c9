package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PhysicianName   string `gorm:"size:150;not null" json:"physician_name"`
	Specialty       string `gorm:"size:100;not null" json:"specialty"`
	AppointmentType string `gorm:"size:50;not null" json:"appointment_type"`

	// Civil (UTC-3) wall clock, as entered by the user.
	Date string `gorm:"column:appointment_date;size:10;not null;index" json:"date"`
	Time string `gorm:"column:appointment_time;size:5;not null" json:"time"`

	Location string `gorm:"size:255;not null" json:"location"`
	Notes    string `gorm:"type:text" json:"notes"`

	Status string `gorm:"size:20;default:'scheduled';index" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
