package models

import "time"

type Medication struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name             string `gorm:"size:150;not null" json:"name"`
	ActiveIngredient string `gorm:"size:150" json:"active_ingredient"`
	Form             string `gorm:"size:50;not null" json:"form"`
	Dose             string `gorm:"size:100;not null" json:"dose"`

	// HH:MM of the first daily dose, civil time.
	TimeOfDay      string `gorm:"size:5;not null" json:"time_of_day"`
	ExpiryDate     string `gorm:"size:10;not null" json:"expiry_date"`
	DurationDays   *int   `json:"duration_days"`
	DailyFrequency int    `gorm:"not null;default:1" json:"daily_frequency"`
	Active         bool   `gorm:"default:true;index" json:"active"`

	PhotoKey string `gorm:"size:255" json:"photo_key,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MedicationIntake struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MedicationID uint      `gorm:"index:idx_intake_med_taken;not null" json:"medication_id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	TakenAt      time.Time `gorm:"index:idx_intake_med_taken;not null" json:"taken_at"`
}

type MedicationHistory struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MedicationID uint `gorm:"index" json:"medication_id"`
	UserID       uint `gorm:"index;not null" json:"user_id"`

	Name             string `gorm:"size:150;not null" json:"name"`
	ActiveIngredient string `gorm:"size:150" json:"active_ingredient"`
	Form             string `gorm:"size:50" json:"form"`
	Dose             string `gorm:"size:100" json:"dose"`
	TimeOfDay        string `gorm:"size:5" json:"time_of_day"`
	ExpiryDate       string `gorm:"size:10" json:"expiry_date"`
	DurationDays     *int   `json:"duration_days"`
	DailyFrequency   int    `json:"daily_frequency"`

	Reason  string    `gorm:"size:20;not null" json:"reason"`
	MovedAt time.Time `gorm:"index" json:"moved_at"`

	// Creation time of the original medication row.
	CreatedAt time.Time `json:"created_at"`
}

func (MedicationHistory) TableName() string {
	return "medications_history"
}
