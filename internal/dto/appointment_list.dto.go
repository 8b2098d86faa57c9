package dto

import "time"

type AppointmentListDTO struct {
	ID              uint       `json:"id"`
	Date            string     `json:"date"`
	Time            string     `json:"time"`
	StartsAt        *time.Time `json:"starts_at"`
	PhysicianName   string     `json:"physician_name"`
	Specialty       string     `json:"specialty"`
	AppointmentType string     `json:"appointment_type"`
	Location        string     `json:"location"`
	Notes           string     `json:"notes"`
	Status          string     `json:"status"`
}
