package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Transition applies a requested status, honouring the one-way rule.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	switch to {
	case Status(ap.Status):
		return nil
	case StatusCancelled:
		return Cancel(ap, now)
	case StatusCompleted:
		return Complete(ap, now)
	default:
		return httperr.ErrBusiness("invalid_state")
	}
}

// StartsAt returns the civil instant the appointment begins.
func StartsAt(ap *models.Appointment) (time.Time, error) {
	return timezone.CivilDateTime(ap.Date, ap.Time)
}

// ValidateSchedule checks the date/time pair and trims free text fields.
func ValidateSchedule(ap *models.Appointment) error {
	ap.PhysicianName = strings.TrimSpace(ap.PhysicianName)
	ap.Specialty = strings.TrimSpace(ap.Specialty)
	ap.AppointmentType = strings.TrimSpace(ap.AppointmentType)
	ap.Location = strings.TrimSpace(ap.Location)

	if _, err := StartsAt(ap); err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}
	return nil
}
