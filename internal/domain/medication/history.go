package medication

import (
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
)

type HistoryReason string

const (
	ReasonCompleted HistoryReason = "completed"
	ReasonExpired   HistoryReason = "expired"
	ReasonCancelled HistoryReason = "cancelled"
)

func ParseReason(s string) (HistoryReason, error) {
	switch HistoryReason(s) {
	case ReasonCompleted, ReasonExpired, ReasonCancelled:
		return HistoryReason(s), nil
	}
	return "", httperr.ErrBusiness("invalid_reason")
}

// Snapshot copies an active medication into a history row.
func Snapshot(med *models.Medication, reason HistoryReason, now time.Time) *models.MedicationHistory {
	return &models.MedicationHistory{
		MedicationID:     med.ID,
		UserID:           med.UserID,
		Name:             med.Name,
		ActiveIngredient: med.ActiveIngredient,
		Form:             med.Form,
		Dose:             med.Dose,
		TimeOfDay:        med.TimeOfDay,
		ExpiryDate:       med.ExpiryDate,
		DurationDays:     med.DurationDays,
		DailyFrequency:   med.DailyFrequency,
		Reason:           string(reason),
		MovedAt:          now,
		CreatedAt:        med.CreatedAt,
	}
}
