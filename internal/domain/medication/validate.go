package medication

import (
	"strings"

	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// Validate normalizes user input in place.
func Validate(med *models.Medication) error {
	med.Name = strings.TrimSpace(med.Name)
	med.ActiveIngredient = strings.TrimSpace(med.ActiveIngredient)
	med.Form = strings.TrimSpace(med.Form)
	med.Dose = strings.TrimSpace(med.Dose)

	if med.Name == "" || med.Form == "" || med.Dose == "" {
		return httperr.ErrBusiness("missing_fields")
	}

	h, m, err := timezone.ParseClock(med.TimeOfDay)
	if err != nil {
		return httperr.ErrBusiness("invalid_time_of_day")
	}
	med.TimeOfDay = timezone.FormatClock(h, m)

	if _, err := timezone.ParseDate(med.ExpiryDate); err != nil {
		return httperr.ErrBusiness("invalid_expiry_date")
	}

	if med.DailyFrequency == 0 {
		med.DailyFrequency = 1
	}
	if med.DailyFrequency < 1 || med.DailyFrequency > 24 {
		return httperr.ErrBusiness("invalid_frequency")
	}

	if med.DurationDays != nil && *med.DurationDays <= 0 {
		med.DurationDays = nil
	}

	return nil
}
