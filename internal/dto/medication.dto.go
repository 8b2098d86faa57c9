package dto

import (
	"github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	"github.com/BruksfildServices01/medcare-api/internal/models"
)

type MedicationDTO struct {
	models.Medication
	DoseStatus medication.DoseStatus `json:"dose_status"`
}
