package medication

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/models"
)

type Repository interface {
	CreateMedication(ctx context.Context, med *models.Medication) error
	GetMedicationForUser(ctx context.Context, medicationID, userID uint) (*models.Medication, error)
	UpdateMedication(ctx context.Context, med *models.Medication) error
	DeleteMedication(ctx context.Context, medicationID, userID uint) error
	ListActiveMedicationsForUser(ctx context.Context, userID uint) ([]models.Medication, error)

	CreateIntake(ctx context.Context, in *models.MedicationIntake) error
	ListIntakes(ctx context.Context, medicationID uint, from, to time.Time) ([]models.MedicationIntake, error)

	// MoveToHistory inserts h and deletes the medication atomically.
	MoveToHistory(ctx context.Context, h *models.MedicationHistory) error
	ListHistoryForUser(ctx context.Context, userID uint) ([]models.MedicationHistory, error)
}
