package reminder

import (
	"context"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/models"
)

// Repository is the read-only persistence collaborator of the reminder
// checks. Owner rows are preloaded so the sender has a recipient.
type Repository interface {
	ListScheduledAppointments(ctx context.Context) ([]models.Appointment, error)
	ListActiveMedications(ctx context.Context) ([]models.Medication, error)
	ListIntakes(ctx context.Context, medicationID uint, from, to time.Time) ([]models.MedicationIntake, error)
}

// MarkerStore gives at-most-once delivery per marker key.
type MarkerStore interface {
	// Claim returns true only for the first caller of key within ttl.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
