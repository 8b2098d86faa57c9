package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medcare-api/internal/domain/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/models"
)

type ReminderGormRepository struct {
	db *gorm.DB
}

func NewReminderGormRepository(db *gorm.DB) *ReminderGormRepository {
	return &ReminderGormRepository{db: db}
}

func (r *ReminderGormRepository) ListScheduledAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("status = ?", "scheduled").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *ReminderGormRepository) ListActiveMedications(
	ctx context.Context,
) ([]models.Medication, error) {

	var meds []models.Medication
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("active = true").
		Find(&meds).Error; err != nil {
		return nil, err
	}
	return meds, nil
}

func (r *ReminderGormRepository) ListIntakes(
	ctx context.Context,
	medicationID uint,
	from time.Time,
	to time.Time,
) ([]models.MedicationIntake, error) {

	var intakes []models.MedicationIntake
	if err := r.db.WithContext(ctx).
		Where(
			"medication_id = ? AND taken_at >= ? AND taken_at < ?",
			medicationID, from, to,
		).
		Order("taken_at DESC").
		Find(&intakes).Error; err != nil {
		return nil, err
	}
	return intakes, nil
}

// Compile-time check
var _ domain.Repository = (*ReminderGormRepository)(nil)
