package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	"github.com/BruksfildServices01/medcare-api/internal/models"
)

type MedicationGormRepository struct {
	db *gorm.DB
}

func NewMedicationGormRepository(db *gorm.DB) *MedicationGormRepository {
	return &MedicationGormRepository{db: db}
}

// --------------------------------------------------
// Medication
// --------------------------------------------------

func (r *MedicationGormRepository) CreateMedication(
	ctx context.Context,
	med *models.Medication,
) error {
	return r.db.WithContext(ctx).Create(med).Error
}

func (r *MedicationGormRepository) GetMedicationForUser(
	ctx context.Context,
	medicationID uint,
	userID uint,
) (*models.Medication, error) {

	var med models.Medication
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", medicationID, userID).
		First(&med).Error; err != nil {
		return nil, err
	}
	return &med, nil
}

func (r *MedicationGormRepository) UpdateMedication(
	ctx context.Context,
	med *models.Medication,
) error {
	return r.db.WithContext(ctx).Omit("User").Save(med).Error
}

func (r *MedicationGormRepository) DeleteMedication(
	ctx context.Context,
	medicationID uint,
	userID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", medicationID, userID).
		Delete(&models.Medication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MedicationGormRepository) ListActiveMedicationsForUser(
	ctx context.Context,
	userID uint,
) ([]models.Medication, error) {

	var meds []models.Medication
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = true", userID).
		Order("created_at DESC").
		Find(&meds).Error; err != nil {
		return nil, err
	}
	return meds, nil
}

// --------------------------------------------------
// Intake
// --------------------------------------------------

func (r *MedicationGormRepository) CreateIntake(
	ctx context.Context,
	in *models.MedicationIntake,
) error {
	return r.db.WithContext(ctx).Create(in).Error
}

func (r *MedicationGormRepository) ListIntakes(
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

// --------------------------------------------------
// History
// --------------------------------------------------

func (r *MedicationGormRepository) MoveToHistory(
	ctx context.Context,
	h *models.MedicationHistory,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(h).Error; err != nil {
			return err
		}

		res := tx.
			Where("id = ? AND user_id = ?", h.MedicationID, h.UserID).
			Delete(&models.Medication{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *MedicationGormRepository) ListHistoryForUser(
	ctx context.Context,
	userID uint,
) ([]models.MedicationHistory, error) {

	var history []models.MedicationHistory
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("moved_at DESC").
		Find(&history).Error; err != nil {
		return nil, err
	}
	return history, nil
}

// Compile-time check
var _ domain.Repository = (*MedicationGormRepository)(nil)
