package medication

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type MedicationInput struct {
	Name             string
	ActiveIngredient string
	Form             string
	Dose             string
	TimeOfDay        string
	ExpiryDate       string
	DurationDays     *int
	DailyFrequency   int
}

func (in MedicationInput) apply(med *models.Medication) {
	med.Name = in.Name
	med.ActiveIngredient = in.ActiveIngredient
	med.Form = in.Form
	med.Dose = in.Dose
	med.TimeOfDay = in.TimeOfDay
	med.ExpiryDate = in.ExpiryDate
	med.DurationDays = in.DurationDays
	med.DailyFrequency = in.DailyFrequency
}

// ======================================================
// CREATE
// ======================================================

type CreateMedication struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateMedication(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateMedication {
	return &CreateMedication{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateMedication) Execute(
	ctx context.Context,
	userID uint,
	in MedicationInput,
) (*models.Medication, error) {

	med := &models.Medication{
		UserID: userID,
		Active: true,
	}
	in.apply(med)

	if err := domain.Validate(med); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateMedication(ctx, med); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "medication_created",
		Entity:   "medication",
		EntityID: &med.ID,
	})

	return med, nil
}

// ======================================================
// UPDATE
// ======================================================

type UpdateMedication struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateMedication(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateMedication {
	return &UpdateMedication{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateMedication) Execute(
	ctx context.Context,
	userID uint,
	medicationID uint,
	in MedicationInput,
) (*models.Medication, error) {

	med, err := uc.repo.GetMedicationForUser(ctx, medicationID, userID)
	if err != nil {
		return nil, notFound(err)
	}

	in.apply(med)
	if err := domain.Validate(med); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateMedication(ctx, med); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "medication_updated",
		Entity:   "medication",
		EntityID: &med.ID,
	})

	return med, nil
}

// ======================================================
// DELETE
// ======================================================

type DeleteMedication struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteMedication(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteMedication {
	return &DeleteMedication{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteMedication) Execute(
	ctx context.Context,
	userID uint,
	medicationID uint,
) error {

	if err := uc.repo.DeleteMedication(ctx, medicationID, userID); err != nil {
		return notFound(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "medication_deleted",
		Entity:   "medication",
		EntityID: &medicationID,
	})

	return nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrBusiness("medication_not_found")
	}
	return err
}
