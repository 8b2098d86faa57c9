package medication

import (
	"context"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	"github.com/BruksfildServices01/medcare-api/internal/dto"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// todayIntakes loads the intakes on the civil day of the clock.
func todayIntakes(
	ctx context.Context,
	repo domain.Repository,
	medicationID uint,
	clock timezone.Clock,
) ([]models.MedicationIntake, error) {
	start, end := timezone.DayBounds(clock.Now())
	return repo.ListIntakes(ctx, medicationID, start, end)
}

// ======================================================
// LIST (with dose status)
// ======================================================

type ListMedications struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListMedications(
	repo domain.Repository,
	clock timezone.Clock,
) *ListMedications {
	return &ListMedications{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListMedications) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.MedicationDTO, error) {

	meds, err := uc.repo.ListActiveMedicationsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	out := make([]dto.MedicationDTO, 0, len(meds))
	for i := range meds {
		intakes, err := todayIntakes(ctx, uc.repo, meds[i].ID, uc.clock)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.MedicationDTO{
			Medication: meds[i],
			DoseStatus: domain.EvaluateDose(&meds[i], intakes, now),
		})
	}
	return out, nil
}

// ======================================================
// DOSE STATUS
// ======================================================

type GetDoseStatus struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewGetDoseStatus(
	repo domain.Repository,
	clock timezone.Clock,
) *GetDoseStatus {
	return &GetDoseStatus{
		repo:  repo,
		clock: clock,
	}
}

func (uc *GetDoseStatus) Execute(
	ctx context.Context,
	userID uint,
	medicationID uint,
) (domain.DoseStatus, error) {

	med, err := uc.repo.GetMedicationForUser(ctx, medicationID, userID)
	if err != nil {
		return domain.DoseStatus{}, notFound(err)
	}

	intakes, err := todayIntakes(ctx, uc.repo, med.ID, uc.clock)
	if err != nil {
		return domain.DoseStatus{}, err
	}

	return domain.EvaluateDose(med, intakes, uc.clock.Now()), nil
}

// ======================================================
// RECORD INTAKE
// ======================================================

type RecordIntake struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewRecordIntake(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *RecordIntake {
	return &RecordIntake{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

// Execute logs a dose taken now. The spacing rule is enforced here too,
// not only in the UI.
func (uc *RecordIntake) Execute(
	ctx context.Context,
	userID uint,
	medicationID uint,
) (*models.MedicationIntake, domain.DoseStatus, error) {

	med, err := uc.repo.GetMedicationForUser(ctx, medicationID, userID)
	if err != nil {
		return nil, domain.DoseStatus{}, notFound(err)
	}

	intakes, err := todayIntakes(ctx, uc.repo, med.ID, uc.clock)
	if err != nil {
		return nil, domain.DoseStatus{}, err
	}

	now := uc.clock.Now()
	st := domain.EvaluateDose(med, intakes, now)
	if st.Expired {
		return nil, st, httperr.ErrBusiness("medication_expired")
	}
	if !st.CanTakeNow {
		return nil, st, httperr.ErrBusiness("dose_too_soon")
	}

	in := &models.MedicationIntake{
		MedicationID: med.ID,
		UserID:       userID,
		TakenAt:      now,
	}
	if err := uc.repo.CreateIntake(ctx, in); err != nil {
		return nil, st, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "medication_taken",
		Entity:   "medication",
		EntityID: &med.ID,
	})

	return in, domain.EvaluateDose(med, append(intakes, *in), now), nil
}

// ======================================================
// LIST INTAKES (today)
// ======================================================

type ListIntakes struct {
	repo  domain.Repository
	clock timezone.Clock
}

func NewListIntakes(
	repo domain.Repository,
	clock timezone.Clock,
) *ListIntakes {
	return &ListIntakes{
		repo:  repo,
		clock: clock,
	}
}

func (uc *ListIntakes) Execute(
	ctx context.Context,
	userID uint,
	medicationID uint,
) ([]models.MedicationIntake, error) {

	if _, err := uc.repo.GetMedicationForUser(ctx, medicationID, userID); err != nil {
		return nil, notFound(err)
	}

	return todayIntakes(ctx, uc.repo, medicationID, uc.clock)
}
