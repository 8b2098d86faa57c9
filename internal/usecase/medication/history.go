package medication

import (
	"context"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// MoveToHistory archives a medication with a reason and removes it from
// the active list.
type MoveToHistory struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewMoveToHistory(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *MoveToHistory {
	return &MoveToHistory{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *MoveToHistory) Execute(
	ctx context.Context,
	userID uint,
	medicationID uint,
	reason string,
) (*models.MedicationHistory, error) {

	r, err := domain.ParseReason(reason)
	if err != nil {
		return nil, err
	}

	med, err := uc.repo.GetMedicationForUser(ctx, medicationID, userID)
	if err != nil {
		return nil, notFound(err)
	}

	h := domain.Snapshot(med, r, uc.clock.Now())
	if err := uc.repo.MoveToHistory(ctx, h); err != nil {
		return nil, notFound(err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "medication_archived",
		Entity:   "medication",
		EntityID: &medicationID,
		Metadata: map[string]any{"reason": string(r)},
	})

	return h, nil
}

type ListHistory struct {
	repo domain.Repository
}

func NewListHistory(repo domain.Repository) *ListHistory {
	return &ListHistory{repo: repo}
}

func (uc *ListHistory) Execute(
	ctx context.Context,
	userID uint,
) ([]models.MedicationHistory, error) {
	return uc.repo.ListHistoryForUser(ctx, userID)
}
