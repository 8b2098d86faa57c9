package appointment

import (
	"context"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/appointment"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// ChangeStatus moves a scheduled appointment to cancelled or completed.
type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	clock timezone.Clock
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
		clock: clock,
	}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
	to domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := domain.Transition(ap, to, uc.clock.Now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_" + string(to),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
