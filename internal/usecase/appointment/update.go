package appointment

import (
	"context"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/appointment"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
)

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute rewrites the details of a scheduled appointment. Status
// changes go through Cancel/Complete.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	userID uint,
	appointmentID uint,
	in AppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForUser(ctx, appointmentID, userID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if domain.IsTerminal(domain.Status(ap.Status)) {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	in.apply(ap)
	if err := domain.ValidateSchedule(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
