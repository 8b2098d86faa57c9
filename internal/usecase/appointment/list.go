package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/medcare-api/internal/domain/appointment"
	"github.com/BruksfildServices01/medcare-api/internal/dto"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// Execute lists every appointment of the user, newest first.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	userID uint,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.repo.ListAppointmentsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}

// ExecuteMonth lists one civil month in chronological order.
func (uc *ListAppointments) ExecuteMonth(
	ctx context.Context,
	userID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 {
		return nil, httperr.ErrBusiness("invalid_month")
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, timezone.Location())
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.repo.ListAppointmentsForPeriod(
		ctx,
		userID,
		start.Format(timezone.DateLayout),
		end.Format(timezone.DateLayout),
	)
	if err != nil {
		return nil, err
	}

	return toListDTO(appointments), nil
}

func toListDTO(appointments []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for i := range appointments {
		ap := &appointments[i]

		item := dto.AppointmentListDTO{
			ID:              ap.ID,
			Date:            ap.Date,
			Time:            ap.Time,
			PhysicianName:   ap.PhysicianName,
			Specialty:       ap.Specialty,
			AppointmentType: ap.AppointmentType,
			Location:        ap.Location,
			Notes:           ap.Notes,
			Status:          ap.Status,
		}
		if start, err := domain.StartsAt(ap); err == nil {
			item.StartsAt = &start
		}

		out = append(out, item)
	}
	return out
}
