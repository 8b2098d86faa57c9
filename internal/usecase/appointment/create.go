package appointment

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/appointment"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type AppointmentInput struct {
	PhysicianName   string
	Specialty       string
	AppointmentType string
	Date            string
	Time            string
	Location        string
	Notes           string
}

func (in AppointmentInput) apply(ap *models.Appointment) {
	ap.PhysicianName = in.PhysicianName
	ap.Specialty = in.Specialty
	ap.AppointmentType = in.AppointmentType
	ap.Date = in.Date
	ap.Time = in.Time
	ap.Location = in.Location
	ap.Notes = in.Notes
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo        domain.Repository
	audit       *audit.Dispatcher
	sender      notify.Sender
	sendTimeout time.Duration
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	sender notify.Sender,
	sendTimeout time.Duration,
) *CreateAppointment {
	return &CreateAppointment{
		repo:        repo,
		audit:       audit,
		sender:      sender,
		sendTimeout: sendTimeout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	userID uint,
	in AppointmentInput,
) (*models.Appointment, error) {

	user, err := uc.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ap := &models.Appointment{
		UserID: userID,
		Status: string(domain.InitialStatus()),
	}
	in.apply(ap)

	if err := domain.ValidateSchedule(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	uc.sendConfirmation(ctx, user, ap)

	return ap, nil
}

// A failed confirmation never fails the booking.
func (uc *CreateAppointment) sendConfirmation(
	ctx context.Context,
	user *models.User,
	ap *models.Appointment,
) {
	if uc.sender == nil || user.Email == "" {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, uc.sendTimeout)
	defer cancel()

	err := uc.sender.Send(
		sendCtx,
		notify.Recipient{Name: user.Name, Email: user.Email},
		notify.KindAppointmentConfirmation,
		notify.AppointmentPayload{
			PatientName:     user.Name,
			PhysicianName:   ap.PhysicianName,
			Specialty:       ap.Specialty,
			AppointmentType: ap.AppointmentType,
			Date:            ap.Date,
			Time:            ap.Time,
			Location:        ap.Location,
			Notes:           ap.Notes,
		},
	)
	if err != nil {
		log.Printf("appointment %d: confirmation e-mail failed: %v", ap.ID, err)
	}
}
