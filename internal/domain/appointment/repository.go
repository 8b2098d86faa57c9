package appointment

import (
	"context"

	"github.com/BruksfildServices01/medcare-api/internal/models"
)

type Repository interface {
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForUser(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
		userID uint,
	) error

	// Newest first.
	ListAppointmentsForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		userID uint,
		fromDate string,
		toDate string,
	) ([]models.Appointment, error)
}
