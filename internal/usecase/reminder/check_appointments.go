package reminder

import (
	"context"
	"log"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domainAppointment "github.com/BruksfildServices01/medcare-api/internal/domain/appointment"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/notify"
	"github.com/BruksfildServices01/medcare-api/internal/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

type CheckResult struct {
	Checked int `json:"checked"`
	reminder.Summary
}

type CheckAppointmentReminders struct {
	repo       domain.Repository
	dispatcher *reminder.Dispatcher
	clock      timezone.Clock
	audit      *audit.Dispatcher
	schedule   domain.Schedule
}

func NewCheckAppointmentReminders(
	repo domain.Repository,
	dispatcher *reminder.Dispatcher,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *CheckAppointmentReminders {
	return &CheckAppointmentReminders{
		repo:       repo,
		dispatcher: dispatcher,
		clock:      clock,
		audit:      audit,
		schedule:   domain.AppointmentSchedule,
	}
}

func (uc *CheckAppointmentReminders) Execute(ctx context.Context) (*CheckResult, error) {
	appointments, err := uc.repo.ListScheduledAppointments(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	var items []reminder.Item
	for i := range appointments {
		ap := &appointments[i]

		if ap.User.Email == "" {
			continue
		}

		target, err := domainAppointment.StartsAt(ap)
		if err != nil {
			log.Printf("[reminder] appointment %d: bad date/time %q %q", ap.ID, ap.Date, ap.Time)
			continue
		}

		for _, offset := range uc.schedule.Due(target, now) {
			items = append(items, reminder.Item{
				Reminder: domain.Reminder{
					Kind:     domain.KindAppointment,
					EntityID: ap.ID,
					Offset:   offset,
					Target:   target,
				},
				To:   notify.Recipient{Name: ap.User.Name, Email: ap.User.Email},
				Kind: notify.KindAppointmentReminder,
				Payload: notify.AppointmentPayload{
					PatientName:     ap.User.Name,
					PhysicianName:   ap.PhysicianName,
					Specialty:       ap.Specialty,
					AppointmentType: ap.AppointmentType,
					Date:            ap.Date,
					Time:            ap.Time,
					Location:        ap.Location,
					Notes:           ap.Notes,
					Lead:            leadLabel(offset),
				},
			})
		}
	}

	log.Printf("[reminder] %d scheduled appointments checked, %d due", len(appointments), len(items))

	summary := uc.dispatcher.Dispatch(ctx, items)
	recordBatch(uc.audit, "appointment", summary)

	return &CheckResult{
		Checked: len(appointments),
		Summary: summary,
	}, nil
}
