package reminder

import (
	"context"
	"log"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	domainMedication "github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	domain "github.com/BruksfildServices01/medcare-api/internal/domain/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/notify"
	"github.com/BruksfildServices01/medcare-api/internal/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

type CheckMedicationReminders struct {
	repo       domain.Repository
	dispatcher *reminder.Dispatcher
	clock      timezone.Clock
	audit      *audit.Dispatcher
	schedule   domain.Schedule
}

func NewCheckMedicationReminders(
	repo domain.Repository,
	dispatcher *reminder.Dispatcher,
	clock timezone.Clock,
	audit *audit.Dispatcher,
) *CheckMedicationReminders {
	return &CheckMedicationReminders{
		repo:       repo,
		dispatcher: dispatcher,
		clock:      clock,
		audit:      audit,
		schedule:   domain.MedicationSchedule,
	}
}

func (uc *CheckMedicationReminders) Execute(ctx context.Context) (*CheckResult, error) {
	meds, err := uc.repo.ListActiveMedications(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()

	var items []reminder.Item
	for i := range meds {
		med := &meds[i]

		if med.User.Email == "" || domainMedication.IsExpired(med, now) {
			continue
		}

		// Tomorrow's first slots are within reach shortly before midnight.
		slots := append(
			domainMedication.DoseSlots(med, now),
			domainMedication.DoseSlots(med, now.AddDate(0, 0, 1))...,
		)

		for _, slot := range slots {
			due := uc.schedule.Due(slot, now)
			if len(due) == 0 {
				continue
			}

			done, err := uc.allDosesTaken(ctx, med, slot)
			if err != nil {
				log.Printf("[reminder] medication %d: intakes: %v", med.ID, err)
			}
			if done {
				continue
			}

			for _, offset := range due {
				items = append(items, medicationItem(med, slot, offset))
			}
		}
	}

	log.Printf("[reminder] %d active medications checked, %d due", len(meds), len(items))

	summary := uc.dispatcher.Dispatch(ctx, items)
	recordBatch(uc.audit, "medication", summary)

	return &CheckResult{
		Checked: len(meds),
		Summary: summary,
	}, nil
}

// allDosesTaken is true when the day of slot has no remaining doses.
func (uc *CheckMedicationReminders) allDosesTaken(
	ctx context.Context,
	med *models.Medication,
	slot time.Time,
) (bool, error) {

	from, to := timezone.DayBounds(slot)
	intakes, err := uc.repo.ListIntakes(ctx, med.ID, from, to)
	if err != nil {
		return false, err
	}

	st := domainMedication.EvaluateDose(med, intakes, slot)
	return st.RemainingToday == 0, nil
}

func medicationItem(med *models.Medication, slot time.Time, offset time.Duration) reminder.Item {
	return reminder.Item{
		Reminder: domain.Reminder{
			Kind:     domain.KindMedication,
			EntityID: med.ID,
			Offset:   offset,
			Target:   slot,
		},
		To:   notify.Recipient{Name: med.User.Name, Email: med.User.Email},
		Kind: notify.KindMedicationReminder,
		Payload: notify.MedicationPayload{
			PatientName:   med.User.Name,
			Name:          med.Name,
			Dose:          med.Dose,
			ScheduledTime: slot.Format(timezone.ClockLayout),
			MinutesBefore: int(offset / time.Minute),
		},
	}
}
