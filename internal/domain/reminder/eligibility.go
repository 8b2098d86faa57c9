package reminder

import (
	"fmt"
	"math"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

type Kind string

const (
	KindAppointment Kind = "appointment"
	KindMedication  Kind = "medication"
)

// Rule fires when target - now, in whole minutes rounded down, lies
// within Tolerance of Offset.
type Rule struct {
	Offset    time.Duration
	Tolerance time.Duration
}

type Schedule struct {
	Rules []Rule

	// MinuteClock drops the seconds of now before comparing, the way a
	// "HH:MM == HH:MM" wall clock check does.
	MinuteClock bool
}

// Appointments get a +/-1 minute band, medications an exact minute.
var (
	AppointmentSchedule = Schedule{
		Rules: []Rule{
			{Offset: 24 * time.Hour, Tolerance: time.Minute},
			{Offset: 12 * time.Hour, Tolerance: time.Minute},
			{Offset: 60 * time.Minute, Tolerance: time.Minute},
		},
	}

	MedicationSchedule = Schedule{
		Rules: []Rule{
			{Offset: 15 * time.Minute},
			{Offset: 5 * time.Minute},
		},
		MinuteClock: true,
	}
)

// Due returns the offsets of s that target has just crossed at now.
// Both sides are normalized to civil time first. Pure: the same inputs
// always give the same output.
func (s Schedule) Due(target, now time.Time) []time.Duration {
	if target.IsZero() || now.IsZero() {
		return nil
	}

	target = timezone.Normalize(target)
	now = timezone.Normalize(now)
	if s.MinuteClock {
		now = now.Truncate(time.Minute)
	}

	diff := floorMinutes(target.Sub(now))

	var due []time.Duration
	for _, r := range s.Rules {
		offset := floorMinutes(r.Offset)
		tol := floorMinutes(r.Tolerance)
		if diff >= offset-tol && diff <= offset+tol {
			due = append(due, r.Offset)
		}
	}
	return due
}

func floorMinutes(d time.Duration) int64 {
	return int64(math.Floor(d.Minutes()))
}

// Reminder is one (entity, threshold) pair ready to be sent.
type Reminder struct {
	Kind     Kind
	EntityID uint
	Offset   time.Duration
	Target   time.Time
}

// MarkerKey identifies a threshold crossing for at-most-once delivery.
// The target slot is part of the key so several daily doses of the same
// medication do not collide.
func (r Reminder) MarkerKey() string {
	return fmt.Sprintf(
		"reminder:%s:%d:%s:%s",
		r.Kind,
		r.EntityID,
		FormatOffset(r.Offset),
		timezone.Normalize(r.Target).Format("2006-01-02T15:04"),
	)
}

// FormatOffset renders 60m, 24h, 15m.
func FormatOffset(d time.Duration) string {
	if d >= time.Hour && d%time.Hour == 0 && d != time.Hour {
		return fmt.Sprintf("%dh", int64(d/time.Hour))
	}
	return fmt.Sprintf("%dm", int64(d/time.Minute))
}
