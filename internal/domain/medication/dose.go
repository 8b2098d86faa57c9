package medication

import (
	"math"
	"sort"
	"time"

	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// WaitHours is round(24 / frequency). Frequencies that do not divide 24
// drift by up to half an hour per cycle; that approximation is kept.
func WaitHours(frequency int) int {
	f := NormalizeFrequency(frequency)
	return int(math.Round(24 / float64(f)))
}

func NormalizeFrequency(frequency int) int {
	if frequency < 1 {
		return 1
	}
	return frequency
}

// DoseStatus is what the UI needs to decide whether to offer "take now".
type DoseStatus struct {
	Frequency      int        `json:"daily_frequency"`
	WaitHours      int        `json:"wait_hours"`
	IntakesToday   int        `json:"intakes_today"`
	RemainingToday int        `json:"remaining_today"`
	LastIntakeAt   *time.Time `json:"last_intake_at"`
	NextAllowedAt  *time.Time `json:"next_allowed_at"`
	Expired        bool       `json:"expired"`
	CanTakeNow     bool       `json:"can_take_now"`
}

// EvaluateDose computes spacing eligibility from the intakes recorded on
// the civil day of now. Intakes outside that day are ignored.
func EvaluateDose(
	med *models.Medication,
	intakes []models.MedicationIntake,
	now time.Time,
) DoseStatus {

	now = timezone.Normalize(now)
	f := NormalizeFrequency(med.DailyFrequency)
	wait := WaitHours(f)

	dayStart, dayEnd := timezone.DayBounds(now)

	var last *time.Time
	today := 0
	for i := range intakes {
		taken := timezone.Normalize(intakes[i].TakenAt)
		if taken.Before(dayStart) || !taken.Before(dayEnd) {
			continue
		}
		today++
		if last == nil || taken.After(*last) {
			t := taken
			last = &t
		}
	}

	st := DoseStatus{
		Frequency:      f,
		WaitHours:      wait,
		IntakesToday:   today,
		RemainingToday: max(0, f-today),
		LastIntakeAt:   last,
		Expired:        IsExpired(med, now),
	}

	canTake := true
	if last != nil {
		next := last.Add(time.Duration(wait) * time.Hour)
		st.NextAllowedAt = &next
		canTake = !now.Before(next)
	}

	st.CanTakeNow = canTake && !st.Expired
	return st
}

// IsExpired is true from the day after the expiry date. An unparseable
// expiry date counts as expired.
func IsExpired(med *models.Medication, now time.Time) bool {
	expiry, err := timezone.ParseDate(med.ExpiryDate)
	if err != nil {
		return true
	}
	_, end := timezone.DayBounds(expiry)
	return !timezone.Normalize(now).Before(end)
}

// DoseSlots lists the civil instants of each dose that fall on the day of
// day, in order. A regimen runs from the configured time of day, every
// WaitHours, so doses of the previous day's regimen that pass midnight
// land on day as well.
func DoseSlots(med *models.Medication, day time.Time) []time.Time {
	dayStart, dayEnd := timezone.DayBounds(day)

	var slots []time.Time
	seen := map[int64]bool{}
	for _, start := range []time.Time{dayStart.AddDate(0, 0, -1), dayStart} {
		for _, s := range regimen(med, start) {
			if s.Before(dayStart) || !s.Before(dayEnd) || seen[s.Unix()] {
				continue
			}
			seen[s.Unix()] = true
			slots = append(slots, s)
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })
	return slots
}

// regimen is the f doses started on the civil day of day, wherever they end.
func regimen(med *models.Medication, day time.Time) []time.Time {
	first, err := timezone.OnDay(day, med.TimeOfDay)
	if err != nil {
		return nil
	}

	f := NormalizeFrequency(med.DailyFrequency)
	step := time.Duration(WaitHours(f)) * time.Hour

	out := make([]time.Time, 0, f)
	for i := 0; i < f; i++ {
		out = append(out, first.Add(time.Duration(i)*step))
	}
	return out
}
