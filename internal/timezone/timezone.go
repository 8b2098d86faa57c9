package timezone

import (
	"strings"
	"time"
)

// Civil time for the whole application is Brasília time, UTC-3.
// DST is not modelled.
const (
	ZoneName      = "BRT"
	OffsetHours   = -3
	DateLayout    = "2006-01-02"
	ClockLayout   = "15:04"
	civilLayout   = DateLayout + " " + ClockLayout
	secondsInHour = 60 * 60
)

var civil = time.FixedZone(ZoneName, OffsetHours*secondsInHour)

// Location returns the fixed civil zone.
func Location() *time.Location {
	return civil
}

// Normalize expresses t in the civil zone. The instant is unchanged.
func Normalize(t time.Time) time.Time {
	return t.In(civil)
}

func Now() time.Time {
	return Normalize(time.Now())
}

// Clock lets callers inject "now".
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return Now()
}

// FixedClock always returns the same normalized instant.
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time {
	return Normalize(c.T)
}

// CivilDateTime builds an instant from a stored calendar date and a
// wall-clock time of day, both read as civil time.
func CivilDateTime(date, clock string) (time.Time, error) {
	return time.ParseInLocation(
		civilLayout,
		strings.TrimSpace(date)+" "+normalizeClock(clock),
		civil,
	)
}

// ParseDate reads a YYYY-MM-DD civil date.
func ParseDate(date string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(date), civil)
}

// ParseClock validates an HH:MM (or HH:MM:SS) time of day and returns
// hour and minute.
func ParseClock(clock string) (int, int, error) {
	t, err := time.Parse(ClockLayout, normalizeClock(clock))
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// OnDay places an HH:MM time of day on the civil day of day.
func OnDay(day time.Time, clock string) (time.Time, error) {
	h, m, err := ParseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	d := Normalize(day)
	return time.Date(d.Year(), d.Month(), d.Day(), h, m, 0, 0, civil), nil
}

// DayBounds returns [start, end) of the civil day containing t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	d := Normalize(t)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, civil)
	return start, start.AddDate(0, 0, 1)
}

// DayKey formats the civil day of t.
func DayKey(t time.Time) string {
	return Normalize(t).Format(DateLayout)
}

// Postgres TIME columns come back as HH:MM:SS.
func normalizeClock(clock string) string {
	clock = strings.TrimSpace(clock)
	if len(clock) == len("15:04:05") && strings.Count(clock, ":") == 2 {
		return clock[:5]
	}
	return clock
}

func FormatClock(hour, minute int) string {
	return time.Date(0, 1, 1, hour, minute, 0, 0, civil).Format(ClockLayout)
}
