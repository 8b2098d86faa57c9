package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeKeepsInstant(t *testing.T) {
	utc := time.Date(2025, 3, 10, 17, 0, 0, 0, time.UTC)

	got := Normalize(utc)

	assert.True(t, got.Equal(utc))
	assert.Equal(t, 14, got.Hour())
	_, offset := got.Zone()
	assert.Equal(t, -3*60*60, offset)
}

func TestCivilDateTime(t *testing.T) {
	got, err := CivilDateTime("2025-03-10", "14:00")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10T14:00:00-03:00", got.Format(time.RFC3339))
}

func TestCivilDateTimeAcceptsSeconds(t *testing.T) {
	got, err := CivilDateTime("2025-03-10", "08:30:00")
	require.NoError(t, err)

	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 30, got.Minute())
}

func TestCivilDateTimeRejectsGarbage(t *testing.T) {
	_, err := CivilDateTime("2025-03-10", "25:99")
	assert.Error(t, err)

	_, err = CivilDateTime("", "10:00")
	assert.Error(t, err)
}

func TestDayBoundsAcrossUTCMidnight(t *testing.T) {
	// 01:30 UTC on the 11th is still the 10th in civil time.
	start, end := DayBounds(time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC))

	assert.Equal(t, "2025-03-10T00:00:00-03:00", start.Format(time.RFC3339))
	assert.Equal(t, "2025-03-11T00:00:00-03:00", end.Format(time.RFC3339))
	assert.Equal(t, "2025-03-10", DayKey(time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC)))
}

func TestOnDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 23, 0, 0, 0, civil)

	got, err := OnDay(day, "07:15")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T07:15:00-03:00", got.Format(time.RFC3339))

	_, err = OnDay(day, "7h15")
	assert.Error(t, err)
}

func TestFixedClockNormalizes(t *testing.T) {
	c := FixedClock{T: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}

	assert.Equal(t, 9, c.Now().Hour())
	assert.Equal(t, ZoneName, c.Now().Location().String())
}
