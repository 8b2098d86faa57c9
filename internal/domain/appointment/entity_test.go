package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
)

var now = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func scheduled() *models.Appointment {
	return &models.Appointment{
		Status: string(StatusScheduled),
		Date:   "2025-03-10",
		Time:   "14:00",
	}
}

func TestCancelFromScheduled(t *testing.T) {
	ap := scheduled()

	require.NoError(t, Cancel(ap, now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	require.NotNil(t, ap.CancelledAt)
	assert.True(t, ap.CancelledAt.Equal(now))
}

func TestTerminalStatesDoNotMove(t *testing.T) {
	for _, from := range []Status{StatusCancelled, StatusCompleted} {
		ap := scheduled()
		ap.Status = string(from)

		assert.True(t, httperr.IsBusiness(Cancel(ap, now), "invalid_state"))
		assert.True(t, httperr.IsBusiness(Complete(ap, now), "invalid_state"))
		assert.True(t, httperr.IsBusiness(Transition(ap, StatusScheduled, now), "invalid_state"))
		assert.Equal(t, string(from), ap.Status)
	}
}

func TestTransitionSameStatusIsNoop(t *testing.T) {
	ap := scheduled()
	ap.Status = string(StatusCompleted)

	assert.NoError(t, Transition(ap, StatusCompleted, now))
	assert.Nil(t, ap.CompletedAt)
}

func TestTransitionToCompleted(t *testing.T) {
	ap := scheduled()

	require.NoError(t, Transition(ap, StatusCompleted, now))
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.NotNil(t, ap.CompletedAt)
}

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus("cancelled")
	assert.True(t, ok)
	assert.Equal(t, StatusCancelled, s)

	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}

func TestValidateSchedule(t *testing.T) {
	ap := scheduled()
	ap.PhysicianName = "  Dra. Ana  "
	require.NoError(t, ValidateSchedule(ap))
	assert.Equal(t, "Dra. Ana", ap.PhysicianName)

	start, err := StartsAt(ap)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-10T14:00:00-03:00", start.Format(time.RFC3339))

	ap.Time = "2pm"
	assert.True(t, httperr.IsBusiness(ValidateSchedule(ap), "invalid_date_or_time"))
}
