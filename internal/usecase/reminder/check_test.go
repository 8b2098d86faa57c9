package reminder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/notify"
	"github.com/BruksfildServices01/medcare-api/internal/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

type fakeRepo struct {
	appointments []models.Appointment
	medications  []models.Medication
	intakes      map[uint][]models.MedicationIntake
	err          error
}

func (f *fakeRepo) ListScheduledAppointments(context.Context) ([]models.Appointment, error) {
	return f.appointments, f.err
}

func (f *fakeRepo) ListActiveMedications(context.Context) ([]models.Medication, error) {
	return f.medications, f.err
}

func (f *fakeRepo) ListIntakes(_ context.Context, id uint, from, to time.Time) ([]models.MedicationIntake, error) {
	var out []models.MedicationIntake
	for _, in := range f.intakes[id] {
		if !in.TakenAt.Before(from) && in.TakenAt.Before(to) {
			out = append(out, in)
		}
	}
	return out, nil
}

type sent struct {
	to      string
	kind    notify.TemplateKind
	payload any
}

type recorder struct {
	mu   sync.Mutex
	sent []sent
	fail map[string]bool
}

func (r *recorder) Send(_ context.Context, to notify.Recipient, kind notify.TemplateKind, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sent{to: to.Email, kind: kind, payload: payload})
	if r.fail[to.Email] {
		return errors.New("rejected")
	}
	return nil
}

func clockAt(s string) timezone.Clock {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return timezone.FixedClock{T: t}
}

func user(id uint, email string) models.User {
	return models.User{ID: id, Name: "Paciente", Email: email}
}

func TestCheckAppointmentsSendsOneHourReminder(t *testing.T) {
	repo := &fakeRepo{appointments: []models.Appointment{
		{ID: 1, User: user(1, "a@example.com"), PhysicianName: "Dr. Silva", Date: "2025-03-10", Time: "14:00", Status: "scheduled"},
		{ID: 2, User: user(2, "b@example.com"), PhysicianName: "Dra. Lima", Date: "2025-03-10", Time: "18:00", Status: "scheduled"},
		{ID: 3, User: user(3, "c@example.com"), Date: "10/03/2025", Time: "14:00", Status: "scheduled"},
		{ID: 4, User: user(4, ""), Date: "2025-03-10", Time: "14:00", Status: "scheduled"},
	}}
	rec := &recorder{}
	uc := NewCheckAppointmentReminders(
		repo,
		reminder.NewDispatcher(rec, nil, reminder.Options{}),
		clockAt("2025-03-10T13:00:30-03:00"),
		nil,
	)

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Checked)
	assert.Equal(t, 1, res.Attempted)
	assert.Equal(t, 1, res.Succeeded)
	require.Len(t, rec.sent, 1)
	assert.Equal(t, "a@example.com", rec.sent[0].to)
	assert.Equal(t, notify.KindAppointmentReminder, rec.sent[0].kind)

	p := rec.sent[0].payload.(notify.AppointmentPayload)
	assert.Equal(t, "Dr. Silva", p.PhysicianName)
	assert.Equal(t, "1 hora", p.Lead)
}

func TestCheckAppointmentsRepoError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	uc := NewCheckAppointmentReminders(repo, reminder.NewDispatcher(&recorder{}, nil, reminder.Options{}), clockAt("2025-03-10T13:00:00-03:00"), nil)

	_, err := uc.Execute(context.Background())
	assert.Error(t, err)
}

func TestCheckAppointmentsIsIdempotentWithMarkers(t *testing.T) {
	repo := &fakeRepo{appointments: []models.Appointment{
		{ID: 1, User: user(1, "a@example.com"), Date: "2025-03-10", Time: "14:00", Status: "scheduled"},
	}}
	rec := &recorder{}
	d := reminder.NewDispatcher(rec, newMemMarkers(), reminder.Options{})

	// two polls inside the same +/-1 minute band
	first, err := NewCheckAppointmentReminders(repo, d, clockAt("2025-03-10T12:59:10-03:00"), nil).Execute(context.Background())
	require.NoError(t, err)
	second, err := NewCheckAppointmentReminders(repo, d, clockAt("2025-03-10T13:00:10-03:00"), nil).Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, first.Succeeded)
	assert.Equal(t, 1, second.Skipped)
	assert.Len(t, rec.sent, 1)
}

func med(id uint, email, clock string, freq int) models.Medication {
	return models.Medication{
		ID:             id,
		User:           user(id, email),
		Name:           "Dipirona",
		Dose:           "500mg",
		TimeOfDay:      clock,
		ExpiryDate:     "2030-01-01",
		DailyFrequency: freq,
		Active:         true,
	}
}

func TestCheckMedicationsFifteenAndFive(t *testing.T) {
	repo := &fakeRepo{medications: []models.Medication{
		med(1, "a@example.com", "08:00", 1),
		med(2, "b@example.com", "07:50", 1),
		med(3, "c@example.com", "09:00", 1),
	}}
	rec := &recorder{}
	uc := NewCheckMedicationReminders(repo, reminder.NewDispatcher(rec, nil, reminder.Options{}), clockAt("2025-03-10T07:45:20-03:00"), nil)

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, res.Checked)
	assert.Equal(t, 2, res.Succeeded)

	byEmail := map[string]notify.MedicationPayload{}
	for _, s := range rec.sent {
		byEmail[s.to] = s.payload.(notify.MedicationPayload)
	}
	assert.Equal(t, 15, byEmail["a@example.com"].MinutesBefore)
	assert.Equal(t, "08:00", byEmail["a@example.com"].ScheduledTime)
	assert.Equal(t, 5, byEmail["b@example.com"].MinutesBefore)
}

func TestCheckMedicationsLaterDoseSlot(t *testing.T) {
	// three a day from 06:00: 06, 14, 22
	repo := &fakeRepo{medications: []models.Medication{med(1, "a@example.com", "06:00", 3)}}
	rec := &recorder{}
	uc := NewCheckMedicationReminders(repo, reminder.NewDispatcher(rec, nil, reminder.Options{}), clockAt("2025-03-10T21:45:00-03:00"), nil)

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, "22:00", rec.sent[0].payload.(notify.MedicationPayload).ScheduledTime)
}

func TestCheckMedicationsAcrossMidnight(t *testing.T) {
	repo := &fakeRepo{medications: []models.Medication{med(1, "a@example.com", "00:05", 1)}}
	rec := &recorder{}
	uc := NewCheckMedicationReminders(repo, reminder.NewDispatcher(rec, nil, reminder.Options{}), clockAt("2025-03-10T23:50:00-03:00"), nil)

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Succeeded)
}

func TestCheckMedicationsLateEveningRegimen(t *testing.T) {
	// three a day from 22:00: 22, 06 and 14 the next day
	repo := &fakeRepo{medications: []models.Medication{med(1, "a@example.com", "22:00", 3)}}

	for _, tc := range []struct {
		now  string
		slot string
	}{
		{"2025-03-10T21:45:00-03:00", "22:00"},
		{"2025-03-11T05:45:00-03:00", "06:00"},
		{"2025-03-11T13:45:00-03:00", "14:00"},
	} {
		rec := &recorder{}
		uc := NewCheckMedicationReminders(repo, reminder.NewDispatcher(rec, nil, reminder.Options{}), clockAt(tc.now), nil)

		res, err := uc.Execute(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 1, res.Succeeded, tc.now)
		require.Len(t, rec.sent, 1, tc.now)
		assert.Equal(t, tc.slot, rec.sent[0].payload.(notify.MedicationPayload).ScheduledTime)
	}
}

func TestCheckMedicationsSkipsExpiredAndCompletedDays(t *testing.T) {
	expired := med(1, "a@example.com", "08:00", 1)
	expired.ExpiryDate = "2025-03-01"

	taken := med(2, "b@example.com", "08:00", 1)

	repo := &fakeRepo{
		medications: []models.Medication{expired, taken},
		intakes: map[uint][]models.MedicationIntake{
			2: {{MedicationID: 2, TakenAt: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)}}, // 07:00 civil
		},
	}
	rec := &recorder{}
	uc := NewCheckMedicationReminders(repo, reminder.NewDispatcher(rec, nil, reminder.Options{}), clockAt("2025-03-10T07:45:00-03:00"), nil)

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Checked)
	assert.Equal(t, 0, res.Attempted)
	assert.Empty(t, rec.sent)
}

func TestCheckMedicationsReportsFailures(t *testing.T) {
	repo := &fakeRepo{medications: []models.Medication{
		med(1, "a@example.com", "08:00", 1),
		med(2, "b@example.com", "08:00", 1),
	}}
	rec := &recorder{fail: map[string]bool{"b@example.com": true}}
	uc := NewCheckMedicationReminders(repo, reminder.NewDispatcher(rec, nil, reminder.Options{}), clockAt("2025-03-10T07:45:00-03:00"), nil)

	res, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Attempted)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Len(t, res.Results, 2)
}

func TestLeadLabel(t *testing.T) {
	assert.Equal(t, "1 hora", leadLabel(time.Hour))
	assert.Equal(t, "24 horas", leadLabel(24*time.Hour))
	assert.Equal(t, "15 minutos", leadLabel(15*time.Minute))
}

type memMarkers struct {
	mu   sync.Mutex
	keys map[string]bool
}

func newMemMarkers() *memMarkers {
	return &memMarkers{keys: map[string]bool{}}
}

func (m *memMarkers) Claim(_ context.Context, key string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *memMarkers) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}
