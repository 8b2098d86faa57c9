package medication

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/medcare-api/internal/domain/medication"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/models"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

type fakeRepo struct {
	meds    map[uint]*models.Medication
	intakes []models.MedicationIntake
	history []models.MedicationHistory
	nextID  uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{meds: map[uint]*models.Medication{}}
}

func (f *fakeRepo) CreateMedication(_ context.Context, med *models.Medication) error {
	f.nextID++
	med.ID = f.nextID
	cp := *med
	f.meds[med.ID] = &cp
	return nil
}

func (f *fakeRepo) GetMedicationForUser(_ context.Context, id, userID uint) (*models.Medication, error) {
	m, ok := f.meds[id]
	if !ok || m.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeRepo) UpdateMedication(_ context.Context, med *models.Medication) error {
	cp := *med
	f.meds[med.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteMedication(_ context.Context, id, userID uint) error {
	m, ok := f.meds[id]
	if !ok || m.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.meds, id)
	return nil
}

func (f *fakeRepo) ListActiveMedicationsForUser(_ context.Context, userID uint) ([]models.Medication, error) {
	var out []models.Medication
	for id := uint(1); id <= f.nextID; id++ {
		if m, ok := f.meds[id]; ok && m.UserID == userID && m.Active {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateIntake(_ context.Context, in *models.MedicationIntake) error {
	in.ID = uint(len(f.intakes) + 1)
	f.intakes = append(f.intakes, *in)
	return nil
}

func (f *fakeRepo) ListIntakes(_ context.Context, medID uint, from, to time.Time) ([]models.MedicationIntake, error) {
	var out []models.MedicationIntake
	for _, in := range f.intakes {
		if in.MedicationID == medID && !in.TakenAt.Before(from) && in.TakenAt.Before(to) {
			out = append(out, in)
		}
	}
	return out, nil
}

func (f *fakeRepo) MoveToHistory(_ context.Context, h *models.MedicationHistory) error {
	if _, ok := f.meds[h.MedicationID]; !ok {
		return gorm.ErrRecordNotFound
	}
	h.ID = uint(len(f.history) + 1)
	f.history = append(f.history, *h)
	delete(f.meds, h.MedicationID)
	return nil
}

func (f *fakeRepo) ListHistoryForUser(_ context.Context, userID uint) ([]models.MedicationHistory, error) {
	var out []models.MedicationHistory
	for _, h := range f.history {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	return out, nil
}

type memStore struct {
	objects map[string][]byte
	deleted []string
}

func (s *memStore) Put(_ context.Context, key, _ string, data []byte) error {
	s.objects[key] = data
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	delete(s.objects, key)
	return nil
}

// mutableClock lets a test move time forward.
type mutableClock struct{ t time.Time }

func (c *mutableClock) Now() time.Time { return timezone.Normalize(c.t) }

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func input() MedicationInput {
	return MedicationInput{
		Name:           "Amoxicilina",
		Form:           "cápsula",
		Dose:           "500mg",
		TimeOfDay:      "08:00",
		ExpiryDate:     "2030-01-01",
		DailyFrequency: 2,
	}
}

func seed(t *testing.T, repo *fakeRepo) *models.Medication {
	t.Helper()
	med, err := NewCreateMedication(repo, nil).Execute(context.Background(), 1, input())
	require.NoError(t, err)
	return med
}

func TestCreateMedicationValidates(t *testing.T) {
	repo := newFakeRepo()

	med := seed(t, repo)
	assert.True(t, med.Active)
	assert.Equal(t, uint(1), med.UserID)

	in := input()
	in.DailyFrequency = 30
	_, err := NewCreateMedication(repo, nil).Execute(context.Background(), 1, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_frequency"))
}

func TestRecordIntakeEnforcesSpacing(t *testing.T) {
	repo := newFakeRepo()
	med := seed(t, repo)
	clock := &mutableClock{t: at("2025-03-10T08:00:00-03:00")}
	uc := NewRecordIntake(repo, nil, clock)

	_, st, err := uc.Execute(context.Background(), 1, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, st.IntakesToday)
	assert.Equal(t, 1, st.RemainingToday)
	assert.False(t, st.CanTakeNow)

	clock.t = at("2025-03-10T19:59:00-03:00")
	_, _, err = uc.Execute(context.Background(), 1, med.ID)
	assert.True(t, httperr.IsBusiness(err, "dose_too_soon"))

	clock.t = at("2025-03-10T20:00:00-03:00")
	_, st, err = uc.Execute(context.Background(), 1, med.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, st.RemainingToday)
	assert.Len(t, repo.intakes, 2)
}

func TestRecordIntakeRejectsExpired(t *testing.T) {
	repo := newFakeRepo()
	in := input()
	in.ExpiryDate = "2025-03-01"
	med, err := NewCreateMedication(repo, nil).Execute(context.Background(), 1, in)
	require.NoError(t, err)

	clock := &mutableClock{t: at("2025-03-10T08:00:00-03:00")}
	_, st, err := NewRecordIntake(repo, nil, clock).Execute(context.Background(), 1, med.ID)

	assert.True(t, httperr.IsBusiness(err, "medication_expired"))
	assert.True(t, st.Expired)
	assert.Empty(t, repo.intakes)
}

func TestListMedicationsCarriesDoseStatus(t *testing.T) {
	repo := newFakeRepo()
	med := seed(t, repo)
	clock := &mutableClock{t: at("2025-03-10T09:00:00-03:00")}
	repo.intakes = append(repo.intakes, models.MedicationIntake{
		MedicationID: med.ID, UserID: 1, TakenAt: at("2025-03-10T08:00:00-03:00"),
	})

	out, err := NewListMedications(repo, clock).Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "Amoxicilina", out[0].Name)
	assert.Equal(t, 12, out[0].DoseStatus.WaitHours)
	assert.Equal(t, 1, out[0].DoseStatus.IntakesToday)
	assert.False(t, out[0].DoseStatus.CanTakeNow)
}

func TestDoseStatusOwnership(t *testing.T) {
	repo := newFakeRepo()
	med := seed(t, repo)

	_, err := NewGetDoseStatus(repo, timezone.SystemClock{}).Execute(context.Background(), 99, med.ID)

	assert.True(t, httperr.IsBusiness(err, "medication_not_found"))
}

func TestMoveToHistory(t *testing.T) {
	repo := newFakeRepo()
	med := seed(t, repo)
	clock := timezone.FixedClock{T: at("2025-03-10T12:00:00-03:00")}
	uc := NewMoveToHistory(repo, nil, clock)

	_, err := uc.Execute(context.Background(), 1, med.ID, "forgotten")
	assert.True(t, httperr.IsBusiness(err, "invalid_reason"))
	assert.Len(t, repo.meds, 1)

	h, err := uc.Execute(context.Background(), 1, med.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, string(domain.ReasonCompleted), h.Reason)
	assert.Empty(t, repo.meds)

	list, err := NewListHistory(repo).Execute(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Amoxicilina", list[0].Name)
}

func TestDeleteMedicationNotFound(t *testing.T) {
	err := NewDeleteMedication(newFakeRepo(), nil).Execute(context.Background(), 1, 42)

	assert.True(t, httperr.IsBusiness(err, "medication_not_found"))
}

func TestUploadPhotoReplacesPrevious(t *testing.T) {
	repo := newFakeRepo()
	med := seed(t, repo)
	store := &memStore{objects: map[string][]byte{}}
	uc := NewUploadPhoto(repo, store, nil)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 20, 20))))
	raw := buf.Bytes()

	first, err := uc.Execute(context.Background(), 1, med.ID, bytes.NewReader(raw))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.PhotoKey, "medications/1/1/"))
	assert.True(t, strings.HasSuffix(first.PhotoKey, ".webp"))

	second, err := uc.Execute(context.Background(), 1, med.ID, bytes.NewReader(raw))
	require.NoError(t, err)
	assert.NotEqual(t, first.PhotoKey, second.PhotoKey)
	assert.Equal(t, []string{first.PhotoKey}, store.deleted)
	assert.Len(t, store.objects, 1)
}

func TestUploadPhotoRejectsGarbage(t *testing.T) {
	repo := newFakeRepo()
	med := seed(t, repo)

	_, err := NewUploadPhoto(repo, &memStore{objects: map[string][]byte{}}, nil).
		Execute(context.Background(), 1, med.ID, strings.NewReader("%PDF-1.4"))
	assert.True(t, httperr.IsBusiness(err, "invalid_image"))

	_, err = NewUploadPhoto(repo, nil, nil).Execute(context.Background(), 1, med.ID, strings.NewReader(""))
	assert.True(t, httperr.IsBusiness(err, "storage_disabled"))
}
