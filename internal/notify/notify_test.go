package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMedicationReminder(t *testing.T) {
	subject, body, err := Render(KindMedicationReminder, MedicationPayload{
		Name:          "Dipirona",
		Dose:          "500mg",
		ScheduledTime: "08:00",
		MinutesBefore: 15,
	})
	require.NoError(t, err)

	assert.Equal(t, "MedCare - Lembrete de Medicamento: Dipirona", subject)
	assert.Contains(t, body, "Faltam 15 minutos")
	assert.Contains(t, body, "500mg")
}

func TestRenderEscapesHTML(t *testing.T) {
	_, body, err := Render(KindAppointmentConfirmation, AppointmentPayload{
		PhysicianName: "<script>x</script>",
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownKind(t *testing.T) {
	_, _, err := Render("fax", nil)
	assert.Error(t, err)
}

func TestBrevoSenderPostsEmail(t *testing.T) {
	var got brevoEmail
	var apiKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := NewBrevoSender(srv.URL, "secret", Recipient{Name: "MedCare", Email: "noreply@medcare.com"}, srv.Client())

	err := s.Send(context.Background(), Recipient{Name: "Ana", Email: "ana@example.com"}, KindPasswordResetCode, ResetCodePayload{Code: "AB12CD", ExpiryMinutes: 15})
	require.NoError(t, err)

	assert.Equal(t, "secret", apiKey)
	require.Len(t, got.To, 1)
	assert.Equal(t, "ana@example.com", got.To[0].Email)
	assert.Equal(t, "noreply@medcare.com", got.Sender.Email)
	assert.Contains(t, got.HTMLContent, "AB12CD")
}

func TestBrevoSenderReportsHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid sender", http.StatusBadRequest)
	}))
	defer srv.Close()

	s := NewBrevoSender(srv.URL, "k", Recipient{Email: "noreply@medcare.com"}, srv.Client())

	err := s.Send(context.Background(), Recipient{Email: "ana@example.com"}, KindPasswordResetCode, ResetCodePayload{Code: "AB12CD"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestBrevoSenderRejectsEmptyRecipient(t *testing.T) {
	s := NewBrevoSender("http://unused", "k", Recipient{}, nil)

	assert.Error(t, s.Send(context.Background(), Recipient{}, KindPasswordResetCode, ResetCodePayload{}))
}
