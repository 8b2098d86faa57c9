package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medcare-api/internal/httpresp"
	ucReminder "github.com/BruksfildServices01/medcare-api/internal/usecase/reminder"
)

// ReminderHandler exposes the poll-driven checks to an external cron.
type ReminderHandler struct {
	appointments *ucReminder.CheckAppointmentReminders
	medications  *ucReminder.CheckMedicationReminders
}

func NewReminderHandler(
	appointments *ucReminder.CheckAppointmentReminders,
	medications *ucReminder.CheckMedicationReminders,
) *ReminderHandler {
	return &ReminderHandler{
		appointments: appointments,
		medications:  medications,
	}
}

func (h *ReminderHandler) CheckAppointments(c *gin.Context) {
	res, err := h.appointments.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "reminder_check_failed")
		return
	}
	httpresp.OK(c, res)
}

func (h *ReminderHandler) CheckMedications(c *gin.Context) {
	res, err := h.medications.Execute(c.Request.Context())
	if err != nil {
		respondError(c, err, "reminder_check_failed")
		return
	}
	httpresp.OK(c, res)
}
