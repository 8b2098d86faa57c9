package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/medcare-api/internal/domain/appointment"
	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/httpresp"
	"github.com/BruksfildServices01/medcare-api/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/medcare-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	update       *ucAppointment.UpdateAppointment
	changeStatus *ucAppointment.ChangeStatus
	remove       *ucAppointment.DeleteAppointment
	list         *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	update *ucAppointment.UpdateAppointment,
	changeStatus *ucAppointment.ChangeStatus,
	remove *ucAppointment.DeleteAppointment,
	list *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		changeStatus: changeStatus,
		remove:       remove,
		list:         list,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	PhysicianName   string `json:"physician_name" binding:"required"`
	Specialty       string `json:"specialty" binding:"required"`
	AppointmentType string `json:"appointment_type" binding:"required"`
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	Location        string `json:"location" binding:"required"`
	Notes           string `json:"notes"`
}

func (r AppointmentRequest) input() ucAppointment.AppointmentInput {
	return ucAppointment.AppointmentInput{
		PhysicianName:   r.PhysicianName,
		Specialty:       r.Specialty,
		AppointmentType: r.AppointmentType,
		Date:            r.Date,
		Time:            r.Time,
		Location:        r.Location,
		Notes:           r.Notes,
	}
}

// ======================================================
// CREATE / UPDATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		respondError(c, err, "failed_to_create_appointment")
		return
	}

	httpresp.Created(c, ap)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.UserID(c), id, req.input())
	if err != nil {
		respondError(c, err, "failed_to_update_appointment")
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, domain.StatusCancelled)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, domain.StatusCompleted)
}

func (h *AppointmentHandler) transition(c *gin.Context, to domain.Status) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), middleware.UserID(c), id, to)
	if err != nil {
		respondError(c, err, "failed_to_update_status")
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed_to_delete_appointment")
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// LIST
// GET /me/appointments?year=2025&month=3 filters by month
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	yearStr, monthStr := c.Query("year"), c.Query("month")
	if yearStr == "" && monthStr == "" {
		out, err := h.list.Execute(ctx, userID)
		if err != nil {
			respondError(c, err, "failed_to_list_appointments")
			return
		}
		httpresp.List(c, out)
		return
	}

	year, err1 := strconv.Atoi(yearStr)
	month, err2 := strconv.Atoi(monthStr)
	if err1 != nil || err2 != nil {
		httperr.BadRequest(c, "invalid_month", "Ano ou mês inválido.")
		return
	}

	out, err := h.list.ExecuteMonth(ctx, userID, year, month)
	if err != nil {
		respondError(c, err, "failed_to_list_appointments")
		return
	}
	httpresp.List(c, out)
}
