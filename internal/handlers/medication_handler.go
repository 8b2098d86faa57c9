package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medcare-api/internal/httperr"
	"github.com/BruksfildServices01/medcare-api/internal/httpresp"
	"github.com/BruksfildServices01/medcare-api/internal/middleware"
	"github.com/BruksfildServices01/medcare-api/internal/storage"
	ucMedication "github.com/BruksfildServices01/medcare-api/internal/usecase/medication"
)

// MedicationUseCases groups everything the medication routes need.
type MedicationUseCases struct {
	Create        *ucMedication.CreateMedication
	Update        *ucMedication.UpdateMedication
	Delete        *ucMedication.DeleteMedication
	List          *ucMedication.ListMedications
	DoseStatus    *ucMedication.GetDoseStatus
	RecordIntake  *ucMedication.RecordIntake
	ListIntakes   *ucMedication.ListIntakes
	MoveToHistory *ucMedication.MoveToHistory
	ListHistory   *ucMedication.ListHistory
	UploadPhoto   *ucMedication.UploadPhoto
}

type MedicationHandler struct {
	uc MedicationUseCases
}

func NewMedicationHandler(uc MedicationUseCases) *MedicationHandler {
	return &MedicationHandler{uc: uc}
}

// ======================================================
// REQUESTS
// ======================================================

type MedicationRequest struct {
	Name             string `json:"name" binding:"required"`
	ActiveIngredient string `json:"active_ingredient"`
	Form             string `json:"form" binding:"required"`
	Dose             string `json:"dose" binding:"required"`
	TimeOfDay        string `json:"time_of_day" binding:"required"`
	ExpiryDate       string `json:"expiry_date" binding:"required"`
	DurationDays     *int   `json:"duration_days"`
	DailyFrequency   int    `json:"daily_frequency"`
}

func (r MedicationRequest) input() ucMedication.MedicationInput {
	return ucMedication.MedicationInput{
		Name:             r.Name,
		ActiveIngredient: r.ActiveIngredient,
		Form:             r.Form,
		Dose:             r.Dose,
		TimeOfDay:        r.TimeOfDay,
		ExpiryDate:       r.ExpiryDate,
		DurationDays:     r.DurationDays,
		DailyFrequency:   r.DailyFrequency,
	}
}

type MoveToHistoryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// ======================================================
// CRUD
// ======================================================

func (h *MedicationHandler) Create(c *gin.Context) {
	var req MedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	med, err := h.uc.Create.Execute(c.Request.Context(), middleware.UserID(c), req.input())
	if err != nil {
		respondError(c, err, "failed_to_create_medication")
		return
	}

	httpresp.Created(c, med)
}

func (h *MedicationHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req MedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	med, err := h.uc.Update.Execute(c.Request.Context(), middleware.UserID(c), id, req.input())
	if err != nil {
		respondError(c, err, "failed_to_update_medication")
		return
	}

	httpresp.OK(c, med)
}

func (h *MedicationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.UserID(c), id); err != nil {
		respondError(c, err, "failed_to_delete_medication")
		return
	}

	httpresp.NoContent(c)
}

func (h *MedicationHandler) List(c *gin.Context) {
	out, err := h.uc.List.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_list_medications")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// DOSES
// ======================================================

func (h *MedicationHandler) DoseStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	st, err := h.uc.DoseStatus.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "failed_to_evaluate_dose")
		return
	}

	httpresp.OK(c, st)
}

func (h *MedicationHandler) RecordIntake(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	intake, st, err := h.uc.RecordIntake.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		if code := httperr.BusinessCode(err); code == "dose_too_soon" || code == "medication_expired" {
			// the app shows when the next dose is allowed
			c.JSON(http.StatusConflict, gin.H{
				"error_code":  code,
				"message":     businessReplies[code].message,
				"dose_status": st,
			})
			return
		}
		respondError(c, err, "failed_to_record_intake")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"intake":      intake,
		"dose_status": st,
	})
}

func (h *MedicationHandler) ListIntakes(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	out, err := h.uc.ListIntakes.Execute(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		respondError(c, err, "failed_to_list_intakes")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// HISTORY
// ======================================================

func (h *MedicationHandler) MoveToHistory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req MoveToHistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	entry, err := h.uc.MoveToHistory.Execute(c.Request.Context(), middleware.UserID(c), id, req.Reason)
	if err != nil {
		respondError(c, err, "failed_to_move_to_history")
		return
	}

	httpresp.Created(c, entry)
}

func (h *MedicationHandler) ListHistory(c *gin.Context) {
	out, err := h.uc.ListHistory.Execute(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err, "failed_to_list_history")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// PHOTO (multipart "photo")
// ======================================================

func (h *MedicationHandler) UploadPhoto(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie a imagem no campo photo.")
		return
	}

	file, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "Imagem inválida.")
		return
	}
	defer file.Close()

	med, err := h.uc.UploadPhoto.Execute(c.Request.Context(), middleware.UserID(c), id, file)
	if err != nil {
		respondError(c, err, "failed_to_upload_photo")
		return
	}

	httpresp.OK(c, med)
}
