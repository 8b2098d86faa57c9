package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/medcare-api/internal/app"
	"github.com/BruksfildServices01/medcare-api/internal/handlers"
	"github.com/BruksfildServices01/medcare-api/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/medcare-api/internal/usecase/appointment"
	ucMedication "github.com/BruksfildServices01/medcare-api/internal/usecase/medication"
)

func RegisterRoutes(r *gin.Engine, c *app.Container) {
	cfg := c.Config

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// ======================================================
	// 🧠 USE CASES — APPOINTMENTS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		ucAppointment.NewCreateAppointment(c.AppointmentRepo, c.Audit, c.Sender, cfg.NotifyTimeout),
		ucAppointment.NewUpdateAppointment(c.AppointmentRepo, c.Audit),
		ucAppointment.NewChangeStatus(c.AppointmentRepo, c.Audit, c.Clock),
		ucAppointment.NewDeleteAppointment(c.AppointmentRepo, c.Audit),
		ucAppointment.NewListAppointments(c.AppointmentRepo),
	)

	// ======================================================
	// 🧠 USE CASES — MEDICATIONS
	// ======================================================
	medRepo := c.MedicationRepo
	medicationHandler := handlers.NewMedicationHandler(handlers.MedicationUseCases{
		Create:        ucMedication.NewCreateMedication(medRepo, c.Audit),
		Update:        ucMedication.NewUpdateMedication(medRepo, c.Audit),
		Delete:        ucMedication.NewDeleteMedication(medRepo, c.Audit),
		List:          ucMedication.NewListMedications(medRepo, c.Clock),
		DoseStatus:    ucMedication.NewGetDoseStatus(medRepo, c.Clock),
		RecordIntake:  ucMedication.NewRecordIntake(medRepo, c.Audit, c.Clock),
		ListIntakes:   ucMedication.NewListIntakes(medRepo, c.Clock),
		MoveToHistory: ucMedication.NewMoveToHistory(medRepo, c.Audit, c.Clock),
		ListHistory:   ucMedication.NewListHistory(medRepo),
		UploadPhoto:   ucMedication.NewUploadPhoto(medRepo, c.Photos, c.Audit),
	})

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(c.DB, cfg, c.Sender)
	meHandler := handlers.NewMeHandler(c.DB, c.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(c.DB)
	reminderHandler := handlers.NewReminderHandler(c.CheckAppointments, c.CheckMedications)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		authAPI := api.Group("/auth")
		{
			authAPI.POST("/register", authHandler.Register)
			authAPI.POST("/login", authHandler.Login)
			authAPI.POST("/reset-code", authHandler.RequestResetCode)
			authAPI.POST("/verify-reset-code", authHandler.VerifyResetCode)
			authAPI.POST("/reset-password", authHandler.ResetPassword)
		}

		// ------------------------------
		// ⏰ CRON
		// ------------------------------
		cron := api.Group("/reminders")
		cron.Use(middleware.CronSecret(cfg.CronSecret))
		{
			cron.GET("/appointments/check", reminderHandler.CheckAppointments)
			cron.GET("/medications/check", reminderHandler.CheckMedications)
		}

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/me/appointments", appointmentHandler.List)
			secured.POST("/me/appointments", appointmentHandler.Create)
			secured.PUT("/me/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/me/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/me/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/me/appointments/:id", appointmentHandler.Delete)

			// ------------------------------
			// MEDICATIONS
			// ------------------------------
			secured.GET("/me/medications", medicationHandler.List)
			secured.POST("/me/medications", medicationHandler.Create)
			secured.PUT("/me/medications/:id", medicationHandler.Update)
			secured.DELETE("/me/medications/:id", medicationHandler.Delete)
			secured.GET("/me/medications/:id/dose-status", medicationHandler.DoseStatus)
			secured.GET("/me/medications/:id/intakes", medicationHandler.ListIntakes)
			secured.POST("/me/medications/:id/intakes", medicationHandler.RecordIntake)
			secured.POST("/me/medications/:id/history", medicationHandler.MoveToHistory)
			secured.PUT("/me/medications/:id/photo", medicationHandler.UploadPhoto)
			secured.GET("/me/medication-history", medicationHandler.ListHistory)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
