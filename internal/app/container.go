package app

import (
	"log"
	"net/http"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/medcare-api/internal/audit"
	"github.com/BruksfildServices01/medcare-api/internal/config"
	domainReminder "github.com/BruksfildServices01/medcare-api/internal/domain/reminder"
	infraRepo "github.com/BruksfildServices01/medcare-api/internal/infra/repository"
	"github.com/BruksfildServices01/medcare-api/internal/notify"
	"github.com/BruksfildServices01/medcare-api/internal/reminder"
	"github.com/BruksfildServices01/medcare-api/internal/storage"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
	ucReminder "github.com/BruksfildServices01/medcare-api/internal/usecase/reminder"
)

// Container holds the singletons shared by the API and the worker.
type Container struct {
	DB     *gorm.DB
	Config *config.Config
	Clock  timezone.Clock

	Audit   *audit.Dispatcher
	Sender  notify.Sender
	Markers domainReminder.MarkerStore
	Photos  storage.ObjectStore

	// only set when markers live in Postgres
	GormMarkers *reminder.GormMarkerStore

	AppointmentRepo *infraRepo.AppointmentGormRepository
	MedicationRepo  *infraRepo.MedicationGormRepository
	ReminderRepo    *infraRepo.ReminderGormRepository

	CheckAppointments *ucReminder.CheckAppointmentReminders
	CheckMedications  *ucReminder.CheckMedicationReminders
}

func New(db *gorm.DB, rdb *redis.Client, cfg *config.Config) *Container {
	c := &Container{
		DB:     db,
		Config: cfg,
		Clock:  timezone.SystemClock{},

		Audit: audit.NewDispatcher(audit.New(db)),

		AppointmentRepo: infraRepo.NewAppointmentGormRepository(db),
		MedicationRepo:  infraRepo.NewMedicationGormRepository(db),
		ReminderRepo:    infraRepo.NewReminderGormRepository(db),
	}

	// ------------------------------
	// e-mail
	// ------------------------------
	if cfg.BrevoAPIKey != "" {
		c.Sender = notify.NewBrevoSender(
			cfg.BrevoAPIURL,
			cfg.BrevoAPIKey,
			notify.Recipient{Name: cfg.SenderName, Email: cfg.SenderEmail},
			&http.Client{Timeout: cfg.NotifyTimeout},
		)
	} else {
		log.Println("BREVO_API_KEY not set, e-mails will only be logged")
		c.Sender = notify.LogSender{}
	}

	// ------------------------------
	// sent markers
	// ------------------------------
	if rdb != nil {
		c.Markers = reminder.NewRedisMarkerStore(rdb)
	} else {
		c.GormMarkers = reminder.NewGormMarkerStore(db)
		c.Markers = c.GormMarkers
	}

	// ------------------------------
	// photos
	// ------------------------------
	if cfg.StorageEnabled() {
		c.Photos = storage.NewS3Store(storage.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	// ------------------------------
	// reminders
	// ------------------------------
	dispatcher := reminder.NewDispatcher(c.Sender, c.Markers, reminder.Options{
		Timeout:     cfg.NotifyTimeout,
		Concurrency: cfg.DispatchConcurrency,
	})

	c.CheckAppointments = ucReminder.NewCheckAppointmentReminders(
		c.ReminderRepo,
		dispatcher,
		c.Clock,
		c.Audit,
	)
	c.CheckMedications = ucReminder.NewCheckMedicationReminders(
		c.ReminderRepo,
		dispatcher,
		c.Clock,
		c.Audit,
	)

	return c
}
