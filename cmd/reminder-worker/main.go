package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/medcare-api/internal/app"
	"github.com/BruksfildServices01/medcare-api/internal/config"
	dbpkg "github.com/BruksfildServices01/medcare-api/internal/db"
	"github.com/BruksfildServices01/medcare-api/internal/timezone"
)

// Polls reminders once a minute. Runs alongside the API or replaces the
// external cron that calls /api/reminders/*/check.
func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	c := app.New(db, rdb, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New(
		cron.WithLocation(timezone.Location()),
		cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	if _, err := scheduler.AddFunc("* * * * *", func() {
		runChecks(ctx, c)
	}); err != nil {
		log.Fatalf("failed to schedule reminder check: %v", err)
	}

	if c.GormMarkers != nil {
		if _, err := scheduler.AddFunc("@hourly", func() {
			n, err := c.GormMarkers.Purge(ctx)
			if err != nil {
				log.Printf("[worker] marker purge failed: %v", err)
				return
			}
			log.Printf("[worker] purged %d expired markers", n)
		}); err != nil {
			log.Fatalf("failed to schedule marker purge: %v", err)
		}
	}

	scheduler.Start()
	log.Println("reminder worker started")

	<-ctx.Done()

	log.Println("shutting down, waiting for running checks")
	<-scheduler.Stop().Done()
}

func runChecks(ctx context.Context, c *app.Container) {
	if res, err := c.CheckAppointments.Execute(ctx); err != nil {
		log.Printf("[worker] appointment check failed: %v", err)
	} else if res.Attempted > 0 {
		log.Printf("[worker] appointments: checked=%d sent=%d failed=%d",
			res.Checked, res.Succeeded, res.Failed)
	}

	if res, err := c.CheckMedications.Execute(ctx); err != nil {
		log.Printf("[worker] medication check failed: %v", err)
	} else if res.Attempted > 0 {
		log.Printf("[worker] medications: checked=%d sent=%d failed=%d",
			res.Checked, res.Succeeded, res.Failed)
	}
}
