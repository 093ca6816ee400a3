package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/Prayc/angaza-real-estate/internal/config"
	"github.com/Prayc/angaza-real-estate/internal/database"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily lease-expiry sweep: active leases past their
// end date are marked expired and their units vacated. Everything in the
// request path stays synchronous; this is the only background job.
type Scheduler struct {
	cron      *cron.Cron
	store     *database.GormDB
	config    *config.Config
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(store *database.GormDB, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		store:  store,
		config: cfg,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Scheduler.LeaseExpiryEnabled {
		log.Println("Scheduler: Lease expiry sweep is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Scheduler.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting lease expiry sweep...")
		if err := s.RunExpirySweep(); err != nil {
			log.Printf("Scheduler: Lease expiry sweep failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Scheduler.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunExpirySweep expires overdue leases immediately. Also used by the
// admin trigger endpoint.
func (s *Scheduler) RunExpirySweep() error {
	expired, err := s.store.ExpireOverdueLeases(time.Now())
	if err != nil {
		return err
	}
	log.Printf("Scheduler: Expired %d overdue lease(s)", expired)
	return nil
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	// Default to 2:00 AM if parsing fails
	log.Printf("Scheduler: Failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
