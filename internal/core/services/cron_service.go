package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultReportSchedule fires the daily report at 08:00
const DefaultReportSchedule = "0 8 * * *"

// CronService runs scheduled jobs in the configured time zone
type CronService struct {
	cron     *cron.Cron
	report   *DailyReportService
	schedule string
	timeout  time.Duration
}

// NewCronService creates a new cron service
func NewCronService(report *DailyReportService, schedule string, loc *time.Location) *CronService {
	if schedule == "" {
		schedule = DefaultReportSchedule
	}
	if loc == nil {
		loc = defaultLocation()
	}
	return &CronService{
		cron:     cron.New(cron.WithLocation(loc)),
		report:   report,
		schedule: schedule,
		timeout:  5 * time.Minute,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		s.report.Run(ctx)
	})
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("⏰ Cron started: daily report at %q (%s)", s.schedule, s.cron.Location())
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Cron stopped")
}
