package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"transit-backoffice/internal/core/authz"

	"github.com/robfig/cron/v3"
)

// notificationRetention is how long read notifications are kept
const notificationRetention = 90 * 24 * time.Hour

// Scheduler runs the recurring maintenance jobs
type Scheduler struct {
	cron            *cron.Cron
	notificationSvc *NotificationService
}

// NewScheduler creates the cron scheduler
func NewScheduler(notificationSvc *NotificationService) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		notificationSvc: notificationSvc,
	}
}

// Start registers and launches the jobs:
//   - nightly prune of old read notifications (03:00)
//   - payroll-due reminder to Accountants on the 1st of each month (08:00)
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("0 3 * * *", s.pruneNotifications)
	if err != nil {
		log.Printf("❌ Failed to schedule notification prune: %v", err)
	}

	_, err = s.cron.AddFunc("0 8 1 * *", s.payrollReminder)
	if err != nil {
		log.Printf("❌ Failed to schedule payroll reminder: %v", err)
	}

	s.cron.Start()
	log.Println("🚀 Scheduler started")
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Println("🛑 Scheduler stopped")
}

func (s *Scheduler) pruneNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.notificationSvc.PruneRead(ctx, notificationRetention); err != nil {
		log.Printf("❌ Notification prune failed: %v", err)
	}
}

func (s *Scheduler) payrollReminder() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	now := time.Now()
	title := "Payroll period open"
	message := fmt.Sprintf("Payroll for %s %d is due. Review pending payrolls.", now.Month().String(), now.Year())

	sent, err := s.notificationSvc.NotifyRole(ctx, authz.RoleAccountant, title, message)
	if err != nil {
		log.Printf("❌ Payroll reminder failed after %d notifications: %v", sent, err)
		return
	}
	log.Printf("📣 Payroll reminder sent to %d accountants", sent)
}
