package service

import (
	"fmt"
	"log"
	"time"

	"personalsite/internal/db"
	"personalsite/internal/repository"
	"personalsite/internal/schedule"
)

type JobService struct {
	Repo   *repository.JobRepository
	Sender *SenderService
	Hours  schedule.BusinessHours
}

func NewJobService(repo *repository.JobRepository, sender *SenderService, hours schedule.BusinessHours) *JobService {
	return &JobService{Repo: repo, Sender: sender, Hours: hours}
}

// CompletePastAppointments marks pending and confirmed appointments whose date
// has passed as completed.
func (s *JobService) CompletePastAppointments() error {
	log.Println("Cron Job: Checking for appointments to mark as completed...")

	n := now(s.Hours)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
	ids, err := s.Repo.GetOpenAppointmentIDsPastDate(today)
	if err != nil {
		return fmt.Errorf("cron job: failed to get open appointments past date: %w", err)
	}

	if len(ids) == 0 {
		log.Println("Cron Job: No open appointments found past their date.")
		return nil
	}

	log.Printf("Cron Job: Found %d appointments to mark as completed. IDs: %v", len(ids), ids)

	if err := s.Repo.UpdateAppointmentStatuses(ids, db.AppointmentCompleted); err != nil {
		return fmt.Errorf("cron job: failed to update appointment statuses: %w", err)
	}

	log.Printf("Cron Job: Updated %d appointments to '%s'.", len(ids), db.AppointmentCompleted)
	return nil
}

// SendUpcomingReminders notifies users with a confirmed appointment tomorrow.
func (s *JobService) SendUpcomingReminders() error {
	log.Println("Cron Job: Sending reminders for tomorrow's appointments...")

	tomorrow := now(s.Hours).AddDate(0, 0, 1)
	day := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, s.Hours.Location)

	reminders, err := s.Repo.ListReminders(day)
	if err != nil {
		return fmt.Errorf("cron job: failed to list reminders: %w", err)
	}

	for _, rem := range reminders {
		s.Sender.SendAppointmentReminder(rem)
	}

	log.Printf("Cron Job: Sent %d reminders for %s.", len(reminders), day.Format(schedule.DateLayout))
	return nil
}

// PurgeStalePayments deletes payment records stuck in PENDING for longer than
// the given age.
func (s *JobService) PurgeStalePayments(maxAge time.Duration) (int64, error) {
	deleted, err := s.Repo.DeletePendingPaymentsOlderThan(time.Now().Add(-maxAge))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		log.Printf("Cron Job: Purged %d stale pending payments.", deleted)
	}
	return deleted, nil
}

func now(hours schedule.BusinessHours) time.Time {
	loc := hours.Location
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc)
}
