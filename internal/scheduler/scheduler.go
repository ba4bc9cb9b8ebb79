package scheduler

import (
	"fmt"
	"time"

	"github.com/numenapp/numen-service/internal/config"
	"github.com/numenapp/numen-service/internal/ledger"
	"github.com/numenapp/numen-service/internal/models"
	"github.com/numenapp/numen-service/internal/session"
	"github.com/numenapp/numen-service/internal/utils/email"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Deadlines within this many days trigger a tax reminder
const taxReminderWindowDays = 5

// Scheduler runs the daily reminder pass over the active sessions
type Scheduler struct {
	cron     *cron.Cron
	sessions *session.Manager
	sender   *email.Sender
	log      *logrus.Logger
	cfg      *config.Config
}

// NewScheduler creates the reminder scheduler
func NewScheduler(cfg *config.Config, sessions *session.Manager, sender *email.Sender, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		sessions: sessions,
		sender:   sender,
		log:      log,
		cfg:      cfg,
	}
}

// Start schedules the daily reminder job
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cfg.ReminderCron, s.runOnce); err != nil {
		return fmt.Errorf("failed to schedule reminders: %w", err)
	}
	s.cron.Start()
	s.log.Infof("Reminder scheduler started (%s)", s.cfg.ReminderCron)
	return nil
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) runOnce() {
	now := time.Now()
	s.sessions.Range(func(sess *session.Session) {
		var to, name string
		var pending []models.PendingUtility
		var duePeriod *models.TaxPeriod

		sess.WithLedger(func(l *ledger.Ledger) error {
			to = l.Profile.Email
			name = l.Profile.Name
			for _, p := range l.Utilities.PendingForMonth(now.Year(), now.Month(), now) {
				if p.Status != models.UtilityStatusOK {
					pending = append(pending, p)
				}
			}
			for _, period := range l.Taxes.Calendar(now, 1) {
				if period.DaysRemaining <= taxReminderWindowDays {
					p := period
					duePeriod = &p
				}
			}
			return nil
		})

		if to == "" {
			return
		}
		if len(pending) > 0 {
			if err := s.sender.SendUtilityReminder(to, name, pending); err != nil {
				s.log.Errorf("Utility reminder failed for user %d: %v", sess.UserID, err)
			}
		}
		if duePeriod != nil {
			if err := s.sender.SendTaxDeadlineReminder(to, name, *duePeriod); err != nil {
				s.log.Errorf("Tax reminder failed for user %d: %v", sess.UserID, err)
			}
		}
	})
}
