package email

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/numenapp/numen-service/internal/config"
	"github.com/numenapp/numen-service/internal/models"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendUtilityReminder sends a reminder listing the month's overdue and
// urgent utility bills
func (s *Sender) SendUtilityReminder(to, name string, pending []models.PendingUtility) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Utility Bills Due Soon"

	body := fmt.Sprintf("Dear %s,\n\nThe following utility bills need your attention:\n\n", name)
	for _, p := range pending {
		switch p.Status {
		case models.UtilityStatusOverdue:
			body += fmt.Sprintf("- %s: %.2f was due on %s and is OVERDUE.\n",
				p.Utility, p.ApproxAmount, p.DueDate.Format("2006-01-02"))
		default:
			body += fmt.Sprintf("- %s: %.2f is due on %s (%d days left).\n",
				p.Utility, p.ApproxAmount, p.DueDate.Format("2006-01-02"), p.DaysRemaining)
		}
	}
	body += "\nBest regards,\nNumen"
	e.Text = []byte(body)

	return s.send(e, to)
}

// SendTaxDeadlineReminder sends a reminder for an upcoming declaration
// deadline
func (s *Sender) SendTaxDeadlineReminder(to, name string, period models.TaxPeriod) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	if period.DaysRemaining < 0 {
		e.Subject = "Overdue Tax Declaration"
	} else {
		e.Subject = "Upcoming Tax Declaration Deadline"
	}

	body := fmt.Sprintf("Dear %s,\n\n", name)
	if period.DaysRemaining < 0 {
		body += fmt.Sprintf(
			"The declaration deadline for %s was %s and has passed.\n"+
				"Please file as soon as possible to avoid penalties.\n",
			period.Period, period.Deadline.Format("2006-01-02"),
		)
	} else {
		body += fmt.Sprintf(
			"The declaration deadline for %s is %s (%d days left).\n",
			period.Period, period.Deadline.Format("2006-01-02"), period.DaysRemaining,
		)
		if period.HasDeclaration {
			body += "You have an unpaid declaration saved for this period.\n"
		} else {
			body += "No declaration has been saved for this period yet.\n"
		}
	}
	body += "\nBest regards,\nNumen"
	e.Text = []byte(body)

	return s.send(e, to)
}

func (s *Sender) send(e *email.Email, to string) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
