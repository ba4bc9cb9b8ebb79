package service

import (
	"context"
	"time"

	"github.com/numenapp/numen-service/internal/ledger"
	"github.com/numenapp/numen-service/internal/models"
	"github.com/numenapp/numen-service/internal/utility"
)

// UtilityOverview aggregates configuration and payment history
type UtilityOverview struct {
	Configs  []models.UtilityConfig       `json:"configs"`
	Payments []models.UtilityPayment      `json:"payments"`
	Summary  models.UtilityHistorySummary `json:"summary"`
}

// PendingUtilitiesResult is the month's outstanding bills plus their
// combined approximate amount
type PendingUtilitiesResult struct {
	Year         int                     `json:"year"`
	Month        int                     `json:"month"`
	Pending      []models.PendingUtility `json:"pending"`
	TotalPending float64                 `json:"total_pending"`
}

// ConfigureUtility upserts a utility configuration
func (s *Service) ConfigureUtility(ctx context.Context, req models.ConfigureUtilityRequest) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		return l.Utilities.Configure(req.Name, req.Enabled, req.ApproxAmount, req.DueDay, req.AccountRef)
	})
	if err != nil {
		return err
	}
	s.persist("utility config", s.store.UpsertUtilityConfig(ctx, sess.UserID, models.UtilityConfig{
		Name:         req.Name,
		Enabled:      req.Enabled,
		ApproxAmount: req.ApproxAmount,
		DueDay:       req.DueDay,
		AccountRef:   req.AccountRef,
	}))
	return nil
}

// RegisterUtilityPayment records a paid utility bill
func (s *Service) RegisterUtilityPayment(ctx context.Context, req models.RegisterUtilityPaymentRequest) (models.UtilityPayment, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.UtilityPayment{}, err
	}
	date := req.Date
	if date.IsZero() {
		date = time.Now()
	}
	var payment models.UtilityPayment
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		payment, err = l.Utilities.RegisterPayment(req.Utility, req.Amount, date, req.Method, req.Reference)
		return err
	})
	if err != nil {
		return models.UtilityPayment{}, err
	}
	s.log.Infof("Utility payment registered for user %d: %s %.2f", sess.UserID, payment.Utility, payment.Amount)
	s.persist("utility payment", s.store.InsertUtilityPayment(ctx, sess.UserID, payment))
	return payment, nil
}

// PendingUtilities lists the month's unpaid enabled utilities. Zero
// year/month default to the current month.
func (s *Service) PendingUtilities(ctx context.Context, year int, month time.Month) (PendingUtilitiesResult, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return PendingUtilitiesResult{}, err
	}
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	result := PendingUtilitiesResult{Year: year, Month: int(month)}
	sess.WithLedger(func(l *ledger.Ledger) error {
		result.Pending = l.Utilities.PendingForMonth(year, month, now)
		result.TotalPending = utility.TotalPendingAmount(result.Pending)
		return nil
	})
	return result, nil
}

// Utilities returns the session's utility overview
func (s *Service) Utilities(ctx context.Context) (UtilityOverview, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return UtilityOverview{}, err
	}
	var overview UtilityOverview
	sess.WithLedger(func(l *ledger.Ledger) error {
		overview.Configs = append(overview.Configs, l.Utilities.Configs...)
		overview.Payments = append(overview.Payments, l.Utilities.Payments...)
		overview.Summary = l.Utilities.HistorySummary()
		return nil
	})
	return overview, nil
}
