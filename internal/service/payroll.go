package service

import (
	"context"
	"time"

	"github.com/numenapp/numen-service/internal/ledger"
	"github.com/numenapp/numen-service/internal/models"
)

// PayrollOverview aggregates the roster and run history
type PayrollOverview struct {
	Workers          []models.Worker      `json:"workers"`
	Runs             []models.PayrollRun  `json:"runs"`
	TotalPaid        float64              `json:"total_paid"`
	LevyConfig       models.LevyConfig    `json:"levy_config"`
	LevyPayments     []models.LevyPayment `json:"levy_payments"`
	LeviesRegistered float64              `json:"levies_registered"`
	LeviesPaid       float64              `json:"levies_paid"`
}

// AddWorker appends a worker to the session roster
func (s *Service) AddWorker(ctx context.Context, req models.AddWorkerRequest) (models.Worker, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.Worker{}, err
	}
	hireDate := req.HireDate
	if hireDate.IsZero() {
		hireDate = time.Now()
	}
	var worker models.Worker
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		worker, err = l.Payroll.AddWorker(req.Name, req.Role, req.DailyRate, req.Phone, hireDate)
		return err
	})
	if err != nil {
		return models.Worker{}, err
	}
	s.log.Infof("Worker %q added for user %d", worker.Name, sess.UserID)
	s.persist("worker", s.store.InsertWorker(ctx, sess.UserID, worker))
	return worker, nil
}

// DeactivateWorker soft-deletes a worker
func (s *Service) DeactivateWorker(ctx context.Context, workerID int64) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		return l.Payroll.DeactivateWorker(workerID)
	})
	if err != nil {
		return err
	}
	s.persist("deactivate worker", s.store.SetWorkerActive(ctx, sess.UserID, workerID, false))
	return nil
}

// RecordPayrollRun computes and stores a weekly payroll run
func (s *Service) RecordPayrollRun(ctx context.Context, req models.RecordPayrollRunRequest) (models.PayrollRun, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.PayrollRun{}, err
	}
	weekStart := req.WeekStart
	if weekStart.IsZero() {
		weekStart = time.Now()
	}
	var run models.PayrollRun
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		run, err = l.Payroll.RecordRun(weekStart, req.Days)
		return err
	})
	if err != nil {
		return models.PayrollRun{}, err
	}
	s.log.Infof("Payroll run recorded for user %d: %.2f", sess.UserID, run.Total)
	s.persist("payroll run", s.store.InsertPayrollRun(ctx, sess.UserID, run))
	return run, nil
}

// Payroll returns the session's payroll overview
func (s *Service) Payroll(ctx context.Context) (PayrollOverview, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return PayrollOverview{}, err
	}
	var overview PayrollOverview
	sess.WithLedger(func(l *ledger.Ledger) error {
		overview.Workers = append(overview.Workers, l.Payroll.Workers...)
		overview.Runs = append(overview.Runs, l.Payroll.Runs...)
		overview.TotalPaid = l.Payroll.TotalPaid()
		overview.LevyConfig = l.Payroll.LevyConfig
		overview.LevyPayments = append(overview.LevyPayments, l.Payroll.LevyPayments...)
		overview.LeviesRegistered, overview.LeviesPaid = l.Payroll.LevyTotals()
		return nil
	})
	return overview, nil
}

// SetLevyConfig updates the payroll levy configuration
func (s *Service) SetLevyConfig(ctx context.Context, req models.SetLevyConfigRequest) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		return l.Payroll.SetLevyConfig(req.Config)
	})
	if err != nil {
		return err
	}
	s.persist("levy config", s.store.SaveLevyConfig(ctx, sess.UserID, req.Config))
	return nil
}

// ComputeLevies applies the enabled levies to a stored run without
// mutating anything
func (s *Service) ComputeLevies(ctx context.Context, runIndex int) (models.LevyBreakdown, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.LevyBreakdown{}, err
	}
	var breakdown models.LevyBreakdown
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		breakdown, err = l.Payroll.ComputeLevies(runIndex)
		return err
	})
	return breakdown, err
}

// RegisterLevyPayment stores a tributary payment for a run
func (s *Service) RegisterLevyPayment(ctx context.Context, runIndex int) (models.LevyPayment, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.LevyPayment{}, err
	}
	var payment models.LevyPayment
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		payment, err = l.Payroll.RegisterLevyPayment(runIndex, time.Now())
		return err
	})
	if err != nil {
		return models.LevyPayment{}, err
	}
	s.log.Infof("Levy payment registered for user %d: %.2f", sess.UserID, payment.Total)
	s.persist("levy payment", s.store.InsertLevyPayment(ctx, sess.UserID, payment))
	return payment, nil
}

// MarkLevyPaymentPaid flips a tributary payment to paid. Idempotent.
func (s *Service) MarkLevyPaymentPaid(ctx context.Context, index int) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	changed := false
	var paymentID int64
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		changed, err = l.Payroll.MarkLevyPaymentPaid(index)
		if err == nil && changed {
			paymentID = l.Payroll.LevyPayments[index].ID
		}
		return err
	})
	if err != nil {
		return err
	}
	if changed {
		s.persist("levy payment paid", s.store.MarkLevyPaymentPaid(ctx, sess.UserID, paymentID))
	}
	return nil
}
