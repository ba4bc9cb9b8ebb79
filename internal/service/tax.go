package service

import (
	"context"
	"time"

	"github.com/numenapp/numen-service/internal/export"
	"github.com/numenapp/numen-service/internal/ledger"
	"github.com/numenapp/numen-service/internal/models"
	"github.com/numenapp/numen-service/internal/tax"
)

// TaxOverview aggregates the fiscal profile, declarations, and history
type TaxOverview struct {
	Profile      models.FiscalProfile     `json:"profile"`
	Declarations []models.TaxDeclaration  `json:"declarations"`
	Payments     []models.TaxPayment      `json:"payments"`
	Summary      models.TaxHistorySummary `json:"summary"`
}

// EstimateTax runs the bracketed computation without touching state
func (s *Service) EstimateTax(ctx context.Context, req models.TaxEstimateRequest) (models.TaxEstimate, error) {
	if _, err := s.sessionFromContext(ctx); err != nil {
		return models.TaxEstimate{}, err
	}
	return tax.Estimate(req.Income, req.Deductibles, req.Withheld)
}

// SaveDeclaration computes the estimate and appends it as an unpaid
// declaration
func (s *Service) SaveDeclaration(ctx context.Context, req models.TaxEstimateRequest) (models.TaxDeclaration, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.TaxDeclaration{}, err
	}
	est, err := tax.Estimate(req.Income, req.Deductibles, req.Withheld)
	if err != nil {
		return models.TaxDeclaration{}, err
	}
	var decl models.TaxDeclaration
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		decl, err = l.Taxes.SaveDeclaration(req.Period, est, time.Now())
		return err
	})
	if err != nil {
		return models.TaxDeclaration{}, err
	}
	s.log.Infof("Declaration saved for user %d: %s %.2f", sess.UserID, decl.Period, decl.Total)
	s.persist("tax declaration", s.store.InsertTaxDeclaration(ctx, sess.UserID, decl))
	return decl, nil
}

// MarkDeclarationPaid transitions a declaration to paid. Idempotent:
// repeated calls change nothing and append no duplicate payment.
func (s *Service) MarkDeclarationPaid(ctx context.Context, index int) (models.TaxDeclaration, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return models.TaxDeclaration{}, err
	}
	var decl models.TaxDeclaration
	changed := false
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		decl, changed, err = l.Taxes.MarkPaid(index, time.Now())
		if err == nil && changed {
			payment := l.Taxes.Payments[len(l.Taxes.Payments)-1]
			s.persist("tax payment", s.store.InsertTaxPayment(ctx, sess.UserID, payment))
		}
		return err
	})
	if err != nil {
		return models.TaxDeclaration{}, err
	}
	if changed {
		s.log.Infof("Declaration %s marked paid for user %d", decl.Period, sess.UserID)
		s.persist("declaration paid", s.store.MarkDeclarationPaid(ctx, sess.UserID, decl.ID))
	}
	return decl, nil
}

// UpdateFiscalProfile replaces the session's tax identity
func (s *Service) UpdateFiscalProfile(ctx context.Context, req models.UpdateFiscalProfileRequest) error {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return err
	}
	sess.WithLedger(func(l *ledger.Ledger) error {
		l.Taxes.UpdateProfile(req.TaxID, req.Regime)
		return nil
	})
	s.persist("fiscal profile", s.store.UpdateFiscalProfile(ctx, sess.UserID, req.TaxID, req.Regime))
	return nil
}

// Taxes returns the session's tax overview
func (s *Service) Taxes(ctx context.Context) (TaxOverview, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return TaxOverview{}, err
	}
	var overview TaxOverview
	sess.WithLedger(func(l *ledger.Ledger) error {
		overview.Profile = l.Taxes.Profile
		overview.Declarations = append(overview.Declarations, l.Taxes.Declarations...)
		overview.Payments = append(overview.Payments, l.Taxes.Payments...)
		overview.Summary = l.Taxes.HistorySummary()
		return nil
	})
	return overview, nil
}

// TaxCalendar lists the next n declaration periods and their deadlines
func (s *Service) TaxCalendar(ctx context.Context, n int) ([]models.TaxPeriod, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		n = 3
	}
	var periods []models.TaxPeriod
	sess.WithLedger(func(l *ledger.Ledger) error {
		periods = l.Taxes.Calendar(time.Now(), n)
		return nil
	})
	return periods, nil
}

// ExportDeclarationsXML renders the session's declarations as an XML
// document
func (s *Service) ExportDeclarationsXML(ctx context.Context) ([]byte, error) {
	sess, err := s.sessionFromContext(ctx)
	if err != nil {
		return nil, err
	}
	var doc []byte
	err = sess.WithLedger(func(l *ledger.Ledger) error {
		doc, err = export.DeclarationsXML(l.Taxes.Profile, l.Taxes.Declarations)
		return err
	})
	return doc, err
}
