package payroll

import (
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

// Upper bounds per levy, matching the configuration ranges of the
// original payroll form.
const (
	maxISRPercent  = 35.0
	maxIVAPercent  = 16.0
	maxIMSSPercent = 10.0
)

// SetLevyConfig replaces the levy configuration after range validation
func (b *Book) SetLevyConfig(cfg models.LevyConfig) error {
	if err := checkRate("isr", cfg.ISR, maxISRPercent); err != nil {
		return err
	}
	if err := checkRate("iva", cfg.IVA, maxIVAPercent); err != nil {
		return err
	}
	if err := checkRate("imss", cfg.IMSS, maxIMSSPercent); err != nil {
		return err
	}
	b.LevyConfig = cfg
	return nil
}

func checkRate(field string, r models.LevyRate, max float64) error {
	if r.Percent < 0 || r.Percent > max {
		return models.NewValidationError(field, "percent must be between 0 and %.1f", max)
	}
	return nil
}

// ComputeLevies applies the enabled levies to the selected run's total.
// It stores nothing; repeated calls over the same run give the same
// result.
func (b *Book) ComputeLevies(runIndex int) (models.LevyBreakdown, error) {
	if runIndex < 0 || runIndex >= len(b.Runs) {
		return models.LevyBreakdown{}, models.NewValidationError("run", "no payroll run at index %d", runIndex)
	}
	run := b.Runs[runIndex]
	breakdown := models.LevyBreakdown{
		WeekStart: run.WeekStart,
		Base:      run.Total,
	}
	for _, levy := range []struct {
		name string
		rate models.LevyRate
	}{
		{models.LevyISR, b.LevyConfig.ISR},
		{models.LevyIVA, b.LevyConfig.IVA},
		{models.LevyIMSS, b.LevyConfig.IMSS},
	} {
		if !levy.rate.Enabled {
			continue
		}
		line := models.LevyLine{
			Name:    levy.name,
			Percent: levy.rate.Percent,
			Amount:  run.Total * levy.rate.Percent / 100,
		}
		breakdown.Lines = append(breakdown.Lines, line)
		breakdown.Total += line.Amount
	}
	return breakdown, nil
}

// RegisterLevyPayment appends a tributary payment record for the
// selected run with paid=false
func (b *Book) RegisterLevyPayment(runIndex int, now time.Time) (models.LevyPayment, error) {
	breakdown, err := b.ComputeLevies(runIndex)
	if err != nil {
		return models.LevyPayment{}, err
	}
	if len(breakdown.Lines) == 0 {
		return models.LevyPayment{}, models.NewValidationError("levies", "no levies enabled")
	}
	payment := models.LevyPayment{
		ID:        int64(len(b.LevyPayments) + 1),
		Date:      now,
		WeekStart: breakdown.WeekStart,
		Base:      breakdown.Base,
		Lines:     breakdown.Lines,
		Total:     breakdown.Total,
	}
	b.LevyPayments = append(b.LevyPayments, payment)
	return payment, nil
}

// MarkLevyPaymentPaid flips a payment's paid flag. Marking an already
// paid record is a no-op; the returned flag reports whether anything
// changed.
func (b *Book) MarkLevyPaymentPaid(index int) (bool, error) {
	if index < 0 || index >= len(b.LevyPayments) {
		return false, models.NewValidationError("index", "no levy payment at index %d", index)
	}
	if b.LevyPayments[index].Paid {
		return false, nil
	}
	b.LevyPayments[index].Paid = true
	return true, nil
}

// LevyTotals reports registered and paid levy amounts
func (b *Book) LevyTotals() (registered, paid float64) {
	for _, p := range b.LevyPayments {
		registered += p.Total
		if p.Paid {
			paid += p.Total
		}
	}
	return registered, paid
}
