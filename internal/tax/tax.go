package tax

import (
	"math"
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

// IVA applies as a flat rate on gross income
const ivaRate = 0.16

// Simplified monthly ISR table. Each bracket carries the fixed fee for
// the brackets below it plus a marginal rate over its lower bound.
var isrBrackets = []struct {
	upper float64
	fixed float64
	rate  float64
	lower float64
}{
	{7735.00, 0, 0.0192, 0},
	{65651.00, 148.51, 0.064, 7735.00},
	{115375.00, 3855.14, 0.1088, 65651.00},
	{134119.00, 9265.20, 0.16, 115375.00},
	{math.Inf(1), 12264.16, 0.1792, 134119.00},
}

// Book holds the fiscal profile, saved declarations, and the tax
// payment history for one session
type Book struct {
	Profile      models.FiscalProfile
	Declarations []models.TaxDeclaration
	Payments     []models.TaxPayment
}

// UpdateProfile replaces the fiscal profile
func (b *Book) UpdateProfile(taxID, regime string) {
	b.Profile = models.FiscalProfile{TaxID: taxID, Regime: regime}
}

// Estimate computes ISR and IVA for one month. The taxable base floors
// at 0 when deductibles exceed income, and withholding never drives ISR
// negative.
func Estimate(income, deductibles, withheld float64) (models.TaxEstimate, error) {
	if income < 0 {
		return models.TaxEstimate{}, models.NewValidationError("income", "income must not be negative")
	}
	if deductibles < 0 {
		return models.TaxEstimate{}, models.NewValidationError("deductibles", "deductibles must not be negative")
	}
	if withheld < 0 {
		return models.TaxEstimate{}, models.NewValidationError("withheld", "withheld must not be negative")
	}

	base := income - deductibles
	if base < 0 {
		base = 0
	}

	isr := isrFor(base) - withheld
	if isr < 0 {
		isr = 0
	}
	iva := income * ivaRate

	return models.TaxEstimate{
		Income:      income,
		Deductibles: deductibles,
		Withheld:    withheld,
		TaxableBase: base,
		ISR:         isr,
		IVA:         iva,
		Total:       isr + iva,
	}, nil
}

func isrFor(base float64) float64 {
	for _, b := range isrBrackets {
		if base <= b.upper {
			return b.fixed + (base-b.lower)*b.rate
		}
	}
	return 0 // unreachable: last bracket is unbounded
}

// SaveDeclaration appends the estimate as a declaration with paid=false
func (b *Book) SaveDeclaration(period string, est models.TaxEstimate, now time.Time) (models.TaxDeclaration, error) {
	if period == "" {
		return models.TaxDeclaration{}, models.NewValidationError("period", "period is required")
	}
	decl := models.TaxDeclaration{
		ID:          int64(len(b.Declarations) + 1),
		Period:      period,
		Income:      est.Income,
		Deductibles: est.Deductibles,
		ISR:         est.ISR,
		IVA:         est.IVA,
		Total:       est.Total,
		Date:        now,
	}
	b.Declarations = append(b.Declarations, decl)
	return decl, nil
}

// MarkPaid flips a declaration to paid and records the payment in the
// history. Unpaid -> Paid is the only transition; marking a paid
// declaration again changes nothing and appends no second record. The
// returned flag reports whether the transition happened.
func (b *Book) MarkPaid(index int, now time.Time) (models.TaxDeclaration, bool, error) {
	if index < 0 || index >= len(b.Declarations) {
		return models.TaxDeclaration{}, false, models.NewValidationError("index", "no declaration at index %d", index)
	}
	if b.Declarations[index].Paid {
		return b.Declarations[index], false, nil
	}
	b.Declarations[index].Paid = true
	decl := b.Declarations[index]
	b.Payments = append(b.Payments, models.TaxPayment{
		ID:     int64(len(b.Payments) + 1),
		Date:   now,
		Period: decl.Period,
		Kind:   "ISR + IVA",
		Amount: decl.Total,
	})
	return decl, true, nil
}

// Calendar lists the next n monthly periods with their declaration
// deadlines (day 17 of the following month) and whether an unpaid
// declaration exists for the period.
func (b *Book) Calendar(now time.Time, n int) []models.TaxPeriod {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	periods := make([]models.TaxPeriod, 0, n)
	for i := 0; i < n; i++ {
		period := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		deadline := time.Date(period.Year(), period.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 16)
		label := periodLabel(period)
		declared := false
		for _, d := range b.Declarations {
			if d.Period == label && !d.Paid {
				declared = true
				break
			}
		}
		periods = append(periods, models.TaxPeriod{
			Period:         label,
			Deadline:       deadline,
			DaysRemaining:  int(deadline.Sub(today).Hours() / 24),
			HasDeclaration: declared,
		})
	}
	return periods
}

// HistorySummary aggregates the saved declarations
func (b *Book) HistorySummary() models.TaxHistorySummary {
	var s models.TaxHistorySummary
	for _, d := range b.Declarations {
		s.TotalISR += d.ISR
		s.TotalIVA += d.IVA
		if d.Paid {
			s.TotalPaid += d.Total
		} else {
			s.Unpaid++
		}
	}
	return s
}

func periodLabel(t time.Time) string {
	return t.Format("January 2006")
}
