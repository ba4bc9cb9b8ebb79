package utility

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/numenapp/numen-service/internal/models"
)

// Days-until-due at or below which a pending bill is flagged urgent
const urgentThresholdDays = 3

// Tracker holds utility configurations and the payment history for one
// session
type Tracker struct {
	Configs  []models.UtilityConfig
	Payments []models.UtilityPayment
}

// NewTracker returns a tracker with the default utility set, all
// disabled
func NewTracker() Tracker {
	return Tracker{
		Configs: []models.UtilityConfig{
			{Name: "Water", DueDay: 15},
			{Name: "Electricity", DueDay: 20},
			{Name: "Gas", DueDay: 10},
			{Name: "Internet", DueDay: 5},
			{Name: "Phone", DueDay: 25},
			{Name: "CableTV", DueDay: 1},
		},
	}
}

// Configure upserts a utility configuration. Due days outside [1,31]
// are rejected.
func (t *Tracker) Configure(name string, enabled bool, approxAmount float64, dueDay int, accountRef string) error {
	if name == "" {
		return models.NewValidationError("name", "name is required")
	}
	if dueDay < 1 || dueDay > 31 {
		return models.NewValidationError("due_day", "due day must be between 1 and 31")
	}
	if approxAmount < 0 {
		return models.NewValidationError("approx_amount", "amount must not be negative")
	}
	cfg := models.UtilityConfig{
		Name:         name,
		Enabled:      enabled,
		ApproxAmount: approxAmount,
		DueDay:       dueDay,
		AccountRef:   accountRef,
	}
	for i := range t.Configs {
		if t.Configs[i].Name == name {
			t.Configs[i] = cfg
			return nil
		}
	}
	t.Configs = append(t.Configs, cfg)
	return nil
}

// RegisterPayment appends an immutable payment record. A reference is
// generated when none is supplied; the account reference is copied from
// the utility's configuration.
func (t *Tracker) RegisterPayment(utility string, amount float64, date time.Time, method, reference string) (models.UtilityPayment, error) {
	if amount <= 0 {
		return models.UtilityPayment{}, models.NewValidationError("amount", "amount must be greater than 0")
	}
	if reference == "" {
		reference = uuid.NewString()
	}
	var accountRef string
	for _, cfg := range t.Configs {
		if cfg.Name == utility {
			accountRef = cfg.AccountRef
			break
		}
	}
	payment := models.UtilityPayment{
		ID:         int64(len(t.Payments) + 1),
		Utility:    utility,
		Amount:     amount,
		Date:       date,
		Method:     method,
		Reference:  reference,
		AccountRef: accountRef,
	}
	t.Payments = append(t.Payments, payment)
	return payment, nil
}

// PendingForMonth lists enabled utilities with no payment recorded in
// the given month, classified by urgency relative to today and ordered
// by ascending days-remaining. A configured due day past the month's
// end is moved to the month's last day.
func (t *Tracker) PendingForMonth(year int, month time.Month, today time.Time) []models.PendingUtility {
	paid := make(map[string]bool)
	for _, p := range t.Payments {
		if p.Date.Year() == year && p.Date.Month() == month {
			paid[p.Utility] = true
		}
	}
	today = truncateToDay(today)

	var pending []models.PendingUtility
	for _, cfg := range t.Configs {
		if !cfg.Enabled || paid[cfg.Name] {
			continue
		}
		due := dueDateFor(year, month, cfg.DueDay)
		days := int(due.Sub(today).Hours() / 24)
		pending = append(pending, models.PendingUtility{
			Utility:       cfg.Name,
			ApproxAmount:  cfg.ApproxAmount,
			DueDate:       due,
			DaysRemaining: days,
			Status:        classify(days),
		})
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].DaysRemaining < pending[j].DaysRemaining
	})
	return pending
}

// TotalPendingAmount sums the approximate amounts of a pending list
func TotalPendingAmount(pending []models.PendingUtility) float64 {
	var total float64
	for _, p := range pending {
		total += p.ApproxAmount
	}
	return total
}

// HistorySummary aggregates the payment history. The monthly average
// divides by the number of distinct months with at least one payment.
func (t *Tracker) HistorySummary() models.UtilityHistorySummary {
	months := make(map[string]bool)
	var total float64
	for _, p := range t.Payments {
		total += p.Amount
		months[p.Date.Format("2006-01")] = true
	}
	avg := 0.0
	if len(months) > 0 {
		avg = total / float64(len(months))
	}
	return models.UtilityHistorySummary{
		TotalPaid:      total,
		MonthlyAverage: avg,
		PaymentCount:   len(t.Payments),
	}
}

func classify(days int) string {
	switch {
	case days < 0:
		return models.UtilityStatusOverdue
	case days <= urgentThresholdDays:
		return models.UtilityStatusUrgent
	default:
		return models.UtilityStatusOK
	}
}

func dueDateFor(year int, month time.Month, day int) time.Time {
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
