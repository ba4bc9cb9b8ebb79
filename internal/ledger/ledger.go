package ledger

import (
	"time"

	"github.com/numenapp/numen-service/internal/models"
	"github.com/numenapp/numen-service/internal/payroll"
	"github.com/numenapp/numen-service/internal/tax"
	"github.com/numenapp/numen-service/internal/utility"
)

// Ledger is the per-session financial state. One instance exists per
// active session; callers serialize access through the owning session.
type Ledger struct {
	Profile         models.UserProfile
	FixedIncome     float64
	VariableIncomes []models.VariableIncome
	PlannedExpenses map[models.ExpenseCategory]float64
	Goals           []models.SavingsGoal

	Payroll   payroll.Book
	Utilities utility.Tracker
	Taxes     tax.Book
}

// New initializes a ledger for the given profile with the fixed expense
// category set zeroed and the default utility configuration.
func New(profile models.UserProfile) *Ledger {
	planned := make(map[models.ExpenseCategory]float64, len(models.ExpenseCategories()))
	for _, c := range models.ExpenseCategories() {
		planned[c] = 0
	}
	return &Ledger{
		Profile:         profile,
		PlannedExpenses: planned,
		Payroll:         payroll.NewBook(),
		Utilities:       utility.NewTracker(),
	}
}

// UpdateProfile mutates the session profile
func (l *Ledger) UpdateProfile(name, occupation string, monthlyGoal float64) error {
	if name == "" {
		return models.NewValidationError("name", "name is required")
	}
	if monthlyGoal < 0 {
		return models.NewValidationError("monthly_goal", "monthly goal must not be negative")
	}
	l.Profile.Name = name
	l.Profile.Occupation = occupation
	l.Profile.MonthlyGoal = monthlyGoal
	return nil
}

// SetFixedIncome replaces the fixed monthly income
func (l *Ledger) SetFixedIncome(amount float64) error {
	if amount < 0 {
		return models.NewValidationError("amount", "fixed income must not be negative")
	}
	l.FixedIncome = amount
	return nil
}

// AddVariableIncome appends a one-off income entry
func (l *Ledger) AddVariableIncome(amount float64, date time.Time, label string) (models.VariableIncome, error) {
	if amount <= 0 {
		return models.VariableIncome{}, models.NewValidationError("amount", "amount must be greater than 0")
	}
	entry := models.VariableIncome{
		ID:     nextIncomeID(l.VariableIncomes),
		Amount: amount,
		Date:   date,
		Label:  label,
	}
	l.VariableIncomes = append(l.VariableIncomes, entry)
	return entry, nil
}

// RemoveVariableIncome removes the entry at the given position and
// returns it
func (l *Ledger) RemoveVariableIncome(index int) (models.VariableIncome, error) {
	if index < 0 || index >= len(l.VariableIncomes) {
		return models.VariableIncome{}, models.NewValidationError("index", "no income entry at index %d", index)
	}
	entry := l.VariableIncomes[index]
	l.VariableIncomes = append(l.VariableIncomes[:index], l.VariableIncomes[index+1:]...)
	return entry, nil
}

// SetPlannedExpense updates the budgeted amount for one category. The
// category set is fixed per session.
func (l *Ledger) SetPlannedExpense(category models.ExpenseCategory, amount float64) error {
	if _, ok := l.PlannedExpenses[category]; !ok {
		return models.NewValidationError("category", "unknown category %q", category)
	}
	if amount < 0 {
		return models.NewValidationError("amount", "amount must not be negative")
	}
	l.PlannedExpenses[category] = amount
	return nil
}

// AddGoal creates a savings goal with an optional initial amount
func (l *Ledger) AddGoal(name string, target, initial float64, startDate time.Time) (models.SavingsGoal, error) {
	if name == "" {
		return models.SavingsGoal{}, models.NewValidationError("name", "name is required")
	}
	if target <= 0 {
		return models.SavingsGoal{}, models.NewValidationError("target", "target must be greater than 0")
	}
	if initial < 0 {
		return models.SavingsGoal{}, models.NewValidationError("initial", "initial amount must not be negative")
	}
	goal := models.SavingsGoal{
		ID:        nextGoalID(l.Goals),
		Name:      name,
		Target:    target,
		Current:   initial,
		StartDate: startDate,
	}
	l.Goals = append(l.Goals, goal)
	return goal, nil
}

// DepositToGoal increments a goal's current amount. The current amount
// may exceed the target; display clamps at 100%.
func (l *Ledger) DepositToGoal(index int, amount float64) (models.SavingsGoal, error) {
	if index < 0 || index >= len(l.Goals) {
		return models.SavingsGoal{}, models.NewValidationError("index", "no goal at index %d", index)
	}
	if amount <= 0 {
		return models.SavingsGoal{}, models.NewValidationError("amount", "amount must be greater than 0")
	}
	l.Goals[index].Current += amount
	return l.Goals[index], nil
}

// RemoveGoal removes the goal at the given position and returns it
func (l *Ledger) RemoveGoal(index int) (models.SavingsGoal, error) {
	if index < 0 || index >= len(l.Goals) {
		return models.SavingsGoal{}, models.NewValidationError("index", "no goal at index %d", index)
	}
	goal := l.Goals[index]
	l.Goals = append(l.Goals[:index], l.Goals[index+1:]...)
	return goal, nil
}

func nextIncomeID(entries []models.VariableIncome) int64 {
	var max int64
	for _, e := range entries {
		if e.ID > max {
			max = e.ID
		}
	}
	return max + 1
}

func nextGoalID(goals []models.SavingsGoal) int64 {
	var max int64
	for _, g := range goals {
		if g.ID > max {
			max = g.ID
		}
	}
	return max + 1
}
