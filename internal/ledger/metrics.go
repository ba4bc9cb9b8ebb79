package ledger

import "github.com/numenapp/numen-service/internal/models"

// Derived metrics. All are pure reads of the current ledger snapshot.

// TotalIncome returns fixed income plus the sum of variable entries
func (l *Ledger) TotalIncome() float64 {
	total := l.FixedIncome
	for _, e := range l.VariableIncomes {
		total += e.Amount
	}
	return total
}

// TotalPlannedExpense sums the planned amounts across the category set
func (l *Ledger) TotalPlannedExpense() float64 {
	var total float64
	for _, amount := range l.PlannedExpenses {
		total += amount
	}
	return total
}

// AvailableBalance is total income minus total planned expense. It may
// be negative.
func (l *Ledger) AvailableBalance() float64 {
	return l.TotalIncome() - l.TotalPlannedExpense()
}

// GoalProgressPercent reports progress of the available balance toward
// the monthly goal, clamped to [0,100]. A zero or unset goal yields 0.
func (l *Ledger) GoalProgressPercent() float64 {
	goal := l.Profile.MonthlyGoal
	if goal <= 0 {
		return 0
	}
	p := l.AvailableBalance() / goal * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// Summary builds the dashboard metric snapshot
func (l *Ledger) Summary() models.DashboardSummary {
	planned := make([]models.PlannedExpense, 0, len(l.PlannedExpenses))
	for _, c := range models.ExpenseCategories() {
		planned = append(planned, models.PlannedExpense{Category: c, Amount: l.PlannedExpenses[c]})
	}
	goals := make([]models.SavingsGoal, len(l.Goals))
	copy(goals, l.Goals)
	return models.DashboardSummary{
		TotalIncome:         l.TotalIncome(),
		TotalPlannedExpense: l.TotalPlannedExpense(),
		AvailableBalance:    l.AvailableBalance(),
		MonthlyGoal:         l.Profile.MonthlyGoal,
		GoalProgressPercent: l.GoalProgressPercent(),
		PlannedExpenses:     planned,
		Goals:               goals,
	}
}
