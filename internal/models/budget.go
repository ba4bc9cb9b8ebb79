package models

import "time"

// ExpenseCategory identifies one of the fixed planned-expense categories
type ExpenseCategory string

const (
	CategoryFood      ExpenseCategory = "Food"
	CategoryTransport ExpenseCategory = "Transport"
	CategoryUtilities ExpenseCategory = "Utilities"
	CategorySavings   ExpenseCategory = "Savings"
	CategoryOther     ExpenseCategory = "Other"
)

// ExpenseCategories returns the fixed category set in display order.
// Categories are not added or removed after session initialization.
func ExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryFood,
		CategoryTransport,
		CategoryUtilities,
		CategorySavings,
		CategoryOther,
	}
}

// VariableIncome is a one-off income entry
type VariableIncome struct {
	ID     int64     `json:"id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
}

// PlannedExpense is the budgeted amount for one category
type PlannedExpense struct {
	Category ExpenseCategory `json:"category"`
	Amount   float64         `json:"amount"`
}

// SavingsGoal tracks progress toward a named target amount
type SavingsGoal struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Target    float64   `json:"target"`
	Current   float64   `json:"current"`
	StartDate time.Time `json:"start_date"`
}

// ProgressPercent returns the goal's completion percentage, clamped to
// 100 for display. The stored current amount may exceed the target.
func (g SavingsGoal) ProgressPercent() float64 {
	if g.Target <= 0 {
		return 0
	}
	p := g.Current / g.Target * 100
	if p > 100 {
		return 100
	}
	return p
}

// DashboardSummary carries the derived metrics shown on the dashboard
type DashboardSummary struct {
	TotalIncome         float64          `json:"total_income"`
	TotalPlannedExpense float64          `json:"total_planned_expense"`
	AvailableBalance    float64          `json:"available_balance"`
	MonthlyGoal         float64          `json:"monthly_goal"`
	GoalProgressPercent float64          `json:"goal_progress_percent"`
	PlannedExpenses     []PlannedExpense `json:"planned_expenses"`
	Goals               []SavingsGoal    `json:"goals"`
}
