package models

import "time"

// UtilityConfig is the per-utility tracking configuration
type UtilityConfig struct {
	Name         string  `json:"name"`
	Enabled      bool    `json:"enabled"`
	ApproxAmount float64 `json:"approx_amount"`
	DueDay       int     `json:"due_day"` // 1..31, clamped to the month's last day at computation time
	AccountRef   string  `json:"account_ref"`
}

// UtilityPayment is an immutable record of one paid utility bill
type UtilityPayment struct {
	ID         int64     `json:"id"`
	Utility    string    `json:"utility"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference"`
	AccountRef string    `json:"account_ref"`
}

// Urgency classification for a pending utility bill
const (
	UtilityStatusOverdue = "OVERDUE"
	UtilityStatusUrgent  = "URGENT"
	UtilityStatusOK      = "OK"
)

// PendingUtility is an enabled utility with no payment recorded for the
// queried month
type PendingUtility struct {
	Utility       string    `json:"utility"`
	ApproxAmount  float64   `json:"approx_amount"`
	DueDate       time.Time `json:"due_date"`
	DaysRemaining int       `json:"days_remaining"`
	Status        string    `json:"status"`
}

// UtilityHistorySummary aggregates the payment history
type UtilityHistorySummary struct {
	TotalPaid      float64 `json:"total_paid"`
	MonthlyAverage float64 `json:"monthly_average"`
	PaymentCount   int     `json:"payment_count"`
}
