package models

import "time"

// FiscalProfile holds the user's tax identity
type FiscalProfile struct {
	TaxID  string `json:"tax_id"`
	Regime string `json:"regime"`
}

// TaxEstimate is the result of one estimate computation
type TaxEstimate struct {
	Income      float64 `json:"income"`
	Deductibles float64 `json:"deductibles"`
	Withheld    float64 `json:"withheld"`
	TaxableBase float64 `json:"taxable_base"`
	ISR         float64 `json:"isr"`
	IVA         float64 `json:"iva"`
	Total       float64 `json:"total"`
}

// TaxDeclaration is a saved estimate for one monthly period. Paid flips
// true exactly once and never reverts.
type TaxDeclaration struct {
	ID          int64     `json:"id"`
	Period      string    `json:"period"` // month label, e.g. "March 2026"
	Income      float64   `json:"income"`
	Deductibles float64   `json:"deductibles"`
	ISR         float64   `json:"isr"`
	IVA         float64   `json:"iva"`
	Total       float64   `json:"total"`
	Paid        bool      `json:"paid"`
	Date        time.Time `json:"date"`
}

// TaxPayment is one entry in the tax payment history
type TaxPayment struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Period string    `json:"period"`
	Kind   string    `json:"kind"`
	Amount float64   `json:"amount"`
}

// TaxPeriod is one upcoming declaration period on the pay calendar
type TaxPeriod struct {
	Period         string    `json:"period"`
	Deadline       time.Time `json:"deadline"`
	DaysRemaining  int       `json:"days_remaining"`
	HasDeclaration bool      `json:"has_declaration"`
}

// TaxHistorySummary aggregates saved declarations
type TaxHistorySummary struct {
	TotalISR  float64 `json:"total_isr"`
	TotalIVA  float64 `json:"total_iva"`
	TotalPaid float64 `json:"total_paid"`
	Unpaid    int     `json:"unpaid"`
}
