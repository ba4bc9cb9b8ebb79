package models

import "time"

// Worker is a contractor on the payroll roster. Workers are never
// hard-deleted; deactivation clears the Active flag and keeps history.
type Worker struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	DailyRate float64   `json:"daily_rate"`
	Phone     string    `json:"phone"`
	HireDate  time.Time `json:"hire_date"`
	Active    bool      `json:"active"`
}

// PayrollLine is one worker's share of a payroll run
type PayrollLine struct {
	WorkerID  int64   `json:"worker_id"`
	Name      string  `json:"name"`
	Days      int     `json:"days"`
	DailyRate float64 `json:"daily_rate"`
	Total     float64 `json:"total"`
}

// PayrollRun is one immutable weekly payment cycle across active workers
type PayrollRun struct {
	ID        int64         `json:"id"`
	WeekStart time.Time     `json:"week_start"`
	Lines     []PayrollLine `json:"lines"`
	Total     float64       `json:"total"`
}

// Levy names applied as payroll surcharges
const (
	LevyISR  = "ISR"
	LevyIVA  = "IVA"
	LevyIMSS = "IMSS"
)

// LevyRate configures one payroll levy
type LevyRate struct {
	Enabled bool    `json:"enabled"`
	Percent float64 `json:"percent"`
}

// LevyConfig holds the three configurable payroll levies
type LevyConfig struct {
	ISR  LevyRate `json:"isr"`
	IVA  LevyRate `json:"iva"`
	IMSS LevyRate `json:"imss"`
}

// LevyLine is one computed levy amount
type LevyLine struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Amount  float64 `json:"amount"`
}

// LevyBreakdown is the result of applying the enabled levies to a run's
// total. Computing it mutates nothing; it is stored only when registered
// as a LevyPayment.
type LevyBreakdown struct {
	WeekStart time.Time  `json:"week_start"`
	Base      float64    `json:"base"`
	Lines     []LevyLine `json:"lines"`
	Total     float64    `json:"total"`
}

// LevyPayment is a registered tributary payment over a payroll run
type LevyPayment struct {
	ID        int64      `json:"id"`
	Date      time.Time  `json:"date"`
	WeekStart time.Time  `json:"week_start"`
	Base      float64    `json:"base"`
	Lines     []LevyLine `json:"lines"`
	Total     float64    `json:"total"`
	Paid      bool       `json:"paid"`
}
