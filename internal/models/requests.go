package models

import "time"

// Typed request bodies for the HTTP surface. Structural validation
// happens here; domain invariants are enforced by the core packages.

type RegisterRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Name        string  `json:"name"`
	Occupation  string  `json:"occupation"`
	MonthlyGoal float64 `json:"monthly_goal"`
}

func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return NewValidationError("email", "email is required")
	}
	if r.Password == "" {
		return NewValidationError("password", "password is required")
	}
	if r.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if r.MonthlyGoal < 0 {
		return NewValidationError("monthly_goal", "monthly goal must not be negative")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name        string  `json:"name"`
	Occupation  string  `json:"occupation"`
	MonthlyGoal float64 `json:"monthly_goal"`
}

type SetFixedIncomeRequest struct {
	Amount float64 `json:"amount"`
}

type AddVariableIncomeRequest struct {
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
}

type SetPlannedExpenseRequest struct {
	Category ExpenseCategory `json:"category"`
	Amount   float64         `json:"amount"`
}

type AddGoalRequest struct {
	Name    string  `json:"name"`
	Target  float64 `json:"target"`
	Initial float64 `json:"initial"`
}

type DepositToGoalRequest struct {
	Amount float64 `json:"amount"`
}

type AddWorkerRequest struct {
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	DailyRate float64   `json:"daily_rate"`
	Phone     string    `json:"phone"`
	HireDate  time.Time `json:"hire_date"`
}

type RecordPayrollRunRequest struct {
	WeekStart time.Time     `json:"week_start"`
	Days      map[int64]int `json:"days"` // worker id -> days worked
}

type SetLevyConfigRequest struct {
	Config LevyConfig `json:"config"`
}

type ConfigureUtilityRequest struct {
	Name         string  `json:"name"`
	Enabled      bool    `json:"enabled"`
	ApproxAmount float64 `json:"approx_amount"`
	DueDay       int     `json:"due_day"`
	AccountRef   string  `json:"account_ref"`
}

type RegisterUtilityPaymentRequest struct {
	Utility   string    `json:"utility"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Method    string    `json:"method"`
	Reference string    `json:"reference"`
}

type TaxEstimateRequest struct {
	Period      string  `json:"period"`
	Income      float64 `json:"income"`
	Deductibles float64 `json:"deductibles"`
	Withheld    float64 `json:"withheld"`
}

type UpdateFiscalProfileRequest struct {
	TaxID  string `json:"tax_id"`
	Regime string `json:"regime"`
}
