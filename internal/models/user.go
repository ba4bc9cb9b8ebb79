package models

// User represents a registered user in the system
type User struct {
	ID           int64   `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Occupation   string  `json:"occupation"`
	MonthlyGoal  float64 `json:"monthly_goal"`
	PasswordHash string  `json:"-"` // Not serialized
	CreatedAt    string  `json:"created_at"`
}

// UserProfile is the profile slice of a user carried inside a session ledger
type UserProfile struct {
	UserID      int64   `json:"user_id"`
	Name        string  `json:"name"`
	Occupation  string  `json:"occupation"`
	MonthlyGoal float64 `json:"monthly_goal"`
	Email       string  `json:"email"`
}
