package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/numenapp/numen-service/internal/models"
)

// Repository provides database operations. It is the persistence
// collaborator behind the in-memory session ledgers: every write here
// is best-effort from the caller's point of view.
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO numen.users (email, name, occupation, monthly_goal, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Email, user.Name, user.Occupation, user.MonthlyGoal, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, name, occupation, monthly_goal, password_hash, created_at
		FROM numen.users
		WHERE email = $1`
	err := r.db.QueryRowContext(ctx, query, email).
		Scan(&user.ID, &user.Email, &user.Name, &user.Occupation, &user.MonthlyGoal, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates a user's profile fields
func (r *Repository) UpdateProfile(ctx context.Context, userID int64, name, occupation string, monthlyGoal float64) error {
	query := `
		UPDATE numen.users
		SET name = $2, occupation = $3, monthly_goal = $4, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, name, occupation, monthlyGoal); err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UpdateFixedIncome stores the user's fixed monthly income
func (r *Repository) UpdateFixedIncome(ctx context.Context, userID int64, amount float64) error {
	query := `
		UPDATE numen.users
		SET fixed_income = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, amount); err != nil {
		return fmt.Errorf("failed to update fixed income: %w", err)
	}
	return nil
}

// UpdateFiscalProfile stores the user's tax identity
func (r *Repository) UpdateFiscalProfile(ctx context.Context, userID int64, taxID, regime string) error {
	query := `
		UPDATE numen.users
		SET tax_id = $2, regime = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, taxID, regime); err != nil {
		return fmt.Errorf("failed to update fiscal profile: %w", err)
	}
	return nil
}

// InsertVariableIncome stores a variable income entry
func (r *Repository) InsertVariableIncome(ctx context.Context, userID int64, entry models.VariableIncome) error {
	query := `
		INSERT INTO numen.variable_incomes (user_id, entry_id, amount, date, label)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, userID, entry.ID, entry.Amount, entry.Date, entry.Label); err != nil {
		return fmt.Errorf("failed to insert variable income: %w", err)
	}
	return nil
}

// DeleteVariableIncome removes a variable income entry
func (r *Repository) DeleteVariableIncome(ctx context.Context, userID, entryID int64) error {
	query := `DELETE FROM numen.variable_incomes WHERE user_id = $1 AND entry_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, entryID); err != nil {
		return fmt.Errorf("failed to delete variable income: %w", err)
	}
	return nil
}

// UpsertPlannedExpense stores the planned amount for one category
func (r *Repository) UpsertPlannedExpense(ctx context.Context, userID int64, category models.ExpenseCategory, amount float64) error {
	query := `
		INSERT INTO numen.planned_expenses (user_id, category, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, category) DO UPDATE SET amount = EXCLUDED.amount`
	if _, err := r.db.ExecContext(ctx, query, userID, string(category), amount); err != nil {
		return fmt.Errorf("failed to upsert planned expense: %w", err)
	}
	return nil
}

// InsertGoal stores a savings goal
func (r *Repository) InsertGoal(ctx context.Context, userID int64, goal models.SavingsGoal) error {
	query := `
		INSERT INTO numen.savings_goals (user_id, goal_id, name, target, current, start_date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := r.db.ExecContext(ctx, query, userID, goal.ID, goal.Name, goal.Target, goal.Current, goal.StartDate); err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// UpdateGoalCurrent stores a goal's accumulated amount
func (r *Repository) UpdateGoalCurrent(ctx context.Context, userID, goalID int64, current float64) error {
	query := `UPDATE numen.savings_goals SET current = $3 WHERE user_id = $1 AND goal_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, goalID, current); err != nil {
		return fmt.Errorf("failed to update goal: %w", err)
	}
	return nil
}

// DeleteGoal removes a savings goal
func (r *Repository) DeleteGoal(ctx context.Context, userID, goalID int64) error {
	query := `DELETE FROM numen.savings_goals WHERE user_id = $1 AND goal_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, goalID); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
