package repository

import (
	"context"
	"fmt"

	"github.com/numenapp/numen-service/internal/models"
)

// UpsertUtilityConfig stores a utility configuration
func (r *Repository) UpsertUtilityConfig(ctx context.Context, userID int64, cfg models.UtilityConfig) error {
	query := `
		INSERT INTO numen.utility_configs (user_id, name, enabled, approx_amount, due_day, account_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, name) DO UPDATE SET
			enabled = EXCLUDED.enabled, approx_amount = EXCLUDED.approx_amount,
			due_day = EXCLUDED.due_day, account_ref = EXCLUDED.account_ref`
	_, err := r.db.ExecContext(ctx, query, userID, cfg.Name, cfg.Enabled, cfg.ApproxAmount, cfg.DueDay, cfg.AccountRef)
	if err != nil {
		return fmt.Errorf("failed to upsert utility config: %w", err)
	}
	return nil
}

// InsertUtilityPayment stores a utility payment record
func (r *Repository) InsertUtilityPayment(ctx context.Context, userID int64, p models.UtilityPayment) error {
	query := `
		INSERT INTO numen.utility_payments (user_id, payment_id, utility, amount, date, method, reference, account_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query, userID, p.ID, p.Utility, p.Amount, p.Date, p.Method, p.Reference, p.AccountRef)
	if err != nil {
		return fmt.Errorf("failed to insert utility payment: %w", err)
	}
	return nil
}
