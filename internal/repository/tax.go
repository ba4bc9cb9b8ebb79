package repository

import (
	"context"
	"fmt"

	"github.com/numenapp/numen-service/internal/models"
)

// InsertTaxDeclaration stores a saved declaration
func (r *Repository) InsertTaxDeclaration(ctx context.Context, userID int64, d models.TaxDeclaration) error {
	query := `
		INSERT INTO numen.tax_declarations
			(user_id, declaration_id, period, income, deductibles, isr, iva, total, paid, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, userID, d.ID, d.Period, d.Income, d.Deductibles, d.ISR, d.IVA, d.Total, d.Paid, d.Date)
	if err != nil {
		return fmt.Errorf("failed to insert tax declaration: %w", err)
	}
	return nil
}

// MarkDeclarationPaid flips a declaration's paid flag
func (r *Repository) MarkDeclarationPaid(ctx context.Context, userID, declarationID int64) error {
	query := `UPDATE numen.tax_declarations SET paid = TRUE WHERE user_id = $1 AND declaration_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, declarationID); err != nil {
		return fmt.Errorf("failed to mark declaration paid: %w", err)
	}
	return nil
}

// InsertTaxPayment stores a tax payment history record
func (r *Repository) InsertTaxPayment(ctx context.Context, userID int64, p models.TaxPayment) error {
	query := `
		INSERT INTO numen.tax_payments (user_id, payment_id, date, period, kind, amount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, userID, p.ID, p.Date, p.Period, p.Kind, p.Amount)
	if err != nil {
		return fmt.Errorf("failed to insert tax payment: %w", err)
	}
	return nil
}
