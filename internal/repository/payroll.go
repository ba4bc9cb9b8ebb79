package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/numenapp/numen-service/internal/models"
)

// InsertWorker stores a roster entry
func (r *Repository) InsertWorker(ctx context.Context, userID int64, w models.Worker) error {
	query := `
		INSERT INTO numen.workers (user_id, worker_id, name, role, daily_rate, phone, hire_date, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.db.ExecContext(ctx, query, userID, w.ID, w.Name, w.Role, w.DailyRate, w.Phone, w.HireDate, w.Active); err != nil {
		return fmt.Errorf("failed to insert worker: %w", err)
	}
	return nil
}

// SetWorkerActive updates a worker's active flag
func (r *Repository) SetWorkerActive(ctx context.Context, userID, workerID int64, active bool) error {
	query := `UPDATE numen.workers SET active = $3 WHERE user_id = $1 AND worker_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, workerID, active); err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	return nil
}

// InsertPayrollRun stores a run and its lines atomically
func (r *Repository) InsertPayrollRun(ctx context.Context, userID int64, run models.PayrollRun) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runQuery := `
		INSERT INTO numen.payroll_runs (user_id, run_id, week_start, total)
		VALUES ($1, $2, $3, $4)`
	if _, err := tx.ExecContext(ctx, runQuery, userID, run.ID, run.WeekStart, run.Total); err != nil {
		return fmt.Errorf("failed to insert payroll run: %w", err)
	}

	lineQuery := `
		INSERT INTO numen.payroll_run_lines (user_id, run_id, worker_id, name, days, daily_rate, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, line := range run.Lines {
		if _, err := tx.ExecContext(ctx, lineQuery, userID, run.ID, line.WorkerID, line.Name, line.Days, line.DailyRate, line.Total); err != nil {
			return fmt.Errorf("failed to insert payroll line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit payroll run: %w", err)
	}
	return nil
}

// SaveLevyConfig upserts the payroll levy configuration
func (r *Repository) SaveLevyConfig(ctx context.Context, userID int64, cfg models.LevyConfig) error {
	query := `
		INSERT INTO numen.levy_configs (user_id, isr_enabled, isr_percent, iva_enabled, iva_percent, imss_enabled, imss_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE SET
			isr_enabled = EXCLUDED.isr_enabled, isr_percent = EXCLUDED.isr_percent,
			iva_enabled = EXCLUDED.iva_enabled, iva_percent = EXCLUDED.iva_percent,
			imss_enabled = EXCLUDED.imss_enabled, imss_percent = EXCLUDED.imss_percent`
	_, err := r.db.ExecContext(ctx, query, userID,
		cfg.ISR.Enabled, cfg.ISR.Percent,
		cfg.IVA.Enabled, cfg.IVA.Percent,
		cfg.IMSS.Enabled, cfg.IMSS.Percent)
	if err != nil {
		return fmt.Errorf("failed to save levy config: %w", err)
	}
	return nil
}

// InsertLevyPayment stores a registered tributary payment. Each levy
// occupies its own column pair; levies absent from the breakdown store
// NULL.
func (r *Repository) InsertLevyPayment(ctx context.Context, userID int64, p models.LevyPayment) error {
	lines := make(map[string]models.LevyLine, len(p.Lines))
	for _, line := range p.Lines {
		lines[line.Name] = line
	}
	query := `
		INSERT INTO numen.levy_payments
			(user_id, payment_id, date, week_start, base,
			 isr_percent, isr_amount, iva_percent, iva_amount, imss_percent, imss_amount,
			 total, paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	isrPercent, isrAmount := levyColumns(lines, models.LevyISR)
	ivaPercent, ivaAmount := levyColumns(lines, models.LevyIVA)
	imssPercent, imssAmount := levyColumns(lines, models.LevyIMSS)
	_, err := r.db.ExecContext(ctx, query, userID, p.ID, p.Date, p.WeekStart, p.Base,
		isrPercent, isrAmount, ivaPercent, ivaAmount, imssPercent, imssAmount,
		p.Total, p.Paid)
	if err != nil {
		return fmt.Errorf("failed to insert levy payment: %w", err)
	}
	return nil
}

func levyColumns(lines map[string]models.LevyLine, name string) (percent, amount sql.NullFloat64) {
	line, ok := lines[name]
	if !ok {
		return
	}
	return sql.NullFloat64{Float64: line.Percent, Valid: true}, sql.NullFloat64{Float64: line.Amount, Valid: true}
}

// MarkLevyPaymentPaid flips a tributary payment's paid flag
func (r *Repository) MarkLevyPaymentPaid(ctx context.Context, userID, paymentID int64) error {
	query := `UPDATE numen.levy_payments SET paid = TRUE WHERE user_id = $1 AND payment_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, paymentID); err != nil {
		return fmt.Errorf("failed to mark levy payment paid: %w", err)
	}
	return nil
}
