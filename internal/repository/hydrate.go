package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/numenapp/numen-service/internal/ledger"
	"github.com/numenapp/numen-service/internal/models"
)

// LoadLedger hydrates a fresh session ledger with everything stored for
// the user. Missing rows simply leave the ledger defaults in place.
func (r *Repository) LoadLedger(ctx context.Context, user *models.User) (*ledger.Ledger, error) {
	l := ledger.New(models.UserProfile{
		UserID:      user.ID,
		Name:        user.Name,
		Occupation:  user.Occupation,
		MonthlyGoal: user.MonthlyGoal,
		Email:       user.Email,
	})

	if err := r.loadUserExtras(ctx, user.ID, l); err != nil {
		return nil, err
	}
	if err := r.loadBudget(ctx, user.ID, l); err != nil {
		return nil, err
	}
	if err := r.loadPayroll(ctx, user.ID, l); err != nil {
		return nil, err
	}
	if err := r.loadUtilities(ctx, user.ID, l); err != nil {
		return nil, err
	}
	if err := r.loadTaxes(ctx, user.ID, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (r *Repository) loadUserExtras(ctx context.Context, userID int64, l *ledger.Ledger) error {
	var taxID, regime sql.NullString
	query := `SELECT fixed_income, tax_id, regime FROM numen.users WHERE id = $1`
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&l.FixedIncome, &taxID, &regime); err != nil {
		return fmt.Errorf("failed to load user state: %w", err)
	}
	l.Taxes.Profile = models.FiscalProfile{TaxID: taxID.String, Regime: regime.String}
	return nil
}

func (r *Repository) loadBudget(ctx context.Context, userID int64, l *ledger.Ledger) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT entry_id, amount, date, label FROM numen.variable_incomes WHERE user_id = $1 ORDER BY entry_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load variable incomes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e models.VariableIncome
		if err := rows.Scan(&e.ID, &e.Amount, &e.Date, &e.Label); err != nil {
			return fmt.Errorf("failed to scan variable income: %w", err)
		}
		l.VariableIncomes = append(l.VariableIncomes, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	expRows, err := r.db.QueryContext(ctx,
		`SELECT category, amount FROM numen.planned_expenses WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to load planned expenses: %w", err)
	}
	defer expRows.Close()
	for expRows.Next() {
		var category string
		var amount float64
		if err := expRows.Scan(&category, &amount); err != nil {
			return fmt.Errorf("failed to scan planned expense: %w", err)
		}
		// Only categories in the fixed session set survive hydration
		if _, ok := l.PlannedExpenses[models.ExpenseCategory(category)]; ok {
			l.PlannedExpenses[models.ExpenseCategory(category)] = amount
		}
	}
	if err := expRows.Err(); err != nil {
		return err
	}

	goalRows, err := r.db.QueryContext(ctx,
		`SELECT goal_id, name, target, current, start_date FROM numen.savings_goals WHERE user_id = $1 ORDER BY goal_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load goals: %w", err)
	}
	defer goalRows.Close()
	for goalRows.Next() {
		var g models.SavingsGoal
		if err := goalRows.Scan(&g.ID, &g.Name, &g.Target, &g.Current, &g.StartDate); err != nil {
			return fmt.Errorf("failed to scan goal: %w", err)
		}
		l.Goals = append(l.Goals, g)
	}
	return goalRows.Err()
}

func (r *Repository) loadPayroll(ctx context.Context, userID int64, l *ledger.Ledger) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT worker_id, name, role, daily_rate, phone, hire_date, active
		 FROM numen.workers WHERE user_id = $1 ORDER BY worker_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load workers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var w models.Worker
		if err := rows.Scan(&w.ID, &w.Name, &w.Role, &w.DailyRate, &w.Phone, &w.HireDate, &w.Active); err != nil {
			return fmt.Errorf("failed to scan worker: %w", err)
		}
		l.Payroll.Workers = append(l.Payroll.Workers, w)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var cfg models.LevyConfig
	err = r.db.QueryRowContext(ctx,
		`SELECT isr_enabled, isr_percent, iva_enabled, iva_percent, imss_enabled, imss_percent
		 FROM numen.levy_configs WHERE user_id = $1`, userID).
		Scan(&cfg.ISR.Enabled, &cfg.ISR.Percent, &cfg.IVA.Enabled, &cfg.IVA.Percent, &cfg.IMSS.Enabled, &cfg.IMSS.Percent)
	if err == nil {
		l.Payroll.LevyConfig = cfg
	} else if err != sql.ErrNoRows {
		return fmt.Errorf("failed to load levy config: %w", err)
	}

	runRows, err := r.db.QueryContext(ctx,
		`SELECT run_id, week_start, total FROM numen.payroll_runs WHERE user_id = $1 ORDER BY run_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load payroll runs: %w", err)
	}
	defer runRows.Close()
	runIndex := make(map[int64]int)
	for runRows.Next() {
		var run models.PayrollRun
		if err := runRows.Scan(&run.ID, &run.WeekStart, &run.Total); err != nil {
			return fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runIndex[run.ID] = len(l.Payroll.Runs)
		l.Payroll.Runs = append(l.Payroll.Runs, run)
	}
	if err := runRows.Err(); err != nil {
		return err
	}

	lineRows, err := r.db.QueryContext(ctx,
		`SELECT run_id, worker_id, name, days, daily_rate, total
		 FROM numen.payroll_run_lines WHERE user_id = $1 ORDER BY run_id, worker_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load payroll lines: %w", err)
	}
	defer lineRows.Close()
	for lineRows.Next() {
		var runID int64
		var line models.PayrollLine
		if err := lineRows.Scan(&runID, &line.WorkerID, &line.Name, &line.Days, &line.DailyRate, &line.Total); err != nil {
			return fmt.Errorf("failed to scan payroll line: %w", err)
		}
		if i, ok := runIndex[runID]; ok {
			l.Payroll.Runs[i].Lines = append(l.Payroll.Runs[i].Lines, line)
		}
	}
	if err := lineRows.Err(); err != nil {
		return err
	}

	levyRows, err := r.db.QueryContext(ctx,
		`SELECT payment_id, date, week_start, base,
		        isr_percent, isr_amount, iva_percent, iva_amount, imss_percent, imss_amount,
		        total, paid
		 FROM numen.levy_payments WHERE user_id = $1 ORDER BY payment_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load levy payments: %w", err)
	}
	defer levyRows.Close()
	for levyRows.Next() {
		var p models.LevyPayment
		var isrPercent, isrAmount, ivaPercent, ivaAmount, imssPercent, imssAmount sql.NullFloat64
		if err := levyRows.Scan(&p.ID, &p.Date, &p.WeekStart, &p.Base,
			&isrPercent, &isrAmount, &ivaPercent, &ivaAmount, &imssPercent, &imssAmount,
			&p.Total, &p.Paid); err != nil {
			return fmt.Errorf("failed to scan levy payment: %w", err)
		}
		p.Lines = appendLevyLine(p.Lines, models.LevyISR, isrPercent, isrAmount)
		p.Lines = appendLevyLine(p.Lines, models.LevyIVA, ivaPercent, ivaAmount)
		p.Lines = appendLevyLine(p.Lines, models.LevyIMSS, imssPercent, imssAmount)
		l.Payroll.LevyPayments = append(l.Payroll.LevyPayments, p)
	}
	return levyRows.Err()
}

func appendLevyLine(lines []models.LevyLine, name string, percent, amount sql.NullFloat64) []models.LevyLine {
	if !amount.Valid {
		return lines
	}
	return append(lines, models.LevyLine{Name: name, Percent: percent.Float64, Amount: amount.Float64})
}

func (r *Repository) loadUtilities(ctx context.Context, userID int64, l *ledger.Ledger) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, enabled, approx_amount, due_day, account_ref
		 FROM numen.utility_configs WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to load utility configs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var cfg models.UtilityConfig
		if err := rows.Scan(&cfg.Name, &cfg.Enabled, &cfg.ApproxAmount, &cfg.DueDay, &cfg.AccountRef); err != nil {
			return fmt.Errorf("failed to scan utility config: %w", err)
		}
		if err := l.Utilities.Configure(cfg.Name, cfg.Enabled, cfg.ApproxAmount, cfg.DueDay, cfg.AccountRef); err != nil {
			return fmt.Errorf("stored utility config rejected: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	payRows, err := r.db.QueryContext(ctx,
		`SELECT payment_id, utility, amount, date, method, reference, account_ref
		 FROM numen.utility_payments WHERE user_id = $1 ORDER BY payment_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load utility payments: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var p models.UtilityPayment
		if err := payRows.Scan(&p.ID, &p.Utility, &p.Amount, &p.Date, &p.Method, &p.Reference, &p.AccountRef); err != nil {
			return fmt.Errorf("failed to scan utility payment: %w", err)
		}
		l.Utilities.Payments = append(l.Utilities.Payments, p)
	}
	return payRows.Err()
}

func (r *Repository) loadTaxes(ctx context.Context, userID int64, l *ledger.Ledger) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT declaration_id, period, income, deductibles, isr, iva, total, paid, date
		 FROM numen.tax_declarations WHERE user_id = $1 ORDER BY declaration_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load tax declarations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var d models.TaxDeclaration
		if err := rows.Scan(&d.ID, &d.Period, &d.Income, &d.Deductibles, &d.ISR, &d.IVA, &d.Total, &d.Paid, &d.Date); err != nil {
			return fmt.Errorf("failed to scan tax declaration: %w", err)
		}
		l.Taxes.Declarations = append(l.Taxes.Declarations, d)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	payRows, err := r.db.QueryContext(ctx,
		`SELECT payment_id, date, period, kind, amount
		 FROM numen.tax_payments WHERE user_id = $1 ORDER BY payment_id`, userID)
	if err != nil {
		return fmt.Errorf("failed to load tax payments: %w", err)
	}
	defer payRows.Close()
	for payRows.Next() {
		var p models.TaxPayment
		if err := payRows.Scan(&p.ID, &p.Date, &p.Period, &p.Kind, &p.Amount); err != nil {
			return fmt.Errorf("failed to scan tax payment: %w", err)
		}
		l.Taxes.Payments = append(l.Taxes.Payments, p)
	}
	return payRows.Err()
}
