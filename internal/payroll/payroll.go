package payroll

import (
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

// Book holds the contractor roster and the payroll history for one
// session
type Book struct {
	Workers      []models.Worker
	Runs         []models.PayrollRun
	LevyConfig   models.LevyConfig
	LevyPayments []models.LevyPayment
}

// NewBook returns a payroll book with the default levy configuration:
// all levies disabled at their customary rates.
func NewBook() Book {
	return Book{
		LevyConfig: models.LevyConfig{
			ISR:  models.LevyRate{Percent: 10.0},
			IVA:  models.LevyRate{Percent: 16.0},
			IMSS: models.LevyRate{Percent: 5.0},
		},
	}
}

// AddWorker appends a worker with the next sequential id and active=true
func (b *Book) AddWorker(name, role string, dailyRate float64, phone string, hireDate time.Time) (models.Worker, error) {
	if name == "" {
		return models.Worker{}, models.NewValidationError("name", "name is required")
	}
	if dailyRate <= 0 {
		return models.Worker{}, models.NewValidationError("daily_rate", "daily rate must be greater than 0")
	}
	w := models.Worker{
		ID:        b.nextWorkerID(),
		Name:      name,
		Role:      role,
		DailyRate: dailyRate,
		Phone:     phone,
		HireDate:  hireDate,
		Active:    true,
	}
	b.Workers = append(b.Workers, w)
	return w, nil
}

// DeactivateWorker soft-deletes a worker. Payroll history is kept.
func (b *Book) DeactivateWorker(id int64) error {
	for i := range b.Workers {
		if b.Workers[i].ID == id {
			b.Workers[i].Active = false
			return nil
		}
	}
	return models.NewValidationError("id", "no worker with id %d", id)
}

// ActiveWorkers returns the workers currently on the roster
func (b *Book) ActiveWorkers() []models.Worker {
	var active []models.Worker
	for _, w := range b.Workers {
		if w.Active {
			active = append(active, w)
		}
	}
	return active
}

// RecordRun computes and appends a weekly payroll run over the active
// workers. Days outside [0,7] are clamped. The run is immutable after
// creation.
func (b *Book) RecordRun(weekStart time.Time, days map[int64]int) (models.PayrollRun, error) {
	active := b.ActiveWorkers()
	if len(active) == 0 {
		return models.PayrollRun{}, models.NewValidationError("workers", "no active workers on the roster")
	}
	run := models.PayrollRun{
		ID:        int64(len(b.Runs) + 1),
		WeekStart: weekStart,
	}
	for _, w := range active {
		d := clampDays(days[w.ID])
		line := models.PayrollLine{
			WorkerID:  w.ID,
			Name:      w.Name,
			Days:      d,
			DailyRate: w.DailyRate,
			Total:     float64(d) * w.DailyRate,
		}
		run.Lines = append(run.Lines, line)
		run.Total += line.Total
	}
	b.Runs = append(b.Runs, run)
	return run, nil
}

// TotalPaid sums all run totals
func (b *Book) TotalPaid() float64 {
	var total float64
	for _, r := range b.Runs {
		total += r.Total
	}
	return total
}

func (b *Book) nextWorkerID() int64 {
	var max int64
	for _, w := range b.Workers {
		if w.ID > max {
			max = w.ID
		}
	}
	return max + 1
}

func clampDays(d int) int {
	if d < 0 {
		return 0
	}
	if d > 7 {
		return 7
	}
	return d
}
