package payroll

import (
	"math"
	"testing"
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

func mustAddWorker(t *testing.T, b *Book, name string, rate float64) models.Worker {
	t.Helper()
	w, err := b.AddWorker(name, "laborer", rate, "", time.Now())
	if err != nil {
		t.Fatalf("AddWorker(%q): %v", name, err)
	}
	return w
}

func weekOf(day int) time.Time {
	return time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestRecordRun_WeeklyTotals(t *testing.T) {
	b := NewBook()
	a := mustAddWorker(t, &b, "A", 200)
	bw := mustAddWorker(t, &b, "B", 150)

	run, err := b.RecordRun(weekOf(2), map[int64]int{a.ID: 6, bw.ID: 5})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if run.Total != 1950 {
		t.Errorf("run total = %v, want 1950", run.Total)
	}
	if len(run.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(run.Lines))
	}
	if run.Lines[0].Total != 1200 || run.Lines[1].Total != 750 {
		t.Errorf("line totals = %v/%v, want 1200/750", run.Lines[0].Total, run.Lines[1].Total)
	}
	if got := b.TotalPaid(); got != 1950 {
		t.Errorf("TotalPaid() = %v, want 1950", got)
	}
}

func TestRecordRun_ClampsDays(t *testing.T) {
	b := NewBook()
	w := mustAddWorker(t, &b, "A", 100)

	cases := []struct {
		name string
		days int
		want float64
	}{
		{"negative clamps to zero", -3, 0},
		{"above week clamps to seven", 12, 700},
		{"missing worker defaults to zero", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			run, err := b.RecordRun(weekOf(2), map[int64]int{w.ID: tc.days})
			if err != nil {
				t.Fatalf("RecordRun: %v", err)
			}
			if run.Total != tc.want {
				t.Errorf("run total = %v, want %v", run.Total, tc.want)
			}
		})
	}
}

func TestRecordRun_SkipsInactiveWorkers(t *testing.T) {
	b := NewBook()
	a := mustAddWorker(t, &b, "A", 200)
	bw := mustAddWorker(t, &b, "B", 150)
	if err := b.DeactivateWorker(bw.ID); err != nil {
		t.Fatalf("DeactivateWorker: %v", err)
	}

	run, err := b.RecordRun(weekOf(9), map[int64]int{a.ID: 5, bw.ID: 5})
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if len(run.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(run.Lines))
	}
	if run.Lines[0].WorkerID != a.ID {
		t.Errorf("line worker = %d, want %d", run.Lines[0].WorkerID, a.ID)
	}
	if run.Total != 1000 {
		t.Errorf("run total = %v, want 1000", run.Total)
	}
}

func TestRecordRun_RequiresActiveRoster(t *testing.T) {
	b := NewBook()
	if _, err := b.RecordRun(weekOf(2), nil); err == nil {
		t.Error("expected error for empty roster")
	}

	w := mustAddWorker(t, &b, "A", 100)
	b.DeactivateWorker(w.ID)
	if _, err := b.RecordRun(weekOf(2), nil); err == nil {
		t.Error("expected error when all workers inactive")
	}
}

func TestAddWorker_Validation(t *testing.T) {
	b := NewBook()
	if _, err := b.AddWorker("", "laborer", 100, "", time.Now()); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := b.AddWorker("A", "laborer", 0, "", time.Now()); err == nil {
		t.Error("expected error for zero rate")
	}
	if _, err := b.AddWorker("A", "laborer", -5, "", time.Now()); err == nil {
		t.Error("expected error for negative rate")
	}
}

func TestAddWorker_SequentialIDs(t *testing.T) {
	b := NewBook()
	a := mustAddWorker(t, &b, "A", 100)
	bw := mustAddWorker(t, &b, "B", 100)
	if a.ID != 1 || bw.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", a.ID, bw.ID)
	}
	b.DeactivateWorker(a.ID)
	c := mustAddWorker(t, &b, "C", 100)
	if c.ID != 3 {
		t.Errorf("id after deactivation = %d, want 3", c.ID)
	}
}

func TestSetLevyConfig_RangeValidation(t *testing.T) {
	cases := []struct {
		name    string
		cfg     models.LevyConfig
		wantErr bool
	}{
		{
			"defaults within range",
			models.LevyConfig{
				ISR:  models.LevyRate{Enabled: true, Percent: 10},
				IVA:  models.LevyRate{Enabled: true, Percent: 16},
				IMSS: models.LevyRate{Enabled: true, Percent: 5},
			},
			false,
		},
		{"isr above cap", models.LevyConfig{ISR: models.LevyRate{Percent: 36}}, true},
		{"iva above cap", models.LevyConfig{IVA: models.LevyRate{Percent: 17}}, true},
		{"imss above cap", models.LevyConfig{IMSS: models.LevyRate{Percent: 11}}, true},
		{"negative percent", models.LevyConfig{ISR: models.LevyRate{Percent: -1}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBook()
			err := b.SetLevyConfig(tc.cfg)
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("SetLevyConfig: %v", err)
			}
		})
	}
}

func TestComputeLevies(t *testing.T) {
	b := NewBook()
	w := mustAddWorker(t, &b, "A", 200)
	if _, err := b.RecordRun(weekOf(2), map[int64]int{w.ID: 5}); err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	cfg := models.LevyConfig{
		ISR:  models.LevyRate{Enabled: true, Percent: 10},
		IVA:  models.LevyRate{Enabled: false, Percent: 16},
		IMSS: models.LevyRate{Enabled: true, Percent: 5},
	}
	if err := b.SetLevyConfig(cfg); err != nil {
		t.Fatalf("SetLevyConfig: %v", err)
	}

	breakdown, err := b.ComputeLevies(0)
	if err != nil {
		t.Fatalf("ComputeLevies: %v", err)
	}
	if breakdown.Base != 1000 {
		t.Errorf("base = %v, want 1000", breakdown.Base)
	}
	if len(breakdown.Lines) != 2 {
		t.Fatalf("lines = %d, want 2 (disabled levy excluded)", len(breakdown.Lines))
	}
	if math.Abs(breakdown.Total-150) > 1e-9 {
		t.Errorf("total = %v, want 150", breakdown.Total)
	}

	// Pure computation: a second call must match the first.
	again, err := b.ComputeLevies(0)
	if err != nil {
		t.Fatalf("ComputeLevies (second call): %v", err)
	}
	if again.Total != breakdown.Total || len(again.Lines) != len(breakdown.Lines) {
		t.Errorf("second call diverged: %+v vs %+v", again, breakdown)
	}
	if len(b.LevyPayments) != 0 {
		t.Errorf("LevyPayments = %d, compute must not store", len(b.LevyPayments))
	}
}

func TestComputeLevies_BadIndex(t *testing.T) {
	b := NewBook()
	if _, err := b.ComputeLevies(0); err == nil {
		t.Error("expected error with no runs recorded")
	}
}

func TestRegisterLevyPayment(t *testing.T) {
	b := NewBook()
	w := mustAddWorker(t, &b, "A", 100)
	b.RecordRun(weekOf(2), map[int64]int{w.ID: 5})

	if _, err := b.RegisterLevyPayment(0, time.Now()); err == nil {
		t.Fatal("expected error when no levies enabled")
	}

	cfg := b.LevyConfig
	cfg.ISR.Enabled = true
	if err := b.SetLevyConfig(cfg); err != nil {
		t.Fatalf("SetLevyConfig: %v", err)
	}
	p, err := b.RegisterLevyPayment(0, time.Now())
	if err != nil {
		t.Fatalf("RegisterLevyPayment: %v", err)
	}
	if p.Paid {
		t.Error("new payment must start unpaid")
	}
	if p.Total != 50 {
		t.Errorf("payment total = %v, want 50", p.Total)
	}
}

func TestMarkLevyPaymentPaid_Idempotent(t *testing.T) {
	b := NewBook()
	w := mustAddWorker(t, &b, "A", 100)
	b.RecordRun(weekOf(2), map[int64]int{w.ID: 5})
	cfg := b.LevyConfig
	cfg.ISR.Enabled = true
	b.SetLevyConfig(cfg)
	b.RegisterLevyPayment(0, time.Now())

	changed, err := b.MarkLevyPaymentPaid(0)
	if err != nil {
		t.Fatalf("MarkLevyPaymentPaid: %v", err)
	}
	if !changed {
		t.Error("first mark must report a change")
	}
	changed, err = b.MarkLevyPaymentPaid(0)
	if err != nil {
		t.Fatalf("MarkLevyPaymentPaid (second): %v", err)
	}
	if changed {
		t.Error("second mark must be a no-op")
	}
	if !b.LevyPayments[0].Paid {
		t.Error("payment must remain paid")
	}

	registered, paid := b.LevyTotals()
	if registered != 50 || paid != 50 {
		t.Errorf("LevyTotals() = %v, %v, want 50, 50", registered, paid)
	}

	if _, err := b.MarkLevyPaymentPaid(9); err == nil {
		t.Error("expected error for out-of-range index")
	}
}
