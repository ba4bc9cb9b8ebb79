package tax

import (
	"math"
	"testing"
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

func mustEstimate(t *testing.T, income, deductibles, withheld float64) models.TaxEstimate {
	t.Helper()
	est, err := Estimate(income, deductibles, withheld)
	if err != nil {
		t.Fatalf("Estimate(%v, %v, %v): %v", income, deductibles, withheld, err)
	}
	return est
}

func within(got, want float64) bool {
	return math.Abs(got-want) < 0.01
}

func TestEstimate_MonthlyScenario(t *testing.T) {
	est := mustEstimate(t, 10000, 2000, 0)
	if est.TaxableBase != 8000 {
		t.Errorf("taxable base = %v, want 8000", est.TaxableBase)
	}
	// 148.51 + (8000 - 7735) * 6.4%
	if !within(est.ISR, 165.47) {
		t.Errorf("ISR = %v, want ~165.47", est.ISR)
	}
	if est.IVA != 1600 {
		t.Errorf("IVA = %v, want 1600", est.IVA)
	}
	if !within(est.Total, 1765.47) {
		t.Errorf("total = %v, want ~1765.47", est.Total)
	}
}

func TestEstimate_BracketBoundaries(t *testing.T) {
	cases := []struct {
		name string
		base float64
		want float64
	}{
		{"zero base", 0, 0},
		{"first bracket", 5000, 5000 * 0.0192},
		{"first bracket upper bound", 7735, 7735 * 0.0192},
		{"second bracket", 8000, 148.51 + 265*0.064},
		{"third bracket", 70000, 3855.14 + (70000-65651)*0.1088},
		{"fourth bracket", 120000, 9265.20 + (120000-115375)*0.16},
		{"top bracket", 200000, 12264.16 + (200000-134119)*0.1792},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			est := mustEstimate(t, tc.base, 0, 0)
			if !within(est.ISR, tc.want) {
				t.Errorf("ISR(%v) = %v, want %v", tc.base, est.ISR, tc.want)
			}
		})
	}
}

func TestEstimate_BaseFloorsAtZero(t *testing.T) {
	est := mustEstimate(t, 1000, 5000, 0)
	if est.TaxableBase != 0 {
		t.Errorf("taxable base = %v, want 0 when deductibles exceed income", est.TaxableBase)
	}
	if est.ISR != 0 {
		t.Errorf("ISR = %v, want 0", est.ISR)
	}
	// IVA still applies on gross income.
	if est.IVA != 160 {
		t.Errorf("IVA = %v, want 160", est.IVA)
	}
}

func TestEstimate_WithholdingNeverDrivesISRNegative(t *testing.T) {
	est := mustEstimate(t, 10000, 2000, 500)
	if est.ISR != 0 {
		t.Errorf("ISR = %v, want 0 when withholding exceeds liability", est.ISR)
	}
	if !within(est.Total, 1600) {
		t.Errorf("total = %v, want 1600 (IVA only)", est.Total)
	}
}

func TestEstimate_Validation(t *testing.T) {
	cases := []struct {
		name                          string
		income, deductibles, withheld float64
	}{
		{"negative income", -1, 0, 0},
		{"negative deductibles", 100, -1, 0},
		{"negative withheld", 100, 0, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Estimate(tc.income, tc.deductibles, tc.withheld); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSaveDeclaration(t *testing.T) {
	b := Book{}
	est := mustEstimate(t, 10000, 2000, 0)

	if _, err := b.SaveDeclaration("", est, time.Now()); err == nil {
		t.Error("expected error for empty period")
	}

	decl, err := b.SaveDeclaration("March 2026", est, time.Now())
	if err != nil {
		t.Fatalf("SaveDeclaration: %v", err)
	}
	if decl.Paid {
		t.Error("new declaration must start unpaid")
	}
	if decl.ID != 1 {
		t.Errorf("id = %d, want 1", decl.ID)
	}
	if !within(decl.Total, est.Total) {
		t.Errorf("total = %v, want %v", decl.Total, est.Total)
	}
}

func TestMarkPaid_Idempotent(t *testing.T) {
	b := Book{}
	est := mustEstimate(t, 10000, 2000, 0)
	b.SaveDeclaration("March 2026", est, time.Now())

	decl, changed, err := b.MarkPaid(0, time.Now())
	if err != nil {
		t.Fatalf("MarkPaid: %v", err)
	}
	if !changed || !decl.Paid {
		t.Fatalf("first MarkPaid: changed=%v paid=%v, want true/true", changed, decl.Paid)
	}
	if len(b.Payments) != 1 {
		t.Fatalf("payments = %d after first mark, want 1", len(b.Payments))
	}

	decl, changed, err = b.MarkPaid(0, time.Now())
	if err != nil {
		t.Fatalf("MarkPaid (second): %v", err)
	}
	if changed {
		t.Error("second MarkPaid must be a no-op")
	}
	if !decl.Paid {
		t.Error("declaration must remain paid")
	}
	if len(b.Payments) != 1 {
		t.Errorf("payments = %d after second mark, want still 1", len(b.Payments))
	}
	if b.Payments[0].Kind != "ISR + IVA" {
		t.Errorf("payment kind = %q, want %q", b.Payments[0].Kind, "ISR + IVA")
	}

	if _, _, err := b.MarkPaid(7, time.Now()); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestCalendar(t *testing.T) {
	b := Book{}
	now := date(2026, time.January, 10)
	periods := b.Calendar(now, 3)
	if len(periods) != 3 {
		t.Fatalf("periods = %d, want 3", len(periods))
	}

	wantLabels := []string{"January 2026", "February 2026", "March 2026"}
	wantDeadlines := []time.Time{
		date(2026, time.February, 17),
		date(2026, time.March, 17),
		date(2026, time.April, 17),
	}
	for i, p := range periods {
		if p.Period != wantLabels[i] {
			t.Errorf("periods[%d] = %q, want %q", i, p.Period, wantLabels[i])
		}
		if !p.Deadline.Equal(wantDeadlines[i]) {
			t.Errorf("deadline[%d] = %v, want %v", i, p.Deadline, wantDeadlines[i])
		}
		if p.HasDeclaration {
			t.Errorf("periods[%d] has declaration, want none", i)
		}
	}
	if periods[0].DaysRemaining != 38 {
		t.Errorf("days remaining = %d, want 38", periods[0].DaysRemaining)
	}
}

func TestCalendar_FlagsUnpaidDeclaration(t *testing.T) {
	b := Book{}
	est := mustEstimate(t, 10000, 0, 0)
	b.SaveDeclaration("January 2026", est, time.Now())
	b.SaveDeclaration("February 2026", est, time.Now())
	b.MarkPaid(1, time.Now())

	periods := b.Calendar(date(2026, time.January, 10), 2)
	if !periods[0].HasDeclaration {
		t.Error("January must flag its unpaid declaration")
	}
	if periods[1].HasDeclaration {
		t.Error("February is paid, must not flag")
	}
}

func TestHistorySummary(t *testing.T) {
	b := Book{}
	est1 := mustEstimate(t, 10000, 2000, 0)
	est2 := mustEstimate(t, 5000, 0, 0)
	b.SaveDeclaration("January 2026", est1, time.Now())
	b.SaveDeclaration("February 2026", est2, time.Now())
	b.MarkPaid(0, time.Now())

	s := b.HistorySummary()
	if !within(s.TotalISR, est1.ISR+est2.ISR) {
		t.Errorf("TotalISR = %v, want %v", s.TotalISR, est1.ISR+est2.ISR)
	}
	if !within(s.TotalIVA, est1.IVA+est2.IVA) {
		t.Errorf("TotalIVA = %v, want %v", s.TotalIVA, est1.IVA+est2.IVA)
	}
	if !within(s.TotalPaid, est1.Total) {
		t.Errorf("TotalPaid = %v, want %v", s.TotalPaid, est1.Total)
	}
	if s.Unpaid != 1 {
		t.Errorf("Unpaid = %d, want 1", s.Unpaid)
	}
}

func TestUpdateProfile(t *testing.T) {
	b := Book{}
	b.UpdateProfile("XAXX010101000", "RESICO")
	if b.Profile.TaxID != "XAXX010101000" || b.Profile.Regime != "RESICO" {
		t.Errorf("profile = %+v", b.Profile)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
