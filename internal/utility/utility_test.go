package utility

import (
	"testing"
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

func mustConfigure(t *testing.T, tr *Tracker, name string, amount float64, dueDay int) {
	t.Helper()
	if err := tr.Configure(name, true, amount, dueDay, ""); err != nil {
		t.Fatalf("Configure(%q): %v", name, err)
	}
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewTracker_DefaultSet(t *testing.T) {
	tr := NewTracker()
	if len(tr.Configs) != 6 {
		t.Fatalf("configs = %d, want 6", len(tr.Configs))
	}
	for _, cfg := range tr.Configs {
		if cfg.Enabled {
			t.Errorf("%s enabled by default, want disabled", cfg.Name)
		}
	}
}

func TestConfigure_Validation(t *testing.T) {
	tr := NewTracker()
	cases := []struct {
		name    string
		utility string
		amount  float64
		dueDay  int
	}{
		{"empty name", "", 100, 10},
		{"due day zero", "Water", 100, 0},
		{"due day above 31", "Water", 100, 32},
		{"negative amount", "Water", -5, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tr.Configure(tc.utility, true, tc.amount, tc.dueDay, ""); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigure_UpsertsByName(t *testing.T) {
	tr := NewTracker()
	mustConfigure(t, &tr, "Water", 350, 12)
	if len(tr.Configs) != 6 {
		t.Fatalf("configs = %d after updating existing utility, want 6", len(tr.Configs))
	}
	mustConfigure(t, &tr, "Streaming", 200, 7)
	if len(tr.Configs) != 7 {
		t.Fatalf("configs = %d after adding new utility, want 7", len(tr.Configs))
	}
}

func TestPendingForMonth_Classification(t *testing.T) {
	today := date(2026, time.March, 10)
	cases := []struct {
		name   string
		dueDay int
		want   string
	}{
		{"past due", 5, models.UtilityStatusOverdue},
		{"due today", 10, models.UtilityStatusUrgent},
		{"due within threshold", 13, models.UtilityStatusUrgent},
		{"due later", 14, models.UtilityStatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := Tracker{}
			mustConfigure(t, &tr, "Electricity", 400, tc.dueDay)
			pending := tr.PendingForMonth(2026, time.March, today)
			if len(pending) != 1 {
				t.Fatalf("pending = %d entries, want 1", len(pending))
			}
			if pending[0].Status != tc.want {
				t.Errorf("status = %q, want %q", pending[0].Status, tc.want)
			}
		})
	}
}

func TestPendingForMonth_DueDayClampedToMonthEnd(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"february", 2026, time.February, 28},
		{"leap february", 2024, time.February, 29},
		{"thirty day month", 2026, time.April, 30},
		{"thirty one day month", 2026, time.January, 31},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tr := Tracker{}
			mustConfigure(t, &tr, "Gas", 150, 31)
			pending := tr.PendingForMonth(tc.year, tc.month, date(tc.year, tc.month, 1))
			if len(pending) != 1 {
				t.Fatalf("pending = %d entries, want 1", len(pending))
			}
			if got := pending[0].DueDate.Day(); got != tc.want {
				t.Errorf("due day = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPendingForMonth_OrderedByDaysRemaining(t *testing.T) {
	tr := Tracker{}
	mustConfigure(t, &tr, "Phone", 250, 25)
	mustConfigure(t, &tr, "Internet", 500, 5)
	mustConfigure(t, &tr, "Water", 350, 15)

	pending := tr.PendingForMonth(2026, time.March, date(2026, time.March, 1))
	want := []string{"Internet", "Water", "Phone"}
	if len(pending) != len(want) {
		t.Fatalf("pending = %d entries, want %d", len(pending), len(want))
	}
	for i, name := range want {
		if pending[i].Utility != name {
			t.Errorf("pending[%d] = %q, want %q", i, pending[i].Utility, name)
		}
	}
	for i := 1; i < len(pending); i++ {
		if pending[i].DaysRemaining < pending[i-1].DaysRemaining {
			t.Errorf("pending not ordered by days remaining: %+v", pending)
		}
	}
}

func TestPendingForMonth_ExcludesPaidAndDisabled(t *testing.T) {
	tr := Tracker{}
	mustConfigure(t, &tr, "Water", 350, 15)
	mustConfigure(t, &tr, "Gas", 150, 10)
	if err := tr.Configure("Phone", false, 250, 25, ""); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if _, err := tr.RegisterPayment("Water", 340, date(2026, time.March, 12), "card", ""); err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	// A payment in another month must not clear the current one.
	if _, err := tr.RegisterPayment("Gas", 150, date(2026, time.February, 9), "cash", ""); err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}

	pending := tr.PendingForMonth(2026, time.March, date(2026, time.March, 1))
	if len(pending) != 1 {
		t.Fatalf("pending = %+v, want only Gas", pending)
	}
	if pending[0].Utility != "Gas" {
		t.Errorf("pending utility = %q, want Gas", pending[0].Utility)
	}
	if got := TotalPendingAmount(pending); got != 150 {
		t.Errorf("TotalPendingAmount() = %v, want 150", got)
	}
}

func TestRegisterPayment(t *testing.T) {
	tr := Tracker{}
	if err := tr.Configure("Internet", true, 500, 5, "ACC-42"); err != nil {
		t.Fatalf("Configure: %v", err)
	}

	if _, err := tr.RegisterPayment("Internet", 0, time.Now(), "card", ""); err == nil {
		t.Error("expected error for zero amount")
	}

	p, err := tr.RegisterPayment("Internet", 499.5, date(2026, time.March, 3), "card", "")
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if p.Reference == "" {
		t.Error("reference must be generated when empty")
	}
	if p.AccountRef != "ACC-42" {
		t.Errorf("account ref = %q, want ACC-42", p.AccountRef)
	}

	p2, err := tr.RegisterPayment("Internet", 499.5, date(2026, time.April, 3), "card", "FOLIO-8")
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if p2.Reference != "FOLIO-8" {
		t.Errorf("reference = %q, want supplied FOLIO-8", p2.Reference)
	}
	if p2.ID != p.ID+1 {
		t.Errorf("ids = %d then %d, want sequential", p.ID, p2.ID)
	}
}

func TestHistorySummary_DistinctMonthAverage(t *testing.T) {
	tr := Tracker{}
	mustConfigure(t, &tr, "Water", 350, 15)

	if got := tr.HistorySummary(); got.MonthlyAverage != 0 || got.PaymentCount != 0 {
		t.Fatalf("empty summary = %+v, want zeroes", got)
	}

	tr.RegisterPayment("Water", 300, date(2026, time.January, 14), "cash", "")
	tr.RegisterPayment("Water", 100, date(2026, time.January, 20), "cash", "")
	tr.RegisterPayment("Water", 200, date(2026, time.February, 14), "cash", "")

	got := tr.HistorySummary()
	if got.TotalPaid != 600 {
		t.Errorf("TotalPaid = %v, want 600", got.TotalPaid)
	}
	if got.MonthlyAverage != 300 {
		t.Errorf("MonthlyAverage = %v, want 300 (two distinct months)", got.MonthlyAverage)
	}
	if got.PaymentCount != 3 {
		t.Errorf("PaymentCount = %d, want 3", got.PaymentCount)
	}
}
