package ledger

import (
	"math"
	"testing"
	"time"

	"github.com/numenapp/numen-service/internal/models"
)

func testLedger(monthlyGoal float64) *Ledger {
	return New(models.UserProfile{
		UserID:      1,
		Name:        "Test User",
		Occupation:  "Freelancer",
		MonthlyGoal: monthlyGoal,
	})
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTotalIncome_SumsFixedAndVariable(t *testing.T) {
	cases := []struct {
		name     string
		fixed    float64
		variable []float64
		want     float64
	}{
		{"empty", 0, nil, 0},
		{"fixed only", 5000, nil, 5000},
		{"variable only", 0, []float64{100, 250.5}, 350.5},
		{"both", 3000, []float64{500, 200, 300}, 4000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := testLedger(0)
			if err := l.SetFixedIncome(tc.fixed); err != nil {
				t.Fatalf("SetFixedIncome: %v", err)
			}
			for _, amount := range tc.variable {
				if _, err := l.AddVariableIncome(amount, time.Now(), "extra"); err != nil {
					t.Fatalf("AddVariableIncome(%v): %v", amount, err)
				}
			}
			if got := l.TotalIncome(); !almostEqual(got, tc.want) {
				t.Errorf("TotalIncome() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAvailableBalance_NegativeIffExpensesExceedIncome(t *testing.T) {
	l := testLedger(0)
	l.SetFixedIncome(1000)
	l.SetPlannedExpense(models.CategoryFood, 600)
	if bal := l.AvailableBalance(); bal != 400 {
		t.Fatalf("AvailableBalance() = %v, want 400", bal)
	}

	l.SetPlannedExpense(models.CategoryTransport, 700)
	bal := l.AvailableBalance()
	if bal >= 0 {
		t.Fatalf("AvailableBalance() = %v, want negative", bal)
	}
	if !almostEqual(bal, -300) {
		t.Errorf("AvailableBalance() = %v, want -300", bal)
	}
}

func TestGoalProgressPercent_Clamped(t *testing.T) {
	cases := []struct {
		name    string
		goal    float64
		fixed   float64
		expense float64
		want    float64
	}{
		{"zero goal", 0, 5000, 0, 0},
		{"negative balance", 1000, 100, 500, 0},
		{"partial", 1000, 500, 0, 50},
		{"over target", 1000, 5000, 0, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := testLedger(tc.goal)
			l.SetFixedIncome(tc.fixed)
			l.SetPlannedExpense(models.CategoryOther, tc.expense)
			got := l.GoalProgressPercent()
			if got < 0 || got > 100 {
				t.Fatalf("GoalProgressPercent() = %v, outside [0,100]", got)
			}
			if !almostEqual(got, tc.want) {
				t.Errorf("GoalProgressPercent() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDashboardScenario(t *testing.T) {
	l := testLedger(1000)
	l.SetFixedIncome(5000)
	l.SetPlannedExpense(models.CategoryFood, 800)
	l.SetPlannedExpense(models.CategoryTransport, 300)

	if got := l.AvailableBalance(); !almostEqual(got, 3900) {
		t.Errorf("AvailableBalance() = %v, want 3900", got)
	}
	if got := l.GoalProgressPercent(); !almostEqual(got, 100) {
		t.Errorf("GoalProgressPercent() = %v, want 100", got)
	}
}

func TestSetPlannedExpense_RejectsUnknownCategory(t *testing.T) {
	l := testLedger(0)
	err := l.SetPlannedExpense("Vacations", 100)
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	if _, ok := err.(*models.ValidationError); !ok {
		t.Errorf("error type = %T, want *models.ValidationError", err)
	}
}

func TestVariableIncome_Validation(t *testing.T) {
	l := testLedger(0)
	if _, err := l.AddVariableIncome(0, time.Now(), "nothing"); err == nil {
		t.Error("expected error for zero amount")
	}
	if _, err := l.AddVariableIncome(-50, time.Now(), "refund"); err == nil {
		t.Error("expected error for negative amount")
	}
	if got := l.TotalIncome(); got != 0 {
		t.Errorf("TotalIncome() = %v after rejected entries, want 0", got)
	}
}

func TestRemoveVariableIncome(t *testing.T) {
	l := testLedger(0)
	l.AddVariableIncome(100, time.Now(), "a")
	l.AddVariableIncome(200, time.Now(), "b")

	removed, err := l.RemoveVariableIncome(0)
	if err != nil {
		t.Fatalf("RemoveVariableIncome: %v", err)
	}
	if removed.Label != "a" {
		t.Errorf("removed label = %q, want %q", removed.Label, "a")
	}
	if len(l.VariableIncomes) != 1 || l.VariableIncomes[0].Label != "b" {
		t.Errorf("remaining entries = %+v, want single %q entry", l.VariableIncomes, "b")
	}

	if _, err := l.RemoveVariableIncome(5); err == nil {
		t.Error("expected error for out-of-range index")
	}
}

func TestGoals_CurrentMayExceedTarget(t *testing.T) {
	l := testLedger(0)
	goal, err := l.AddGoal("Laptop", 1000, 900, time.Now())
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	goal, err = l.DepositToGoal(0, 500)
	if err != nil {
		t.Fatalf("DepositToGoal: %v", err)
	}
	if goal.Current != 1400 {
		t.Errorf("Current = %v, want 1400", goal.Current)
	}
	if p := goal.ProgressPercent(); p != 100 {
		t.Errorf("ProgressPercent() = %v, want clamp at 100", p)
	}
}

func TestAddGoal_Validation(t *testing.T) {
	l := testLedger(0)
	if _, err := l.AddGoal("", 1000, 0, time.Now()); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := l.AddGoal("Bike", 0, 0, time.Now()); err == nil {
		t.Error("expected error for zero target")
	}
	if len(l.Goals) != 0 {
		t.Errorf("Goals = %+v after rejected creations, want empty", l.Goals)
	}
}

func TestGoalIDs_MonotonicAfterRemoval(t *testing.T) {
	l := testLedger(0)
	l.AddGoal("a", 100, 0, time.Now())
	l.AddGoal("b", 100, 0, time.Now())
	l.RemoveGoal(0)
	g, err := l.AddGoal("c", 100, 0, time.Now())
	if err != nil {
		t.Fatalf("AddGoal: %v", err)
	}
	if g.ID != 3 {
		t.Errorf("new goal ID = %d, want 3", g.ID)
	}
}
