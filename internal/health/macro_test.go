package health

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const tolerance = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= tolerance*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestNewMacroBarFatOverTarget(t *testing.T) {
	t.Parallel()

	target := NewTargets(DefaultCalorieTarget).Fat
	got := NewMacroBar(Fat, 50, target)

	want := MacroBar{
		Macro:      Fat,
		Unit:       "g",
		Current:    50,
		Target:     target,
		ValueKcal:  450,
		TargetKcal: 400,
		Filled:     400,
		Remaining:  0,
		Excess:     50,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("NewMacroBar() mismatch (-want +got):\n%s", diff)
	}
	if !got.OverTarget() {
		t.Error("OverTarget() = false, want true")
	}
}

func TestNewMacroBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		macro         Macro
		current       float64
		target        float64
		wantFilled    float64
		wantRemaining float64
		wantExcess    float64
	}{
		{"calories under", Calories, 1500, 2000, 1500, 500, 0},
		{"calories exact", Calories, 2000, 2000, 2000, 0, 0},
		{"calories nothing eaten", Calories, 0, 2000, 0, 2000, 0},
		{"carbs under", Carbs, 100, 225, 400, 500, 0},
		{"protein over", Protein, 200, 175, 700, 0, 100},
		{"fat far over", Fat, 1000, 44, 396, 0, 8604},
		{"negative current clamps", Carbs, -10, 225, 0, 900, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := NewMacroBar(tt.macro, tt.current, tt.target)
			if !approx(got.Filled, tt.wantFilled) || !approx(got.Remaining, tt.wantRemaining) || !approx(got.Excess, tt.wantExcess) {
				t.Errorf("NewMacroBar() = filled %v remaining %v excess %v, want %v %v %v",
					got.Filled, got.Remaining, got.Excess, tt.wantFilled, tt.wantRemaining, tt.wantExcess)
			}
		})
	}
}

func TestMacroBarInvariants(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	for i := range 5000 {
		var (
			macro   = Macros()[i%len(Macros())]
			target  = 1 + rng.Float64()*3000
			current float64
		)
		switch i % 4 {
		case 0:
			current = 0
		case 1:
			current = rng.Float64() * target
		case 2:
			current = target + rng.Float64()*1e6
		default:
			current = rng.Float64() * 5000
		}

		b := NewMacroBar(macro, current, target)

		if b.Filled < 0 || b.Remaining < 0 || b.Excess < 0 {
			t.Fatalf("negative segment: %+v", b)
		}
		if !approx(b.Filled, math.Min(b.ValueKcal, b.TargetKcal)) {
			t.Fatalf("filled != min(value, target): %+v", b)
		}
		if b.Remaining > 0 && b.Excess > 0 {
			t.Fatalf("remaining and excess both set: %+v", b)
		}
		if b.ValueKcal <= b.TargetKcal {
			if !approx(b.Filled+b.Remaining, b.TargetKcal) {
				t.Fatalf("filled+remaining != target: %+v", b)
			}
		} else {
			if !approx(b.Filled+b.Excess, b.ValueKcal) {
				t.Fatalf("filled+excess != value: %+v", b)
			}
		}
		if b.Filled+b.Remaining+b.Excess < b.TargetKcal-tolerance*b.TargetKcal {
			t.Fatalf("segments total less than target: %+v", b)
		}
	}
}

func TestNewTargets(t *testing.T) {
	t.Parallel()

	got := NewTargets(2000)
	want := Targets{
		Calories: 2000,
		Carbs:    225,
		Protein:  175,
		Fat:      2000 * 0.20 / 9,
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("NewTargets() mismatch (-want +got):\n%s", diff)
	}

	bars := MacroBars(Intake{Calories: 1800, Carbs: 200, Protein: 150, Fat: 70}, got)
	if len(bars) != 4 {
		t.Fatalf("len(MacroBars()) = %d, want 4", len(bars))
	}
	for i, m := range Macros() {
		if bars[i].Macro != m {
			t.Errorf("bars[%d].Macro = %v, want %v", i, bars[i].Macro, m)
		}
	}
}
