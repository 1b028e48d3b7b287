package health

import "fmt"

type Macro uint8

const (
	Calories Macro = iota
	Carbs
	Protein
	Fat
)

// DefaultCalorieTarget is the daily energy target macro targets are split from.
const DefaultCalorieTarget = 2000.0

var macroInfo = [...]struct {
	name        string
	unit        string
	kcalPerUnit float64
}{
	Calories: {"Calories", "kcal", 1},
	Carbs:    {"Carbs", "g", 4},
	Protein:  {"Protein", "g", 4},
	Fat:      {"Fat", "g", 9},
}

func Macros() []Macro {
	return []Macro{Calories, Carbs, Protein, Fat}
}

func (m Macro) String() string {
	if int(m) >= len(macroInfo) {
		return fmt.Sprintf("macro(%d)", m)
	}
	return macroInfo[m].name
}

func (m Macro) Unit() string {
	if int(m) >= len(macroInfo) {
		return ""
	}
	return macroInfo[m].unit
}

func (m Macro) KcalPerUnit() float64 {
	if int(m) >= len(macroInfo) {
		return 0
	}
	return macroInfo[m].kcalPerUnit
}

func (m Macro) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Macro) UnmarshalText(text []byte) error {
	for i, info := range macroInfo {
		if info.name == string(text) {
			*m = Macro(i)
			return nil
		}
	}
	return fmt.Errorf("unknown macro %q", text)
}

// MacroBar splits progress toward a target into three disjoint kcal segments.
// Filled+Remaining == TargetKcal when under target; Filled+Excess == ValueKcal when over.
type MacroBar struct {
	Macro      Macro   `json:"macro"`
	Unit       string  `json:"unit"`
	Current    float64 `json:"current"`
	Target     float64 `json:"target"`
	ValueKcal  float64 `json:"value_kcal"`
	TargetKcal float64 `json:"target_kcal"`
	Filled     float64 `json:"filled"`
	Remaining  float64 `json:"remaining"`
	Excess     float64 `json:"excess"`
}

// NewMacroBar converts current and target to kcal and splits them. Negative inputs count as zero.
func NewMacroBar(m Macro, current, target float64) MacroBar {
	current = max(current, 0)
	target = max(target, 0)

	var (
		factor     = m.KcalPerUnit()
		valueKcal  = current * factor
		targetKcal = target * factor
	)

	return MacroBar{
		Macro:      m,
		Unit:       m.Unit(),
		Current:    current,
		Target:     target,
		ValueKcal:  valueKcal,
		TargetKcal: targetKcal,
		Filled:     min(valueKcal, targetKcal),
		Remaining:  max(0, targetKcal-valueKcal),
		Excess:     max(0, valueKcal-targetKcal),
	}
}

// Percent of target reached, uncapped. Zero target yields zero.
func (b MacroBar) Percent() float64 {
	if b.TargetKcal == 0 {
		return 0
	}
	return b.ValueKcal / b.TargetKcal * 100
}

func (b MacroBar) OverTarget() bool {
	return b.Excess > 0
}

// Targets holds per-macro daily targets in each macro's own unit.
type Targets struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

// NewTargets splits kcal 45/35/20 across carbs, protein and fat.
func NewTargets(kcal float64) Targets {
	return Targets{
		Calories: kcal,
		Carbs:    kcal * 0.45 / Carbs.KcalPerUnit(),
		Protein:  kcal * 0.35 / Protein.KcalPerUnit(),
		Fat:      kcal * 0.20 / Fat.KcalPerUnit(),
	}
}

func (t Targets) For(m Macro) float64 {
	switch m {
	case Calories:
		return t.Calories
	case Carbs:
		return t.Carbs
	case Protein:
		return t.Protein
	case Fat:
		return t.Fat
	default:
		return 0
	}
}

// Intake is what was eaten today. Missing fields are zero.
type Intake struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
}

func (i Intake) For(m Macro) float64 {
	switch m {
	case Calories:
		return i.Calories
	case Carbs:
		return i.Carbs
	case Protein:
		return i.Protein
	case Fat:
		return i.Fat
	default:
		return 0
	}
}

// MacroBars returns one bar per macro, in Macros() order.
func MacroBars(intake Intake, targets Targets) []MacroBar {
	macros := Macros()
	bars := make([]MacroBar, 0, len(macros))
	for _, m := range macros {
		bars = append(bars, NewMacroBar(m, intake.For(m), targets.For(m)))
	}
	return bars
}
