package dashboard

import (
	"time"

	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

type Statuses struct {
	HRV       health.Status `json:"hrv"`
	RestingHR health.Status `json:"resting_hr"`
	Sleep     health.Status `json:"sleep"`
}

// ViewModel is the render-ready dashboard. Every section field is always set; sections that did
// not load are Missing.
type ViewModel struct {
	Vitals         xopt.Value[Wearable]           `json:"vitals"`
	Weight         xopt.Value[Weight]             `json:"weight"`
	Nutrition      xopt.Value[Nutrition]          `json:"nutrition"`
	Recommendation xopt.Value[Recommendation]     `json:"recommendation"`
	Medical        xopt.Value[Medical]            `json:"medical"`
	CaloriesTrend  xopt.Value[health.TrendSeries] `json:"calories_trend"`
	Activities     xopt.Value[Activities]         `json:"activities"`

	Readiness  health.Readiness    `json:"readiness"`
	Statuses   Statuses            `json:"statuses"`
	Insight    Recommendation      `json:"insight"`
	Targets    health.Targets      `json:"targets"`
	MacroBars  []health.MacroBar   `json:"macro_bars"`
	LeanMassKg xopt.Value[float64] `json:"lean_mass_kg"`

	Banners
	Failed   []Section `json:"failed"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Available reports whether s was populated from live data.
func (vm *ViewModel) Available(s Section) bool {
	switch s {
	case SectionVitals:
		return vm.Vitals.IsPresent()
	case SectionWeight:
		return vm.Weight.IsPresent()
	case SectionNutrition:
		return vm.Nutrition.IsPresent()
	case SectionRecommendation:
		return vm.Recommendation.IsPresent()
	case SectionMedical:
		return vm.Medical.IsPresent()
	case SectionCaloriesTrend:
		return vm.CaloriesTrend.IsPresent()
	case SectionActivities:
		return vm.Activities.IsPresent()
	default:
		return false
	}
}

func (vm *ViewModel) Populated() []Section {
	var out []Section
	for _, s := range Sections() {
		if vm.Available(s) {
			out = append(out, s)
		}
	}
	return out
}

// Vitals of the latest wearable pull, all Missing when it did not load.
func (vm *ViewModel) CurrentVitals() health.Vitals {
	if w, ok := vm.Vitals.Get(); ok {
		return w.Vitals
	}
	return health.Vitals{}
}

// Assemble merges settled call results and derived metrics into a ViewModel. It never fails:
// each section either parses or stays Missing.
func Assemble(results map[Section]Outcome[[]byte], targets health.Targets, loadedAt time.Time) *ViewModel {
	vm := &ViewModel{
		Targets:  targets,
		LoadedAt: loadedAt,
	}

	failures := make(map[Section]error)
	for _, s := range Sections() {
		out, ok := results[s]
		if !ok {
			continue
		}
		if !out.OK() {
			failures[s] = out.Err
			vm.Failed = append(vm.Failed, s)
			continue
		}

		switch s {
		case SectionVitals:
			vm.Vitals = parseWearable(out.Value)
		case SectionWeight:
			vm.Weight = parseWeight(out.Value)
		case SectionNutrition:
			vm.Nutrition = parseNutrition(out.Value)
		case SectionRecommendation:
			vm.Recommendation = parseRecommendation(out.Value)
		case SectionMedical:
			vm.Medical = parseMedical(out.Value)
		case SectionCaloriesTrend:
			vm.CaloriesTrend = xopt.Present(parseCaloriesTrend(out.Value))
		case SectionActivities:
			vm.Activities = xopt.Present(parseActivities(out.Value))
		}
	}

	out, ok := results[SectionVitals]
	wearableEmpty := ok && out.OK() && vm.Vitals.IsMissing()
	vm.Banners = Classify(failures, wearableEmpty)

	vitals := vm.CurrentVitals()
	vm.Readiness = health.ClassifyReadiness(vitals)
	vm.Statuses = Statuses{
		HRV:       health.HRVStatus(vitals.HRV),
		RestingHR: health.RestingHRStatus(vitals.RestingHR),
		Sleep:     health.SleepStatus(vitals.SleepHours),
	}

	vm.Insight = vm.Recommendation.OrElse(FallbackRecommendation())

	var intake health.Intake
	if n, ok := vm.Nutrition.Get(); ok {
		intake = n.Intake()
	}
	vm.MacroBars = health.MacroBars(intake, targets)

	if w, ok := vm.Weight.Get(); ok {
		vm.LeanMassKg = health.LeanMass(w.ValueKg, w.BodyFatPct)
	}

	return vm
}

// ActivitySummary of the trend, empty when activities did not load.
func (vm *ViewModel) ActivitySummary() health.ActivitySummary {
	if a, ok := vm.Activities.Get(); ok {
		return a.Summary
	}
	return health.AggregateActivities(nil)
}
