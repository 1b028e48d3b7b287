package health

import "github.com/garrettladley/healthmesh/internal/xopt"

// SleepHours converts the wearable's asleep duration in seconds. Zero counts as no data.
func SleepHours(seconds xopt.Value[float64]) xopt.Value[float64] {
	s, ok := seconds.Get()
	if !ok || s == 0 {
		return xopt.Missing[float64]()
	}
	return xopt.Present(s / 3600)
}

// LeanMass is weight without body fat. Missing unless both inputs are present and non-zero.
func LeanMass(weightKg, bodyFatPct xopt.Value[float64]) xopt.Value[float64] {
	w, ok := weightKg.Get()
	if !ok || w == 0 {
		return xopt.Missing[float64]()
	}
	bf, ok := bodyFatPct.Get()
	if !ok || bf == 0 {
		return xopt.Missing[float64]()
	}
	return xopt.Present(w * (1 - bf/100))
}
