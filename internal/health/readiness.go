// Package health derives readiness, per-metric statuses, macro-nutrient bars and activity
// totals from raw vitals. Everything here is pure.
package health

import (
	"fmt"

	"github.com/garrettladley/healthmesh/internal/xopt"
)

type Readiness uint8

const (
	SyncRequired Readiness = iota
	PrimeCondition
	GoodState
	Fatigued
	RestNeeded
)

const (
	hrvStressBelow       = 40.0
	restingHRStressAbove = 70.0
	sleepStressBelow     = 6.0
)

type band struct {
	name    string
	label   string
	message string
}

var bands = [...]band{
	SyncRequired:   {"sync_required", "Sync Required", "Sync data to see readiness"},
	PrimeCondition: {"prime_condition", "Prime Condition", "Ready for high intensity training"},
	GoodState:      {"good_state", "Good State", "Balanced state for normal training"},
	Fatigued:       {"fatigued", "Fatigued", "Consider active recovery or light training"},
	RestNeeded:     {"rest_needed", "Rest Needed", "Focus on sleep and recovery today"},
}

// stress count 0..3 indexes straight into the scored bands.
var byStress = [...]Readiness{PrimeCondition, GoodState, Fatigued, RestNeeded}

func (r Readiness) valid() bool { return int(r) < len(bands) }

func (r Readiness) String() string {
	if !r.valid() {
		return fmt.Sprintf("readiness(%d)", r)
	}
	return bands[r].name
}

func (r Readiness) Label() string {
	if !r.valid() {
		return ""
	}
	return bands[r].label
}

func (r Readiness) Message() string {
	if !r.valid() {
		return ""
	}
	return bands[r].message
}

func (r Readiness) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *Readiness) UnmarshalText(text []byte) error {
	for i, b := range bands {
		if b.name == string(text) {
			*r = Readiness(i)
			return nil
		}
	}
	return fmt.Errorf("unknown readiness %q", text)
}

// Vitals are the three inputs readiness is scored from. Any of them may be missing.
type Vitals struct {
	HRV        xopt.Value[float64] `json:"hrv"`
	RestingHR  xopt.Value[float64] `json:"resting_hr"`
	SleepHours xopt.Value[float64] `json:"sleep_hours"`
}

func (v Vitals) Complete() bool {
	return v.HRV.IsPresent() && v.RestingHR.IsPresent() && v.SleepHours.IsPresent()
}

// StressCount adds one for each vital outside its comfortable range.
func StressCount(hrv, restingHR, sleepHours float64) int {
	var n int
	if hrv < hrvStressBelow {
		n++
	}
	if restingHR > restingHRStressAbove {
		n++
	}
	if sleepHours < sleepStressBelow {
		n++
	}
	return n
}

// ClassifyReadiness is SyncRequired whenever an input is missing, before any scoring.
func ClassifyReadiness(v Vitals) Readiness {
	hrv, ok := v.HRV.Get()
	if !ok {
		return SyncRequired
	}
	rhr, ok := v.RestingHR.Get()
	if !ok {
		return SyncRequired
	}
	sleep, ok := v.SleepHours.Get()
	if !ok {
		return SyncRequired
	}
	return byStress[StressCount(hrv, rhr, sleep)]
}
