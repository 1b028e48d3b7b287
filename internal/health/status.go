package health

import (
	"fmt"

	"github.com/garrettladley/healthmesh/internal/xopt"
)

// Status grades a single vital on its own, independently of Readiness.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusGood
	StatusModerate
	StatusLow
	StatusHigh
)

var statusNames = [...]string{
	StatusUnknown:  "unknown",
	StatusGood:     "good",
	StatusModerate: "moderate",
	StatusLow:      "low",
	StatusHigh:     "high",
}

func (s Status) String() string {
	if int(s) >= len(statusNames) {
		return fmt.Sprintf("status(%d)", s)
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown status %q", text)
}

const noValueBadge = "- - -"

func HRVStatus(v xopt.Value[float64]) Status {
	hrv, ok := v.Get()
	switch {
	case !ok:
		return StatusUnknown
	case hrv >= 60:
		return StatusGood
	case hrv >= 40:
		return StatusModerate
	default:
		return StatusLow
	}
}

func RestingHRStatus(v xopt.Value[float64]) Status {
	rhr, ok := v.Get()
	switch {
	case !ok:
		return StatusUnknown
	case rhr <= 60:
		return StatusGood
	case rhr <= 70:
		return StatusModerate
	default:
		return StatusHigh
	}
}

func SleepStatus(v xopt.Value[float64]) Status {
	hours, ok := v.Get()
	switch {
	case !ok:
		return StatusUnknown
	case hours >= 7:
		return StatusGood
	case hours >= 6:
		return StatusModerate
	default:
		return StatusLow
	}
}

// Badges are two-state, coarser than Status.

func HRVBadge(v xopt.Value[float64]) string {
	hrv, ok := v.Get()
	switch {
	case !ok:
		return noValueBadge
	case hrv >= 60:
		return "↑ Good"
	default:
		return "↓ Low"
	}
}

func RestingHRBadge(v xopt.Value[float64]) string {
	rhr, ok := v.Get()
	switch {
	case !ok:
		return noValueBadge
	case rhr <= 60:
		return "↓ Good"
	default:
		return "→ Monitor"
	}
}

func SleepBadge(v xopt.Value[float64]) string {
	hours, ok := v.Get()
	switch {
	case !ok:
		return noValueBadge
	case hours >= 7:
		return "✓ Good"
	default:
		return "⚠ Low"
	}
}
