package theme

import (
	"image/color"

	"github.com/garrettladley/healthmesh/internal/health"
)

// ReadinessColor maps a readiness band to its accent colour.
func ReadinessColor(r health.Readiness) color.Color {
	switch r {
	case health.PrimeCondition:
		return ColorGood
	case health.GoodState:
		return ColorTeal
	case health.Fatigued:
		return ColorWarn
	case health.RestNeeded:
		return ColorBad
	default:
		return ColorDim
	}
}

func StatusColor(s health.Status) color.Color {
	switch s {
	case health.StatusGood:
		return ColorGood
	case health.StatusModerate:
		return ColorWarn
	case health.StatusLow, health.StatusHigh:
		return ColorBad
	default:
		return ColorDim
	}
}
