package dashboard

import (
	"github.com/garrettladley/healthmesh/internal/client/mesh"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

const (
	WarningWearableEmpty    = "Garmin data is currently unavailable. Some metrics will be missing."
	WarningWearableOutage   = "Garmin data unavailable (Server Error). Please try refreshing later."
	WarningWearableFailed   = "Failed to load Garmin data. Recovery metrics will be limited."
	ErrorBackendUnreachable = "Server unreachable (502/504). The backend service appears to be down."
	ErrorDataIncomplete     = "Some data failed to load. The displayed information may be incomplete."
)

// Banners is the two-tier degraded state: a warning scoped to the wearable section and a
// general integrity error for any failure.
type Banners struct {
	Warning xopt.Value[string] `json:"warning"`
	Error   xopt.Value[string] `json:"error"`
}

// Classify derives banners from per-section failures. Only the wearable section gets a scoped
// warning; other sections only contribute to the general error.
func Classify(failures map[Section]error, wearableEmpty bool) Banners {
	var b Banners

	if err, failed := failures[SectionVitals]; failed && err != nil {
		if mesh.IsGatewayOutage(err) {
			b.Warning = xopt.Present(WarningWearableOutage)
		} else {
			b.Warning = xopt.Present(WarningWearableFailed)
		}
	} else if wearableEmpty {
		b.Warning = xopt.Present(WarningWearableEmpty)
	}

	var (
		anyFailed bool
		outage    bool
	)
	for _, err := range failures {
		if err == nil {
			continue
		}
		anyFailed = true
		if mesh.IsGatewayOutage(err) {
			outage = true
		}
	}

	switch {
	case outage:
		b.Error = xopt.Present(ErrorBackendUnreachable)
	case anyFailed:
		b.Error = xopt.Present(ErrorDataIncomplete)
	}

	return b
}
