package dashboard

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/garrettladley/healthmesh/internal/client/mesh"
	"github.com/garrettladley/healthmesh/internal/health"
)

type response struct {
	raw   string
	err   error
	panic any
}

type fakeFetcher struct {
	mu        sync.Mutex
	responses map[mesh.Capability]response
	calls     []mesh.Capability
}

func (f *fakeFetcher) Call(_ context.Context, c mesh.Capability, _ any) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	resp, ok := f.responses[c]
	f.mu.Unlock()

	if resp.panic != nil {
		panic(resp.panic)
	}
	if !ok {
		return []byte(`{}`), nil
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return []byte(resp.raw), nil
}

func (f *fakeFetcher) called(c mesh.Capability) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int
	for _, got := range f.calls {
		if got == c {
			n++
		}
	}
	return n
}

var fixedNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

func healthyResponses() map[mesh.Capability]response {
	return map[mesh.Capability]response{
		mesh.CapabilityGarminLatest: {raw: `{"hrv":55,"restingHeartRate":52,"measurableAsleepDuration":28800,"distance":5.2,` +
			`"last7hrv":[50,52,55],"last7rhr":[54,53,52],"last7sleep":[7,7.5,8],"last7runs":[{"distance_km":5},{"distance_km":7.5}]}`},
		mesh.CapabilityWeightLatest:     {raw: `{"value":80,"bodyfat":20}`},
		mesh.CapabilityCaloriesLatest:   {raw: `{"calories":1800,"carbs":200,"protein":120,"fat":90}`},
		mesh.CapabilityAIRecommendation: {raw: `{"result":{"training_plan":"Tempo run","nutrition_plan":"More protein","hydration_target_l":3,"today_focus":"Zone 2","motivation":"Keep going"}}`},
		mesh.CapabilityMedicalLatest:    {raw: `{"cholesterol":180,"ldl":95}`},
		mesh.CapabilityCaloriesTrend:    {raw: `{"data":[{"date":"2025-03-13","calories":2100},{"date":"2025-03-14","calories":"1900"}]}`},
		mesh.CapabilityActivitiesTrend:  {raw: `[{"activity_type":"Running","duration":30,"calories":300,"date":"2025-03-13"},null]`},
		mesh.CapabilitySyncGarmin:       {raw: `{"status":"ok"}`},
		mesh.CapabilitySyncNutrition:    {raw: `{"status":"ok"}`},
	}
}

func newTestLoader(f Fetcher) *Loader {
	return NewLoader(f,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return fixedNow }),
	)
}

func TestLoadAllSections(t *testing.T) {
	t.Parallel()

	f := &fakeFetcher{responses: healthyResponses()}
	vm, err := newTestLoader(f).Load(t.Context())
	require.NoError(t, err)

	require.Equal(t, Sections(), vm.Populated())
	require.Empty(t, vm.Failed)
	require.True(t, vm.Warning.IsMissing())
	require.True(t, vm.Error.IsMissing())
	require.Equal(t, health.PrimeCondition, vm.Readiness)
	require.Equal(t, fixedNow, vm.LoadedAt)

	w, ok := vm.Vitals.Get()
	require.True(t, ok)
	require.Equal(t, 8.0, w.Vitals.SleepHours.OrElse(0))
	require.Equal(t, 12.5, w.Distance7Days)

	require.False(t, vm.Insight.Fallback)
	require.Equal(t, "Tempo run", vm.Insight.TrainingPlan)

	trend, ok := vm.CaloriesTrend.Get()
	require.True(t, ok)
	require.Equal(t, []float64{2100, 1900}, trend.Values())

	summary := vm.ActivitySummary()
	require.Len(t, summary.Groups, 1)
	require.Equal(t, 1800.0, summary.TotalSeconds)

	lean, ok := vm.LeanMassKg.Get()
	require.True(t, ok)
	require.InDelta(t, 64.0, lean, 1e-9)

	for _, s := range Sections() {
		require.Equal(t, 1, f.called(s.Capability()), s)
	}
}

// With M failing sections exactly N-M are populated, whatever the subset.
func TestLoadPartialFailures(t *testing.T) {
	t.Parallel()

	sections := Sections()
	for mask := range 1 << len(sections) {
		responses := healthyResponses()
		var failed []Section
		for i, s := range sections {
			if mask&(1<<i) != 0 {
				responses[s.Capability()] = response{err: &mesh.APIError{Capability: s.Capability(), StatusCode: http.StatusInternalServerError}}
				failed = append(failed, s)
			}
		}

		vm, err := newTestLoader(&fakeFetcher{responses: responses}).Load(t.Context())
		require.NoError(t, err)
		require.Len(t, vm.Populated(), len(sections)-len(failed), "mask %b", mask)
		require.Equal(t, failed, vm.Failed, "mask %b", mask)
		require.Equal(t, len(failed) > 0, vm.Error.IsPresent(), "mask %b", mask)
		require.Len(t, vm.MacroBars, len(health.Macros()))
	}
}

func TestLoadWearableGatewayTimeout(t *testing.T) {
	t.Parallel()

	responses := healthyResponses()
	responses[mesh.CapabilityGarminLatest] = response{err: &mesh.APIError{
		Capability: mesh.CapabilityGarminLatest,
		StatusCode: http.StatusGatewayTimeout,
	}}

	vm, err := newTestLoader(&fakeFetcher{responses: responses}).Load(t.Context())
	require.NoError(t, err)

	require.Equal(t, WarningWearableOutage, vm.Warning.OrElse(""))
	require.Equal(t, ErrorBackendUnreachable, vm.Error.OrElse(""))
	require.Equal(t, health.SyncRequired, vm.Readiness)
	require.Equal(t, health.StatusUnknown, vm.Statuses.HRV)
	require.Equal(t, []Section{SectionVitals}, vm.Failed)
	require.True(t, vm.Available(SectionWeight))
}

func TestLoadEmptyWearable(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{`{}`, `null`, ``} {
		responses := healthyResponses()
		responses[mesh.CapabilityGarminLatest] = response{raw: raw}

		vm, err := newTestLoader(&fakeFetcher{responses: responses}).Load(t.Context())
		require.NoError(t, err)

		require.Equal(t, WarningWearableEmpty, vm.Warning.OrElse(""), "payload %q", raw)
		require.True(t, vm.Error.IsMissing(), "payload %q", raw)
		require.False(t, vm.Available(SectionVitals))
		require.Empty(t, vm.Failed)
	}
}

func TestLoadFallbackRecommendation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		resp response
	}{
		{name: "call failed", resp: response{err: errors.New("boom")}},
		{name: "no result", resp: response{raw: `{"status":"pending"}`}},
		{name: "empty result", resp: response{raw: `{"result":{}}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			responses := healthyResponses()
			responses[mesh.CapabilityAIRecommendation] = tt.resp

			vm, err := newTestLoader(&fakeFetcher{responses: responses}).Load(t.Context())
			require.NoError(t, err)
			require.Equal(t, FallbackRecommendation(), vm.Insight)
			require.Equal(t, 3.5, vm.Insight.HydrationTargetL.OrElse(0))
		})
	}
}

func TestLoadPanicIsOrchestrationError(t *testing.T) {
	t.Parallel()

	responses := healthyResponses()
	responses[mesh.CapabilityMedicalLatest] = response{panic: "medical exploded"}
	f := &fakeFetcher{responses: responses}

	vm, err := newTestLoader(f).Load(t.Context())
	require.Nil(t, vm)

	var orchErr *OrchestrationError
	require.ErrorAs(t, err, &orchErr)
	require.Contains(t, err.Error(), "medical exploded")

	// every other call still settled
	for _, s := range Sections() {
		require.Equal(t, 1, f.called(s.Capability()), s)
	}
}

func TestLoadCalorieTarget(t *testing.T) {
	t.Parallel()

	l := NewLoader(&fakeFetcher{responses: healthyResponses()},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithCalorieTarget(2500),
	)
	vm, err := l.Load(t.Context())
	require.NoError(t, err)
	require.Equal(t, health.NewTargets(2500), vm.Targets)
}
