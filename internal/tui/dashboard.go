package tui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/dashboard"
	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/tui/components/activity"
	"github.com/garrettladley/healthmesh/internal/tui/components/auth"
	"github.com/garrettladley/healthmesh/internal/tui/components/banner"
	"github.com/garrettladley/healthmesh/internal/tui/components/gauge"
	"github.com/garrettladley/healthmesh/internal/tui/components/macrobar"
	"github.com/garrettladley/healthmesh/internal/tui/components/sparkline"
	"github.com/garrettladley/healthmesh/internal/tui/components/vitals"
	"github.com/garrettladley/healthmesh/internal/tui/theme"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

const (
	panelGap      = "   "
	insightWidth  = 48
	macroTrack    = 20
	sparkWidth    = 28
	sparkHeight   = 3
	readinessSize = 22
)

type DashboardState struct {
	AuthIndicator auth.Indicator

	ViewModel *dashboard.ViewModel
	Err       error // last refresh failure, cleared by the next success

	seq        uint64
	inFlight   bool
	syncing    dashboard.SyncKind
	failedSync dashboard.SyncKind // empty when Err came from a plain load
}

var (
	palette      = theme.New()
	headingStyle = palette.Heading()
	dimStyle     = palette.Dim()
	textStyle    = palette.Text()
	errorStyle   = palette.Error()
)

func (m *Model) DashboardView() string {
	d := m.state.dashboard
	vm := d.ViewModel
	if vm == nil {
		// render the degraded layout until the first load lands
		vm = dashboard.Assemble(nil, health.NewTargets(health.DefaultCalorieTarget), time.Time{})
	}

	hero := lipgloss.JoinHorizontal(
		lipgloss.Top,
		readinessView(vm.Readiness),
		panelGap,
		lipgloss.JoinVertical(lipgloss.Left, vitals.Row(vm.CurrentVitals()), "", insightView(vm.Insight)),
	)

	nutrition := lipgloss.JoinHorizontal(
		lipgloss.Top,
		section("NUTRITION", macrobar.List(vm.MacroBars, macroTrack)),
		panelGap,
		section("CALORIES · 7 DAYS", caloriesView(vm)),
	)

	lower := lipgloss.JoinHorizontal(
		lipgloss.Top,
		section("ACTIVITY · 7 DAYS", activity.Render(vm.ActivitySummary())),
		panelGap,
		section("BODY", bodyView(vm)),
	)

	parts := []string{}
	if b := banner.Render(vm.Banners, 0); b != "" {
		parts = append(parts, b, "")
	}
	parts = append(parts, hero, "", nutrition, "", lower, "", m.statusView())

	main := lipgloss.JoinVertical(lipgloss.Left, parts...)
	if !m.state.blog.Visible {
		return main
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, main, panelGap, m.BlogView())
}

// readinessScore is the number of vitals in their comfortable range.
func readinessScore(r health.Readiness) xopt.Value[float64] {
	switch r {
	case health.PrimeCondition:
		return xopt.Present(3.0)
	case health.GoodState:
		return xopt.Present(2.0)
	case health.Fatigued:
		return xopt.Present(1.0)
	case health.RestNeeded:
		return xopt.Present(0.0)
	default:
		return xopt.Missing[float64]()
	}
}

func readinessView(r health.Readiness) string {
	c := theme.ReadinessColor(r)
	g := gauge.New(
		readinessScore(r),
		3,
		strings.ToUpper(r.Label()),
		c,
		gauge.WithSize(readinessSize),
		gauge.WithFormat(func(v float64) string { return fmt.Sprintf("%.0f/3", v) }),
	)

	msg := dimStyle.
		Width(readinessSize).
		Align(lipgloss.Center).
		Render(r.Message())

	return lipgloss.JoinVertical(lipgloss.Center, g.Render(), msg)
}

func insightView(rec dashboard.Recommendation) string {
	title := "TODAY"
	if rec.Fallback {
		title += dimStyle.Render(" (offline)")
	}

	lines := []string{
		headingStyle.Render(title),
		textStyle.Bold(true).Render(rec.TodayFocus),
		textStyle.Render("Training: " + rec.TrainingPlan),
		textStyle.Render("Nutrition: " + rec.NutritionPlan),
	}
	if l, ok := rec.HydrationTargetL.Get(); ok {
		lines = append(lines, textStyle.Render(fmt.Sprintf("Hydration: %.1f L", l)))
	}
	lines = append(lines, dimStyle.Italic(true).Render(rec.Motivation))

	return lipgloss.NewStyle().Width(insightWidth).Render(strings.Join(lines, "\n"))
}

func caloriesView(vm *dashboard.ViewModel) string {
	series := vm.CaloriesTrend.OrElse(nil).ForDisplay()
	spark := sparkline.New(
		series.Values(),
		sparkWidth,
		sparkHeight,
		palette.Accent(),
		sparkline.WithReference(vm.Targets.Calories),
	).Render()

	legend := dimStyle.Render(fmt.Sprintf("--- target %.0f kcal", vm.Targets.Calories))
	if len(series) > 0 {
		legend = dimStyle.Render(fmt.Sprintf("%.0f kcal over %d days · ", series.Sum(), len(series))) + legend
	}
	return lipgloss.JoinVertical(lipgloss.Left, spark, legend)
}

func bodyView(vm *dashboard.ViewModel) string {
	var (
		w   = vm.Weight.OrElse(dashboard.Weight{})
		med = vm.Medical.OrElse(dashboard.Medical{})
	)

	rows := []struct {
		label string
		value xopt.Value[float64]
		unit  string
	}{
		{"Weight", w.ValueKg, "kg"},
		{"Body fat", w.BodyFatPct, "%"},
		{"Lean mass", vm.LeanMassKg, "kg"},
		{"Cholesterol", med.CholesterolMgDL, "mg/dL"},
		{"LDL", med.LDLMgDL, "mg/dL"},
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		value := "--"
		if v, ok := r.value.Get(); ok {
			value = fmt.Sprintf("%.1f %s", v, r.unit)
		}
		lines[i] = dimStyle.Width(13).Render(r.label) + textStyle.Render(value)
	}
	return strings.Join(lines, "\n")
}

func section(title, body string) string {
	return lipgloss.JoinVertical(lipgloss.Left, headingStyle.Render(title), body)
}

func (m *Model) statusView() string {
	d := m.state.dashboard
	switch {
	case d.inFlight && d.syncing != "":
		return dimStyle.Render(fmt.Sprintf("syncing %s...", d.syncing))
	case d.inFlight:
		return dimStyle.Render("loading...")
	case d.Err != nil && d.failedSync != "":
		return errorStyle.Render("Sync failed: " + d.Err.Error())
	case d.Err != nil:
		return errorStyle.Render("Load failed: " + d.Err.Error())
	case d.ViewModel != nil:
		return dimStyle.Render("updated " + d.ViewModel.LoadedAt.Local().Format("Jan 2 15:04"))
	default:
		return ""
	}
}
