package health

import (
	"fmt"
	"math"
	"time"

	"github.com/garrettladley/healthmesh/internal/xopt"
)

// TrendWindowDays is the length of every trend the gateway returns.
const TrendWindowDays = 7

const defaultActivityType = "Other"

// ActivityEntry is one row of the activity trend. Numeric fields are Missing when the upstream
// value did not parse.
type ActivityEntry struct {
	Date            string
	Type            xopt.Value[string]
	DurationMinutes xopt.Value[float64]
	Calories        xopt.Value[float64]
}

type ActivityGroup struct {
	Type            string  `json:"type"`
	Entries         int     `json:"entries"`
	DurationSeconds float64 `json:"duration_seconds"`
	Calories        float64 `json:"calories"`
}

type ActivitySummary struct {
	Groups            []ActivityGroup `json:"groups"`
	TotalSeconds      float64         `json:"total_seconds"`
	TotalCalories     float64         `json:"total_calories"`
	AvgMinutesPerDay  float64         `json:"avg_minutes_per_day"`
	AvgCaloriesPerDay float64         `json:"avg_calories_per_day"`
}

// AggregateActivities groups entries by type in first-seen order. Duration and calories are
// accumulated independently, so a bad duration does not drop that entry's calories.
func AggregateActivities(entries []ActivityEntry) ActivitySummary {
	var (
		groups = make([]ActivityGroup, 0)
		index  = make(map[string]int)
	)

	for _, e := range entries {
		typ := e.Type.OrElse(defaultActivityType)

		i, ok := index[typ]
		if !ok {
			i = len(groups)
			index[typ] = i
			groups = append(groups, ActivityGroup{Type: typ})
		}

		g := &groups[i]
		g.Entries++
		if minutes, ok := e.DurationMinutes.Get(); ok {
			g.DurationSeconds += minutes * 60
		}
		if kcal, ok := e.Calories.Get(); ok {
			g.Calories += kcal
		}
	}

	summary := ActivitySummary{Groups: groups}
	for _, g := range groups {
		summary.TotalSeconds += g.DurationSeconds
		summary.TotalCalories += g.Calories
	}
	summary.AvgMinutesPerDay = summary.TotalSeconds / TrendWindowDays / 60
	summary.AvgCaloriesPerDay = summary.TotalCalories / TrendWindowDays

	return summary
}

func (s ActivitySummary) TotalDuration() time.Duration {
	return time.Duration(s.TotalSeconds * float64(time.Second))
}

// FormatHoursMinutes renders seconds as "1h 5m".
func FormatHoursMinutes(seconds float64) string {
	hours := math.Floor(seconds / 3600)
	minutes := math.Round(math.Mod(seconds, 3600) / 60)
	return fmt.Sprintf("%.0fh %.0fm", hours, minutes)
}
