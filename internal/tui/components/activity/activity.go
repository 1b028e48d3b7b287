// Package activity renders the seven day activity breakdown.
package activity

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/tui/theme"
)

var headers = []string{"TYPE", "SESSIONS", "TIME", "KCAL"}

// Rows are the table body: one row per activity type in first-seen order.
func Rows(s health.ActivitySummary) [][]string {
	rows := make([][]string, 0, len(s.Groups))
	for _, g := range s.Groups {
		rows = append(rows, []string{
			g.Type,
			strconv.Itoa(g.Entries),
			health.FormatHoursMinutes(g.DurationSeconds),
			fmt.Sprintf("%.0f", g.Calories),
		})
	}
	return rows
}

// Footer summarises totals and per-day averages over the trend window.
func Footer(s health.ActivitySummary) string {
	return fmt.Sprintf("total %s · %.0f kcal · avg %.0f min/day · %.0f kcal/day",
		health.FormatHoursMinutes(s.TotalSeconds),
		s.TotalCalories,
		s.AvgMinutesPerDay,
		s.AvgCaloriesPerDay,
	)
}

func Render(s health.ActivitySummary) string {
	dim := lipgloss.NewStyle().Foreground(theme.ColorDim)

	if len(s.Groups) == 0 {
		return dim.Render("No activities in the last 7 days")
	}

	var (
		header = lipgloss.NewStyle().Foreground(theme.ColorStrain).Bold(true).Padding(0, 1)
		cell   = lipgloss.NewStyle().Foreground(theme.ColorWhite).Padding(0, 1)
	)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorBgLight)).
		Headers(headers...).
		Rows(Rows(s)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})

	return lipgloss.JoinVertical(lipgloss.Left, t.String(), dim.Render(Footer(s)))
}
