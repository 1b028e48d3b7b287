// Package vitals renders the HRV, resting heart rate and sleep cards.
package vitals

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/tui/theme"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

const cardWidth = 18

// Card is one vital with its status badge.
type Card struct {
	Label  string
	Value  xopt.Value[float64]
	Format string
	Badge  string
	Status health.Status
}

// Cards lists the three vitals in display order.
func Cards(v health.Vitals) []Card {
	return []Card{
		{
			Label:  "HRV",
			Value:  v.HRV,
			Format: "%.0f ms",
			Badge:  health.HRVBadge(v.HRV),
			Status: health.HRVStatus(v.HRV),
		},
		{
			Label:  "RESTING HR",
			Value:  v.RestingHR,
			Format: "%.0f bpm",
			Badge:  health.RestingHRBadge(v.RestingHR),
			Status: health.RestingHRStatus(v.RestingHR),
		},
		{
			Label:  "SLEEP",
			Value:  v.SleepHours,
			Format: "%.1f h",
			Badge:  health.SleepBadge(v.SleepHours),
			Status: health.SleepStatus(v.SleepHours),
		},
	}
}

func (c Card) value() string {
	v, ok := c.Value.Get()
	if !ok {
		return "--"
	}
	return fmt.Sprintf(c.Format, v)
}

func (c Card) Render() string {
	var (
		label = lipgloss.NewStyle().Foreground(theme.ColorDim).Render(c.Label)
		value = lipgloss.NewStyle().Foreground(theme.ColorWhite).Bold(true).Render(c.value())
		badge = lipgloss.NewStyle().Foreground(theme.StatusColor(c.Status)).Render(c.Badge)
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBgLight).
		Padding(0, 1).
		Width(cardWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, label, value, badge))
}

// Row renders the cards side by side.
func Row(v health.Vitals) string {
	cards := Cards(v)
	rendered := make([]string, len(cards))
	for i, c := range cards {
		rendered[i] = c.Render()
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
