package macrobar

import (
	"fmt"
	"math"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/health"
	"github.com/garrettladley/healthmesh/internal/tui/theme"
)

const (
	labelWidth  = 10
	amountWidth = 16

	filledGlyph    = "█"
	remainingGlyph = "░"
	excessGlyph    = "▓"
)

type Bar struct {
	bar   health.MacroBar
	width int
}

// New renders b with a track width columns wide.
func New(b health.MacroBar, width int) Bar {
	return Bar{bar: b, width: max(width, 1)}
}

// segments splits the track proportionally to the bar's kcal segments. A non-zero excess
// always gets at least one cell so going over target is visible.
func segments(b health.MacroBar, width int) (filled, remaining, excess int) {
	total := b.Filled + b.Remaining + b.Excess
	if total <= 0 {
		return 0, width, 0
	}

	filled = int(math.Round(b.Filled / total * float64(width)))
	excess = int(math.Round(b.Excess / total * float64(width)))
	if b.Excess > 0 && excess == 0 {
		excess = 1
	}
	if filled+excess > width {
		filled = width - excess
	}
	return filled, width - filled - excess, excess
}

func (b Bar) Render() string {
	filled, remaining, excess := segments(b.bar, b.width)

	percentColor := theme.ColorTeal
	if b.bar.OverTarget() {
		percentColor = theme.ColorExcess
	}

	var (
		label = lipgloss.NewStyle().
			Width(labelWidth).
			Foreground(theme.ColorWhite).
			Render(b.bar.Macro.String())
		amount = lipgloss.NewStyle().
			Width(amountWidth).
			Foreground(theme.ColorDim).
			Render(fmt.Sprintf("%.0f/%.0f %s", b.bar.Current, b.bar.Target, b.bar.Unit))
		track = lipgloss.NewStyle().Foreground(theme.ColorTeal).Render(strings.Repeat(filledGlyph, filled)) +
			lipgloss.NewStyle().Foreground(theme.ColorBgLight).Render(strings.Repeat(remainingGlyph, remaining)) +
			lipgloss.NewStyle().Foreground(theme.ColorExcess).Render(strings.Repeat(excessGlyph, excess))
		percent = lipgloss.NewStyle().
			Foreground(percentColor).
			Render(fmt.Sprintf(" %3.0f%%", b.bar.Percent()))
	)

	return label + amount + track + percent
}

// List renders one bar per line.
func List(bars []health.MacroBar, width int) string {
	lines := make([]string, len(bars))
	for i, b := range bars {
		lines[i] = New(b, width).Render()
	}
	return strings.Join(lines, "\n")
}
