package banner

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/dashboard"
	"github.com/garrettladley/healthmesh/internal/tui/theme"
)

const (
	warningIcon = "⚠ "
	errorIcon   = "✖ "
)

// Render stacks the warning above the error. Absent banners render nothing.
func Render(b dashboard.Banners, width int) string {
	var lines []string

	if msg, ok := b.Warning.Get(); ok {
		lines = append(lines, style(theme.ColorWarn, width).Render(warningIcon+msg))
	}
	if msg, ok := b.Error.Get(); ok {
		lines = append(lines, style(theme.ColorBad, width).Render(errorIcon+msg))
	}

	if len(lines) == 0 {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func style(c color.Color, width int) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(c).Bold(true)
	if width > 0 {
		s = s.Width(width)
	}
	return s
}
