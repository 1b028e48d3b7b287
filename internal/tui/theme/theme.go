package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme is the dashboard palette. Readiness and status colours live in bands.go.
type Theme struct {
	background color.Color
	foreground color.Color
	muted      color.Color
	accent     color.Color
	alert      color.Color
}

func New() Theme {
	return Theme{
		background: ColorBgDark,
		foreground: ColorWhite,
		muted:      ColorDim,
		accent:     ColorTeal,
		alert:      ColorBad,
	}
}

func (t Theme) Background() color.Color {
	return t.background
}

func (t Theme) Accent() color.Color {
	return t.accent
}

func (t Theme) Text() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.foreground)
}

func (t Theme) TextAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.accent).Bold(true)
}

func (t Theme) Heading() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.muted).Bold(true)
}

func (t Theme) Dim() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.muted)
}

func (t Theme) Error() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.alert)
}
