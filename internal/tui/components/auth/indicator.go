package auth

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/tui/theme"
)

const statusDot = "●"

// Indicator shows whether gateway requests will carry a credential.
type Indicator struct {
	Checked       bool
	Authenticated bool
	FromEnv       bool // HP_TOKEN overrides the stored credential
}

func (a Indicator) Render() string {
	if !a.Checked {
		return lipgloss.NewStyle().
			Foreground(theme.ColorBgLight).
			Render(statusDot + " checking...")
	}

	if a.FromEnv {
		return lipgloss.NewStyle().
			Foreground(theme.ColorNeutral).
			Render(statusDot + " token from env")
	}

	if a.Authenticated {
		return lipgloss.NewStyle().
			Foreground(theme.ColorGood).
			Render(statusDot + " signed in")
	}

	return lipgloss.NewStyle().
		Foreground(theme.ColorBad).
		Render(statusDot + " signed out")
}
