package auth

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestIndicator_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		indicator Indicator
		want      string
	}{
		{"unchecked", Indicator{}, "● checking..."},
		{"signed out", Indicator{Checked: true}, "● signed out"},
		{"signed in", Indicator{Checked: true, Authenticated: true}, "● signed in"},
		{"env override wins", Indicator{Checked: true, Authenticated: true, FromEnv: true}, "● token from env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ansi.Strip(tt.indicator.Render()); got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}
