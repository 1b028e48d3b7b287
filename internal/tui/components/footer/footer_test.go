package footer

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

func TestHints(t *testing.T) {
	t.Parallel()

	got := ansi.Strip(Hints(Hint{"r", "sync"}, Hint{"q", "quit"}))
	if want := "r sync · q quit"; got != want {
		t.Errorf("Hints() = %q, want %q", got, want)
	}
}

func TestFooter_Render(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		width int
	}{
		{"wide", 120},
		{"narrow", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			right := Hints(Hint{"q", "quit"})
			out := New(right, tt.width).Render()
			plain := ansi.Strip(out)

			if !strings.HasSuffix(strings.TrimRight(plain, " "), "q quit") {
				t.Errorf("Render() = %q, want hints on the right", plain)
			}
			if tt.width >= 40 {
				if got := lipgloss.Width(out); got != tt.width {
					t.Errorf("Render() width = %d, want %d", got, tt.width)
				}
			}
		})
	}
}
