package sparkline

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/garrettladley/healthmesh/internal/tui/theme"
)

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to [2]int
		want     [][2]int
	}{
		{
			name: "single point",
			from: [2]int{2, 2},
			to:   [2]int{2, 2},
			want: [][2]int{{2, 2}},
		},
		{
			name: "horizontal",
			from: [2]int{0, 1},
			to:   [2]int{3, 1},
			want: [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 1}},
		},
		{
			name: "diagonal up",
			from: [2]int{0, 3},
			to:   [2]int{3, 0},
			want: [][2]int{{0, 3}, {1, 2}, {2, 1}, {3, 0}},
		},
		{
			name: "steep",
			from: [2]int{0, 0},
			to:   [2]int{1, 3},
			want: [][2]int{{0, 0}, {0, 1}, {1, 2}, {1, 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, line(tt.from, tt.to)); diff != "" {
				t.Errorf("line() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	t.Parallel()

	got := points([]float64{1800, 2200, 2000}, 21, 8, 1800, 2200)
	want := [][2]int{{0, 7}, {10, 0}, {20, 3}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("points() mismatch (-want +got):\n%s", diff)
	}
}

func TestBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		spark          Sparkline
		wantLo, wantHi float64
	}{
		{
			name:   "series only",
			spark:  New([]float64{3, 9, 5}, 10, 2, theme.ColorTeal),
			wantLo: 3,
			wantHi: 9,
		},
		{
			name:   "reference widens range",
			spark:  New([]float64{1500, 1900}, 10, 2, theme.ColorTeal, WithReference(2000)),
			wantLo: 1500,
			wantHi: 2000,
		},
		{
			name:   "flat series",
			spark:  New([]float64{4, 4}, 10, 2, theme.ColorTeal),
			wantLo: 3.5,
			wantHi: 4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			lo, hi := tt.spark.bounds()
			if lo != tt.wantLo || hi != tt.wantHi {
				t.Errorf("bounds() = (%v, %v), want (%v, %v)", lo, hi, tt.wantLo, tt.wantHi)
			}
		})
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float64
		empty  bool
	}{
		{name: "empty", values: nil, empty: true},
		{name: "single", values: []float64{2100}},
		{name: "week", values: []float64{1800, 2300, 2000, 1700, 2500, 1950, 2050}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := New(tt.values, 28, 4, theme.ColorTeal, WithReference(2000))
			out := s.Render()

			if got := lipgloss.Height(out); got != 4 {
				t.Errorf("height = %d, want 4", got)
			}
			if got := lipgloss.Width(out); got != 28 {
				t.Errorf("width = %d, want 28", got)
			}

			plain := ansi.Strip(out)
			if got := strings.Contains(plain, noData); got != tt.empty {
				t.Errorf("placeholder shown = %v, want %v", got, tt.empty)
			}
		})
	}
}
