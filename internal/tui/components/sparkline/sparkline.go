// Package sparkline draws a series as a braille line chart with an optional dashed reference.
package sparkline

import (
	"image/color"
	"math"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/tui/theme"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

const (
	emptyBraille rune = '⠀'
	noData            = "no data"
)

type Sparkline struct {
	Values         []float64
	Reference      xopt.Value[float64]
	Width          int // columns
	Height         int // rows
	Color          color.Color
	ReferenceColor color.Color
}

type Option func(*Sparkline)

// WithReference draws a dashed horizontal line at v, included in the vertical scale.
func WithReference(v float64) Option {
	return func(s *Sparkline) {
		s.Reference = xopt.Present(v)
	}
}

func WithReferenceColor(c color.Color) Option {
	return func(s *Sparkline) {
		s.ReferenceColor = c
	}
}

func New(values []float64, width, height int, c color.Color, opts ...Option) Sparkline {
	s := Sparkline{
		Values:         values,
		Width:          max(width, 1),
		Height:         max(height, 1),
		Color:          c,
		ReferenceColor: theme.ColorDim,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// bounds is the vertical scale. A flat series gets a unit range so it draws mid-height.
func (s Sparkline) bounds() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range s.Values {
		lo, hi = min(lo, v), max(hi, v)
	}
	if ref, ok := s.Reference.Get(); ok {
		lo, hi = min(lo, ref), max(hi, ref)
	}
	if hi == lo {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}

func (s Sparkline) Render() string {
	if len(s.Values) == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.ColorDim).
			Width(s.Width).
			Height(s.Height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(noData)
	}

	var (
		w      = s.Width * 2
		h      = s.Height * 4
		lo, hi = s.bounds()
		canvas = drawille.NewCanvas()
	)

	if ref, ok := s.Reference.Get(); ok {
		y := scaleY(ref, lo, hi, h)
		for x := 0; x < w; x += 4 {
			canvas.Set(x, y)
			canvas.Set(x+1, y)
		}
	}
	ref := grid(&canvas, w, h)

	canvas.Clear()
	pts := points(s.Values, w, h, lo, hi)
	if len(pts) == 1 {
		canvas.Set(pts[0][0], pts[0][1])
	}
	for i := 1; i < len(pts); i++ {
		for _, p := range line(pts[i-1], pts[i]) {
			canvas.Set(p[0], p[1])
		}
	}
	series := grid(&canvas, w, h)

	var (
		lineStyle = lipgloss.NewStyle().Foreground(s.Color)
		refStyle  = lipgloss.NewStyle().Foreground(s.ReferenceColor)
		rows      = make([]string, len(series))
	)
	for i := range series {
		var b strings.Builder
		for j, r := range series[i] {
			switch {
			case hasDots(r):
				b.WriteString(lineStyle.Render(string(r)))
			case hasDots(ref[i][j]):
				b.WriteString(refStyle.Render(string(ref[i][j])))
			default:
				b.WriteRune(' ')
			}
		}
		rows[i] = b.String()
	}
	return strings.Join(rows, "\n")
}

func scaleY(v, lo, hi float64, h int) int {
	return (h - 1) - int(math.Round((v-lo)/(hi-lo)*float64(h-1)))
}

// points maps values onto a w×h dot grid, spread evenly left to right.
func points(values []float64, w, h int, lo, hi float64) [][2]int {
	out := make([][2]int, len(values))
	for i, v := range values {
		x := 0
		if len(values) > 1 {
			x = int(math.Round(float64(i) * float64(w-1) / float64(len(values)-1)))
		}
		out[i] = [2]int{x, scaleY(v, lo, hi, h)}
	}
	return out
}

// line rasterizes a segment with Bresenham's algorithm, both endpoints included.
func line(from, to [2]int) [][2]int {
	var (
		x0, y0 = from[0], from[1]
		x1, y1 = to[0], to[1]
		dx     = abs(x1 - x0)
		dy     = -abs(y1 - y0)
		sx     = sign(x1 - x0)
		sy     = sign(y1 - y0)
		err    = dx + dy
		out    [][2]int
	)
	for {
		out = append(out, [2]int{x0, y0})
		if x0 == x1 && y0 == y1 {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func grid(canvas *drawille.Canvas, w, h int) [][]rune {
	var (
		lines = canvas.Rows(0, 0, w, h)
		out   = make([][]rune, h/4)
	)
	for i := range out {
		row := []rune(strings.Repeat(" ", w/2))
		if i < len(lines) {
			copy(row, []rune(lines[i]))
		}
		out[i] = row
	}
	return out
}

func hasDots(r rune) bool {
	return r > emptyBraille && r <= 0x28FF
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
