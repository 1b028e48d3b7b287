package gauge

import (
	"fmt"
	"image/color"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/healthmesh/internal/tui/theme"
	"github.com/garrettladley/healthmesh/internal/xopt"
)

const (
	// a braille cell is 2 dots wide and 4 dots tall, so a square ring of
	// DefaultSize columns is DefaultSize/2 rows tall
	DefaultSize = 26
	minSize     = 8

	emptyBraille rune = '⠀'
	noValue           = "--"
)

// Gauge is a circular braille gauge with the value printed in its hollow center.
type Gauge struct {
	Value      xopt.Value[float64]
	Max        float64
	Label      string
	Color      color.Color // filled portion
	TrackColor color.Color // unfilled portion
	TextColor  color.Color
	Size       int // width in columns
	Format     func(float64) string
}

type Option func(*Gauge)

func WithTrackColor(c color.Color) Option {
	return func(g *Gauge) {
		g.TrackColor = c
	}
}

func WithTextColor(c color.Color) Option {
	return func(g *Gauge) {
		g.TextColor = c
	}
}

func WithSize(cols int) Option {
	return func(g *Gauge) {
		g.Size = max(cols, minSize)
	}
}

func WithFormat(format func(float64) string) Option {
	return func(g *Gauge) {
		g.Format = format
	}
}

func New(value xopt.Value[float64], max float64, label string, c color.Color, opts ...Option) Gauge {
	g := Gauge{
		Value:      value,
		Max:        max,
		Label:      label,
		Color:      c,
		TrackColor: theme.ColorBgLight,
		TextColor:  theme.ColorWhite,
		Size:       DefaultSize,
		Format:     defaultFormat(max),
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

func defaultFormat(max float64) func(float64) string {
	if max == 100 {
		return func(v float64) string { return fmt.Sprintf("%.0f%%", v) }
	}
	return func(v float64) string { return fmt.Sprintf("%.1f", v) }
}

// Fraction of the ring that is filled, clamped to [0, 1]. Missing values are empty.
func (g Gauge) Fraction() float64 {
	v, ok := g.Value.Get()
	if !ok || g.Max <= 0 {
		return 0
	}
	return min(max(v/g.Max, 0), 1)
}

func (g Gauge) text() string {
	v, ok := g.Value.Get()
	if !ok {
		return noValue
	}
	return g.Format(v)
}

func (g Gauge) Render() string {
	var (
		dots   = g.Size * 2
		center = dots / 2
		radius = center - 1
		canvas = drawille.NewCanvas()
	)

	drawRing(&canvas, center, center, radius, 1)
	track := rows(&canvas, dots, dots)

	canvas.Clear()
	drawRing(&canvas, center, center, radius, g.Fraction())
	fill := rows(&canvas, dots, dots)

	cells := g.paint(track, fill)

	value := lipgloss.NewStyle().
		Foreground(g.TextColor).
		Bold(true).
		Render(g.text())
	stamp(cells, len(cells)/2, value, lipgloss.Width(value))

	lines := make([]string, len(cells))
	for i, row := range cells {
		lines[i] = strings.Join(row, "")
	}

	label := lipgloss.NewStyle().
		Foreground(g.TextColor).
		Bold(true).
		Width(g.Size).
		Align(lipgloss.Center).
		Render(g.Label)

	return lipgloss.JoinVertical(lipgloss.Center, strings.Join(lines, "\n"), label)
}

// rows extracts the canvas as exactly height/4 rows of width/2 runes.
func rows(canvas *drawille.Canvas, width, height int) [][]rune {
	var (
		cols  = width / 2
		lines = canvas.Rows(0, 0, width, height)
		out   = make([][]rune, height/4)
	)
	for i := range out {
		row := make([]rune, cols)
		for j := range row {
			row[j] = ' '
		}
		if i < len(lines) {
			copy(row, []rune(lines[i]))
		}
		out[i] = row
	}
	return out
}

// paint styles each cell, merging fill dots over the track.
func (g Gauge) paint(track, fill [][]rune) [][]string {
	var (
		trackStyle = lipgloss.NewStyle().Foreground(g.TrackColor)
		fillStyle  = lipgloss.NewStyle().Foreground(g.Color)
		out        = make([][]string, len(track))
	)

	for i, row := range track {
		out[i] = make([]string, len(row))
		for j, t := range row {
			f := ' '
			if i < len(fill) && j < len(fill[i]) {
				f = fill[i][j]
			}

			switch {
			case hasDots(f) && isBraille(t):
				out[i][j] = fillStyle.Render(string(combineBraille(t, f)))
			case hasDots(f):
				out[i][j] = fillStyle.Render(string(f))
			case isBraille(t):
				out[i][j] = trackStyle.Render(string(t))
			default:
				out[i][j] = " "
			}
		}
	}
	return out
}

// stamp replaces width centered cells of row with a single pre-styled string.
func stamp(cells [][]string, row int, styled string, width int) {
	if row < 0 || row >= len(cells) {
		return
	}
	line := cells[row]
	if width <= 0 || width > len(line) {
		return
	}
	start := (len(line) - width) / 2

	replaced := make([]string, 0, len(line)-width+1)
	replaced = append(replaced, line[:start]...)
	replaced = append(replaced, styled)
	replaced = append(replaced, line[start+width:]...)
	cells[row] = replaced
}

func isBraille(r rune) bool {
	return r >= emptyBraille && r <= 0x28FF
}

func hasDots(r rune) bool {
	return isBraille(r) && r != emptyBraille
}

// combineBraille ORs the dot patterns of two braille runes.
func combineBraille(a, b rune) rune {
	return emptyBraille + ((a - emptyBraille) | (b - emptyBraille))
}
