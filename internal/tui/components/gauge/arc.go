package gauge

import (
	"math"

	drawille "github.com/exrook/drawille-go"
)

const (
	// screen coords: 0°=3 o'clock, 90°=6 o'clock, 270°=12 o'clock
	ringStart     = 270.0
	ringSweep     = 360.0
	ringThickness = 5
)

// drawRing draws fraction of a thick ring clockwise from 12 o'clock.
// each layer uses the midpoint circle algorithm so the ring has no gaps.
// see: https://en.wikipedia.org/wiki/Midpoint_circle_algorithm
func drawRing(canvas *drawille.Canvas, cx, cy, radius int, fraction float64) {
	if fraction <= 0 {
		return
	}
	sweep := min(fraction, 1) * ringSweep

	for layer := range ringThickness {
		r := radius - layer
		if r <= 0 {
			break
		}
		x, y, d := r, 0, 1-r
		for x >= y {
			for _, p := range octants(cx, cy, x, y) {
				if withinSweep(cx, cy, p[0], p[1], sweep) {
					canvas.Set(p[0], p[1])
				}
			}
			y++
			if d < 0 {
				d += 2*y + 1
			} else {
				x--
				d += 2*(y-x) + 1
			}
		}
	}
}

func octants(cx, cy, x, y int) [8][2]int {
	return [8][2]int{
		{cx + x, cy - y},
		{cx + y, cy - x},
		{cx - y, cy - x},
		{cx - x, cy - y},
		{cx - x, cy + y},
		{cx - y, cy + x},
		{cx + y, cy + x},
		{cx + x, cy + y},
	}
}

// withinSweep reports whether (px, py) lies within sweep degrees clockwise of ringStart.
func withinSweep(cx, cy, px, py int, sweep float64) bool {
	if sweep >= ringSweep {
		return true
	}
	angle := math.Atan2(float64(py-cy), float64(px-cx)) * 180 / math.Pi
	rel := math.Mod(angle-ringStart+720, 360)
	return rel <= sweep
}
