// Package tour - a simple full-lattice tour for tests and smoke runs.
package tour

import (
	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
)

// Comb returns a simple closed tour over the whole lattice: the bottom row,
// then a column serpentine over x ∈ [-127,128], y ∈ [-127,128], then the
// left column interleaved (even rows up, odd rows down) back to the start,
// rotated to begin and end at the origin. Every move has L1 ≤ 2.
func Comb() Tour {
	const h = arm.Half
	var (
		t    = make(Tour, 0, canvas.Pixels+1)
		x, y int
	)
	for x = -h; x <= h; x++ {
		t = append(t, arm.Point{X: x, Y: -h})
	}
	for x = h; x >= -h+1; x-- {
		if (h-x)%2 == 0 {
			for y = -h + 1; y <= h; y++ {
				t = append(t, arm.Point{X: x, Y: y})
			}
		} else {
			for y = h; y >= -h+1; y-- {
				t = append(t, arm.Point{X: x, Y: y})
			}
		}
	}
	for y = -h + 2; y <= h; y += 2 {
		t = append(t, arm.Point{X: -h, Y: y})
	}
	for y = h - 1; y >= -h+1; y -= 2 {
		t = append(t, arm.Point{X: -h, Y: y})
	}
	out, _ := RotateToOrigin(t)
	return out
}
