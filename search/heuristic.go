// Package search - shipped heuristics.
package search

import (
	"time"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/successor"
)

// Uniform picks a candidate uniformly at random.
func Uniform(_ int, _ arm.Config, _ arm.Point, set *successor.Set, _ bool, _ *Engine) arm.Config {
	return set.Uniform()
}

const (
	// biasSlice is the length of one bias phase; a cycle has three.
	biasSlice = 3 * time.Second
	// biasWeight is the favoured direction's weight; the other gets its inverse.
	biasWeight = 500.0
)

// NewArmBias returns a heuristic that cycles every 9 seconds of engine time
// through three phases: favour positive rotations of arm 7, no bias, favour
// negative rotations. Every candidate also carries a unit weight for arm 6.
// The returned heuristic keeps scratch space and must serve a single engine.
func NewArmBias() Heuristic {
	var cdf []float64
	return func(_ int, cur arm.Config, _ arm.Point, set *successor.Set, _ bool, e *Engine) arm.Config {
		var (
			up, still, down = 1.0, 1.0, 1.0
			tot             float64
			i, n            int
			d               arm.Config
		)
		switch (e.Elapsed() % (3 * biasSlice)) / biasSlice {
		case 0:
			up, down = biasWeight, 1/biasWeight
		case 2:
			up, down = 1/biasWeight, biasWeight
		}

		n = set.Len()
		if cap(cdf) < n {
			cdf = make([]float64, n)
		}
		cdf = cdf[:n]
		for i = 0; i < n; i++ {
			d = set.At(i).Sub(cur)
			tot++ // arm 6
			switch d.Angle(7) {
			case 0:
				tot += still
			case 1:
				tot += up
			default:
				tot += down
			}
			cdf[i] = tot
		}
		for i = 0; i < n; i++ {
			cdf[i] /= tot
		}
		return set.Choice(cdf)
	}
}
