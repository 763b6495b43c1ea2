// Package reconnect - bounded enumeration of 2, 3 and 4 step balls around a
// configuration.
//
// Balls are pruned by the move-sum bounds of the step shape before any
// colour cost is computed.
package reconnect

import (
	"math"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/successor"
)

// explore runs a branch-and-bound search over the given step shapes, which
// must all have the same length. Every minimal-cost solution is kept and one
// is picked uniformly; the result replaces the current one only if cheaper.
func (r *Reconnector) explore(shapeList [][]int) {
	if len(shapeList) == 0 {
		return
	}
	r.ballCost = math.Inf(1)
	r.ballSteps = len(shapeList[0])
	r.sols = r.sols[:0]

	for _, shape := range shapeList {
		fixed := 0.0
		for _, n := range shape {
			fixed += math.Sqrt(float64(n))
		}
		if fixed > r.ballCost {
			continue
		}
		r.descend(shape, 0, r.a, r.from, fixed)
	}

	if len(r.sols) == 0 || r.ballCost >= r.cost {
		return
	}
	pick := r.sols[0]
	if len(r.sols) > 1 {
		pick = r.sols[r.rng.Intn(len(r.sols))]
	}
	r.steps = r.ballSteps
	r.cost = r.ballCost
	r.path = pick
}

func (r *Reconnector) descend(shape []int, depth int, cfg arm.Config, pix arm.Point, acc float64) {
	last := depth == len(shape)-1
	for _, m := range successor.Buckets(shape[depth]) {
		next := cfg.Add(m)
		p := next.Pos()
		if last && p != r.p {
			continue
		}
		e := acc + r.img.ColorDist(pix, p)
		if e > r.ballCost {
			continue
		}
		r.cur[depth] = next
		if !last {
			r.descend(shape, depth+1, next, p, e)
			continue
		}
		if r.useTarget && next != r.target {
			continue
		}
		if e < r.ballCost {
			r.sols = r.sols[:0]
			r.ballCost = e
		}
		r.sols = append(r.sols, r.cur)
	}
}
