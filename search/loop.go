// Package search - the search loop: successors, rectify, tunneling, jumps,
// detours and geometric backtracking.
package search

import (
	"math"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/rectify"
)

// tunnelUniform is the share of tunnels landing uniformly in [¾·len(current), len(best)).
const tunnelUniform = 0.2

// run is the search loop. It returns when the tour is lifted or a stop is requested.
func (e *Engine) run(h Heuristic) {
	var (
		n           = len(e.current) - 1
		last        = len(e.tour) - 1
		backtracked bool
		cur, next   arm.Config
		target      arm.Point
	)
	e.refreshProbabilities()

	for n < last {
		e.iterations++
		if e.iterations&checkpointMask == 0 {
			e.publish()
			stop, resumed := e.checkpoint()
			if stop {
				return
			}
			if resumed {
				n = len(e.current) - 1
				backtracked = false
			}
			e.refreshProbabilities()
		}

		cur = e.current[n]
		target = e.tour[n+1]
		e.set.Clear()
		e.set.Add(cur, target, 0)

		if e.set.Len() == 0 {
			if rectify.Rectify(e.current, target) > 0 {
				e.touch(0)
				continue
			}
			if e.rng.Float64() < e.opts.TunnelingProb {
				e.tunnel()
				n = len(e.current) - 1
				continue
			}
			if end, ok := e.tryJump(n, cur, target); ok {
				next = end
			} else {
				e.deadEnd(n, cur, target)
				n -= geometric(e.rng, e.BranchProbability())
				n = max(n, 0)
				e.current = e.current[:n+1]
				e.ledger.TruncateFrom(n)
				e.touch(n + 1)
				backtracked = true
				continue
			}
		} else {
			e.offerDetour(n, cur, target)
			next = h(n, cur, target, e.set, backtracked, e)
		}

		backtracked = false
		e.current = append(e.current, next)
		n++
		if n >= len(e.best) {
			e.best = append(e.best, next)
			e.syncBest(n)
			e.resetFrontierStats()
			if n == last {
				e.solved.Store(true)
			}
			e.publish()
		}
	}
}

// refreshProbabilities advances the ramps to the current time.
func (e *Engine) refreshProbabilities() {
	el := e.Elapsed()
	e.setBranchProb(oscillate(e.opts.MinBranchProb, e.opts.MaxBranchProb, el, e.opts.AnnealPeriod, false))
	e.excTime = oscillate(0, 1, el, e.opts.ExceptionPeriod, false)
	e.detourTime = oscillate(0, 1, el, e.opts.ExceptionPeriod, true)
}

// tunnel restarts current from a prefix of best: uniformly in
// [¾·len(current), len(best)) or a geometric back-off from the best length.
func (e *Engine) tunnel() {
	l := len(e.best) - 1
	if e.rng.Float64() < tunnelUniform {
		lo := min(len(e.current)*3/4, l)
		l = lo + e.rng.Intn(l-lo+1)
	} else {
		l -= geometric(e.rng, e.BranchProbability()/4)
	}
	if l <= 0 || l > len(e.best) {
		l = len(e.best)
	}
	e.tunnelTo(l)
	e.log.Debug("tunnel", "len", l, "best", len(e.best))
}

// tryJump scans the exception ranges ending at n, most recent first, and
// returns the end of an affordable jump to target.
func (e *Engine) tryJump(n int, cur arm.Config, target arm.Point) (arm.Config, bool) {
	for i := len(e.exceptions) - 1; i >= 0; i-- {
		r := &e.exceptions[i]
		if r.PosMax != n {
			continue
		}
		p := r.ProbJumpMax*e.excTime + (1-e.excTime)*r.ProbJumpMin
		if e.rng.Float64() >= p {
			continue
		}
		e.rc.ToPixel(cur, target, e.opts.Precision2, e.opts.Precision3)
		loss := e.rc.Loss() + e.ledger.Last()
		if e.rc.Found() && loss <= r.MaxCumLoss {
			e.ledger.Push(n, loss)
			e.log.Debug("jump", "pos", n, "steps", e.rc.Steps(), "cum_loss", loss)
			return e.rc.End(), true
		}
	}
	return 0, false
}

// deadEnd collects jump statistics for configurations stuck at the best
// frontier, and saves current as best when it improves them.
func (e *Engine) deadEnd(n int, cur arm.Config, target arm.Point) {
	if n != len(e.best)-1 {
		return
	}
	if _, seen := e.bestSet[cur]; seen {
		return
	}
	e.bestSet[cur] = struct{}{}
	e.rc.ToPixel(cur, target, e.opts.Precision2, e.opts.Precision3)
	steps := math.Inf(1)
	if e.rc.Found() {
		steps = float64(e.rc.Steps())
	}
	loss := e.rc.Loss()
	improved := loss < e.minLoss || (math.IsInf(e.minLoss, 1) && steps < e.minSteps)
	e.minSteps = min(e.minSteps, steps)
	e.minLoss = min(e.minLoss, loss)
	e.visitsAtBest++
	if improved {
		e.syncBest(n)
		clear(e.bestSet)
		e.bestSet[cur] = struct{}{}
	}
}

// offerDetour lets each range whose window holds n replace the direct
// successors by a detour set, within the remaining loss budget.
func (e *Engine) offerDetour(n int, cur arm.Config, target arm.Point) {
	var (
		d        int
		pen      float64
		p, delta float64
	)
	for i := len(e.exceptions) - 1; i >= 0; i-- {
		r := &e.exceptions[i]
		if !r.detourWindow(n) {
			continue
		}
		p = r.ProbDetourMax*e.detourTime + (1-e.detourTime)*r.ProbDetourMin
		delta = r.MaxCumLoss - e.ledger.Last()
		for d = 1; d <= r.DetourMax; d++ {
			pen = e.set.Penalty(d)
			if pen > delta || e.rng.Float64() >= p {
				continue
			}
			e.set.Clear()
			if e.set.Add(cur, target, d) == 0 {
				e.set.Add(cur, target, 0)
				continue
			}
			e.ledger.Push(n, e.ledger.Last()+pen)
			return
		}
	}
}
