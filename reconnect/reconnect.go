// Package reconnect - the Reconnector: jump search toward a pixel or an exact
// configuration, and expansion of stored jumps.
package reconnect

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
)

// ErrUnrealizable indicates a stored jump that no ball search can replay.
var ErrUnrealizable = errors.New("reconnect: jump cannot be realised")

const (
	// MinPrecision and MaxPrecision bound the per-step move caps.
	MinPrecision = 1
	MaxPrecision = arm.NumArms
	// maxSteps is the longest jump explored.
	maxSteps = 4
	// degenerateMoves bounds the move total when the target sits under arms 1..7.
	degenerateMoves = 3
)

// ClampPrecision clamps p into [MinPrecision, MaxPrecision].
func ClampPrecision(p int) int {
	return min(max(p, MinPrecision), MaxPrecision)
}

// Reconnector searches jumps. Results of the last ToPixel/ToConfig call are
// available through Found, Steps, Cost, Loss, BestPath and End.
type Reconnector struct {
	img *canvas.Image
	rng *rand.Rand

	// query
	a         arm.Config
	from      arm.Point
	p         arm.Point
	useTarget bool
	target    arm.Config

	// result
	steps int
	cost  float64
	path  [maxSteps]arm.Config

	// ball scratch
	ballCost  float64
	ballSteps int
	sols      [][maxSteps]arm.Config
	cur       [maxSteps]arm.Config

	busy time.Duration
}

// New returns a Reconnector scoring colours on img (blank if nil) and
// breaking ties with rng.
func New(img *canvas.Image, rng *rand.Rand) *Reconnector {
	if img == nil {
		img = canvas.New()
	}
	return &Reconnector{img: img, rng: rng, cost: math.Inf(1)}
}

// ToPixel searches a 2..4 step path from a to any configuration drawing p.
// The caller is expected to have checked that no single step connects them.
func (r *Reconnector) ToPixel(a arm.Config, p arm.Point, precision2, precision3 int) {
	t0 := time.Now()
	r.run(a, p, precision2, precision3, false, 0)
	r.busy += time.Since(t0)
}

// ToConfig searches a 2..4 step path from a to exactly target.
func (r *Reconnector) ToConfig(a, target arm.Config, precision2, precision3 int) {
	r.run(a, target.Pos(), precision2, precision3, true, target)
}

// Found reports whether the last search produced a path.
func (r *Reconnector) Found() bool { return r.steps > 0 }

// Steps returns the number of steps of the path found, 0 if none.
func (r *Reconnector) Steps() int { return r.steps }

// Cost returns the cost of the path found, +Inf if none.
func (r *Reconnector) Cost() float64 { return r.cost }

// Loss returns the excess of Cost over the direct cost √L1 + colour distance
// between the start pixel and the target, +Inf if nothing was found.
func (r *Reconnector) Loss() float64 {
	if !r.Found() {
		return math.Inf(1)
	}
	return r.cost - math.Sqrt(float64(r.from.Sub(r.p).L1())) - r.img.ColorDist(r.from, r.p)
}

// BestPath returns the configurations after each step of the path found,
// the start excluded, or nil if nothing was found.
func (r *Reconnector) BestPath() []arm.Config {
	if !r.Found() {
		return nil
	}
	out := make([]arm.Config, r.steps)
	copy(out, r.path[:r.steps])
	return out
}

// End returns the final configuration of the path found. It panics when
// nothing was found.
func (r *Reconnector) End() arm.Config {
	if !r.Found() {
		panic("reconnect: End called without a path")
	}
	return r.path[r.steps-1]
}

// Busy returns the cumulative time spent in ToPixel.
func (r *Reconnector) Busy() time.Duration { return r.busy }

// ExpandPath replaces every transition of path that is not a valid step by
// the explicit steps of a ToConfig search. It fails with ErrUnrealizable
// when a jump cannot be replayed.
func (r *Reconnector) ExpandPath(path []arm.Config, precision2, precision3 int) ([]arm.Config, error) {
	if len(path) == 0 {
		return nil, nil
	}
	out := make([]arm.Config, 0, len(path)+64)
	out = append(out, path[0])
	for i := 1; i < len(path); i++ {
		if !math.IsInf(arm.Penalty(path[i-1], path[i]), 1) {
			out = append(out, path[i])
			continue
		}
		r.ToConfig(path[i-1], path[i], precision2, precision3)
		if !r.Found() {
			return nil, fmt.Errorf("%w: transition %d→%d", ErrUnrealizable, i-1, i)
		}
		out = append(out, r.path[:r.steps]...)
	}
	return out, nil
}

func (r *Reconnector) run(a arm.Config, p arm.Point, precision2, precision3 int, useTarget bool, target arm.Config) {
	r.a, r.from, r.p = a, a.Pos(), p
	r.useTarget, r.target = useTarget, target
	r.steps, r.cost = 0, math.Inf(1)
	precision2 = ClampPrecision(precision2)
	precision3 = ClampPrecision(precision3)

	ends, err := a.PathToReach(p)
	if err != nil {
		// Target under arms 1..7 (or unreachable): try the small balls directly.
		r.ball(2, precision2, degenerateMoves)
		if !r.Found() {
			r.ball(3, precision3, degenerateMoves)
		}
		return
	}

	var (
		steps   = math.MaxInt
		minMove [maxSteps + 1]int
		k       int
	)
	for k = range minMove {
		minMove[k] = math.MaxInt
	}
	for _, e := range ends {
		d := e.Sub(a)
		st, sm := 0, 0
		for k = 0; k < arm.NumArms; k++ {
			u := arm.DTorus(d.Angle(k), 0, arm.Length(k))
			st = max(st, u)
			sm += u
		}
		if st <= maxSteps && sm < minMove[st] {
			minMove[st] = sm
		}
		steps = min(steps, st)
	}

	switch steps {
	case 2:
		r.ball(2, precision2, minMove[2])
	case 3:
		r.ball(3, precision3, minMove[3])
	case 4:
		if shape, ok := fourStepShapes[minMove[4]]; ok {
			r.explore([][]int{shape})
		}
	}
}

// fourStepShapes lists, per total of unit moves, the only 4-step
// decomposition explored.
var fourStepShapes = map[int][]int{
	5: {2, 1, 1, 1},
	6: {2, 2, 1, 1},
	7: {2, 2, 2, 1},
}

// ball explores every shape of n steps moving between 1 and maxL arms per
// step with at most moves arms moved in total.
func (r *Reconnector) ball(n, maxL, moves int) {
	if moves > n*maxL {
		return
	}
	r.explore(shapes(n, maxL, moves))
}

// shapes enumerates the per-step arm counts (each in [1,maxL], summing to at
// most moves) of n-step moves, in lexicographic order.
func shapes(n, maxL, moves int) [][]int {
	var (
		out [][]int
		cur = make([]int, n)
		rec func(depth, left int)
	)
	rec = func(depth, left int) {
		if depth == n {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := 1; i <= min(maxL, left-(n-depth-1)); i++ {
			cur[depth] = i
			rec(depth+1, left-i)
		}
	}
	rec(0, moves)
	return out
}
