// Package arm - step penalties and losses along configuration paths.
package arm

import "math"

// DTorus returns the circular distance between angles x and y of an arm of
// length l, i.e. the minimal number of unit rotations between them.
func DTorus(x, y, l int) int {
	m := 8 * l
	d := abs(x-y) % m
	return min(d, m-d)
}

// Penalty returns the movement cost of the step a→b: the square root of the
// number of arms that moved, or +Inf if some arm rotated by more than one unit.
func Penalty(a, b Config) float64 {
	var (
		k, d, sum int
	)
	for k = 0; k < NumArms; k++ {
		d = DTorus(a.Angle(k), b.Angle(k), armLength[k])
		if d > 1 {
			return math.Inf(1)
		}
		sum += d
	}
	return math.Sqrt(float64(sum))
}

// Loss returns the excess of Penalty(a,b) over the unavoidable √L1 of the
// pixel displacement. It is 0 for a move in which every moved arm contributes
// one unit to the tip displacement.
func Loss(a, b Config) float64 {
	return Penalty(a, b) - math.Sqrt(float64(b.Pos().Sub(a.Pos()).L1()))
}

// LossAt records a non-zero step loss at index I (between path[I] and path[I+1]).
type LossAt struct {
	I    int
	Loss float64
}

// PathLoss sums Loss over consecutive configurations of path.
func PathLoss(path []Config) float64 {
	var (
		s float64
		i int
	)
	for i = 0; i+1 < len(path); i++ {
		s += Loss(path[i], path[i+1])
	}
	return s
}

// Losses lists the steps of path whose loss exceeds eps.
func Losses(path []Config, eps float64) []LossAt {
	var (
		out []LossAt
		l   float64
		i   int
	)
	for i = 0; i+1 < len(path); i++ {
		l = Loss(path[i], path[i+1])
		if l > eps {
			out = append(out, LossAt{I: i, Loss: l})
		}
	}
	return out
}
