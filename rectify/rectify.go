// Package rectify - in-place rotation insertion along the valid suffix of a path.
package rectify

import "github.com/katalvlaran/armlift/arm"

// InsertMove tries to add one unit rotation dir (±1) of arm k to the path
// while keeping every visited pixel. It scans the valid steps backwards from
// the end and rewrites the suffix in place on the first substitution found.
// It reports whether a rotation was inserted.
func InsertMove(path []arm.Config, dir, k int) bool {
	var (
		i, j    int
		d, b, c arm.Config
	)
	for i = len(path) - 2; i >= 0; i-- {
		d = path[i+1].Sub(path[i])
		if !d.IsValidStep() {
			return false
		}
		switch d.Sign(k) {
		case -dir:
			// Drop arm k's opposite rotation; a still arm j < k starts rotating.
			b = d.WithAngle(k, 0)
			for j = k - 1; j >= 0; j-- {
				if b.Angle(j) != 0 {
					continue
				}
				c = b.WithAngle(j, 1)
				if apply(path, c.Sub(d), i) {
					return true
				}
				c = b.WithAngle(j, -1)
				if apply(path, c.Sub(d), i) {
					return true
				}
			}
		case 0:
			// Rotate arm k here; a rotating arm j < k stops.
			b = d.WithAngle(k, dir)
			for j = k - 1; j >= 0; j-- {
				if b.Angle(j) == 0 {
					continue
				}
				c = b.WithAngle(j, 0)
				if apply(path, c.Sub(d), i) {
					return true
				}
			}
		}
	}
	return false
}

// apply adds e to path[ind+1:] if no tip of that suffix moves.
func apply(path []arm.Config, e arm.Config, ind int) bool {
	var i int
	for i = ind + 1; i < len(path); i++ {
		if path[i].Pos() != path[i].Add(e).Pos() {
			return false
		}
	}
	for i = ind + 1; i < len(path); i++ {
		path[i] = path[i].Add(e)
	}
	return true
}

// Rectify rotates, arm by arm from the largest, as many units as possible
// toward p into the path, and returns the number of unit rotations inserted.
// Rotations an arm could not absorb are carried as a residual when computing
// the rotations needed by the smaller arms. It stops early when arm 0 has no
// defined rotation toward p.
func Rectify(path []arm.Config, p arm.Point) int {
	if len(path) == 0 {
		return 0
	}
	var (
		residual arm.Config
		total    int
		k, n     int
		dir      int
	)
	for k = arm.NumArms - 1; k >= 0; k-- {
		tip := path[len(path)-1].Add(residual)
		pos, neg, ok := tip.AnglesToReach(p, k)
		if !ok {
			return total
		}
		n = neg
		if abs(pos) < abs(neg) {
			n = pos
		}
		dir = 1
		if n < 0 {
			dir = -1
		}
		n = abs(n)
		for n > 0 && InsertMove(path, dir, k) {
			n--
			total++
		}
		residual = residual.WithAngle(k, n*dir)
	}
	return total
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
