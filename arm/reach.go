// Package arm - rotations needed to bring a pixel into reach of an arm, and
// the extremal configurations drawing a pixel.
//
// Reach arcs are computed once per arm and shared read-only.
package arm

import "sync"

// reachArc is the cyclic interval [first, second] of angles for which the
// bounding box of an arm contains a given offset. first > second means the
// interval wraps through angle 0.
type reachArc struct {
	first, second int16
}

var (
	reachOnce  sync.Once
	reachTable [NumArms][]reachArc
)

// arm0Target maps an offset q ∈ {-1,0,1}² (index (qx+1)+3(qy+1)) to the angle
// of arm 0 pointing at it; the centre has no angle.
var arm0Target = [9]int{0, 1, 2, 7, -1, 3, 6, 5, 4}

// buildReach fills, for every arm k ≥ 1 and every offset q with |q|∞ ≤ 2L_k,
// the arc of angles a such that |q - perimeterPos(L_k, a)|∞ ≤ L_k.
//
// Complexity: O((4L+1)²·8L) per arm, about 34M box tests for arm 7.
func buildReach() {
	var (
		k, l, side, m int
		qx, qy, a     int
		ok            []bool
		tips          []Point
	)
	for k = 1; k < NumArms; k++ {
		l = armLength[k]
		side = 4*l + 1
		m = 8 * l
		tips = make([]Point, m)
		for a = 0; a < m; a++ {
			tips[a] = perimeterPos(l, a)
		}
		ok = make([]bool, m)
		reachTable[k] = make([]reachArc, side*side)
		for qy = -2 * l; qy <= 2*l; qy++ {
			for qx = -2 * l; qx <= 2*l; qx++ {
				q := Point{qx, qy}
				for a = 0; a < m; a++ {
					ok[a] = q.Sub(tips[a]).Chebyshev() <= l
				}
				reachTable[k][(qx+2*l)+side*(qy+2*l)] = arcOf(ok)
			}
		}
	}
}

// arcOf returns the single cyclic run of true values in ok. A fully true
// slice yields [0, len-1].
func arcOf(ok []bool) reachArc {
	var (
		m     = len(ok)
		start = -1
		end   int
		i     int
	)
	for i = 0; i < m; i++ {
		if ok[i] && !ok[(i-1+m)%m] {
			start = i
			break
		}
	}
	if start < 0 {
		// Either everything or nothing is reachable; offsets within 2L always
		// reach at least one angle, so this is the full circle.
		return reachArc{0, int16(m - 1)}
	}
	end = start
	for ok[(end+1)%m] && (end+1)%m != start {
		end = (end + 1) % m
	}
	return reachArc{int16(start), int16(end)}
}

func reach(k int, q Point) reachArc {
	reachOnce.Do(buildReach)
	l := armLength[k]
	return reachTable[k][(q.X+2*l)+(4*l+1)*(q.Y+2*l)]
}

// AnglesToReach returns the two rotations of arm k, normalised to
// (-4L_k, 4L_k], that bring p inside BoundingBox(k): rotating by pos reaches
// one end of the admissible arc, rotating by neg reaches the other. Both are 0
// when p is already inside. For arm 0 both values are the rotation that puts
// the tip exactly on p.
//
// ok is false when arm 0 is asked for a point that is not at Chebyshev
// distance exactly 1 from CenterBox(1), or when p lies further than 2L_k from
// CenterBox(k+1).
func (c Config) AnglesToReach(p Point, k int) (pos, neg int, ok bool) {
	checkArm(k)
	if k == 0 {
		q := p.Sub(c.CenterBox(1))
		if q.Chebyshev() != 1 {
			return 0, 0, false
		}
		r := normalize(arm0Target[(q.X+1)+3*(q.Y+1)]-c.Angle(0), 8)
		return r, r, true
	}

	l := armLength[k]
	q := p.Sub(c.CenterBox(k + 1))
	if q.Chebyshev() > 2*l {
		return 0, 0, false
	}

	var (
		arc           = reach(k, q)
		first, second = int(arc.first), int(arc.second)
		a             = c.Angle(k)
		m             = 8 * l
		fwd, back     int
	)
	if first <= second {
		switch {
		case a < first:
			fwd = first - a
			back = m - fwd - (second - first)
		case a > second:
			back = a - second
			fwd = m - back - (second - first)
		}
	} else if a > second && a < first {
		back = a - second
		fwd = first - a
	}
	return normalize(fwd, m), normalize(-back, m), true
}

// normalize reduces x modulo m into (-m/2, m/2].
func normalize(x, m int) int {
	x %= m
	if x <= -m/2 {
		x += m
	}
	if x > m/2 {
		x -= m
	}
	return x
}

// PathToReach returns the extremal configurations drawing p: for each arm
// 7..1 either end of its admissible arc is taken, and arm 0 is then rotated
// onto p. This yields up to 128 configurations; branches whose arms 1..7
// already sit exactly on p cannot be completed by arm 0 and are dropped.
//
// It fails with ErrDegenerate when p == CenterBox(1) and with ErrUnreachable
// when no branch completes.
//
// Complexity: O(128·8).
func (c Config) PathToReach(p Point) ([]Config, error) {
	if c.CenterBox(1) == p {
		return nil, ErrDegenerate
	}
	out := make([]Config, 0, 128)
	out = c.pathToReach(p, NumArms-1, out)
	if len(out) == 0 {
		return nil, ErrUnreachable
	}
	return out, nil
}

func (c Config) pathToReach(p Point, k int, out []Config) []Config {
	pos, neg, ok := c.AnglesToReach(p, k)
	if !ok {
		return out
	}
	if k == 0 {
		return append(out, c.AddAngle(0, pos))
	}
	out = c.AddAngle(k, pos).pathToReach(p, k-1, out)
	return c.AddAngle(k, neg).pathToReach(p, k-1, out)
}
