// Package arm - the packed Config: construction, angle arithmetic, positions
// and bounding boxes.
package arm

// startConfig has arm 7 on (64,0) and arms 0..6 on (-L_k,0); its tip is the origin.
const startConfig Config = 0xc0e0e1c73bf

// Start returns the canonical configuration drawing the origin.
func Start() Config { return startConfig }

// FromAngles packs raw angles into a Config. Each angle is reduced modulo 8·L_k.
func FromAngles(a [NumArms]int) Config {
	var (
		c Config
		k int
	)
	for k = 0; k < NumArms; k++ {
		c = c.WithAngle(k, a[k])
	}
	return c
}

// FromCorner returns the configuration used to start a tour at p. The origin
// maps to Start; each corner (±128,±128) maps to the configuration with every
// arm pointing to the same corner of its square.
func FromCorner(p Point) (Config, error) {
	if p == (Point{}) {
		return Start(), nil
	}
	if Corner(p) == 0 {
		return 0, ErrNotCorner
	}

	var (
		c      Config
		k      int
		sx, sy int
		err    error
	)
	sx, sy = sign(p.X), sign(p.Y)
	for k = 0; k < NumArms; k++ {
		c, err = c.WithArmPos(k, Point{sx * armLength[k], sy * armLength[k]})
		if err != nil {
			return 0, err
		}
	}
	return c, nil
}

// Angle returns the angle of arm k in [0, 8·L_k).
func (c Config) Angle(k int) int {
	checkArm(k)
	return int((uint64(c) >> armShift[k]) & armMask[k])
}

// WithAngle returns c with the angle of arm k set to a mod 8·L_k.
func (c Config) WithAngle(k, a int) Config {
	checkArm(k)
	v := uint64(a) & armMask[k]
	return Config((uint64(c) &^ (armMask[k] << armShift[k])) | v<<armShift[k])
}

// AddAngle returns c with d added to the angle of arm k.
func (c Config) AddAngle(k, d int) Config {
	return c.WithAngle(k, c.Angle(k)+d)
}

// Angles unpacks all eight angles.
func (c Config) Angles() [NumArms]int {
	var (
		a [NumArms]int
		k int
	)
	for k = 0; k < NumArms; k++ {
		a[k] = c.Angle(k)
	}
	return a
}

// Add returns the field-wise modular sum c+d.
func (c Config) Add(d Config) Config {
	var (
		r    uint64
		k    int
		a, b uint64
	)
	for k = 0; k < NumArms; k++ {
		a = uint64(c) >> armShift[k]
		b = uint64(d) >> armShift[k]
		r |= ((a + b) & armMask[k]) << armShift[k]
	}
	return Config(r)
}

// Sub returns the field-wise modular difference c-d.
func (c Config) Sub(d Config) Config {
	var (
		r    uint64
		k    int
		a, b uint64
	)
	for k = 0; k < NumArms; k++ {
		a = uint64(c) >> armShift[k]
		b = uint64(d) >> armShift[k]
		r |= ((a - b) & armMask[k]) << armShift[k]
	}
	return Config(r)
}

// IsValidStep reports whether c, read as a difference of two configurations,
// moves every arm by at most one unit.
func (c Config) IsValidStep() bool {
	var (
		k int
		a int
	)
	for k = 0; k < NumArms; k++ {
		a = c.Angle(k)
		if a != 0 && a != 1 && a != int(armMask[k]) {
			return false
		}
	}
	return true
}

// Moved returns the number of non-zero fields of c.
func (c Config) Moved() int {
	var n, k int
	for k = 0; k < NumArms; k++ {
		if c.Angle(k) != 0 {
			n++
		}
	}
	return n
}

// Sign returns the direction of the rotation stored in field k: 0 when the
// field is zero, -1 when it is past half a turn, +1 otherwise.
func (c Config) Sign(k int) int {
	a := c.Angle(k)
	if a == 0 {
		return 0
	}
	if a > 4*armLength[k] {
		return -1
	}
	return 1
}

// ArmPos returns the tip offset of arm k relative to its pivot.
func (c Config) ArmPos(k int) Point {
	checkArm(k)
	return perimeterPos(armLength[k], c.angle(k))
}

// angle is Angle without the index check, for the hot paths.
func (c Config) angle(k int) int {
	return int((uint64(c) >> armShift[k]) & armMask[k])
}

// Pos returns the tip of the whole arm.
func (c Config) Pos() Point {
	return c.CenterBox(0)
}

// CenterBox returns the sum of the tip offsets of arms k..7. CenterBox(8) is
// the origin and CenterBox(0) equals Pos.
func (c Config) CenterBox(k int) Point {
	var p Point
	for ; k < NumArms; k++ {
		p = p.Add(perimeterPos(armLength[k], c.angle(k)))
	}
	return p
}

// BoundingBox returns the square reachable by rotating arms 0..k-1 only,
// centred on CenterBox(k). Its radius is L_k, or 0 for k == 0.
func (c Config) BoundingBox(k int) Box {
	checkArm(k)
	b := Box{Center: c.CenterBox(k)}
	if k > 0 {
		b.Radius = armLength[k]
	}
	return b
}

// WithArmPos returns c with arm k rotated so that its tip offset equals p.
func (c Config) WithArmPos(k int, p Point) (Config, error) {
	checkArm(k)
	a, ok := perimeterAngle(armLength[k], p)
	if !ok {
		return c, ErrNotOnPerimeter
	}
	return c.WithAngle(k, a), nil
}

// perimeterPos maps an angle to the perimeter of the square of half-size l.
// The walk starts at (-l,-l) and runs counter-clockwise.
func perimeterPos(l, a int) Point {
	if a < 2*l {
		return Point{-l + a, -l}
	}
	a -= 2 * l
	if a < 2*l {
		return Point{l, -l + a}
	}
	a -= 2 * l
	if a < 2*l {
		return Point{l - a, l}
	}
	a -= 2 * l
	return Point{-l, l - a}
}

// perimeterAngle is the inverse of perimeterPos, reduced modulo 8l.
func perimeterAngle(l int, p Point) (int, bool) {
	if abs(p.X) > l || abs(p.Y) > l {
		return 0, false
	}
	switch {
	case p.Y == -l:
		return p.X + l, true
	case p.X == l:
		return 2*l + p.Y + l, true
	case p.Y == l:
		return 4*l + l - p.X, true
	case p.X == -l:
		return (6*l + l - p.Y) % (8 * l), true
	}
	return 0, false
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
