// Package arm - lattice points, boxes, arm lengths and sentinel errors.
package arm

import (
	"errors"
	"fmt"
)

// Sentinel errors for arm operations.
var (
	// ErrNotCorner indicates a start point other than the origin or one of the four corners.
	ErrNotCorner = errors.New("arm: point is neither the origin nor a corner")
	// ErrNotOnPerimeter indicates an arm tip that is not on its square.
	ErrNotOnPerimeter = errors.New("arm: position is not on the arm perimeter")
	// ErrMalformed indicates a textual configuration that cannot be parsed.
	ErrMalformed = errors.New("arm: malformed configuration")
	// ErrDegenerate indicates a target equal to the centre of arm 0's box.
	ErrDegenerate = errors.New("arm: target coincides with the tip of arms 1..7")
	// ErrUnreachable indicates a target outside the reach of the arm.
	ErrUnreachable = errors.New("arm: target out of reach")
)

const (
	// NumArms is the number of arms of a configuration.
	NumArms = 8
	// Half is the half-size of the lattice: coordinates live in [-Half, Half].
	Half = 128
	// MaxStepL1 is the largest pixel displacement a single valid step can produce.
	MaxStepL1 = NumArms
)

var (
	armLength = [NumArms]int{1, 1, 2, 4, 8, 16, 32, 64}
	armWidth  = [NumArms]uint{3, 3, 4, 5, 6, 7, 8, 9}
	armShift  = [NumArms]uint{0, 3, 6, 10, 15, 21, 28, 36}
	armMask   = [NumArms]uint64{7, 7, 15, 31, 63, 127, 255, 511}
)

// Length returns the length L_k of arm k.
func Length(k int) int {
	checkArm(k)
	return armLength[k]
}

// Modulus returns the number of angular positions 8·L_k of arm k.
func Modulus(k int) int {
	checkArm(k)
	return 8 * armLength[k]
}

func checkArm(k int) {
	if k < 0 || k >= NumArms {
		panic(fmt.Sprintf("arm: invalid arm index %d", k))
	}
}

// Point is a lattice point.
type Point struct {
	X, Y int
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// L1 returns |x|+|y|.
func (p Point) L1() int { return abs(p.X) + abs(p.Y) }

// Chebyshev returns max(|x|,|y|).
func (p Point) Chebyshev() int { return max(abs(p.X), abs(p.Y)) }

// InLattice reports whether p lies in [-Half,Half]².
func (p Point) InLattice() bool {
	return p.X >= -Half && p.X <= Half && p.Y >= -Half && p.Y <= Half
}

// String formats p as "x y", the pair format of the solution files.
func (p Point) String() string { return fmt.Sprintf("%d %d", p.X, p.Y) }

// Box is a closed axis-aligned square [Center-Radius, Center+Radius]².
type Box struct {
	Center Point
	Radius int
}

// Contains reports whether p lies inside b (boundary included).
func (b Box) Contains(p Point) bool {
	return p.Sub(b.Center).Chebyshev() <= b.Radius
}

// Corner returns the corner index of p: 1 for (-128,-128), 2 for (128,-128),
// 3 for (128,128), 4 for (-128,128) and 0 when p is not a corner.
func Corner(p Point) int {
	switch p {
	case Point{-Half, -Half}:
		return 1
	case Point{Half, -Half}:
		return 2
	case Point{Half, Half}:
		return 3
	case Point{-Half, Half}:
		return 4
	}
	return 0
}

// Config is a full arm configuration: eight angles packed into one word.
// The zero value has every angle at 0, i.e. every arm at (-L_k,-L_k), which is
// the configuration sitting on the corner (-128,-128).
type Config uint64

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
