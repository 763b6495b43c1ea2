// Package canvas - the image grid, its row-major indexing and the step cost.
package canvas

import (
	"errors"
	"math"

	"github.com/katalvlaran/armlift/arm"
)

// Sentinel errors for canvas operations.
var (
	// ErrOutOfBounds indicates a pixel outside [-128,128]².
	ErrOutOfBounds = errors.New("canvas: pixel out of bounds")
	// ErrColorRange indicates a colour component outside [0,1].
	ErrColorRange = errors.New("canvas: colour component out of [0,1]")
	// ErrIncomplete indicates an image file that does not set every pixel.
	ErrIncomplete = errors.New("canvas: image does not cover every pixel")
	// ErrMalformed indicates an unparsable image record.
	ErrMalformed = errors.New("canvas: malformed image record")
)

const (
	// Side is the number of pixels per row and per column.
	Side = 2*arm.Half + 1
	// Pixels is the total number of pixels.
	Pixels = Side * Side
)

// RGB is a colour with components in [0,1].
type RGB struct {
	R, G, B float64
}

// Image is a Side×Side colour image. It is read-only once loaded and may be
// shared between goroutines.
type Image struct {
	px []RGB
}

// New returns a blank (all black) image.
func New() *Image {
	return &Image{px: make([]RGB, Pixels)}
}

// InBounds reports whether p is a pixel of the image.
//
// Complexity: O(1).
func InBounds(p arm.Point) bool {
	return p.InLattice()
}

// Index returns the row-major index of p: (x+128) + 257·(y+128).
func Index(p arm.Point) int {
	return (p.X + arm.Half) + Side*(p.Y+arm.Half)
}

// Coordinate is the inverse of Index.
func Coordinate(idx int) arm.Point {
	y := idx / Side
	return arm.Point{X: idx - y*Side - arm.Half, Y: y - arm.Half}
}

// Set stores the colour of p.
func (im *Image) Set(p arm.Point, c RGB) error {
	if !InBounds(p) {
		return ErrOutOfBounds
	}
	if !inUnit(c.R) || !inUnit(c.G) || !inUnit(c.B) {
		return ErrColorRange
	}
	im.px[Index(p)] = c
	return nil
}

// At returns the colour of p; p must be in bounds.
func (im *Image) At(p arm.Point) RGB {
	return im.px[Index(p)]
}

// ColorDist returns 3·(|ΔR|+|ΔG|+|ΔB|) between pixels p and q.
func (im *Image) ColorDist(p, q arm.Point) float64 {
	a, b := im.px[Index(p)], im.px[Index(q)]
	return 3 * (math.Abs(a.R-b.R) + math.Abs(a.G-b.G) + math.Abs(a.B-b.B))
}

// StepCost returns √L1(p-q) + ColorDist(p,q), or +Inf when the displacement
// exceeds what one valid step can produce.
func (im *Image) StepCost(p, q arm.Point) float64 {
	u := p.Sub(q).L1()
	if u > arm.MaxStepL1 {
		return math.Inf(1)
	}
	return math.Sqrt(float64(u)) + im.ColorDist(p, q)
}

func inUnit(v float64) bool { return v >= 0 && v <= 1 }
