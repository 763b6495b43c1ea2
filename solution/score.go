// Package solution - scoring and patching of configuration paths.
package solution

import (
	"fmt"
	"math"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
	"github.com/katalvlaran/armlift/tour"
)

// Score returns Σ Penalty + colour distance over consecutive configurations
// of path, on img (blank if nil). A forbidden step contributes +Inf unless
// strict is set, in which case it is an error; strict also requires the path
// to start and end at the origin and to draw every pixel of the lattice.
//
// Complexity: O(n) time, O(257²) space when strict.
func Score(path []arm.Config, img *canvas.Image, strict bool) (float64, error) {
	if len(path) == 0 {
		return 0, ErrEmpty
	}
	if img == nil {
		img = canvas.New()
	}

	var (
		tot, pen float64
		i        int
	)
	for i = 1; i < len(path); i++ {
		pen = arm.Penalty(path[i-1], path[i])
		if strict && math.IsInf(pen, 1) {
			return 0, fmt.Errorf("%w: %d→%d", ErrForbiddenStep, i-1, i)
		}
		tot += pen + img.ColorDist(path[i-1].Pos(), path[i].Pos())
	}
	if !strict {
		return tot, nil
	}

	if path[0].Pos() != (arm.Point{}) || path[len(path)-1].Pos() != (arm.Point{}) {
		return 0, tour.ErrEndpoint
	}
	seen := make([]bool, canvas.Pixels)
	for _, c := range path {
		seen[canvas.Index(c.Pos())] = true
	}
	for i = range seen {
		if !seen[i] {
			return 0, fmt.Errorf("%w: (%s)", tour.ErrMissing, canvas.Coordinate(i))
		}
	}
	return tot, nil
}

// Patch chains pieces into one closed path. The piece starting (or ending)
// at the origin goes first; each next piece is the unused one whose first
// (or last, then reversed) configuration equals the current end. The result
// must end on its first configuration.
func Patch(pieces ...[]arm.Config) ([]arm.Config, error) {
	var (
		used  = make([]bool, len(pieces))
		total int
		out   []arm.Config
	)
	for _, p := range pieces {
		if len(p) == 0 {
			return nil, ErrEmpty
		}
		total += len(p)
	}
	out = make([]arm.Config, 0, total)

	for i, p := range pieces {
		switch {
		case p[0].Pos() == (arm.Point{}):
			out = append(out, p...)
		case p[len(p)-1].Pos() == (arm.Point{}):
			out = append(out, Reverse(p)...)
		default:
			continue
		}
		used[i] = true
		break
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no piece touches the origin", ErrJoint)
	}

	for n := 1; n < len(pieces); n++ {
		end := out[len(out)-1]
		found := false
		for k, p := range pieces {
			if used[k] {
				continue
			}
			switch end {
			case p[0]:
				out = append(out, p[1:]...)
			case p[len(p)-1]:
				r := Reverse(p)
				out = append(out, r[1:]...)
			default:
				continue
			}
			used[k], found = true, true
			break
		}
		if !found {
			return nil, fmt.Errorf("%w: nothing continues from (%s)", ErrJoint, end.Pos())
		}
	}
	if out[0] != out[len(out)-1] {
		return nil, fmt.Errorf("%w: path is not closed", ErrJoint)
	}
	return out, nil
}
