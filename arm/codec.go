// Package arm - text codec and human readable dump of a Config.
//
// The codec is the solution-file record: eight "x y" arm offsets, largest arm
// first, separated by ';'.
package arm

import (
	"fmt"
	"strconv"
	"strings"
)

// String formats c as eight "x y" arm offsets, largest arm first, separated
// by ';'. This is the record format of solution files.
func (c Config) String() string {
	var (
		b strings.Builder
		k int
	)
	b.Grow(NumArms * 9)
	for k = NumArms - 1; k >= 0; k-- {
		p := c.ArmPos(k)
		b.WriteString(strconv.Itoa(p.X))
		b.WriteByte(' ')
		b.WriteString(strconv.Itoa(p.Y))
		if k > 0 {
			b.WriteByte(';')
		}
	}
	return b.String()
}

func isSeparator(r rune) bool {
	return r == ';' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// Parse reads the format produced by String. Separators may be any mix of
// ';', spaces, tabs and newlines. On failure it returns Start together with
// an error wrapping ErrMalformed (or ErrNotOnPerimeter).
func Parse(s string) (Config, error) {
	fields := strings.FieldsFunc(s, isSeparator)
	if len(fields) != 2*NumArms {
		return Start(), fmt.Errorf("%w: want %d integers, got %d", ErrMalformed, 2*NumArms, len(fields))
	}

	var (
		c    Config
		i, k int
		x, y int
		err  error
	)
	for i = 0; i < NumArms; i++ {
		k = NumArms - 1 - i
		if x, err = strconv.Atoi(fields[2*i]); err != nil {
			return Start(), fmt.Errorf("%w: arm %d: %v", ErrMalformed, k, err)
		}
		if y, err = strconv.Atoi(fields[2*i+1]); err != nil {
			return Start(), fmt.Errorf("%w: arm %d: %v", ErrMalformed, k, err)
		}
		if c, err = c.WithArmPos(k, Point{x, y}); err != nil {
			return Start(), fmt.Errorf("arm %d at (%d,%d): %w", k, x, y, err)
		}
	}
	return c, nil
}

// Describe returns a multi-line dump of c: tip position then, per arm, its
// angle, tip offset and the edge of its square it currently lies on.
func (c Config) Describe() string {
	var (
		b strings.Builder
		k int
	)
	fmt.Fprintf(&b, "config %#x pos (%s)\n", uint64(c), c.Pos())
	for k = NumArms - 1; k >= 0; k-- {
		fmt.Fprintf(&b, "  arm %d L=%-2d angle %3d/%-3d tip (%s) %s\n",
			k, armLength[k], c.Angle(k), 8*armLength[k], c.ArmPos(k), c.edge(k))
	}
	return b.String()
}

// edge names the side (or corner) of arm k's square holding its tip.
func (c Config) edge(k int) string {
	l := armLength[k]
	p := c.ArmPos(k)
	if abs(p.X) == l && abs(p.Y) == l {
		return "corner"
	}
	switch {
	case p.Y == -l:
		return "bottom"
	case p.X == l:
		return "right"
	case p.Y == l:
		return "top"
	}
	return "left"
}
