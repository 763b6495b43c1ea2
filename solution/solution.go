// Package solution - solution file codec.
package solution

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/tour"
)

// Header is the optional first line of a solution file.
const Header = "configuration"

// Sentinel errors for solution operations.
var (
	// ErrMalformedRecord indicates a line that is not a valid configuration.
	ErrMalformedRecord = errors.New("solution: malformed record")
	// ErrEmpty indicates a path without configurations.
	ErrEmpty = errors.New("solution: empty path")
	// ErrForbiddenStep indicates consecutive configurations that are not one step apart.
	ErrForbiddenStep = errors.New("solution: forbidden step")
	// ErrJoint indicates pieces that cannot be chained into a closed path.
	ErrJoint = errors.New("solution: pieces do not join")
)

// maxLine bounds a record line; real records are under 100 bytes.
const maxLine = 1 << 16

// Read parses a solution. Blank lines are ignored.
func Read(r io.Reader) ([]arm.Config, error) {
	var (
		sc   = bufio.NewScanner(r)
		out  []arm.Config
		line int
		c    arm.Config
		err  error
	)
	sc.Buffer(make([]byte, 0, 4096), maxLine)
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" {
			continue
		}
		if len(out) == 0 && s == Header {
			continue
		}
		if c, err = arm.Parse(s); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRecord, line, err)
		}
		out = append(out, c)
	}
	if err = sc.Err(); err != nil {
		return nil, fmt.Errorf("solution: read: %w", err)
	}
	return out, nil
}

// Write emits path, preceded by the header line when header is true.
func Write(w io.Writer, path []arm.Config, header bool) error {
	bw := bufio.NewWriter(w)
	if header {
		if _, err := bw.WriteString(Header + "\n"); err != nil {
			return err
		}
	}
	for _, c := range path {
		if _, err := bw.WriteString(c.String() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Load reads the solution file at name.
func Load(name string) ([]arm.Config, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("solution: open %s: %w", name, err)
	}
	defer f.Close()
	p, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return p, nil
}

// Save writes path with its header to name, replacing any existing file.
func Save(name string, path []arm.Config) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("solution: create %s: %w", name, err)
	}
	if err = Write(f, path, true); err != nil {
		f.Close()
		return fmt.Errorf("solution: write %s: %w", name, err)
	}
	return f.Close()
}

// Points returns the pixels drawn by path.
func Points(path []arm.Config) tour.Tour {
	t := make(tour.Tour, len(path))
	for i, c := range path {
		t[i] = c.Pos()
	}
	return t
}

// Reverse returns path in reverse order.
func Reverse(path []arm.Config) []arm.Config {
	out := make([]arm.Config, len(path))
	for i, c := range path {
		out[len(path)-1-i] = c
	}
	return out
}
