// Package canvas - CSV loader (x,y,r,g,b with an optional header).
package canvas

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/armlift/arm"
)

// Load reads an image in CSV form: one "x,y,r,g,b" record per pixel, with an
// optional header line. Every pixel of the lattice must be present.
func Load(r io.Reader) (*Image, error) {
	var (
		cr   = csv.NewReader(r)
		im   = New()
		seen = make([]bool, Pixels)
		n    int
		line int
	)
	cr.FieldsPerRecord = 5
	cr.TrimLeadingSpace = true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		p, c, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err = im.Set(p, c); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if !seen[Index(p)] {
			seen[Index(p)] = true
			n++
		}
	}
	if n != Pixels {
		return nil, fmt.Errorf("%w: %d of %d pixels", ErrIncomplete, n, Pixels)
	}
	return im, nil
}

// LoadFile opens path and calls Load.
func LoadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	im, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return im, nil
}

func isHeader(rec []string) bool {
	_, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
	return err != nil
}

func parseRecord(rec []string) (arm.Point, RGB, error) {
	var (
		v   [5]float64
		i   int
		err error
	)
	for i = 0; i < 5; i++ {
		if v[i], err = strconv.ParseFloat(strings.TrimSpace(rec[i]), 64); err != nil {
			return arm.Point{}, RGB{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	p := arm.Point{X: int(v[0]), Y: int(v[1])}
	if float64(p.X) != v[0] || float64(p.Y) != v[1] {
		return arm.Point{}, RGB{}, fmt.Errorf("%w: non-integer coordinates", ErrMalformed)
	}
	return p, RGB{v[2], v[3], v[4]}, nil
}
