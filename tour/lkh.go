// Package tour - LKH .tour codec and the corner split.
package tour

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
)

const tourSection = "TOUR_SECTION"

// ReadLKH reads an LKH tour file: header lines are skipped up to
// TOUR_SECTION, then node ids follow until -1 or EOF. The cyclic tour is
// rotated to start at the origin and closed there.
func ReadLKH(r io.Reader) (Tour, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	var found bool
	for sc.Scan() {
		if sc.Text() == tourSection {
			found = true
			break
		}
	}
	if !found {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNoTourSection
	}

	var (
		t   = make(Tour, 0, canvas.Pixels+1)
		id  int
		err error
	)
	for sc.Scan() {
		if id, err = strconv.Atoi(sc.Text()); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadID, sc.Text())
		}
		if id == -1 {
			break
		}
		if id < 1 || id > canvas.Pixels {
			return nil, fmt.Errorf("%w: %d", ErrBadID, id)
		}
		t = append(t, PointOf(id))
	}
	if err = sc.Err(); err != nil {
		return nil, err
	}
	return RotateToOrigin(t)
}

// ReadLKHFile opens path and calls ReadLKH.
func ReadLKHFile(path string) (Tour, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := ReadLKH(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// WriteLKH writes t (closing point dropped) as an LKH tour named name.
func WriteLKH(w io.Writer, name string, t Tour) error {
	n := len(t)
	if n > 1 && t[0] == t[n-1] {
		n--
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NAME : %s\nTYPE : TOUR\nDIMENSION : %d\n%s\n", name, n, tourSection)
	for _, p := range t[:n] {
		if !p.InLattice() {
			return fmt.Errorf("%w: (%s)", ErrOutOfLattice, p)
		}
		fmt.Fprintf(bw, "%d\n", ID(p))
	}
	fmt.Fprint(bw, "-1\nEOF\n")
	return bw.Flush()
}

// Split cuts a closed tour at the first four corners it meets into five
// pieces: origin→c1, c1→c2, c2→c3, c3→c4 and the reversed tail origin→c4.
// Consecutive pieces share their junction point.
func Split(t Tour) ([5]Tour, error) {
	var (
		parts [5]Tour
		i     int
		part  int
	)
	if len(t) == 0 {
		return parts, ErrEmpty
	}
	for part = 0; part < 4; part++ {
		seg := Tour{t[i]}
		i++
		for ; i < len(t); i++ {
			seg = append(seg, t[i])
			if arm.Corner(t[i]) != 0 {
				break
			}
		}
		if i >= len(t) {
			return parts, fmt.Errorf("%w: corner %d", ErrMissingCorner, part+1)
		}
		parts[part] = seg
	}
	parts[4] = t[i:].Reversed()
	return parts, nil
}
