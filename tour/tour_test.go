package tour_test

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
	"github.com/katalvlaran/armlift/tour"
)

// TestCombIsClosed validates the baseline tour.
func TestCombIsClosed(t *testing.T) {
	c := tour.Comb()
	require.Len(t, c, canvas.Pixels+1)
	require.NoError(t, tour.ValidateClosed(c))
}

// TestValidateClosedErrors covers each closed-tour violation.
func TestValidateClosedErrors(t *testing.T) {
	base := tour.Comb()

	require.ErrorIs(t, tour.ValidateClosed(nil), tour.ErrEmpty)
	require.ErrorIs(t, tour.ValidateClosed(base[:10]), tour.ErrLength)

	shifted := base.Clone()
	shifted[0] = arm.Point{X: 1}
	require.ErrorIs(t, tour.ValidateClosed(shifted), tour.ErrEndpoint)

	dup := base.Clone()
	dup[5] = dup[4]
	require.ErrorIs(t, tour.ValidateClosed(dup), tour.ErrDuplicate)

	out := base.Clone()
	out[7] = arm.Point{X: 200}
	require.ErrorIs(t, tour.ValidateClosed(out), tour.ErrOutOfLattice)

	swapped := base.Clone()
	swapped[100], swapped[40000] = swapped[40000], swapped[100]
	require.ErrorIs(t, tour.ValidateClosed(swapped), tour.ErrForbiddenMove)
}

// TestValidateSegment checks the start rule of engine input.
func TestValidateSegment(t *testing.T) {
	require.NoError(t, tour.ValidateSegment(tour.Tour{{}, {Y: 1}}))
	require.NoError(t, tour.ValidateSegment(tour.Tour{{X: 128, Y: -128}, {X: 127, Y: -128}}))
	require.ErrorIs(t, tour.ValidateSegment(tour.Tour{{X: 3}}), tour.ErrEndpoint)
	require.ErrorIs(t, tour.ValidateSegment(tour.Tour{{}, {X: 300}}), tour.ErrOutOfLattice)
	require.ErrorIs(t, tour.ValidateSegment(nil), tour.ErrEmpty)
}

// TestLKHRoundTrip writes and reads back the baseline tour.
func TestLKHRoundTrip(t *testing.T) {
	c := tour.Comb()
	var buf bytes.Buffer
	require.NoError(t, tour.WriteLKH(&buf, "comb", c))
	require.True(t, strings.HasPrefix(buf.String(), "NAME : comb\n"))

	got, err := tour.ReadLKH(&buf)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

// TestReadLKHRotates: a cyclic tour is rotated to the origin and closed.
func TestReadLKHRotates(t *testing.T) {
	ids := []arm.Point{{X: 1}, {X: 1, Y: 1}, {}, {Y: 1}}
	var b strings.Builder
	b.WriteString("NAME : x\nTOUR_SECTION\n")
	for _, p := range ids {
		b.WriteString(strconv.Itoa(tour.ID(p)) + "\n")
	}
	b.WriteString("-1\nEOF\n")

	got, err := tour.ReadLKH(strings.NewReader(b.String()))
	require.NoError(t, err)
	require.Equal(t, tour.Tour{{}, {Y: 1}, {X: 1}, {X: 1, Y: 1}, {}}, got)
}

// TestReadLKHErrors covers malformed LKH input.
func TestReadLKHErrors(t *testing.T) {
	_, err := tour.ReadLKH(strings.NewReader("NAME : x\n1 2 3\n"))
	require.ErrorIs(t, err, tour.ErrNoTourSection)

	_, err = tour.ReadLKH(strings.NewReader("TOUR_SECTION\n1\n2\n-1\n"))
	require.ErrorIs(t, err, tour.ErrNoOrigin)

	_, err = tour.ReadLKH(strings.NewReader("TOUR_SECTION\n0\n-1\n"))
	require.ErrorIs(t, err, tour.ErrBadID)

	_, err = tour.ReadLKH(strings.NewReader("TOUR_SECTION\nabc\n"))
	require.ErrorIs(t, err, tour.ErrBadID)
}

// TestIDRoundTrip pins the 1-based row-major numbering.
func TestIDRoundTrip(t *testing.T) {
	require.Equal(t, 1, tour.ID(arm.Point{X: -128, Y: -128}))
	require.Equal(t, canvas.Pixels, tour.ID(arm.Point{X: 128, Y: 128}))
	p := arm.Point{X: 17, Y: -90}
	require.Equal(t, p, tour.PointOf(tour.ID(p)))
}

// TestSplit checks the five corner-delimited pieces of the baseline tour.
func TestSplit(t *testing.T) {
	c := tour.Comb()
	parts, err := tour.Split(c)
	require.NoError(t, err)

	total := 0
	for i, p := range parts {
		require.NotEmpty(t, p, "part %d", i)
		require.NoError(t, tour.ValidateSegment(p), "part %d", i)
		total += len(p)
	}
	// Each of the four corners appears in two pieces.
	require.Equal(t, len(c)+4, total)
	require.Equal(t, arm.Point{}, parts[0][0])
	require.Equal(t, arm.Point{}, parts[4][0])
	for i := 0; i < 4; i++ {
		end := parts[i][len(parts[i])-1]
		require.NotZero(t, arm.Corner(end))
		if i < 3 {
			require.Equal(t, end, parts[i+1][0])
		} else {
			require.Equal(t, end, parts[4][len(parts[4])-1])
		}
	}

	_, err = tour.Split(tour.Tour{{}, {X: 1}, {}})
	require.ErrorIs(t, err, tour.ErrMissingCorner)
}

// TestCost: the baseline tour on a blank image costs Σ√L1.
func TestCost(t *testing.T) {
	tt := tour.Tour{{}, {X: 1}, {X: 2, Y: 1}}
	require.InDelta(t, 1+1.4142135623730951, tour.Cost(tt, canvas.New()), 1e-12)
}
