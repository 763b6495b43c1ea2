package solution_test

import (
	"bytes"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
	"github.com/katalvlaran/armlift/solution"
	"github.com/katalvlaran/armlift/tour"
)

func TestWriteRead(t *testing.T) {
	p := walk(rand.New(rand.NewSource(seedDet)), 50)
	for _, header := range []bool{true, false} {
		var buf bytes.Buffer
		require.NoError(t, solution.Write(&buf, p, header))
		require.Equal(t, header, strings.HasPrefix(buf.String(), solution.Header+"\n"))

		got, err := solution.Read(&buf)
		require.NoError(t, err)
		require.Equal(t, p, got)
	}
}

func TestRead_Format(t *testing.T) {
	in := "configuration\n\n" + arm.Start().String() + "\r\n  \n" + arm.Start().String() + "\n"
	got, err := solution.Read(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []arm.Config{arm.Start(), arm.Start()}, got)

	require.Equal(t, "64 0;-32 0;-16 0;-8 0;-4 0;-2 0;-1 0;-1 0", arm.Start().String())

	// A header anywhere but first is a malformed record.
	_, err = solution.Read(strings.NewReader(arm.Start().String() + "\nconfiguration\n"))
	require.ErrorIs(t, err, solution.ErrMalformedRecord)
	require.Contains(t, err.Error(), "line 2")

	_, err = solution.Read(strings.NewReader("configuration\n64 0;-32 0\n"))
	require.ErrorIs(t, err, solution.ErrMalformedRecord)
	require.Contains(t, err.Error(), "line 2")

	got, err = solution.Read(strings.NewReader(""))
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestLoadSave(t *testing.T) {
	p := walk(rand.New(rand.NewSource(seedDet)), 20)
	name := filepath.Join(t.TempDir(), "part.csv")
	require.NoError(t, solution.Save(name, p))

	raw, err := os.ReadFile(name)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(raw), solution.Header+"\n"))

	got, err := solution.Load(name)
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = solution.Load(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestScore(t *testing.T) {
	p := walk(rand.New(rand.NewSource(seedDet)), 30)
	var want float64
	for i := 1; i < len(p); i++ {
		want += math.Sqrt(float64(p[i].Pos().Sub(p[i-1].Pos()).L1()))
	}
	got, err := solution.Score(p, nil, false)
	require.NoError(t, err)
	require.InDelta(t, want, got, 1e-9)

	// Colours add 3·Σ|Δ| per step.
	img := canvas.New()
	require.NoError(t, img.Set(p[1].Pos(), canvas.RGB{R: 0.5}))
	got, err = solution.Score(p[:2], img, false)
	require.NoError(t, err)
	require.InDelta(t, want0(p)+1.5, got, 1e-9)

	_, err = solution.Score(nil, nil, false)
	require.ErrorIs(t, err, solution.ErrEmpty)
}

// want0 is the movement cost of the first step of p.
func want0(p []arm.Config) float64 { return arm.Penalty(p[0], p[1]) }

func TestScore_Strict(t *testing.T) {
	p := walk(rand.New(rand.NewSource(seedDet)), 10)

	_, err := solution.Score(p, nil, true)
	require.ErrorIs(t, err, tour.ErrEndpoint)

	closed := append(append([]arm.Config(nil), p...), solution.Reverse(p)[1:]...)
	_, err = solution.Score(closed, nil, true)
	require.ErrorIs(t, err, tour.ErrMissing)

	jump := []arm.Config{arm.Start(), arm.Start().AddAngle(0, 2)}
	_, err = solution.Score(jump, nil, true)
	require.ErrorIs(t, err, solution.ErrForbiddenStep)
	s, err := solution.Score(jump, nil, false)
	require.NoError(t, err)
	require.True(t, math.IsInf(s, 1))
}

func TestPatch(t *testing.T) {
	w := walk(rand.New(rand.NewSource(seedDet)), 30)
	for _, c := range w[1:] {
		require.NotEqual(t, arm.Point{}, c.Pos(), "walk must not revisit the origin")
	}
	p := append(append([]arm.Config(nil), w...), solution.Reverse(w)[1:]...)

	got, err := solution.Patch(p[10:41], p[0:11], solution.Reverse(p[40:61]))
	require.NoError(t, err)
	require.Equal(t, p, got)

	// The origin piece may come reversed.
	got, err = solution.Patch(solution.Reverse(p[0:11]), p[10:41], p[40:61])
	require.NoError(t, err)
	require.Equal(t, p, got)

	_, err = solution.Patch(p[10:41])
	require.ErrorIs(t, err, solution.ErrJoint)
	_, err = solution.Patch(p[0:11], p[40:61])
	require.ErrorIs(t, err, solution.ErrJoint)
	_, err = solution.Patch(w)
	require.ErrorIs(t, err, solution.ErrJoint)
	_, err = solution.Patch(p, nil)
	require.ErrorIs(t, err, solution.ErrEmpty)

	got, err = solution.Patch(p)
	require.NoError(t, err)
	require.Equal(t, p, got)
	require.Equal(t, len(p), len(solution.Points(got)))
}
