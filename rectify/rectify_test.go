// Package rectify_test validates InsertMove and Rectify on random valid walks.
// Focus:
//  1. Visited pixels and step validity are preserved.
//  2. Each inserted rotation brings its arm one unit closer to the target.
package rectify_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/rectify"
)

// randomWalk returns n+1 configurations linked by random valid steps.
func randomWalk(r *rand.Rand, n int) []arm.Config {
	var a [arm.NumArms]int
	for k := range a {
		a[k] = r.Intn(arm.Modulus(k))
	}
	path := []arm.Config{arm.FromAngles(a)}
	for i := 0; i < n; i++ {
		c := path[len(path)-1]
		for k := 0; k < arm.NumArms; k++ {
			c = c.AddAngle(k, r.Intn(3)-1)
		}
		path = append(path, c)
	}
	return path
}

func positions(path []arm.Config) []arm.Point {
	out := make([]arm.Point, len(path))
	for i, c := range path {
		out[i] = c.Pos()
	}
	return out
}

// TestInsertMove_SwapsSmallArms: arm 1 stepping back while arm 0 sits on the
// right edge can be traded for arm 0 stepping up.
func TestInsertMove_SwapsSmallArms(t *testing.T) {
	c0 := arm.Start().WithAngle(0, 2).WithAngle(1, 0)
	c1 := c0.AddAngle(1, -1)
	path := []arm.Config{c0, c1}
	before := positions(path)

	require.True(t, rectify.InsertMove(path, 1, 1))
	require.Equal(t, before, positions(path))
	require.Equal(t, 0, path[1].Angle(1))
	require.Equal(t, 3, path[1].Angle(0))
	require.True(t, path[1].Sub(path[0]).IsValidStep())
}

// TestInsertMove_StopsAtJump: a stored jump ends the backward scan.
func TestInsertMove_StopsAtJump(t *testing.T) {
	c0 := arm.Start().WithAngle(0, 2).WithAngle(1, 0)
	c1 := c0.AddAngle(1, -1)
	jump := c1.AddAngle(7, 5)
	path := []arm.Config{c0, c1, jump}
	require.False(t, rectify.InsertMove(path, 1, 1))
	require.Equal(t, c1, path[1])
}

// TestInsertMove_ShortPath: nothing to rewrite in a single configuration.
func TestInsertMove_ShortPath(t *testing.T) {
	require.False(t, rectify.InsertMove([]arm.Config{arm.Start()}, 1, 3))
	require.Zero(t, rectify.Rectify([]arm.Config{arm.Start()}, arm.Point{X: 1}))
	require.Zero(t, rectify.Rectify(nil, arm.Point{}))
}

// TestRectify_OwnPixel: the last pixel is already reached, nothing moves.
func TestRectify_OwnPixel(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	path := randomWalk(r, 10)
	want := append([]arm.Config(nil), path...)
	require.Zero(t, rectify.Rectify(path, path[len(path)-1].Pos()))
	require.Equal(t, want, path)
}

// TestRectify_PreservesPixels is the core property: whatever is inserted, the
// visited pixels are unchanged and every step stays valid.
func TestRectify_PreservesPixels(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	inserted := 0
	for trial := 0; trial < 200; trial++ {
		path := randomWalk(r, 25)
		before := positions(path)
		last := before[len(before)-1]
		p := arm.Point{X: last.X + r.Intn(7) - 3, Y: last.Y + r.Intn(7) - 3}

		inserted += rectify.Rectify(path, p)
		require.Equal(t, before, positions(path))
		for i := 1; i < len(path); i++ {
			require.True(t, path[i].Sub(path[i-1]).IsValidStep(), "step %d", i)
		}
	}
	t.Logf("%d rotations inserted", inserted)
}

// need is the unit rotations arm k of c lacks to bring p in reach, and the
// direction Rectify would rotate it.
func need(c arm.Config, p arm.Point, k int) (n, dir int, ok bool) {
	pos, neg, ok := c.AnglesToReach(p, k)
	if !ok {
		return 0, 0, false
	}
	n = neg
	if iabs(pos) < iabs(neg) {
		n = pos
	}
	dir = 1
	if n < 0 {
		dir = -1
	}
	return iabs(n), dir, true
}

func iabs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// TestInsertMove_ClosesDistance: each accepted rotation of arm k toward p
// lowers its remaining need by exactly one unit, keeps every visited pixel and
// leaves a valid chain.
func TestInsertMove_ClosesDistance(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	inserted := 0
	for trial := 0; trial < 200; trial++ {
		path := randomWalk(r, 25)
		before := positions(path)
		last := before[len(before)-1]
		p := arm.Point{X: last.X + r.Intn(7) - 3, Y: last.Y + r.Intn(7) - 3}

		for k := arm.NumArms - 1; k >= 0; k-- {
			n, dir, ok := need(path[len(path)-1], p, k)
			if !ok || n == 0 {
				continue
			}
			if !rectify.InsertMove(path, dir, k) {
				continue
			}
			inserted++
			got, _, ok := need(path[len(path)-1], p, k)
			require.True(t, ok)
			require.Equal(t, n-1, got, "arm %d", k)
			require.Equal(t, before, positions(path))
			for i := 1; i < len(path); i++ {
				require.True(t, path[i].Sub(path[i-1]).IsValidStep(), "step %d", i)
			}
		}
	}
	require.Positive(t, inserted)
}

// TestRectify_LargestArmConverges: the largest arm is rectified first, so its
// need toward p never grows.
func TestRectify_LargestArmConverges(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	for trial := 0; trial < 200; trial++ {
		path := randomWalk(r, 25)
		last := path[len(path)-1].Pos()
		p := arm.Point{X: last.X + r.Intn(7) - 3, Y: last.Y + r.Intn(7) - 3}

		top := arm.NumArms - 1
		n, _, ok := need(path[len(path)-1], p, top)
		if !ok {
			continue
		}
		rectify.Rectify(path, p)
		got, _, ok := need(path[len(path)-1], p, top)
		require.True(t, ok)
		require.LessOrEqual(t, got, n)
	}
}
