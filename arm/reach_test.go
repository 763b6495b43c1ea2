package arm_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/armlift/arm"
)

// TestAnglesToReach_BoxContainsTarget checks that both returned rotations of
// arm k put the target inside BoundingBox(k).
func TestAnglesToReach_BoxContainsTarget(t *testing.T) {
	r := rand.New(rand.NewSource(seedDet))
	for i := 0; i < trials; i++ {
		c := randomConfig(r)
		k := 1 + r.Intn(arm.NumArms-1)
		l := arm.Length(k)
		p := randomNear(r, c.CenterBox(k+1), 2*l)

		pos, neg, ok := c.AnglesToReach(p, k)
		require.True(t, ok)
		require.LessOrEqual(t, pos, 4*l)
		require.Greater(t, pos, -4*l)
		require.LessOrEqual(t, neg, 4*l)
		require.Greater(t, neg, -4*l)
		require.True(t, c.AddAngle(k, pos).BoundingBox(k).Contains(p), "pos=%d arm %d", pos, k)
		require.True(t, c.AddAngle(k, neg).BoundingBox(k).Contains(p), "neg=%d arm %d", neg, k)
		if c.BoundingBox(k).Contains(p) {
			require.Zero(t, pos)
			require.Zero(t, neg)
		}
	}
}

// TestAnglesToReach_OutOfReach covers the out-of-range failure for k ≥ 1.
func TestAnglesToReach_OutOfReach(t *testing.T) {
	c := arm.Start()
	far := c.CenterBox(4).Add(arm.Point{X: 2*arm.Length(3) + 1})
	_, _, ok := c.AnglesToReach(far, 3)
	require.False(t, ok)
}

// TestAnglesToReach_Arm0 pins the special case of the smallest arm: it only
// answers for targets at Chebyshev distance exactly one from CenterBox(1).
func TestAnglesToReach_Arm0(t *testing.T) {
	c := arm.Start()
	center := c.CenterBox(1)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			p := center.Add(arm.Point{X: dx, Y: dy})
			pos, neg, ok := c.AnglesToReach(p, 0)
			if dx == 0 && dy == 0 {
				require.False(t, ok, "centre has no angle")
				continue
			}
			require.True(t, ok)
			require.Equal(t, pos, neg)
			require.Equal(t, p, c.AddAngle(0, pos).Pos())
		}
	}
	_, _, ok := c.AnglesToReach(center.Add(arm.Point{X: 2}), 0)
	require.False(t, ok, "non-unit offsets are rejected")
}

// TestPathToReach checks that every extremal configuration draws the target.
func TestPathToReach(t *testing.T) {
	r := rand.New(rand.NewSource(seedDet))
	for i := 0; i < trials/3; i++ {
		c := randomConfig(r)
		p := arm.Point{X: r.Intn(257) - 128, Y: r.Intn(257) - 128}
		if p == c.CenterBox(1) {
			continue
		}
		ends, err := c.PathToReach(p)
		require.NoError(t, err)
		require.NotEmpty(t, ends)
		require.LessOrEqual(t, len(ends), 128)
		for _, e := range ends {
			require.Equal(t, p, e.Pos())
		}
	}
}

// TestPathToReach_Degenerate verifies the explicit error for the centre of arm 0.
func TestPathToReach_Degenerate(t *testing.T) {
	c := arm.Start()
	_, err := c.PathToReach(c.CenterBox(1))
	require.ErrorIs(t, err, arm.ErrDegenerate)
}
