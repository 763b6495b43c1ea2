package search_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/armlift/search"
)

func TestRamp(t *testing.T) {
	cases := []struct {
		x, want float64
	}{
		{0, 0}, {0.2, 0}, {0.25, 0}, {0.375, 0.5}, {0.5, 1}, {0.625, 0.5}, {0.75, 0}, {0.9, 0}, {1, 0},
	}
	for _, c := range cases {
		require.InDelta(t, c.want, search.Ramp(c.x), 1e-12, "x=%v", c.x)
	}
}

func TestOscillate(t *testing.T) {
	const period = 8 * time.Second
	require.InDelta(t, 0.3, search.Oscillate(0.3, 0.7, 0, period, false), 1e-12)
	require.InDelta(t, 0.7, search.Oscillate(0.3, 0.7, period/2, period, false), 1e-12)
	require.InDelta(t, 0.5, search.Oscillate(0.3, 0.7, 3*period/8, period, false), 1e-12)
	// Phase wraps around the period.
	require.InDelta(t, 0.7, search.Oscillate(0.3, 0.7, 5*period/2, period, false), 1e-12)
	// Reversed: the pulse of phase x is that of 1-x.
	require.InDelta(t, 0.5, search.Oscillate(0, 1, period/8*3, period, true), 1e-12)
	require.InDelta(t, 0.0, search.Oscillate(0, 1, 0, period, true), 1e-12)
	require.Equal(t, 0.3, search.Oscillate(0.3, 0.7, time.Second, 0, false))
}

func TestGeometric(t *testing.T) {
	r := rand.New(rand.NewSource(seedDet))
	require.Zero(t, search.Geometric(r, 1))

	const (
		p = 0.2
		n = 20000
	)
	var sum int
	for i := 0; i < n; i++ {
		k := search.Geometric(r, p)
		require.GreaterOrEqual(t, k, 0)
		sum += k
	}
	// Mean of failures before success: (1-p)/p = 4.
	require.InDelta(t, 4.0, float64(sum)/n, 0.2)
}

func TestDeriveRNG(t *testing.T) {
	require.Equal(t, search.RNGFromSeed(0).Int63(), search.RNGFromSeed(1).Int63())
	require.NotEqual(t, search.DeriveSeed(7, 0), search.DeriveSeed(7, 1))
	require.Equal(t, search.DeriveSeed(7, 3), search.DeriveSeed(7, 3))

	a := search.DeriveRNG(search.RNGFromSeed(seedDet), 5)
	b := search.DeriveRNG(search.RNGFromSeed(seedDet), 5)
	require.Equal(t, a.Int63(), b.Int63())

	base := search.RNGFromSeed(seedDet)
	c := search.DeriveRNG(base, 5)
	d := search.DeriveRNG(base, 5)
	require.NotEqual(t, c.Int63(), d.Int63())
}
