// Package race_test validates Run end to end on tours drawn by zero-loss
// walks: lossless and lossy solutions, cancellation, metrics and resume.
package race_test

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/checkpoint"
	"github.com/katalvlaran/armlift/race"
	"github.com/katalvlaran/armlift/search"
	"github.com/katalvlaran/armlift/successor"
	"github.com/katalvlaran/armlift/tour"
)

const seedDet = int64(42)

// walk returns n zero-loss single steps from Start and the tour they draw.
func walk(r *rand.Rand, n int) ([]arm.Config, tour.Tour) {
	var (
		out  = []arm.Config{arm.Start()}
		cur  = arm.Start()
		next arm.Config
		m    int
	)
	for len(out) <= n {
		m = 1 + r.Intn(4)
		b := successor.Buckets(m)
		next = cur.Add(b[r.Intn(len(b))])
		if next.Pos().Sub(cur.Pos()).L1() != m {
			continue
		}
		out = append(out, next)
		cur = next
	}
	t := make(tour.Tour, len(out))
	for i, c := range out {
		t[i] = c.Pos()
	}
	return out, t
}

func oracle(w []arm.Config) func(int) search.Heuristic {
	return func(int) search.Heuristic {
		return func(n int, _ arm.Config, _ arm.Point, set *successor.Set, _ bool, _ *search.Engine) arm.Config {
			for _, c := range set.Selection() {
				if c == w[n+1] {
					return c
				}
			}
			return set.Uniform()
		}
	}
}

func baseOptions() race.Options {
	o := race.DefaultOptions()
	o.Instances = 3
	o.Seed = seedDet
	o.Search.TunnelingProb = 0
	o.PollInterval = 10 * time.Millisecond
	return o
}

func memStore(t *testing.T) *checkpoint.Store {
	st, err := checkpoint.Open(checkpoint.Config{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// gauge reads one sample of a gathered metric family.
func gauge(t *testing.T, reg *prometheus.Registry, name, instance string) (float64, bool) {
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "instance" && lp.GetValue() == instance {
					if m.GetGauge() != nil {
						return m.GetGauge().GetValue(), true
					}
				}
			}
			if instance == "" && m.GetCounter() != nil {
				return m.GetCounter().GetValue(), true
			}
		}
	}
	return 0, false
}

func TestOptions_Validate(t *testing.T) {
	o := baseOptions()
	require.NoError(t, o.Validate())

	o.Instances = 0
	require.ErrorIs(t, o.Validate(), race.ErrOptions)

	o = baseOptions()
	o.PollInterval = 0
	require.ErrorIs(t, o.Validate(), race.ErrOptions)

	o = baseOptions()
	o.Resume = true
	require.ErrorIs(t, o.Validate(), race.ErrOptions)

	o = baseOptions()
	o.Search.MaxBranchProb = 2
	require.ErrorIs(t, o.Validate(), search.ErrOptions)
}

func TestRun_Lossless(t *testing.T) {
	w, tr := walk(rand.New(rand.NewSource(seedDet)), 300)
	reg := prometheus.NewRegistry()
	st := memStore(t)

	o := baseOptions()
	o.Heuristic = oracle(w)
	o.Registerer = reg
	o.Store = st
	o.Label = "A"

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	res, err := race.Run(ctx, tr, o)
	require.NoError(t, err)
	require.True(t, res.Solved)
	require.True(t, res.Lossless)
	require.Equal(t, w, res.Path)
	require.Equal(t, w, res.Raw)
	require.Equal(t, len(tr)-1, res.Stats.BestPos)
	require.NotEqual(t, uuid.Nil, res.RunID)

	rec, err := st.Load(res.RunID, "A")
	require.NoError(t, err)
	require.True(t, rec.Solved)
	require.Equal(t, res.Winner, rec.Instance)

	solved, ok := gauge(t, reg, "armlift_race_solved_total", "")
	require.True(t, ok)
	require.GreaterOrEqual(t, solved, 1.0)

	// A second race on the same registry reuses the collectors.
	o.Store = nil
	_, err = race.Run(ctx, tr, o)
	require.NoError(t, err)
}

func TestRun_LossySolutions(t *testing.T) {
	o := baseOptions()
	r := search.NewExceptionRange(2, 0, 0)
	r.ProbJumpMin, r.ProbJumpMax = 1, 1
	o.Exceptions = []search.ExceptionRange{r}
	o.Heuristic = nil

	res, err := race.Run(context.Background(), tour.Tour{{}, {X: 1}}, o)
	require.NoError(t, err)
	require.True(t, res.Solved)
	require.False(t, res.Lossless)
	require.InDelta(t, math.Sqrt2, res.Stats.CumLoss, 1e-9)
	require.Len(t, res.Raw, 2)
	require.Len(t, res.Path, 3)
}

func TestRun_Cancelled(t *testing.T) {
	reg := prometheus.NewRegistry()
	st := memStore(t)
	o := baseOptions()
	o.Instances = 2
	o.Registerer = reg
	o.Store = st
	o.Label = "stuck"

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	res, err := race.Run(ctx, tour.Tour{{}, {X: 1}}, o)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.False(t, res.Solved)
	require.Zero(t, res.Stats.BestPos)
	require.Equal(t, []arm.Config{arm.Start()}, res.Raw)

	rec, err := st.Best("stuck")
	require.NoError(t, err)
	require.Zero(t, rec.Frontier)
	require.False(t, rec.Solved)

	fr, ok := gauge(t, reg, "armlift_race_frontier", "1")
	require.True(t, ok)
	require.Zero(t, fr)
	jl, ok := gauge(t, reg, "armlift_race_jump_loss", "0")
	require.True(t, ok)
	require.InDelta(t, math.Sqrt2, jl, 1e-9)
}

func TestRun_Resume(t *testing.T) {
	w, tr := walk(rand.New(rand.NewSource(seedDet)), 60)
	st := memStore(t)
	prev := uuid.New()
	require.NoError(t, st.Save(checkpoint.NewRecord(prev, "B", len(tr), w[:25], 0)))

	o := baseOptions()
	o.Store = st
	o.Label = "B"
	o.Resume = true
	o.Heuristic = oracle(w)
	res, err := race.Run(context.Background(), tr, o)
	require.NoError(t, err)
	require.True(t, res.Lossless)
	require.Equal(t, w, res.Raw)

	// A stored path that does not draw this tour is rejected.
	_, other := walk(rand.New(rand.NewSource(seedDet+7)), 60)
	_, err = race.Run(context.Background(), other, o)
	require.ErrorIs(t, err, search.ErrPartial)

	// Nothing stored under the label: start from scratch.
	o.Label = "fresh"
	res, err = race.Run(context.Background(), tr, o)
	require.NoError(t, err)
	require.True(t, res.Solved)
}

func TestRun_ResumeAfterJump(t *testing.T) {
	tr := tour.Tour{{}, {X: 1}, {X: 1, Y: 1}}
	e, err := search.New(tr, baseOptions().Search)
	require.NoError(t, err)
	jump := search.NewExceptionRange(2, 0, 0)
	jump.ProbJumpMin, jump.ProbJumpMax = 1, 1
	require.NoError(t, e.PushException(jump))
	require.NoError(t, e.Search(context.Background(), nil))
	<-e.Done()
	require.True(t, e.Solved())

	// The stored loss is wrong on purpose: the replayed path is authoritative.
	st := memStore(t)
	require.NoError(t, st.Save(checkpoint.NewRecord(uuid.New(), "J", len(tr), e.RawBestPath()[:2], 0)))

	o := baseOptions()
	o.Store = st
	o.Label = "J"
	o.Resume = true
	res, err := race.Run(context.Background(), tr, o)
	require.NoError(t, err)
	require.True(t, res.Solved)
	require.False(t, res.Lossless)
	require.InDelta(t, math.Sqrt2, res.Stats.CumLoss, 1e-9)
	require.InDelta(t, arm.PathLoss(res.Path), res.Stats.CumLoss, 1e-9)
}
