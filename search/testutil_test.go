// Package search_test provides the tours, heuristics and clocks shared by the
// engine tests.
package search_test

import (
	"bytes"
	"math/rand"
	"sync"
	"time"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/search"
	"github.com/katalvlaran/armlift/successor"
	"github.com/katalvlaran/armlift/tour"
)

const (
	// seedDet is the deterministic seed of randomized tests.
	seedDet = int64(42)
	// waitFor bounds every asynchronous expectation.
	waitFor = 10 * time.Second
	// tick is the polling interval of asynchronous expectations.
	tick = 2 * time.Millisecond
	// longWait bounds the searches over a few hundred tour points.
	longWait = 30 * time.Second
)

// quietOptions disables tunneling so runs are driven by the tested feature only.
func quietOptions() search.Options {
	opts := search.DefaultOptions()
	opts.TunnelingProb = 0
	opts.Seed = seedDet
	return opts
}

// zeroLossWalk returns n single steps from Start, each moving 1..maxMove arms
// that all contribute one unit to the tip displacement, and the tour they draw.
func zeroLossWalk(r *rand.Rand, n, maxMove int) ([]arm.Config, tour.Tour) {
	var (
		walk = []arm.Config{arm.Start()}
		cur  = arm.Start()
		next arm.Config
		m    int
	)
	for len(walk) <= n {
		m = 1 + r.Intn(maxMove)
		b := successor.Buckets(m)
		next = cur.Add(b[r.Intn(len(b))])
		if next.Pos().Sub(cur.Pos()).L1() != m {
			continue
		}
		walk = append(walk, next)
		cur = next
	}
	t := make(tour.Tour, len(walk))
	for i, c := range walk {
		t[i] = c.Pos()
	}
	return walk, t
}

// oracle follows walk whenever its next configuration is a candidate.
func oracle(walk []arm.Config) search.Heuristic {
	return func(n int, _ arm.Config, _ arm.Point, set *successor.Set, _ bool, _ *search.Engine) arm.Config {
		for _, c := range set.Selection() {
			if c == walk[n+1] {
				return c
			}
		}
		return set.Uniform()
	}
}

// sideStep is the two-point tour whose only move needs a jump from Start.
func sideStep() tour.Tour {
	return tour.Tour{{}, {X: 1}}
}

// fixedClock always returns the same instant.
type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// syncBuffer is a bytes.Buffer safe for a logging goroutine and a reader.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// ledgerLoss is the cumulative loss recorded by a ledger.
func ledgerLoss(l []search.LedgerEntry) float64 {
	if len(l) == 0 {
		return 0
	}
	return l[len(l)-1].Loss
}
