// Package search - the Engine: construction, public control and read API,
// and the best-path bookkeeping shared with the loop.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/reconnect"
	"github.com/katalvlaran/armlift/successor"
	"github.com/katalvlaran/armlift/tour"
)

// Heuristic picks the next configuration among the candidates of set, all of
// which draw target. It runs on the search goroutine and may read the engine
// through Elapsed, BranchProbability and Stats only.
type Heuristic func(n int, cur arm.Config, target arm.Point, set *successor.Set, backtracked bool, e *Engine) arm.Config

// Engine lifts a tour into arm configurations. Engines share nothing and may
// run concurrently.
type Engine struct {
	tour tour.Tour
	opts Options
	log  *slog.Logger

	// owned by the search goroutine while it runs
	rng        *rand.Rand
	set        *successor.Set
	rc         *reconnect.Reconnector
	current    []arm.Config
	best       []arm.Config
	ledger     *LossLedger
	bestLedger *LossLedger
	exceptions []ExceptionRange
	// current and best agree below dirty
	dirty int

	bestSet      map[arm.Config]struct{}
	minSteps     float64
	minLoss      float64
	visitsAtBest int
	cumLossBest  float64

	iterations int64
	excTime    float64
	detourTime float64

	// lifecycle
	ctlMu sync.Mutex
	mu    sync.Mutex
	cond  *sync.Cond
	state atomic.Int32
	held  bool // guarded by mu
	done  chan struct{}

	started    atomic.Int64
	branchBits atomic.Uint64
	solved     atomic.Bool
	stats      atomic.Pointer[Stats]
}

// New returns an idle engine on t. The first point of t must be the origin
// or a corner of the lattice.
func New(t tour.Tour, opts Options) (*Engine, error) {
	if len(t) == 0 {
		return nil, tour.ErrEmpty
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	a, err := arm.FromCorner(t[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotCornerStart, t[0])
	}
	opts = opts.normalized()

	rng := RNGFromSeed(opts.Seed)
	e := &Engine{
		tour:       t.Clone(),
		opts:       opts,
		log:        opts.Logger,
		rng:        rng,
		set:        successor.New(rng),
		rc:         reconnect.New(opts.Image, rng),
		current:    make([]arm.Config, 1, len(t)+16),
		best:       make([]arm.Config, 1, len(t)+16),
		ledger:     NewLossLedger(),
		bestLedger: NewLossLedger(),
		bestSet:    make(map[arm.Config]struct{}),
		done:       make(chan struct{}),
	}
	e.cond = sync.NewCond(&e.mu)
	close(e.done)
	e.current[0], e.best[0] = a, a
	e.dirty = 1
	e.resetFrontierStats()
	e.setBranchProb(opts.MinBranchProb)
	e.solved.Store(len(t) == 1)
	e.publish()
	return e, nil
}

// Tour returns the tour searched. The slice must not be modified.
func (e *Engine) Tour() tour.Tour { return e.tour }

// Search starts the search goroutine with heuristic h and returns
// immediately. Cancelling ctx stops the search at its next checkpoint.
func (e *Engine) Search(ctx context.Context, h Heuristic) error {
	if h == nil {
		h = Uniform
	}
	e.ctlMu.Lock()
	defer e.ctlMu.Unlock()

	e.mu.Lock()
	if State(e.state.Load()).active() {
		e.mu.Unlock()
		return ErrAlreadyRunning
	}
	e.done = make(chan struct{})
	done := e.done
	if e.started.Load() == 0 {
		e.started.Store(e.opts.Clock.Now().UnixNano())
	}
	e.setState(Running)
	e.mu.Unlock()

	stopWatch := context.AfterFunc(ctx, e.requestStop)
	e.log.Info("search started", "tour_len", len(e.tour), "pos", len(e.current)-1, "best", len(e.best)-1)
	go func() {
		defer close(done)
		defer stopWatch()
		e.run(h)
		e.publish()
		e.log.Info("search ended", "solved", e.Solved(), "best", len(e.best)-1, "cum_loss", e.cumLossBest)
		e.mu.Lock()
		e.setState(Stopped)
		e.mu.Unlock()
	}()
	return nil
}

// PushException registers r; the most recent ranges are consulted first.
func (e *Engine) PushException(r ExceptionRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	e.exclusive(func() {
		e.exceptions = append(e.exceptions, r)
	})
	e.log.Debug("exception pushed", "min_pos", r.MinPos, "pos_max", r.PosMax, "max_cum_loss", r.MaxCumLoss)
	return nil
}

// Exceptions returns a copy of the registered ranges.
func (e *Engine) Exceptions() []ExceptionRange {
	var out []ExceptionRange
	e.exclusive(func() {
		out = append(out, e.exceptions...)
	})
	return out
}

// ResetAtBestPos restarts the current path from the first pos configurations
// of the best path. pos is clamped to [1, len(best)].
func (e *Engine) ResetAtBestPos(pos int) {
	e.exclusive(func() {
		e.tunnelTo(min(max(pos, 1), len(e.best)))
		e.publish()
	})
}

// ResetAtBestRatio is ResetAtBestPos at ratio·len(best).
func (e *Engine) ResetAtBestRatio(ratio float64) {
	e.exclusive(func() {
		e.tunnelTo(min(max(int(float64(len(e.best))*ratio), 1), len(e.best)))
		e.publish()
	})
}

// LoadPartial replaces both the best and the current path by path, which
// must start with the engine's first configuration and hold at most one
// configuration per tour point, each drawing its tour point. The loss ledger
// is rebuilt from the lossy steps and the jumps of path; a jump that cannot
// be replayed fails with ErrPartial and leaves the engine unchanged.
func (e *Engine) LoadPartial(path []arm.Config) error {
	if len(path) == 0 || len(path) > len(e.tour) {
		return fmt.Errorf("%w: length %d for a tour of %d", ErrPartial, len(path), len(e.tour))
	}
	for i, c := range path {
		if c.Pos() != e.tour[i] {
			return fmt.Errorf("%w: configuration %d draws %v, want %v", ErrPartial, i, c.Pos(), e.tour[i])
		}
	}
	if path[0] != e.best[0] {
		return fmt.Errorf("%w: first configuration differs", ErrPartial)
	}
	var err error
	e.exclusive(func() {
		led := NewLossLedger()
		if err = e.replayLosses(path, led); err != nil {
			return
		}
		e.best = append(e.best[:0], path...)
		e.current = append(e.current[:0], path...)
		e.dirty = len(e.best)
		e.ledger.CopyFrom(led)
		e.bestLedger.CopyFrom(led)
		e.cumLossBest = led.Last()
		e.resetFrontierStats()
		e.solved.Store(len(e.best) == len(e.tour))
		e.publish()
	})
	return err
}

// replayLosses pushes into led one checkpoint per lossy transition of path:
// a valid step with a positive Loss, or a jump scored by the reconnector.
//
// Complexity: O(n) plus one ball search per jump.
func (e *Engine) replayLosses(path []arm.Config, led *LossLedger) error {
	var (
		loss float64
		i    int
	)
	for i = 1; i < len(path); i++ {
		if math.IsInf(arm.Penalty(path[i-1], path[i]), 1) {
			e.rc.ToConfig(path[i-1], path[i], e.opts.Precision2, e.opts.Precision3)
			if !e.rc.Found() {
				return fmt.Errorf("%w: jump %d→%d cannot be replayed", ErrPartial, i-1, i)
			}
			loss = e.rc.Loss()
		} else {
			loss = arm.Loss(path[i-1], path[i])
		}
		if loss > lossEps {
			led.Push(i-1, led.Last()+loss)
		}
	}
	return nil
}

// BestPath returns the best path with every jump expanded into valid steps.
func (e *Engine) BestPath() ([]arm.Config, error) {
	var (
		out []arm.Config
		err error
	)
	e.exclusive(func() {
		out, err = e.rc.ExpandPath(e.best, e.opts.Precision2, e.opts.Precision3)
	})
	return out, err
}

// CurrentPath returns the current path with every jump expanded.
func (e *Engine) CurrentPath() ([]arm.Config, error) {
	var (
		out []arm.Config
		err error
	)
	e.exclusive(func() {
		out, err = e.rc.ExpandPath(e.current, e.opts.Precision2, e.opts.Precision3)
	})
	return out, err
}

// RawBestPath returns the best path, one configuration per tour point.
func (e *Engine) RawBestPath() []arm.Config {
	var out []arm.Config
	e.exclusive(func() {
		out = append(out, e.best...)
	})
	return out
}

// Ledger returns the checkpoints of the current path.
func (e *Engine) Ledger() []LedgerEntry {
	var out []LedgerEntry
	e.exclusive(func() {
		out = e.ledger.Entries()
	})
	return out
}

// Stats returns the last published snapshot without blocking.
func (e *Engine) Stats() Stats {
	s := *e.stats.Load()
	s.Elapsed = e.Elapsed()
	return s
}

// Solved reports whether the best path covers the whole tour.
func (e *Engine) Solved() bool { return e.solved.Load() }

// Elapsed returns the time since the first Search, 0 before it.
func (e *Engine) Elapsed() time.Duration {
	t0 := e.started.Load()
	if t0 == 0 {
		return 0
	}
	return e.opts.Clock.Now().Sub(time.Unix(0, t0))
}

// BranchProbability returns the current backtrack parameter.
func (e *Engine) BranchProbability() float64 {
	return math.Float64frombits(e.branchBits.Load())
}

func (e *Engine) setBranchProb(p float64) { e.branchBits.Store(math.Float64bits(p)) }

// publish stores a fresh snapshot. Called from the goroutine owning the state.
func (e *Engine) publish() {
	e.stats.Store(&Stats{
		Iterations:  e.iterations,
		Pos:         len(e.current) - 1,
		BestPos:     len(e.best) - 1,
		BranchProb:  e.BranchProbability(),
		JumpSteps:   e.minSteps,
		JumpLoss:    e.minLoss,
		JumpSetSize: len(e.bestSet),
		CumLoss:     e.cumLossBest,
		Solved:      len(e.best) == len(e.tour),
	})
}

func (e *Engine) resetFrontierStats() {
	e.minSteps = math.Inf(1)
	e.minLoss = math.Inf(1)
	e.visitsAtBest = 0
	clear(e.bestSet)
}

// tunnelTo makes current the first l configurations of best and rebuilds the
// ledger from the best path's checkpoints.
func (e *Engine) tunnelTo(l int) {
	e.current = append(e.current[:0], e.best[:l]...)
	e.ledger.CopyFrom(e.bestLedger)
	e.ledger.TruncateFrom(l - 1)
	e.touch(l)
}

// touch records that current may differ from best from index i on.
func (e *Engine) touch(i int) { e.dirty = min(e.dirty, i) }

// syncBest copies current[dirty..n] into best, which holds at least n+1
// configurations, and snapshots the ledger.
func (e *Engine) syncBest(n int) {
	if e.dirty <= n {
		copy(e.best[e.dirty:n+1], e.current[e.dirty:n+1])
	}
	e.dirty = n + 1
	e.bestLedger.CopyFrom(e.ledger)
	e.cumLossBest = e.ledger.Last()
}
