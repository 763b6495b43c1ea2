// Package race - the race driver: engine construction, monitor loop,
// ranking, checkpoints and the final result.
package race

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/checkpoint"
	"github.com/katalvlaran/armlift/search"
	"github.com/katalvlaran/armlift/tour"
)

// ErrOptions indicates invalid race options.
var ErrOptions = errors.New("race: invalid options")

// Options configures Run.
type Options struct {
	// Instances is the number of engines.
	Instances int
	// Seed is the parent of the per-engine seeds.
	Seed int64
	// Search is the template of every engine's options; its Seed and Logger
	// are replaced per instance.
	Search search.Options
	// Exceptions are pushed to every engine before the start.
	Exceptions []search.ExceptionRange
	// Heuristic builds the heuristic of instance i; NewArmBias when nil.
	Heuristic func(i int) search.Heuristic
	// PollInterval is the monitor period.
	PollInterval time.Duration

	// Label names the tour piece in logs, metrics and checkpoints.
	Label string
	// RunID identifies the race in checkpoints; a new one when zero.
	RunID uuid.UUID
	// Store receives checkpoints when non-nil.
	Store *checkpoint.Store
	// Resume loads the best stored record of Label into every engine.
	Resume bool

	Registerer prometheus.Registerer
	Logger     *slog.Logger
}

// DefaultOptions returns ten engines with the default search options, polled every second.
func DefaultOptions() Options {
	return Options{
		Instances:    10,
		Search:       search.DefaultOptions(),
		PollInterval: time.Second,
		Label:        "tour",
	}
}

// Validate checks the options.
func (o Options) Validate() error {
	if o.Instances < 1 {
		return fmt.Errorf("%w: %d instances", ErrOptions, o.Instances)
	}
	if o.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval %v", ErrOptions, o.PollInterval)
	}
	if o.Resume && o.Store == nil {
		return fmt.Errorf("%w: resume needs a store", ErrOptions)
	}
	return o.Search.Validate()
}

// Result is the outcome of a race.
type Result struct {
	RunID uuid.UUID
	// Winner is the instance whose path is returned.
	Winner int
	Stats  search.Stats
	// Raw holds one configuration per reached tour point; Path expands its jumps.
	Raw  []arm.Config
	Path []arm.Config
	// Solved and Lossless describe Path.
	Solved   bool
	Lossless bool
}

type racer struct {
	opts    Options
	log     *slog.Logger
	engines []*search.Engine
	m       *metrics

	best     Result
	bestLoss float64
	savedPos int
	finished int
	lastRank []int
}

// Run races opts.Instances engines on t. It returns once a lossless solution
// is found, every engine has finished, or ctx is done; in the last case the
// error is ctx.Err() unless some engine solved the tour, and the Result holds
// the leader's partial path.
func Run(ctx context.Context, t tour.Tour, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}
	if opts.RunID == uuid.Nil {
		opts.RunID = uuid.New()
	}
	if opts.Heuristic == nil {
		opts.Heuristic = func(int) search.Heuristic { return search.NewArmBias() }
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("label", opts.Label, "run_id", opts.RunID)

	m, err := newMetrics(opts.Registerer)
	if err != nil {
		return Result{}, fmt.Errorf("race: metrics: %w", err)
	}
	r := &racer{opts: opts, log: log, m: m, bestLoss: math.Inf(1), savedPos: -1}
	if err = r.build(t); err != nil {
		return Result{}, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for i, e := range r.engines {
		if err = e.Search(runCtx, opts.Heuristic(i)); err != nil {
			r.stopAll()
			return Result{}, err
		}
	}
	defer r.stopAll()
	log.Info("race started", "instances", len(r.engines), "tour_len", len(t))

	finished := make(chan int, len(r.engines))
	g, gctx := errgroup.WithContext(runCtx)
	for i, e := range r.engines {
		g.Go(func() error {
			select {
			case <-e.Done():
				finished <- i
			case <-gctx.Done():
			}
			return nil
		})
	}
	g.Go(func() error {
		defer cancel()
		return r.monitor(gctx, finished)
	})
	if err = g.Wait(); err != nil {
		return Result{}, err
	}
	r.stopAll()

	if !r.best.Solved {
		if err = r.leaderResult(); err != nil {
			return Result{}, err
		}
	}
	log.Info("race ended", "solved", r.best.Solved, "lossless", r.best.Lossless,
		"winner", r.best.Winner, "frontier", r.best.Stats.BestPos, "cum_loss", r.best.Stats.CumLoss)
	if !r.best.Solved && ctx.Err() != nil {
		return r.best, ctx.Err()
	}
	return r.best, nil
}

// build creates the engines and loads the stored partial path if asked.
func (r *racer) build(t tour.Tour) error {
	var (
		partial []arm.Config
		rec     checkpoint.Record
		err     error
	)
	if r.opts.Resume {
		rec, err = r.opts.Store.Best(r.opts.Label)
		switch {
		case err == nil:
			partial = rec.Configs()
			r.savedPos = rec.Frontier
			r.log.Info("resuming", "from_run", rec.RunID, "frontier", rec.Frontier, "cum_loss", rec.CumLoss)
		case !errors.Is(err, checkpoint.ErrNotFound):
			return err
		}
	}

	r.engines = make([]*search.Engine, r.opts.Instances)
	for i := range r.engines {
		so := r.opts.Search
		so.Seed = search.DeriveSeed(r.opts.Seed, uint64(i))
		so.Logger = r.log.With("instance", i)
		e, err := search.New(t, so)
		if err != nil {
			return err
		}
		for _, x := range r.opts.Exceptions {
			if err = e.PushException(x); err != nil {
				return err
			}
		}
		if partial != nil {
			if err = e.LoadPartial(partial); err != nil {
				return fmt.Errorf("race: resume %s: %w", r.opts.Label, err)
			}
			if got := e.Stats().CumLoss; i == 0 && math.Abs(got-rec.CumLoss) > 1e-6 {
				r.log.Warn("stored loss differs from the replayed path", "stored", rec.CumLoss, "replayed", got)
			}
		}
		r.engines[i] = e
	}
	return nil
}

func (r *racer) monitor(ctx context.Context, finished <-chan int) error {
	tick := time.NewTicker(r.opts.PollInterval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return r.poll()
		case <-tick.C:
			if err := r.poll(); err != nil {
				return err
			}
		case i := <-finished:
			r.finished++
			if r.engines[i].Solved() {
				lossless, err := r.solved(i)
				if err != nil || lossless {
					return err
				}
			}
			if r.finished == len(r.engines) {
				return r.poll()
			}
		}
	}
}

// poll ranks the engines, exports their stats and checkpoints the leader.
func (r *racer) poll() error {
	n := len(r.engines)
	stats := make([]search.Stats, n)
	rank := make([]int, n)
	for i, e := range r.engines {
		stats[i] = e.Stats()
		rank[i] = i
		r.m.observe(r.opts.Label, i, stats[i])
	}
	sort.SliceStable(rank, func(a, b int) bool { return stats[rank[a]].Less(stats[rank[b]]) })
	r.lastRank = rank

	lead := stats[rank[0]]
	r.log.Debug("race poll", "leader", rank[0], "stats", lead.String())
	if r.opts.Store == nil || lead.BestPos <= r.savedPos {
		return nil
	}
	raw := r.engines[rank[0]].RawBestPath()
	if err := r.save(rank[0], raw, lead.CumLoss); err != nil {
		return err
	}
	r.savedPos = lead.BestPos
	return nil
}

// solved records the solution of engine i when it beats the previous ones
// and reports whether it is lossless.
func (r *racer) solved(i int) (bool, error) {
	e := r.engines[i]
	st := e.Stats()
	r.m.solvedOne(r.opts.Label)
	r.log.Info("instance solved", "instance", i, "cum_loss", st.CumLoss)
	if st.CumLoss >= r.bestLoss {
		return false, nil
	}
	path, err := e.BestPath()
	if err != nil {
		return false, err
	}
	raw := e.RawBestPath()
	r.bestLoss = st.CumLoss
	r.best = Result{
		RunID:    r.opts.RunID,
		Winner:   i,
		Stats:    st,
		Raw:      raw,
		Path:     path,
		Solved:   true,
		Lossless: st.CumLoss == 0,
	}
	if r.opts.Store != nil {
		if err = r.save(i, raw, st.CumLoss); err != nil {
			return false, err
		}
	}
	return r.best.Lossless, nil
}

// leaderResult fills the result from the best ranked engine. It also
// catches a solution finished while the race was being cancelled.
func (r *racer) leaderResult() error {
	if err := r.poll(); err != nil {
		return err
	}
	i := r.lastRank[0]
	e := r.engines[i]
	path, err := e.BestPath()
	if err != nil {
		return err
	}
	st := e.Stats()
	r.best = Result{
		RunID:    r.opts.RunID,
		Winner:   i,
		Stats:    st,
		Raw:      e.RawBestPath(),
		Path:     path,
		Solved:   st.Solved,
		Lossless: st.Solved && st.CumLoss == 0,
	}
	return nil
}

func (r *racer) save(i int, raw []arm.Config, cumLoss float64) error {
	rec := checkpoint.NewRecord(r.opts.RunID, r.opts.Label, len(r.engines[i].Tour()), raw, cumLoss)
	rec.Instance = i
	if err := r.opts.Store.Save(rec); err != nil {
		return err
	}
	r.log.Debug("checkpoint saved", "instance", i, "frontier", rec.Frontier, "cum_loss", cumLoss)
	return nil
}

func (r *racer) stopAll() {
	for _, e := range r.engines {
		if e != nil {
			e.Stop()
		}
	}
}
