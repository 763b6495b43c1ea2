package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/canvas"
	"github.com/katalvlaran/armlift/checkpoint"
	"github.com/katalvlaran/armlift/race"
	"github.com/katalvlaran/armlift/solution"
	"github.com/katalvlaran/armlift/tour"
)

// errUnsolved reports a part whose race ended without a solution.
var errUnsolved = errors.New("armlift: part not solved")

type liftFlags struct {
	image   string
	out     string
	part    int
	noSplit bool
	timeout time.Duration
}

func newLiftCmd(a *app) *cobra.Command {
	f := &liftFlags{}
	cmd := &cobra.Command{
		Use:   "lift TOUR",
		Short: "Lift an LKH tour into a configuration path",
		Long: `Lift reads an LKH tour, cuts it at the four lattice corners and races
search engines on every part, then patches the parts into one closed path.
With --part only that part is lifted and written; with --no-split the tour
is lifted as a single piece.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.lift(cmd, args[0], f)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.image, "image", "", "CSV image x,y,r,g,b (blank image when empty)")
	fl.StringVarP(&f.out, "out", "o", "submission.csv", "output solution file")
	fl.IntVar(&f.part, "part", -1, "lift only this part (0-4) of the corner split")
	fl.BoolVar(&f.noSplit, "no-split", false, "lift the tour as one piece")
	fl.DurationVar(&f.timeout, "timeout", 0, "time limit per part (0 for none)")
	return cmd
}

func (a *app) lift(cmd *cobra.Command, tourPath string, f *liftFlags) error {
	t, err := tour.ReadLKHFile(tourPath)
	if err != nil {
		return err
	}
	img, err := a.image(f.image)
	if err != nil {
		return err
	}

	var (
		parts []tour.Tour
		ids   []int
	)
	switch {
	case f.noSplit:
		parts, ids = []tour.Tour{t}, []int{0}
	default:
		split, err := tour.Split(t)
		if err != nil {
			return err
		}
		for k := range split {
			if f.part >= 0 && k != f.part {
				continue
			}
			parts = append(parts, split[k])
			ids = append(ids, k)
		}
		if len(parts) == 0 {
			return fmt.Errorf("armlift: part %d out of range [0,4]", f.part)
		}
	}

	var store *checkpoint.Store
	if a.cfg.Checkpoint.Enabled {
		if store, err = checkpoint.Open(a.cfg.StoreConfig(a.log)); err != nil {
			return err
		}
		defer store.Close()
	}

	reg := prometheus.NewRegistry()
	if a.cfg.Metrics.Addr != "" {
		srv := serveMetrics(a, reg)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	var (
		ctx   = cmd.Context()
		runID = uuid.New()
		base  = strings.TrimSuffix(filepath.Base(tourPath), filepath.Ext(tourPath))
		paths = make([][]arm.Config, 0, len(parts))
	)
	for i, part := range parts {
		opts := a.cfg.RaceOptions()
		opts.Label = fmt.Sprintf("%s-%d", base, ids[i])
		opts.RunID = runID
		opts.Search.Image = img
		opts.Store = store
		opts.Registerer = reg
		opts.Logger = a.log

		res, err := runPart(ctx, part, opts, f.timeout)
		fmt.Fprintf(cmd.OutOrStdout(), "part %d: solved=%t lossless=%t frontier=%d/%d cum_loss=%.6f\n",
			ids[i], res.Solved, res.Lossless, res.Stats.BestPos, len(part)-1, res.Stats.CumLoss)
		if !res.Solved {
			if err == nil {
				err = errUnsolved
			}
			return fmt.Errorf("part %d: %w", ids[i], err)
		}
		paths = append(paths, res.Path)
	}

	out := paths[0]
	if !f.noSplit && f.part < 0 {
		if out, err = solution.Patch(paths...); err != nil {
			return err
		}
	}
	return a.write(cmd, f.out, out, img)
}

func runPart(ctx context.Context, part tour.Tour, opts race.Options, timeout time.Duration) (race.Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return race.Run(ctx, part, opts)
}

func serveMetrics(a *app, reg *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              a.cfg.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("metrics server", "addr", srv.Addr, "error", err)
		}
	}()
	a.log.Info("serving metrics", "addr", srv.Addr)
	return srv
}

// write saves path to name and prints its score.
func (a *app) write(cmd *cobra.Command, name string, path []arm.Config, img *canvas.Image) error {
	if err := solution.Save(name, path); err != nil {
		return err
	}
	score, err := solution.Score(path, img, false)
	if err != nil {
		return err
	}
	a.log.Info("solution written", "path", name, "configs", len(path))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d configurations, score %.6f\n", name, len(path), score)
	return nil
}
