// Package search - sentinel errors, options and exception ranges.
package search

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/katalvlaran/armlift/canvas"
	"github.com/katalvlaran/armlift/reconnect"
)

// Sentinel errors for search operations.
var (
	// ErrAlreadyRunning indicates Search called on a running engine.
	ErrAlreadyRunning = errors.New("search: engine already running")
	// ErrNotCornerStart indicates a tour that starts neither at the origin nor at a corner.
	ErrNotCornerStart = errors.New("search: tour must start at the origin or at a corner")
	// ErrOptions indicates invalid engine options.
	ErrOptions = errors.New("search: invalid options")
	// ErrException indicates an invalid exception range.
	ErrException = errors.New("search: invalid exception range")
	// ErrPartial indicates a partial path that does not match the tour.
	ErrPartial = errors.New("search: partial path does not match the tour")
)

const (
	// checkpointMask sets the control checkpoint every 1024 iterations.
	checkpointMask = 1023

	// MaxDetour is the largest detour an exception range may allow.
	MaxDetour = 3

	// lossEps is the smallest step loss recorded in the ledger.
	lossEps = 1e-9
)

// Clock supplies the time used by the probability ramps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Options configures an Engine.
type Options struct {
	// Precision2 and Precision3 cap the arms moved per step in 2- and 3-step
	// jumps (clamped to [1,8]).
	Precision2 int
	Precision3 int

	// TunnelingProb is the probability, at a dead end, to restart from a
	// prefix of the best path.
	TunnelingProb float64

	// MinBranchProb and MaxBranchProb bound the geometric backtrack
	// parameter, which oscillates over AnnealPeriod.
	MinBranchProb float64
	MaxBranchProb float64
	AnnealPeriod  time.Duration

	// ExceptionPeriod is the oscillation period of the jump and detour probabilities.
	ExceptionPeriod time.Duration

	// Seed of the engine RNG; 0 uses the default seed.
	Seed int64

	// Image scores colour costs of jumps; blank when nil.
	Image *canvas.Image
	// Clock drives the ramps; SystemClock when nil.
	Clock Clock
	// Logger receives lifecycle events; discarded when nil.
	Logger *slog.Logger
}

// DefaultOptions returns the tuned defaults: precision 3/2, tunneling 1e-6,
// branch probability in [0.0035, 0.005] over 30s, exception period 7s.
func DefaultOptions() Options {
	return Options{
		Precision2:      3,
		Precision3:      2,
		TunnelingProb:   1e-6,
		MinBranchProb:   0.0035,
		MaxBranchProb:   0.005,
		AnnealPeriod:    30 * time.Second,
		ExceptionPeriod: 7 * time.Second,
	}
}

// Validate checks ranges; precisions are clamped rather than rejected.
func (o Options) Validate() error {
	if !inUnit(o.TunnelingProb) {
		return fmt.Errorf("%w: tunneling probability %v", ErrOptions, o.TunnelingProb)
	}
	if o.MinBranchProb <= 0 || o.MaxBranchProb >= 1 || o.MinBranchProb > o.MaxBranchProb {
		return fmt.Errorf("%w: branch probability range [%v,%v]", ErrOptions, o.MinBranchProb, o.MaxBranchProb)
	}
	if o.AnnealPeriod <= 0 || o.ExceptionPeriod <= 0 {
		return fmt.Errorf("%w: periods must be positive", ErrOptions)
	}
	return nil
}

func (o Options) normalized() Options {
	o.Precision2 = reconnect.ClampPrecision(o.Precision2)
	o.Precision3 = reconnect.ClampPrecision(o.Precision3)
	if o.Image == nil {
		o.Image = canvas.New()
	}
	if o.Clock == nil {
		o.Clock = SystemClock
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// ExceptionRange authorises losses while the search is in [MinPos, PosMax]:
// detours anywhere in [MinPos, PosMax) and a jump at PosMax, as long as the
// cumulative loss stays at most MaxCumLoss.
type ExceptionRange struct {
	MaxCumLoss    float64
	MinPos        int
	PosMax        int
	ProbJumpMin   float64
	ProbJumpMax   float64
	ProbDetourMin float64
	ProbDetourMax float64
	DetourMax     int
}

// NewExceptionRange returns a range with the default probabilities: jumps in
// [0.001, 0.1], detours in [0.0001, 0.001], detours of length 1 only.
func NewExceptionRange(maxCumLoss float64, minPos, posMax int) ExceptionRange {
	return ExceptionRange{
		MaxCumLoss:    maxCumLoss,
		MinPos:        minPos,
		PosMax:        posMax,
		ProbJumpMin:   0.001,
		ProbJumpMax:   0.1,
		ProbDetourMin: 0.0001,
		ProbDetourMax: 0.001,
		DetourMax:     1,
	}
}

// Validate checks the range invariants.
func (e ExceptionRange) Validate() error {
	switch {
	case math.IsNaN(e.MaxCumLoss) || e.MaxCumLoss < 0:
		return fmt.Errorf("%w: budget %v", ErrException, e.MaxCumLoss)
	case e.MinPos < 0 || e.PosMax < e.MinPos:
		return fmt.Errorf("%w: window [%d,%d]", ErrException, e.MinPos, e.PosMax)
	case !inUnit(e.ProbJumpMin) || !inUnit(e.ProbJumpMax) || !inUnit(e.ProbDetourMin) || !inUnit(e.ProbDetourMax):
		return fmt.Errorf("%w: probabilities must lie in [0,1]", ErrException)
	case e.DetourMax < 1 || e.DetourMax > MaxDetour:
		return fmt.Errorf("%w: detour max %d", ErrException, e.DetourMax)
	}
	return nil
}

// detourWindow reports whether detours may be taken at position n.
func (e ExceptionRange) detourWindow(n int) bool {
	return e.MinPos <= n && n < e.PosMax
}

func inUnit(p float64) bool { return p >= 0 && p <= 1 }
