// Package search - published statistics and their ranking.
package search

import (
	"fmt"
	"math"
	"time"
)

// Stats is a snapshot of an engine, published at checkpoints and on records.
type Stats struct {
	Iterations int64
	// Pos is the current frontier index, BestPos the best one.
	Pos     int
	BestPos int
	// BranchProb is the current backtrack parameter.
	BranchProb float64
	// JumpSteps and JumpLoss are the smallest jump length and loss found
	// from distinct configurations stuck at the best frontier (+Inf if none).
	JumpSteps   float64
	JumpLoss    float64
	JumpSetSize int
	// CumLoss is the cumulative loss of the best path.
	CumLoss float64
	Solved  bool
	Elapsed time.Duration
}

// Less ranks engines: larger frontier first, then smaller jump loss, then
// fewer jump steps.
func (s Stats) Less(o Stats) bool {
	if s.BestPos != o.BestPos {
		return s.BestPos > o.BestPos
	}
	if s.JumpLoss != o.JumpLoss {
		return s.JumpLoss < o.JumpLoss
	}
	return s.JumpSteps < o.JumpSteps
}

// StatsHeader is the column header matching Stats.String.
const StatsHeader = "nb steps   |   pos  maxpos | steps |  loss  | setsize | cumloss"

// String formats s as one line under StatsHeader.
func (s Stats) String() string {
	return fmt.Sprintf("%-11d| %5d / %-5d | %5s | %6s | %7d | %6s",
		s.Iterations, s.Pos, s.BestPos, nice(s.JumpSteps), nice(s.JumpLoss), s.JumpSetSize, nice(s.CumLoss))
}

// nice truncates to three decimals and prints infinities as "inf".
func nice(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", math.Trunc(v*1000)/1000)
}
