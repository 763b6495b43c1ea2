// Package search lifts a pixel tour into a sequence of arm configurations by
// randomized depth-first search with geometric backtracking.
//
// What:
//
//   - Engine walks the tour one pixel at a time. At each position it lists the
//     direct successors (successor.Set with no detour) and lets a Heuristic
//     pick one. When none exists it tries, in order: rectifying the path
//     (rectify.Rectify), tunneling back into the best path, an exceptional
//     jump (reconnect.Reconnector) inside a registered ExceptionRange, and
//     finally backtracking by a geometrically distributed number of steps.
//   - ExceptionRange windows also allow, while inside [MinPos, PosMax), to
//     pick detour successors costing extra movement, as long as the
//     cumulative loss stays under the window budget. Losses are kept in a
//     LossLedger that is truncated on backtrack.
//   - Branch, jump and detour probabilities oscillate with trapezoidal ramps
//     over configurable periods.
//
// Lifecycle:
//
//   - Search starts one goroutine per engine; Pause, Stop and the mutating
//     calls (PushException, ResetAtBestPos, LoadPartial) hand the engine
//     over through a condition variable at checkpoints placed every 1024
//     iterations. Stats are published lock-free at the same checkpoints.
//
// Randomness:
//
//   - Each engine owns its *rand.Rand, derived from Options.Seed. Use
//     DeriveRNG / DeriveSeed for independent streams across engines.
//
// Errors:
//
//   - ErrAlreadyRunning, ErrNotCornerStart, ErrOptions, ErrException,
//     ErrPartial.
package search
