// Package reconnect finds short multi-step paths ("jumps") between a
// configuration and a target pixel, or a target configuration, when no single
// valid step connects them.
//
// What:
//
//   - Reconnector.ToPixel / ToConfig: compute the 128 extremal configurations
//     drawing the target, derive the minimal number of steps (2, 3 or 4) and
//     the minimal total of unit moves for that step count, then enumerate the
//     corresponding ball of multi-step moves with branch-and-bound pruning on
//     cost = Σ√(arms moved per step) + Σ colour distance of consecutive pixels.
//     Ties are broken uniformly with the injected RNG.
//   - ExpandPath replays every jump of a stored search path into explicit
//     valid steps.
//   - Span gives the lower bound on steps and √-cost between two configurations.
//
// Precision:
//
//   - precision2 / precision3 cap the number of arms moved per step in the 2-
//     and 3-step balls. Values are clamped to [1,8]; larger values search more
//     and run longer. The 4-step ball only explores the decompositions
//     {2,1,1,1}, {2,2,1,1} and {2,2,2,1} of 5, 6 and 7 unit moves.
//
// A Reconnector holds scratch state and is not safe for concurrent use.
package reconnect
