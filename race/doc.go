// Package race runs several independently seeded search engines on the same
// tour and keeps the best one.
//
// Run starts the engines, then a monitor ranks them (frontier, then jump
// loss, then jump steps) at every poll, exports per-instance gauges to
// Prometheus and checkpoints the leader's best path whenever the frontier
// advances. A solved engine is kept when its cumulative loss beats the
// previous solutions; a lossless solution ends the race. Otherwise the race
// ends when every engine has finished or the context is cancelled.
package race
