// Package armlift lifts tours of the 257×257 pixel lattice into paths of
// 8-arm configurations, where every step rotates each arm by at most one
// unit and the tip of the chain draws the tour.
//
// The work is split across subpackages:
//
//	arm/        Config, the packed 8-arm state: positions, steps, penalties
//	canvas/     the colour image and its step cost
//	successor/  enumeration of the single-step successors of a Config
//	reconnect/  multi-step jumps between configurations (ball search)
//	rectify/    local rewrites that keep a stuck path alive
//	search/     the randomized backtracking Engine and its exception windows
//	tour/       pixel tours: validation, LKH codec, corner split
//	solution/   solution files, scoring and patching of partial lifts
//	checkpoint/ BadgerDB persistence of partial lifts
//	race/       several engines raced on one tour, with Prometheus metrics
//	config/     YAML configuration with ARMLIFT_* overrides
//
// The armlift command in cmd/armlift wires them together:
//
//	go install github.com/katalvlaran/armlift/cmd/armlift@latest
//	armlift lift tour.lkh --image image.csv --out submission.csv
package armlift
