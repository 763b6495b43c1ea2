package search

// Unexported helpers exposed to the external test package.
var (
	Ramp      = ramp
	Oscillate = oscillate
	Geometric = geometric
)
