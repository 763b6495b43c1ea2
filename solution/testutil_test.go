package solution_test

import (
	"math/rand"

	"github.com/katalvlaran/armlift/arm"
	"github.com/katalvlaran/armlift/successor"
)

// seedDet is the deterministic seed of randomized tests.
const seedDet = int64(42)

// walk returns n+1 configurations from Start joined by zero-loss single steps.
func walk(r *rand.Rand, n int) []arm.Config {
	var (
		out  = []arm.Config{arm.Start()}
		cur  = arm.Start()
		next arm.Config
		m    int
	)
	for len(out) <= n {
		m = 1 + r.Intn(3)
		b := successor.Buckets(m)
		next = cur.Add(b[r.Intn(len(b))])
		if next.Pos().Sub(cur.Pos()).L1() != m {
			continue
		}
		out = append(out, next)
		cur = next
	}
	return out
}
