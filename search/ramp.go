// Package search - trapezoidal probability ramps.
package search

import "time"

// ramp is the trapezoid pulse on [0,1]: 0 outside [¼,¾], rising linearly to
// 1 at ½ then falling back.
func ramp(x float64) float64 {
	switch {
	case x < 0.25 || x > 0.75:
		return 0
	case x < 0.5:
		return 4 * (x - 0.25)
	default:
		return 4 * (0.75 - x)
	}
}

// oscillate interpolates between lo and hi with the ramp of the phase of
// elapsed within period. With reverse the phase runs backwards.
func oscillate(lo, hi float64, elapsed, period time.Duration, reverse bool) float64 {
	if period <= 0 {
		return lo
	}
	el := elapsed % period
	if reverse {
		el = period - el
	}
	x := ramp(float64(el) / float64(period))
	return hi*x + lo*(1-x)
}
