package game

import "math"

// angleInterpolate turns from toward to along the shorter arc by factor t in [0, 1].
func angleInterpolate(from, to, t float64) float64 {
	diff := math.Remainder(to-from, 2*math.Pi)
	return from + diff*min(max(t, 0), 1)
}

// approach moves v toward target by at most step.
func approach(v, target, step float64) float64 {
	if v < target {
		return min(v+step, target)
	}
	return max(v-step, target)
}
