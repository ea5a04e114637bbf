package viewer

import "math"

// Physics is the inertial state of the pan simulation.
type Physics struct {
	// Velocity in pixels per simulated tick.
	Velocity Vec
	// Running is true while a frame loop is alive.
	Running bool
	// Frame identifies the one scheduled frame; zero means none.
	Frame uint64
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Rubber lets v overshoot [lo, hi] at a fraction k of the raw excess instead
// of stopping at the bound.
func Rubber(v, lo, hi, k float64) float64 {
	switch {
	case v < lo:
		return lo + (v-lo)*k
	case v > hi:
		return hi + (v-hi)*k
	default:
		return v
	}
}

// ClampVec clamps both axes to [-bound, bound].
func ClampVec(v Vec, bound float64) Vec {
	return Vec{Clamp(v.X, -bound, bound), Clamp(v.Y, -bound, bound)}
}

// RubberVec applies Rubber to both axes against [-bound, bound].
func RubberVec(v Vec, bound, k float64) Vec {
	return Vec{Rubber(v.X, -bound, bound, k), Rubber(v.Y, -bound, bound, k)}
}

// ReleaseVelocity converts the last two samples of a stroke into pixels per
// simulated tick, independent of the actual sampling rate.
func ReleaseVelocity(prev, now Sample, tickMs float64) Vec {
	dt := math.Max(1, now.T-prev.T)
	return now.Pos().Sub(prev.Pos()).Scale(tickMs / dt)
}

// Step advances the inertial simulation by one frame. It returns the new
// physics, the new pan and whether the loop has converged; on convergence the
// pan is snapped inside the bound and the returned physics is idle.
func Step(ph Physics, pan Vec, maxPan float64, p Policy) (Physics, Vec, bool) {
	pan = pan.Add(ph.Velocity)
	pan = RubberVec(pan, maxPan, p.RubberFactor)
	ph.Velocity = ph.Velocity.Scale(p.Decay)

	if clamped := ClampVec(pan, maxPan); clamped != pan {
		pan = pan.Add(clamped.Sub(pan).Scale(p.SpringFactor))
	}

	if ph.Velocity.Manhattan() < p.StopSpeed {
		return Physics{}, ClampVec(pan, maxPan), true
	}
	ph.Running = true
	return ph, pan, false
}
