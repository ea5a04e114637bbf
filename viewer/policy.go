package viewer

import (
	"errors"
	"fmt"
)

// Policy holds the tunable thresholds of the interaction engine.
// The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	MaxPanPerZoom     float64 `json:"max_pan_per_zoom"`     // pan bound per unit of zoom above 1
	RubberFactor      float64 `json:"rubber_factor"`        // overshoot scale beyond the pan bound
	TickMs            float64 `json:"tick_ms"`              // length of one simulated frame
	Decay             float64 `json:"decay"`                // velocity multiplier per frame
	SpringFactor      float64 `json:"spring_factor"`        // fraction of overshoot recovered per frame
	StopSpeed         float64 `json:"stop_speed"`           // inertia stops below this speed (px/tick)
	ReleaseNoise      float64 `json:"release_noise"`        // release speeds at or below this do not coast
	SwipeRatio        float64 `json:"swipe_ratio"`          // |dx| must exceed |dy| by this factor to swipe
	SwipeDistance     float64 `json:"swipe_distance"`       // horizontal travel needed to navigate
	CloseDistance     float64 `json:"close_distance"`       // dismiss offset that commits a close
	CloseVelocity     float64 `json:"close_velocity"`       // downward px/ms that commits a close
	UpwardDamping     float64 `json:"upward_damping"`       // scale applied to upward dismiss motion
	DoubleTapWindowMs float64 `json:"double_tap_window_ms"` // max gap between the taps of a double tap
	TapSlop           float64 `json:"tap_slop"`             // max travel for a stroke to count as a tap
	ZoomStep          float64 `json:"zoom_step"`            // zoom factor of the zoomed-in state
	OpacityDistance   float64 `json:"opacity_distance"`     // dismiss offset at which the backdrop would vanish
	MinOverlayOpacity float64 `json:"min_overlay_opacity"`  // backdrop opacity floor
	EnterDelayMs      float64 `json:"enter_delay_ms"`       // delay before the opening flag clears
	ExitDurationMs    float64 `json:"exit_duration_ms"`     // time the stage stays mounted after close
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		MaxPanPerZoom:     160,
		RubberFactor:      0.35,
		TickMs:            16,
		Decay:             0.92,
		SpringFactor:      0.14,
		StopSpeed:         0.02,
		ReleaseNoise:      0.1,
		SwipeRatio:        1.2,
		SwipeDistance:     45,
		CloseDistance:     140,
		CloseVelocity:     0.75,
		UpwardDamping:     0.35,
		DoubleTapWindowMs: 260,
		TapSlop:           10,
		ZoomStep:          2,
		OpacityDistance:   420,
		MinOverlayOpacity: 0.55,
		EnterDelayMs:      16,
		ExitDurationMs:    220,
	}
}

// Validate reports every field that would break the simulation.
func (p Policy) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if !(v > 0) {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	unit := func(name string, v float64, open bool) {
		if v < 0 || v > 1 || (open && (v == 0 || v == 1)) {
			errs = append(errs, fmt.Errorf("%s must be within [0,1], got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}

	positive("max_pan_per_zoom", p.MaxPanPerZoom)
	positive("tick_ms", p.TickMs)
	positive("stop_speed", p.StopSpeed)
	positive("swipe_ratio", p.SwipeRatio)
	positive("swipe_distance", p.SwipeDistance)
	positive("close_distance", p.CloseDistance)
	positive("close_velocity", p.CloseVelocity)
	positive("double_tap_window_ms", p.DoubleTapWindowMs)
	positive("opacity_distance", p.OpacityDistance)
	nonNegative("release_noise", p.ReleaseNoise)
	nonNegative("tap_slop", p.TapSlop)
	nonNegative("enter_delay_ms", p.EnterDelayMs)
	nonNegative("exit_duration_ms", p.ExitDurationMs)
	unit("rubber_factor", p.RubberFactor, false)
	unit("upward_damping", p.UpwardDamping, false)
	unit("min_overlay_opacity", p.MinOverlayOpacity, false)
	// Decay must be strictly below 1 or inertia never converges.
	unit("decay", p.Decay, true)
	unit("spring_factor", p.SpringFactor, false)
	if !(p.ZoomStep > 1) {
		errs = append(errs, fmt.Errorf("zoom_step must be greater than 1, got %v", p.ZoomStep))
	}

	return errors.Join(errs...)
}

// MaxPan returns the per-axis pan bound at the given zoom.
func (p Policy) MaxPan(zoom float64) float64 {
	if zoom <= 1 {
		return 0
	}
	return (zoom - 1) * p.MaxPanPerZoom
}

func (p Policy) dampUpward(dy float64) float64 {
	if dy < 0 {
		return dy * p.UpwardDamping
	}
	return dy
}
