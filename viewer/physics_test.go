package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRubber(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		expected float64
	}{
		{"inside", 42, 42},
		{"at upper bound", 160, 160},
		{"at lower bound", -160, -160},
		{"overshoot above", 500, 279},
		{"overshoot below", -500, -279},
		{"small overshoot", 170, 163.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Rubber(tt.v, -160, 160, 0.35), 1e-9)
		})
	}
}

func TestRubberMonotonicAndIdentityInside(t *testing.T) {
	const lo, hi = -160.0, 160.0
	prev := Rubber(-1000, lo, hi, 0.35)
	for v := -1000.0; v <= 1000; v += 0.5 {
		got := Rubber(v, lo, hi, 0.35)
		require.GreaterOrEqual(t, got, prev, "not monotonic at %v", v)
		if v >= lo && v <= hi {
			require.Equal(t, v, got, "not identity at %v", v)
		}
		prev = got
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, Clamp(5, 0, 10))
	assert.Equal(t, 0.0, Clamp(-3, 0, 10))
	assert.Equal(t, 10.0, Clamp(12, 0, 10))
	assert.Equal(t, Vec{160, -160}, ClampVec(Vec{300, -900}, 160))
}

func TestReleaseVelocity(t *testing.T) {
	tests := []struct {
		name     string
		prev     Sample
		now      Sample
		expected Vec
	}{
		{"one tick apart", Sample{0, 0, 0}, Sample{20, -8, 16}, Vec{20, -8}},
		{"two ticks apart", Sample{0, 0, 0}, Sample{20, 0, 32}, Vec{10, 0}},
		{"same timestamp uses 1ms", Sample{0, 0, 5}, Sample{1, 0, 5}, Vec{16, 0}},
		{"out of order timestamps use 1ms", Sample{0, 0, 9}, Sample{2, 0, 3}, Vec{32, 0}},
		{"no motion", Sample{7, 7, 0}, Sample{7, 7, 40}, Vec{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReleaseVelocity(tt.prev, tt.now, 16)
			assert.InDelta(t, tt.expected.X, got.X, 1e-9)
			assert.InDelta(t, tt.expected.Y, got.Y, 1e-9)
		})
	}
}

func TestStepConverges(t *testing.T) {
	p := DefaultPolicy()
	maxPan := p.MaxPan(2)

	for _, v0 := range []Vec{{0.05, 0}, {1, 1}, {20, -3}, {-250, 400}, {1000, 1000}} {
		ph := Physics{Velocity: v0, Running: true}
		pan := Vec{}
		steps := 0
		for done := false; !done; steps++ {
			require.Less(t, steps, 1000, "no convergence from %+v", v0)
			ph, pan, done = Step(ph, pan, maxPan, p)
		}
		assert.False(t, ph.Running)
		assert.LessOrEqual(t, abs(pan.X), maxPan)
		assert.LessOrEqual(t, abs(pan.Y), maxPan)
	}
}

func TestStepSpringsBackOvershoot(t *testing.T) {
	p := DefaultPolicy()
	ph := Physics{Velocity: Vec{1, 0}, Running: true}

	ph, pan, done := Step(ph, Vec{200, 0}, 160, p)
	require.False(t, done)
	// 201 rubber-banded to 174.35, then pulled 14% of the way back to 160.
	assert.InDelta(t, 174.35-(14.35*0.14), pan.X, 1e-9)
	assert.InDelta(t, 0.92, ph.Velocity.X, 1e-9)
	assert.True(t, ph.Running)
}

func TestPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultPolicy().Validate())

	p := DefaultPolicy()
	p.Decay = 1
	p.ZoomStep = 1
	p.TickMs = 0
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decay")
	assert.Contains(t, err.Error(), "zoom_step")
	assert.Contains(t, err.Error(), "tick_ms")
}

func TestMaxPan(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, 0.0, p.MaxPan(1))
	assert.Equal(t, 160.0, p.MaxPan(2))
	assert.Equal(t, 320.0, p.MaxPan(3))
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
