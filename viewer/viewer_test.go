package viewer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViewer(n int) (*Viewer, *int, *[]string) {
	images := make([]string, n)
	for i := range images {
		images[i] = fmt.Sprintf("img%d.jpg", i)
	}
	closes := 0
	var logs []string
	v := New(images, Options{
		Policy:  DefaultPolicy(),
		OnClose: func() { closes++ },
		Logf: func(format string, args ...any) {
			logs = append(logs, fmt.Sprintf(format, args...))
		},
	})
	return v, &closes, &logs
}

func TestViewerScenarioOpen(t *testing.T) {
	v, _, _ := newTestViewer(3)
	v.SetOpen(true, 1, 0)

	tr := v.Transform()
	assert.True(t, tr.Visible)
	assert.Equal(t, 1, tr.Index)
	assert.Equal(t, "img1.jpg", tr.Image)
	assert.Equal(t, 3, tr.Count)
	assert.Equal(t, 1.0, tr.Zoom)
	assert.Equal(t, Vec{}, tr.Pan)
	assert.Equal(t, 1.0, tr.OverlayOpacity)
}

func TestViewerDismissCallsOnCloseOnce(t *testing.T) {
	v, closes, _ := newTestViewer(3)
	v.SetOpen(true, 0, 0)

	v.Start(Sample{100, 100, 0})
	for i := 1; i <= 10; i++ {
		v.Move(Sample{100, 100 + 16*float64(i), 20 * float64(i)})
	}
	eff := v.End()
	assert.True(t, eff.Has(EffectClose))
	assert.Equal(t, 1, *closes)

	// A stray end after the commit does not report again.
	v.End()
	assert.Equal(t, 1, *closes)
}

func TestViewerOnCloseMayCloseReentrantly(t *testing.T) {
	var v *Viewer
	v = New([]string{"a", "b"}, Options{
		Policy:  DefaultPolicy(),
		OnClose: func() { v.SetOpen(false, 0, 50) },
	})
	v.SetOpen(true, 0, 0)

	v.Key(KeyEscape)
	assert.False(t, v.IsOpen())
	assert.True(t, v.Transform().Closing)

	v.Tick(270)
	assert.False(t, v.Transform().Visible)
}

func TestViewerTickRunsOneFramePerCall(t *testing.T) {
	v, _, _ := newTestViewer(3)
	v.SetOpen(true, 0, 0)
	v.ToggleZoom()

	v.Start(Sample{0, 0, 0})
	v.Move(Sample{10, 0, 16})
	v.Move(Sample{30, 0, 32})
	require.True(t, v.End().Has(EffectFrame))

	before := v.Session().Pan()
	eff := v.Tick(48)
	assert.True(t, eff.Has(EffectFrame))
	assert.InDelta(t, before.X+20, v.Session().Pan().X, 1e-9)

	now := 48.0
	for i := 0; v.Session().Mode() == ModeInertia; i++ {
		require.Less(t, i, 1000)
		now += 16
		v.Tick(now)
	}
	assert.Equal(t, ModeIdle, v.Session().Mode())
	assert.LessOrEqual(t, v.Session().Pan().X, 160.0)
	assert.Zero(t, v.Session().PendingFrame())
}

func TestViewerLogsModeTransitions(t *testing.T) {
	v, _, logs := newTestViewer(2)
	v.SetOpen(true, 0, 0)
	v.Start(Sample{0, 0, 0})
	v.Cancel()

	assert.Contains(t, *logs, "viewer: Idle -> DraggingToClose")
	assert.Contains(t, *logs, "viewer: DraggingToClose -> Idle")
}

func TestViewerSetOpenFalseWhenClosedIsNoop(t *testing.T) {
	v, closes, logs := newTestViewer(2)
	v.SetOpen(false, 0, 0)
	assert.False(t, v.IsOpen())
	assert.Zero(t, *closes)
	assert.Empty(t, *logs)
}

func TestPresentOverlayOpacity(t *testing.T) {
	tests := []struct {
		name     string
		dy       float64
		expected float64
	}{
		{"no drag", 0, 1},
		{"downward 84px", 84, 0.8},
		{"downward far is floored", 300, 0.55},
		{"upward is damped", -100, 1 - 35.0/420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := openSession(t, 2, 0)
			s, _ = s.Start(Sample{100, 400, 0})
			s, _ = s.Move(Sample{100, 400 + tt.dy, 100})
			tr := s.Present()
			assert.InDelta(t, tt.expected, tr.OverlayOpacity, 1e-9)
			assert.Equal(t, s.CloseOffset(), tr.ClosingOffset)
		})
	}
}

func TestPresentHiddenWhenUnmounted(t *testing.T) {
	s := NewSession([]string{"a"}, DefaultPolicy())
	tr := s.Present()
	assert.False(t, tr.Visible)
	assert.Equal(t, 1.0, tr.Zoom)
}

func TestParseKey(t *testing.T) {
	for _, k := range []Key{KeyEscape, KeyArrowLeft, KeyArrowRight} {
		got, ok := ParseKey(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKey("KeyQ")
	assert.False(t, ok)
}

func TestEffectHas(t *testing.T) {
	e := EffectClose | EffectFrame
	assert.True(t, e.Has(EffectClose))
	assert.True(t, e.Has(EffectFrame))
	assert.False(t, e.Has(EffectNavigated))
	assert.False(t, e.Has(EffectNone))
}
