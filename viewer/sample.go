package viewer

import "math"

// Sample is one normalized pointer or touch reading. T is in milliseconds on
// any monotonic clock shared by all samples of a session.
type Sample struct {
	X float64
	Y float64
	T float64
}

// Pos returns the sample position.
func (s Sample) Pos() Vec {
	return Vec{s.X, s.Y}
}

// track is the handler a stroke has been routed to.
type track uint8

const (
	trackNone track = iota
	trackPan
	trackDismiss
	trackSwipe
)

// stroke is the sample history of the gesture in progress. Only the origin
// and the two most recent samples are kept.
type stroke struct {
	active     bool
	origin     Sample
	prev       Sample
	last       Sample
	travel     float64 // farthest distance from origin
	track      track
	classified bool // dismiss-vs-swipe decided
}

func beginStroke(s Sample, t track) stroke {
	return stroke{
		active: true,
		origin: s,
		prev:   s,
		last:   s,
		track:  t,
	}
}

func (st stroke) advance(s Sample) stroke {
	st.prev = st.last
	st.last = s
	st.travel = math.Max(st.travel, s.Pos().Sub(st.origin.Pos()).Len())
	return st
}

// displacement is the offset of the latest sample from the origin.
func (st stroke) displacement() Vec {
	return st.last.Pos().Sub(st.origin.Pos())
}

// verticalSpeed is the instantaneous downward speed in px/ms.
func (st stroke) verticalSpeed() float64 {
	dt := math.Max(1, st.last.T-st.prev.T)
	return (st.last.Y - st.prev.Y) / dt
}
