package viewer

import "math"

// Transform is everything the host needs to paint the viewer for one frame.
type Transform struct {
	// Visible is false when there is no stage to draw.
	Visible bool
	Index   int
	Image   string
	Count   int

	Zoom          float64
	Pan           Vec
	ClosingOffset float64
	// OverlayOpacity is the backdrop alpha in [MinOverlayOpacity, 1].
	OverlayOpacity float64

	Mounted bool
	Opening bool
	Closing bool
	Mode    Mode
}

// Present derives the render parameters of s. It has no side effects.
func (s Session) Present() Transform {
	if len(s.images) == 0 || !s.mounted {
		return Transform{Zoom: 1, OverlayOpacity: 1}
	}
	p := s.policy
	opacity := Clamp(1-math.Abs(s.closeOffset)/p.OpacityDistance, p.MinOverlayOpacity, 1)
	return Transform{
		Visible:        true,
		Index:          s.index,
		Image:          s.images[s.index],
		Count:          len(s.images),
		Zoom:           s.zoom,
		Pan:            s.pan,
		ClosingOffset:  s.closeOffset,
		OverlayOpacity: opacity,
		Mounted:        s.mounted,
		Opening:        s.opening,
		Closing:        !s.open,
		Mode:           s.mode,
	}
}
