package viewer

import "math"

// timer is a one-shot deadline checked by Advance.
type timer struct {
	at    float64
	armed bool
}

func (t timer) due(now float64) bool {
	return t.armed && now >= t.at
}

// Session is the transient state of one open-to-close lifetime of the viewer.
//
// Every operation has a value receiver and returns the next Session, so a
// Session can be copied, compared and replayed freely. The images slice is
// shared between copies and must not be modified by the caller.
type Session struct {
	images []string
	policy Policy

	open    bool
	mounted bool
	opening bool
	enter   timer
	exit    timer

	index       int
	zoom        float64
	pan         Vec
	panOrigin   Vec // pan when the current stroke began
	mode        Mode
	closeOffset float64

	stroke  stroke
	physics Physics
	seq     uint64 // last issued frame token

	lastTap  float64
	tapArmed bool
}

// NewSession creates a closed session over images.
func NewSession(images []string, policy Policy) Session {
	return Session{
		images: images,
		policy: policy,
		zoom:   1,
	}
}

// Wrap maps any index into [0, n). It returns 0 when n is not positive.
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func (s Session) Images() []string { return s.images }
func (s Session) Policy() Policy { return s.policy }
func (s Session) Index() int { return s.index }
func (s Session) Zoom() float64 { return s.zoom }
func (s Session) Pan() Vec { return s.pan }
func (s Session) Mode() Mode { return s.mode }
func (s Session) IsOpen() bool { return s.open }
func (s Session) Mounted() bool { return s.mounted }
func (s Session) Opening() bool { return s.opening }
func (s Session) Physics() Physics { return s.physics }
func (s Session) CloseOffset() float64 { return s.closeOffset }

// PendingFrame returns the token of the scheduled frame, or zero.
func (s Session) PendingFrame() uint64 {
	return s.physics.Frame
}

// Zoomed reports whether the session is zoomed in.
func (s Session) Zoomed() bool {
	return s.zoom > 1
}

// Renderable reports whether the session has a stage to interact with.
func (s Session) Renderable() bool {
	return s.open && len(s.images) > 0
}

// Open resets the session to its defaults and shows the image at start,
// normalized modulo the image count.
func (s Session) Open(start int, now float64) Session {
	s = s.reset()
	s.open = true
	s.exit = timer{}
	if len(s.images) == 0 {
		s.index = 0
		s.mounted = false
		s.opening = false
		return s
	}
	s.index = Wrap(start, len(s.images))
	s.mounted = true
	s.opening = true
	s.enter = timer{at: now + s.policy.EnterDelayMs, armed: true}
	return s
}

// Close discards the interaction state. The stage stays mounted for the exit
// transition until Advance passes the exit deadline.
func (s Session) Close(now float64) Session {
	if !s.open {
		return s
	}
	s = s.reset()
	s.open = false
	s.opening = false
	s.enter = timer{}
	if s.mounted {
		s.exit = timer{at: now + s.policy.ExitDurationMs, armed: true}
	}
	return s
}

// Advance fires the transition timers that are due at now.
func (s Session) Advance(now float64) Session {
	if s.enter.due(now) {
		s.enter = timer{}
		if s.open {
			s.opening = false
		}
	}
	if s.exit.due(now) {
		s.exit = timer{}
		if !s.open {
			s.mounted = false
		}
	}
	return s
}

func (s Session) reset() Session {
	s.zoom = 1
	s.pan = Vec{}
	s.panOrigin = Vec{}
	s.closeOffset = 0
	s.stroke = stroke{}
	s.tapArmed = false
	s.lastTap = 0
	return s.become(ModeIdle)
}

// become switches mode. Any scheduled frame is dropped first so a stale
// frame can never touch the state of the new mode.
func (s Session) become(m Mode) Session {
	s.physics = Physics{}
	s.mode = m
	return s
}

// settle ends whatever gesture is in progress without side effects.
func (s Session) settle() Session {
	s.stroke = stroke{}
	s.closeOffset = 0
	return s.become(ModeIdle)
}

// Start begins a stroke. The newest stroke always wins over an unfinished one.
func (s Session) Start(smp Sample) (Session, Effect) {
	if !s.Renderable() {
		return s, EffectNone
	}
	s.closeOffset = 0
	if s.Zoomed() {
		s = s.become(ModePanning)
		s.panOrigin = s.pan
		s.stroke = beginStroke(smp, trackPan)
	} else {
		s = s.become(ModeDraggingToClose)
		s.stroke = beginStroke(smp, trackDismiss)
	}
	return s, EffectNone
}

// Move feeds the next sample of the current stroke.
func (s Session) Move(smp Sample) (Session, Effect) {
	if !s.Renderable() || !s.stroke.active {
		return s, EffectNone
	}
	s.stroke = s.stroke.advance(smp)
	d := s.stroke.displacement()

	switch s.mode {
	case ModePanning:
		s.pan = RubberVec(s.panOrigin.Add(d), s.policy.MaxPan(s.zoom), s.policy.RubberFactor)
	case ModeDraggingToClose:
		if !s.stroke.classified && s.stroke.travel >= s.policy.TapSlop {
			s.stroke.classified = true
			if math.Abs(d.X) > math.Abs(d.Y)*s.policy.SwipeRatio {
				s.stroke.track = trackSwipe
				s.closeOffset = 0
				s = s.become(ModeIdle)
				return s, EffectNone
			}
		}
		s.closeOffset = s.policy.dampUpward(d.Y)
	}
	return s, EffectNone
}

// End releases the current stroke. Without a matching Start it does nothing.
func (s Session) End() (Session, Effect) {
	if !s.Renderable() || !s.stroke.active {
		return s, EffectNone
	}
	st := s.stroke
	s.stroke = stroke{}
	var eff Effect

	switch st.track {
	case trackPan:
		if s.mode != ModePanning {
			break
		}
		v := ReleaseVelocity(st.prev, st.last, s.policy.TickMs)
		if v.Manhattan() > s.policy.ReleaseNoise {
			s = s.coast(v)
			eff |= EffectFrame
		} else {
			s.pan = ClampVec(s.pan, s.policy.MaxPan(s.zoom))
			s = s.become(ModeIdle)
		}
	case trackDismiss:
		if s.mode != ModeDraggingToClose {
			break
		}
		commit := st.travel >= s.policy.TapSlop &&
			(s.closeOffset > s.policy.CloseDistance || st.verticalSpeed() > s.policy.CloseVelocity)
		if commit {
			return s.requestClose()
		}
		// Spring back; the host animates the offset returning to zero.
		s = s.settle()
	case trackSwipe:
		dx := st.last.X - st.origin.X
		if math.Abs(dx) > s.policy.SwipeDistance {
			var nav Effect
			if dx < 0 {
				s, nav = s.Next()
			} else {
				s, nav = s.Prev()
			}
			eff |= nav
		}
	}

	if st.travel < s.policy.TapSlop {
		var tap Effect
		s, tap = s.tap(st.last.T)
		eff |= tap
	} else {
		s.tapArmed = false
	}
	return s, eff
}

// Cancel aborts the current stroke as if the pointer had been lost. A
// cancelled stroke never coasts and never commits a gesture.
func (s Session) Cancel() (Session, Effect) {
	if !s.Renderable() || !s.stroke.active {
		return s, EffectNone
	}
	s.pan = ClampVec(s.pan, s.policy.MaxPan(s.zoom))
	s.tapArmed = false
	return s.settle(), EffectNone
}

func (s Session) tap(t float64) (Session, Effect) {
	if s.tapArmed && t >= s.lastTap && t-s.lastTap <= s.policy.DoubleTapWindowMs {
		s.tapArmed = false
		return s.ToggleZoom()
	}
	s.tapArmed = true
	s.lastTap = t
	return s, EffectNone
}

func (s Session) coast(v Vec) Session {
	s = s.become(ModeInertia)
	s.seq++
	s.physics = Physics{Velocity: v, Running: true, Frame: s.seq}
	return s
}

// Frame runs one step of the inertial loop if token is the scheduled frame.
// Stale tokens are ignored.
func (s Session) Frame(token uint64) (Session, Effect) {
	if token == 0 || token != s.physics.Frame || s.mode != ModeInertia {
		return s, EffectNone
	}
	ph, pan, done := Step(s.physics, s.pan, s.policy.MaxPan(s.zoom), s.policy)
	s.pan = pan
	if done {
		return s.become(ModeIdle), EffectNone
	}
	s.seq++
	ph.Frame = s.seq
	s.physics = ph
	return s, EffectFrame
}

// Next shows the following image. It is a no-op while zoomed.
func (s Session) Next() (Session, Effect) {
	return s.step(1)
}

// Prev shows the preceding image. It is a no-op while zoomed.
func (s Session) Prev() (Session, Effect) {
	return s.step(-1)
}

func (s Session) step(d int) (Session, Effect) {
	if !s.Renderable() || s.Zoomed() {
		return s, EffectNone
	}
	s.index = Wrap(s.index+d, len(s.images))
	return s.settle(), EffectNavigated
}

// ToggleZoom switches between fit and the zoomed-in state and recenters.
func (s Session) ToggleZoom() (Session, Effect) {
	if !s.Renderable() {
		return s, EffectNone
	}
	if s.Zoomed() {
		s.zoom = 1
	} else {
		s.zoom = s.policy.ZoomStep
	}
	s.pan = Vec{}
	return s.settle(), EffectZoomed
}

// Key handles the keyboard surface.
func (s Session) Key(k Key) (Session, Effect) {
	if !s.Renderable() {
		return s, EffectNone
	}
	switch k {
	case KeyEscape:
		if s.Zoomed() {
			return s.ToggleZoom()
		}
		return s.requestClose()
	case KeyArrowLeft:
		return s.Prev()
	case KeyArrowRight:
		return s.Next()
	}
	return s, EffectNone
}

func (s Session) requestClose() (Session, Effect) {
	s.tapArmed = false
	return s.settle(), EffectClose
}
