// Package viewer implements the interaction engine of a fullscreen media
// viewer: gesture classification, inertial rubber-banded panning, image
// navigation and the render transform derived from them.
//
// The engine is single threaded and driven by its owner. Input arrives as
// Start/Move/End samples and keys; time advances through Tick, which runs at
// most one frame of the pan simulation per call.
package viewer

// Options configures a Viewer.
type Options struct {
	Policy Policy
	// OnClose is called once for every close request the session makes.
	OnClose func()
	// Logf receives mode transitions. Optional.
	Logf func(format string, args ...any)
}

// Viewer owns a Session and connects it to the host: it stores each new
// state, runs scheduled frames and reports close requests.
type Viewer struct {
	session Session
	onClose func()
	logf    func(format string, args ...any)
}

// New creates a closed viewer over images.
func New(images []string, opts Options) *Viewer {
	logf := opts.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Viewer{
		session: NewSession(images, opts.Policy),
		onClose: opts.OnClose,
		logf:    logf,
	}
}

// Session returns a copy of the current state.
func (v *Viewer) Session() Session {
	return v.session
}

// IsOpen reports whether the session is open.
func (v *Viewer) IsOpen() bool {
	return v.session.IsOpen()
}

// SetOpen opens the session at start or closes it. Opening an open viewer
// resets it.
func (v *Viewer) SetOpen(open bool, start int, now float64) {
	if open {
		v.apply(v.session.Open(start, now), EffectNone)
		v.logf("viewer: open at %d/%d", v.session.Index()+1, len(v.session.Images()))
		return
	}
	if v.session.IsOpen() {
		v.apply(v.session.Close(now), EffectNone)
		v.logf("viewer: closed")
	}
}

func (v *Viewer) Start(s Sample) Effect { return v.apply(v.session.Start(s)) }
func (v *Viewer) Move(s Sample) Effect { return v.apply(v.session.Move(s)) }
func (v *Viewer) End() Effect { return v.apply(v.session.End()) }
func (v *Viewer) Cancel() Effect { return v.apply(v.session.Cancel()) }
func (v *Viewer) Key(k Key) Effect { return v.apply(v.session.Key(k)) }
func (v *Viewer) Next() Effect { return v.apply(v.session.Next()) }
func (v *Viewer) Prev() Effect { return v.apply(v.session.Prev()) }
func (v *Viewer) ToggleZoom() Effect { return v.apply(v.session.ToggleZoom()) }

// Tick is the per-display-frame callback. It runs the scheduled simulation
// frame, if any, and then fires due transition timers.
func (v *Viewer) Tick(now float64) Effect {
	var eff Effect
	if token := v.session.PendingFrame(); token != 0 {
		eff = v.apply(v.session.Frame(token))
	}
	v.session = v.session.Advance(now)
	return eff
}

// Transform returns the render parameters of the current state.
func (v *Viewer) Transform() Transform {
	return v.session.Present()
}

func (v *Viewer) apply(next Session, eff Effect) Effect {
	prev := v.session.Mode()
	v.session = next
	if m := next.Mode(); m != prev {
		v.logf("viewer: %s -> %s", prev, m)
	}
	if eff.Has(EffectClose) && v.onClose != nil {
		v.onClose()
	}
	return eff
}
