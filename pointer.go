package main

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"

	"lightbox/viewer"
)

// pointerKind identifies which device owns the stroke in progress
type pointerKind int

const (
	pointerNone pointerKind = iota
	pointerMouse
	pointerTouch
)

// pointerInput abstracts the ebiten pointer API so the source can be driven in tests
type pointerInput interface {
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
}

// ebitenPointerInput reads the pointer state through ebiten
type ebitenPointerInput struct{}

func (ebitenPointerInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }
func (ebitenPointerInput) IsMouseButtonPressed(b ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(b)
}
func (ebitenPointerInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}
func (ebitenPointerInput) TouchPosition(id ebiten.TouchID) (int, int) { return ebiten.TouchPosition(id) }

// PointerSource folds the left mouse button and the first active touch into a
// single stroke of samples. Additional touches are ignored.
type PointerSource struct {
	input   pointerInput
	clock   func() float64
	active  pointerKind
	touchID ebiten.TouchID
	ids     []ebiten.TouchID
	// held is set after Abort until every button and touch is released
	held bool
}

// NewPointerSource creates a PointerSource reading ebiten input, timestamped by clock in milliseconds
func NewPointerSource(clock func() float64) *PointerSource {
	return &PointerSource{
		input: ebitenPointerInput{},
		clock: clock,
	}
}

// Active reports whether a stroke is in progress
func (p *PointerSource) Active() bool {
	return p.active != pointerNone
}

// Poll reads the pointer once and forwards at most one start, move or end to sink.
// It must be called once per game update.
func (p *PointerSource) Poll(sink SampleSink) viewer.Effect {
	now := p.clock()
	p.ids = p.input.AppendTouchIDs(p.ids[:0])

	switch p.active {
	case pointerTouch:
		if !slices.Contains(p.ids, p.touchID) {
			p.active = pointerNone
			return sink.End()
		}
		x, y := p.input.TouchPosition(p.touchID)
		return p.move(sink, x, y, now)

	case pointerMouse:
		if !p.input.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			p.active = pointerNone
			return sink.End()
		}
		x, y := p.input.CursorPosition()
		return p.move(sink, x, y, now)
	}

	if p.held {
		if len(p.ids) > 0 || p.input.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			return viewer.EffectNone
		}
		p.held = false
	}

	// Touch takes precedence so emulated mouse events never start a second stroke.
	if len(p.ids) > 0 {
		p.active = pointerTouch
		p.touchID = p.ids[0]
		x, y := p.input.TouchPosition(p.touchID)
		return p.start(sink, x, y, now)
	}
	if p.input.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		p.active = pointerMouse
		x, y := p.input.CursorPosition()
		return p.start(sink, x, y, now)
	}
	return viewer.EffectNone
}

// Abort drops the stroke in progress and tells sink it was cancelled
func (p *PointerSource) Abort(sink SampleSink) viewer.Effect {
	if p.active == pointerNone {
		return viewer.EffectNone
	}
	p.active = pointerNone
	p.held = true
	return sink.Cancel()
}

func (p *PointerSource) start(sink SampleSink, x, y int, now float64) viewer.Effect {
	return sink.Start(viewer.Sample{X: float64(x), Y: float64(y), T: now})
}

// move is sent every update, even without motion, so a pointer held still
// before release reports zero velocity.
func (p *PointerSource) move(sink SampleSink, x, y int, now float64) viewer.Effect {
	return sink.Move(viewer.Sample{X: float64(x), Y: float64(y), T: now})
}
