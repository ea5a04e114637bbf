package viewer

import "fmt"

// Mode is the interaction state that owns the input stream.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModePanning
	ModeDraggingToClose
	ModeInertia
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "Idle"
	case ModePanning:
		return "Panning"
	case ModeDraggingToClose:
		return "DraggingToClose"
	case ModeInertia:
		return "Inertia"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// Key is a key the viewer reacts to while open.
type Key uint8

const (
	KeyNone Key = iota
	KeyEscape
	KeyArrowLeft
	KeyArrowRight
)

// ParseKey maps a host key name onto the viewer key surface.
func ParseKey(name string) (Key, bool) {
	switch name {
	case "Escape":
		return KeyEscape, true
	case "ArrowLeft":
		return KeyArrowLeft, true
	case "ArrowRight":
		return KeyArrowRight, true
	default:
		return KeyNone, false
	}
}

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeyArrowLeft:
		return "ArrowLeft"
	case KeyArrowRight:
		return "ArrowRight"
	default:
		return "None"
	}
}

// Effect reports what an update did that the owner has to act on.
type Effect uint8

const (
	EffectClose Effect = 1 << iota // the session asks to be closed
	EffectNavigated
	EffectZoomed
	EffectFrame // a frame has been scheduled
)

const EffectNone Effect = 0

// Has reports whether all bits of f are set in e.
func (e Effect) Has(f Effect) bool {
	return f != 0 && e&f == f
}
