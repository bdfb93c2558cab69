package tactile

import (
	"strconv"
	"time"
)

// InputAPI identifies one family of host input events. A Delegate listens to
// exactly one family.
type InputAPI uint8

const (
	APINone    InputAPI = iota // no usable input family
	APIPointer                 // unified pointer events (mouse, touch, pen)
	APITouch                   // multi-touch events with changed/target touch lists
	APIMouse                   // single mouse, the last resort
)

// String returns the lowercase family name.
func (a InputAPI) String() string {
	switch a {
	case APIPointer:
		return "pointer"
	case APITouch:
		return "touch"
	case APIMouse:
		return "mouse"
	default:
		return "none"
	}
}

// Capabilities lists the input families a host can deliver.
type Capabilities struct {
	Pointer bool
	Touch   bool
	Mouse   bool
}

// AllCapabilities is what the Ebitengine source and the injection helpers offer.
var AllCapabilities = Capabilities{Pointer: true, Touch: true, Mouse: true}

// SelectAPI picks the best family: pointer, then touch, then mouse.
func SelectAPI(c Capabilities) InputAPI {
	switch {
	case c.Pointer:
		return APIPointer
	case c.Touch:
		return APITouch
	case c.Mouse:
		return APIMouse
	default:
		return APINone
	}
}

// EventKind is the phase a raw event reports.
type EventKind uint8

const (
	EventDown   EventKind = iota // pointerdown, touchstart, mousedown
	EventMove                    // pointermove, touchmove, mousemove
	EventUp                      // pointerup, touchend, mouseup
	EventCancel                  // pointercancel, touchcancel
	EventLeave                   // pointerleave, mouseout
	EventWheel                   // mouse wheel
)

// PointerType is the device behind a pointer event.
type PointerType uint8

const (
	PointerMouse PointerType = iota
	PointerTouch
	PointerPen
)

// TouchType distinguishes finger touches from stylus touches.
type TouchType uint8

const (
	TouchDirect TouchType = iota
	TouchStylus
)

// Touch is one contact in a touch event.
type Touch struct {
	ID   int
	X, Y float64
	Type TouchType
}

// Event is one normalized host input event. Which fields are meaningful
// depends on API and Kind: pointer events use PointerID and PointerType,
// touch events use ChangedTouches and TargetTouches, mouse and wheel events
// use X, Y and Buttons.
type Event struct {
	API  InputAPI
	Kind EventKind
	Time time.Time

	// X and Y are the screen position of pointer, mouse and wheel events.
	X, Y float64

	PointerID   int
	PointerType PointerType

	// Buttons holds the mouse buttons down during the event. For EventUp it
	// holds the button that was released.
	Buttons MouseButtons

	ChangedTouches []Touch
	TargetTouches  []Touch

	// OnElement is set on EventLeave when the pointer left the surface
	// itself rather than a descendant.
	OnElement bool

	// WheelX and WheelY are wheel offsets in notches. Positive WheelY scrolls
	// up (away from the user).
	WheelX, WheelY float64

	Modifiers KeyModifiers
}

// Position returns the event's screen position.
func (e *Event) Position() Vec2 {
	return Vec2{e.X, e.Y}
}

const (
	// MouseKey is the pointer key of the single mouse contact.
	MouseKey = "mouse"
	// StylusKey is the pointer key of a stylus touch.
	StylusKey = "stylus"
)

// TouchKey returns the pointer key of t.
func TouchKey(t Touch) string {
	if t.Type == TouchStylus {
		return StylusKey
	}
	return strconv.Itoa(t.ID)
}

// PointerKey returns the pointer key of a pointer id.
func PointerKey(id int) string {
	return strconv.Itoa(id)
}

// ExtractPoints converts ev into keyed screen points. Mouse events yield
// MouseKey only while a button is involved, pointer events yield their
// pointer id and touch events yield one point per changed touch. Events of
// an unknown family yield nothing.
func ExtractPoints(ev *Event) []KeyedPoint {
	switch ev.API {
	case APIMouse:
		if ev.Buttons != 0 || ev.Kind == EventUp {
			return []KeyedPoint{{Key: MouseKey, Point: ev.Position()}}
		}
	case APIPointer:
		return []KeyedPoint{{Key: PointerKey(ev.PointerID), Point: ev.Position()}}
	case APITouch:
		out := make([]KeyedPoint, 0, len(ev.ChangedTouches))
		for _, t := range ev.ChangedTouches {
			out = append(out, touchPoint(t))
		}
		return out
	}
	return nil
}

func touchPoint(t Touch) KeyedPoint {
	return KeyedPoint{Key: TouchKey(t), Point: Vec2{t.X, t.Y}}
}
