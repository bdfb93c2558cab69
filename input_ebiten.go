package tactile

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mousePointerID is the pointer id the Ebitengine source reports for the
// mouse. Touch ids are shifted past it.
const mousePointerID = 1

func touchPointerID(id ebiten.TouchID) int {
	return int(id) + mousePointerID + 1
}

var ebitenButtons = [...]struct {
	eb ebiten.MouseButton
	b  MouseButton
}{
	{ebiten.MouseButtonLeft, MouseButtonLeft},
	{ebiten.MouseButtonRight, MouseButtonRight},
	{ebiten.MouseButtonMiddle, MouseButtonMiddle},
}

// EbitenSource polls Ebitengine's mouse, wheel, keyboard modifier and touch
// state once per tick and reports the changes as normalized events. It
// offers all three input families.
type EbitenSource struct {
	// Width and Height are the layout size. A mouse that leaves this
	// rectangle with a button held and without capture ends its contact.
	Width, Height float64

	lastCursor  Vec2
	lastButtons MouseButtons
	touches     map[ebiten.TouchID]Vec2
	captured    map[int]bool
	touchBuf    []ebiten.TouchID
	changed     []Touch
	target      []Touch
}

// NewEbitenSource creates a source for a w×h layout.
func NewEbitenSource(w, h float64) *EbitenSource {
	return &EbitenSource{
		Width:    w,
		Height:   h,
		touches:  make(map[ebiten.TouchID]Vec2),
		captured: make(map[int]bool),
	}
}

// Capabilities reports every input family.
func (e *EbitenSource) Capabilities() Capabilities {
	return AllCapabilities
}

// CapturePointer keeps pointer id tracked when it leaves the layout.
func (e *EbitenSource) CapturePointer(id int) {
	e.captured[id] = true
}

// ReleasePointer undoes CapturePointer.
func (e *EbitenSource) ReleasePointer(id int) {
	delete(e.captured, id)
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// Poll appends this tick's events of family api to dst.
func (e *EbitenSource) Poll(api InputAPI, now time.Time, dst []Event) []Event {
	mods := readModifiers()
	cx, cy := ebiten.CursorPosition()
	cursor := Vec2{float64(cx), float64(cy)}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		dst = append(dst, Event{
			API: api, Kind: EventWheel, Time: now,
			X: cursor.X, Y: cursor.Y, WheelX: wx, WheelY: wy,
			Modifiers: mods,
		})
	}

	if api == APIPointer || api == APIMouse {
		dst = e.pollMouse(api, now, cursor, mods, dst)
	}
	e.lastCursor = cursor

	if api == APIPointer || api == APITouch {
		dst = e.pollTouches(api, now, mods, dst)
	}
	return dst
}

func (e *EbitenSource) pollMouse(api InputAPI, now time.Time, cursor Vec2, mods KeyModifiers, dst []Event) []Event {
	var held, pressed, released MouseButtons
	for _, b := range ebitenButtons {
		if ebiten.IsMouseButtonPressed(b.eb) {
			held |= ButtonMask(b.b)
		}
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			pressed |= ButtonMask(b.b)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			released |= ButtonMask(b.b)
		}
	}
	prev := e.lastButtons
	e.lastButtons = held

	mouse := func(kind EventKind, buttons MouseButtons) Event {
		return Event{
			API: api, Kind: kind, Time: now,
			X: cursor.X, Y: cursor.Y,
			PointerID: mousePointerID, PointerType: PointerMouse,
			Buttons: buttons, Modifiers: mods,
		}
	}

	switch {
	case pressed != 0 && prev == 0:
		dst = append(dst, mouse(EventDown, held))
	case held != 0 && cursor != e.lastCursor:
		if !e.captured[mousePointerID] && !e.inside(cursor) {
			ev := mouse(EventLeave, held)
			ev.OnElement = true
			dst = append(dst, ev)
		} else {
			dst = append(dst, mouse(EventMove, held))
		}
	}
	if released != 0 && held == 0 {
		dst = append(dst, mouse(EventUp, released))
	}
	return dst
}

func (e *EbitenSource) inside(p Vec2) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < e.Width && p.Y < e.Height
}

func (e *EbitenSource) pollTouches(api InputAPI, now time.Time, mods KeyModifiers, dst []Event) []Event {
	touch := func(id ebiten.TouchID, p Vec2) Touch {
		return Touch{ID: touchPointerID(id), X: p.X, Y: p.Y}
	}
	pointer := func(kind EventKind, t Touch) Event {
		return Event{
			API: APIPointer, Kind: kind, Time: now,
			X: t.X, Y: t.Y, PointerID: t.ID, PointerType: PointerTouch,
			Modifiers: mods,
		}
	}
	flush := func(kind EventKind) {
		if len(e.changed) == 0 {
			return
		}
		if api == APIPointer {
			for _, t := range e.changed {
				dst = append(dst, pointer(kind, t))
			}
			return
		}
		ev := Event{
			API: APITouch, Kind: kind, Time: now, Modifiers: mods,
			ChangedTouches: append([]Touch(nil), e.changed...),
		}
		if kind == EventMove {
			ev.TargetTouches = append([]Touch(nil), e.target...)
		}
		dst = append(dst, ev)
	}

	// Releases first: their ids may be reused by presses in the same tick.
	e.changed = e.changed[:0]
	e.touchBuf = inpututil.AppendJustReleasedTouchIDs(e.touchBuf[:0])
	for _, id := range e.touchBuf {
		p, ok := e.touches[id]
		if !ok {
			continue
		}
		delete(e.touches, id)
		e.changed = append(e.changed, touch(id, p))
	}
	flush(EventUp)

	e.changed = e.changed[:0]
	e.touchBuf = inpututil.AppendJustPressedTouchIDs(e.touchBuf[:0])
	for _, id := range e.touchBuf {
		x, y := ebiten.TouchPosition(id)
		p := Vec2{float64(x), float64(y)}
		e.touches[id] = p
		e.changed = append(e.changed, touch(id, p))
	}
	flush(EventDown)

	e.changed = e.changed[:0]
	e.target = e.target[:0]
	e.touchBuf = ebiten.AppendTouchIDs(e.touchBuf[:0])
	for _, id := range e.touchBuf {
		x, y := ebiten.TouchPosition(id)
		p := Vec2{float64(x), float64(y)}
		t := touch(id, p)
		e.target = append(e.target, t)
		last, ok := e.touches[id]
		if !ok || last == p {
			continue
		}
		e.touches[id] = p
		e.changed = append(e.changed, t)
	}
	flush(EventMove)
	return dst
}

var (
	_ InputSource     = (*EbitenSource)(nil)
	_ PointerCapturer = (*EbitenSource)(nil)
)
