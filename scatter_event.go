package tactile

// TransformEvent reports a change to a scatter's transform.
type TransformEvent struct {
	Target   *Scatter
	EntityID uint32

	// Translate is the position change applied by this step.
	Translate Vec2
	// Scale is the scatter's scale after the step.
	Scale float64
	// Rotate is the rotation change in radians applied by this step.
	Rotate float64
	// About is the anchor of the step in container coordinates.
	About Vec2
	// Fast is true while a pointer drags the scatter and false for thrown,
	// wheel and animated updates.
	Fast bool
	Type TransformType
}

type transformHandler struct {
	id uint32
	fn func(TransformEvent)
}

type transformRegistry struct {
	handlers []transformHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered transform callback.
type CallbackHandle struct {
	id  uint32
	reg *transformRegistry
}

// Remove unregisters this callback so it no longer fires. Removing twice or
// removing the zero handle is a no-op.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	s := h.reg.handlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = transformHandler{}
			h.reg.handlers = s[:len(s)-1]
			return
		}
	}
}

func (r *transformRegistry) add(fn func(TransformEvent)) CallbackHandle {
	r.nextID++
	r.handlers = append(r.handlers, transformHandler{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r}
}

func (r *transformRegistry) emit(ev TransformEvent) {
	for _, h := range r.handlers {
		h.fn(ev)
	}
}

// OnTransform registers fn to be called after every transform change of the
// scatter. fn must not transform the same scatter again.
func (s *Scatter) OnTransform(fn func(TransformEvent)) CallbackHandle {
	return s.handlers.add(fn)
}

func (s *Scatter) emit(typ TransformType, translate Vec2, rotate float64, about Vec2) {
	ev := TransformEvent{
		Target:    s,
		EntityID:  s.EntityID,
		Translate: translate,
		Scale:     s.scale,
		Rotate:    rotate,
		About:     about,
		Fast:      s.dragging,
		Type:      typ,
	}
	s.handlers.emit(ev)
	if s.store != nil {
		s.store.EmitEvent(ev)
	}
}
