package tactile

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scaleBounce springs a scatter's scale back into [MinScale, MaxScale] after
// a gesture or wheel zoom left it in the overdo range.
type scaleBounce struct {
	timer FrameHandle
	frame FrameHandle
	tween *gween.Tween
}

func (b *scaleBounce) active() bool {
	return b.timer.Active() || b.frame.Active()
}

func (s *Scatter) cancelBounce() {
	s.bounce.timer.Cancel()
	s.bounce.frame.Cancel()
	s.bounce = scaleBounce{}
}

// targetScale returns the current scale clamped to [MinScale, MaxScale].
func (s *Scatter) targetScale() float64 {
	switch {
	case s.scale < s.MinScale:
		return s.MinScale
	case s.scale > s.MaxScale:
		return s.MaxScale
	}
	return s.scale
}

// ScaleBouncing reports whether a scale bounce-back is pending or running.
func (s *Scatter) ScaleBouncing() bool {
	return s.bounce.active()
}

// checkScaling schedules a bounce-back about anchor when the scale lies
// outside [MinScale, MaxScale]. A later call replaces a pending one.
func (s *Scatter) checkScaling(anchor Vec2) {
	if s.targetScale() == s.scale {
		return
	}
	frames := s.container.Frames()
	if frames == nil {
		return
	}
	s.cancelBounce()
	s.bounce.timer = frames.After(s.ScaleBounceDelay, func() {
		s.startBounce(frames, anchor)
	})
}

func (s *Scatter) startBounce(frames *Frames, anchor Vec2) {
	target := s.targetScale()
	if target == s.scale {
		return
	}
	tw := gween.New(float32(s.scale), float32(target), float32(s.ScaleBounceDuration.Seconds()), ease.OutQuad)
	s.bounce.tween = tw
	last := frames.Now()
	s.bounce.frame = frames.Request(func(now time.Time) bool {
		dt := now.Sub(last).Seconds()
		last = now
		v, done := tw.Update(float32(dt))
		next := float64(v)
		if done {
			next = target
		}
		s.zoomTo(next, anchor)
		return !done
	})
}

// zoomTo scales about anchor to the absolute scale next, bypassing the
// Scalable switch so a locked scatter still settles.
func (s *Scatter) zoomTo(next float64, anchor Vec2) {
	if s.scale == 0 || next == s.scale {
		return
	}
	zoom := next / s.scale
	origin := s.RotationOrigin()
	offset := anchor.Add(origin.Sub(anchor).Scale(zoom)).Sub(origin)
	moved := s.move(offset)
	s.scale = next
	s.resized()
	s.sync()
	s.emit(TransformUpdate, moved, 0, anchor)
}
