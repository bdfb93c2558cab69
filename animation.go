package tactile

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors and either call Update(dt)
// each frame or hand it to Surface.Animate. The group auto-applies values
// and marks the node dirty. If the target node is disposed, the group stops
// immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool
	// OnDone is called once when the group finishes.
	OnDone func()
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnDone != nil {
		g.OnDone()
	}
}

// tweenField pairs an animated field with its end value.
type tweenField struct {
	field *float64
	to    float64
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, fields ...tweenField) *TweenGroup {
	g := &TweenGroup{target: node}
	for _, f := range fields {
		if g.count == len(g.fields) {
			break
		}
		g.tweens[g.count] = gween.New(float32(*f.field), float32(f.to), duration, fn)
		g.fields[g.count] = f.field
		g.count++
	}
	return g
}

// TweenPosition animates node.X and node.Y to the given target coordinates.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.X, toX}, tweenField{&node.Y, toY})
}

// TweenScale animates node.ScaleX and node.ScaleY to the given targets.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.ScaleX, toSX}, tweenField{&node.ScaleY, toSY})
}

// TweenScaleX animates node.ScaleX alone, as used by card flips.
func TweenScaleX(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.ScaleX, to})
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn,
		tweenField{&node.Color.R, to.R}, tweenField{&node.Color.G, to.G},
		tweenField{&node.Color.B, to.B}, tweenField{&node.Color.A, to.A})
}

// TweenAlpha animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, duration, fn, tweenField{&node.Alpha, to})
}

// Animate drives g from the surface's frame scheduler until it is done. The
// returned handle cancels it.
func (s *Surface) Animate(g *TweenGroup) FrameHandle {
	last := s.frames.Now()
	return s.frames.Request(func(now time.Time) bool {
		dt := float32(now.Sub(last).Seconds())
		last = now
		g.Update(dt)
		return !g.Done
	})
}
