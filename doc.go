// Package tactile is a multi-touch gesture engine for [Ebitengine].
//
// Tactile turns raw pointer, touch and mouse input into per-object pan,
// pinch-zoom and rotate gestures, keeps thrown objects moving with inertia
// and bounces them back when they leave their container.
//
// # Quick start
//
// Build a [Surface], add nodes to it as scatters and hand it to [Run]:
//
//	surface := tactile.NewSurface(tactile.SurfaceConfig{
//		Width: 800, Height: 600,
//		Source: tactile.NewEbitenSource(800, 600),
//	})
//	card := tactile.NewSprite("card", 160, 100, tactile.Color{R: 0.3, G: 0.7, B: 1, A: 1})
//	if _, err := surface.AddScatter(card, tactile.ScatterConfig{X: 400, Y: 300}); err != nil {
//		log.Fatal(err)
//	}
//	log.Fatal(tactile.Run(surface, tactile.RunConfig{Title: "cards"}))
//
// For full control, implement [ebiten.Game] yourself and call
// [Surface.Update] and [Surface.Draw] directly.
//
// # Pipeline
//
// Host input arrives as [Event] values of one input family ([InputAPI]):
// unified pointer events, multi-touch events or plain mouse events. A
// [Delegate] converts them into keyed points on an [Interaction] and calls
// OnStart, OnMove and OnEnd on a single [Target]. A [Mapper] does the same
// but assigns every pointer to the target under it when it went down, so
// several objects can be handled at once, each seeing only its own
// pointers.
//
// A [Points] tracker derives a [Delta] (translation, zoom, rotation and the
// point they apply about) from its previous and current snapshot, and
// classifies lifted pointers as taps or long presses.
//
// # Scatters
//
// A [Scatter] applies deltas to a [Visual] so that the point under the
// fingers stays fixed. Every capability can be switched off at any time,
// including mid-gesture. After release a [Thrower] keeps the scatter moving
// with damped velocity, pushing it back into its [Container] and reflecting
// its velocity off the edges it crossed. A scale left outside
// [MinScale, MaxScale] springs back with a short tween.
//
// # Time
//
// Throws, bounce-backs and tweens run on a [Frames] scheduler ticked once
// per [Surface.Update]. Tests drive it with a [ManualClock].
//
// # Testing
//
// [Surface.InjectTap], [Surface.InjectDrag], [Surface.InjectPinch] and
// [Surface.InjectWheel] queue synthetic input consumed one frame per
// Update. [LoadTestScript] reads the same gestures from JSON.
//
// # ECS
//
// [Surface.SetEntityStore] forwards every [TransformEvent] to an
// [EntityStore]; the tactile/ecs package adapts a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package tactile
