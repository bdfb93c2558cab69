package tactile

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image stretched to draw solid sprites. Created
// on first draw so that the package can be used without a graphics context.
var whitePixel *ebiten.Image

func solidImage() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// renderStats counts what one Draw call did. Only reported in debug mode.
type renderStats struct {
	drawn  int
	culled int
}

// applyGeoM writes an affine matrix into op.GeoM.
func applyGeoM(op *ebiten.DrawImageOptions, m [6]float64) {
	op.GeoM.SetElement(0, 0, m[0])
	op.GeoM.SetElement(1, 0, m[1])
	op.GeoM.SetElement(0, 1, m[2])
	op.GeoM.SetElement(1, 1, m[3])
	op.GeoM.SetElement(0, 2, m[4])
	op.GeoM.SetElement(1, 2, m[5])
}

// drawNode draws n and its subtree in painter order. view maps surface
// coordinates to screen coordinates; cull is the screen rectangle outside
// which sprites are skipped.
func drawNode(dst *ebiten.Image, n *Node, view [6]float64, cull Rect, stats *renderStats) {
	if !n.Visible {
		return
	}
	if n.Type == NodeTypeSprite && n.worldAlpha > 0 {
		viewWorld := multiplyAffine(view, n.worldTransform)
		if shouldCull(n, viewWorld, cull) {
			stats.culled++
		} else {
			drawSprite(dst, n, viewWorld)
			stats.drawn++
		}
	}
	for _, child := range n.children {
		drawNode(dst, child, view, cull, stats)
	}
}

func drawSprite(dst *ebiten.Image, n *Node, viewWorld [6]float64) {
	img := n.Image
	if img == nil {
		img = solidImage()
	}
	b := img.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	stretch := [6]float64{n.Width / iw, 0, 0, n.Height / ih, 0, 0}

	var op ebiten.DrawImageOptions
	applyGeoM(&op, multiplyAffine(viewWorld, stretch))
	a := float32(n.Color.A * n.worldAlpha)
	op.ColorScale.Scale(float32(n.Color.R)*a, float32(n.Color.G)*a, float32(n.Color.B)*a, a)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(img, &op)
}
