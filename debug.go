package tactile

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// debugf prints one diagnostic line to stderr. Callers check their debug
// flag first.
func debugf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[tactile] "+format+"\n", args...)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		debugf("warning: tree depth %d exceeds %d (node %q)", depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if n == nil {
		return
	}
	if len(n.children) > debugMaxChildCount {
		debugf("warning: node %q has %d children (threshold %d)", n.Name, len(n.children), debugMaxChildCount)
	}
}

// debugOverlayText is the text drawn in the top-left corner in debug mode.
func (s *Surface) debugOverlayText(fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\npointers: %d\nscatters: %d\ndrawn: %d culled: %d\nzoom: %.2f",
		fps, tps, s.interaction.Len(), len(s.scatters), s.stats.drawn, s.stats.culled, s.camera.Zoom)
}

func (s *Surface) drawDebugOverlay(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, s.debugOverlayText(ebiten.ActualFPS(), ebiten.ActualTPS()))
}
