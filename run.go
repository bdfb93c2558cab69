package tactile

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height are the window size. Zero uses the surface size.
	Width, Height int
	// Background fills the screen before the surface is drawn.
	Background Color
	// ShowFPS prints the frame and tick rates in the top-left corner. Debug
	// mode prints them anyway.
	ShowFPS bool
	// Resizable lets the user resize the window. The layout stays at the
	// surface size.
	Resizable bool
}

// game adapts a Surface to ebiten.Game.
type game struct {
	surface *Surface
	cfg     RunConfig
}

func (g *game) Update() error {
	g.surface.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.cfg.Background.A > 0 {
		screen.Fill(g.cfg.Background.toRGBA())
	}
	g.surface.Draw(screen)
	if g.cfg.ShowFPS && !g.surface.debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	w, h := g.surface.Size()
	return int(w), int(h)
}

// Run opens a window and runs s until the window is closed. Give the
// surface an EbitenSource to receive mouse, wheel and touch input.
func Run(s *Surface, cfg RunConfig) error {
	w, h := s.Size()
	if cfg.Width <= 0 {
		cfg.Width = int(w)
	}
	if cfg.Height <= 0 {
		cfg.Height = int(h)
	}
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(&game{surface: s, cfg: cfg}); err != nil {
		return fmt.Errorf("tactile: run: %w", err)
	}
	return nil
}
