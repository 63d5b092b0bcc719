package mapquiz

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens a window sized and titled from the scene's config and blocks
// until it is closed.
func Run(s *Scene) error {
	ebiten.SetWindowTitle(s.title)
	ebiten.SetWindowSize(s.width, s.height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(s); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// Title returns the window title.
func (s *Scene) Title() string { return s.title }
