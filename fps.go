package mapquiz

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawFPS prints the current FPS and TPS in the top-right corner, inside
// the status bar.
func drawFPS(screen *ebiten.Image, width int) {
	msg := fmt.Sprintf("FPS %.0f TPS %.0f", ebiten.ActualFPS(), ebiten.ActualTPS())
	ebitenutil.DebugPrintAt(screen, msg, width-len(msg)*glyphW-6, (hudHeight-glyphH)/2)
}
