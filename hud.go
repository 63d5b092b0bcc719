package mapquiz

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Tooltip offset from the cursor, in screen pixels.
const (
	tooltipDX = 15
	tooltipDY = -25
)

// statusLine returns the HUD text: prompt, progress, stopwatch and the
// available shortcuts.
func (s *Scene) statusLine() string {
	done, total := s.quiz.Progress()
	line := fmt.Sprintf("Find: %s   %d / %d   %s",
		s.quiz.Prompt(), done, total, FormatStopwatch(s.quiz.Elapsed()))
	if s.quiz.CanReview() {
		line += "   [V] review mistakes"
	}
	return line + "   [R] restart  [L] labels  [0] reset view"
}

// drawHUD draws the status bar and, while a prompt is active and the
// pointer is over the map, a tooltip with the prompt next to the cursor.
func (s *Scene) drawHUD(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, float32(s.width), hudHeight, colorPanel.toNRGBA(), false)
	ebitenutil.DebugPrintAt(screen, s.statusLine(), 6, (hudHeight-glyphH)/2)

	if s.quiz.Current() == nil || s.router.Hover() == nil {
		return
	}
	pos := s.router.Position()
	text := s.quiz.Prompt()
	x := pos.X + tooltipDX
	y := pos.Y + tooltipDY
	w := float32(len(text)*glyphW + 8)
	vector.DrawFilledRect(screen, float32(x), float32(y), w, glyphH+4, colorPanel.toNRGBA(), false)
	ebitenutil.DebugPrintAt(screen, text, int(x)+4, int(y)+2)
}
