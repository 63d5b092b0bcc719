package mapquiz

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing and draw metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	updateTime time.Duration
	drawTime   time.Duration
	drawn      int
	culled     int
}

// debugf prints a formatted line to stderr when debug mode is on.
func (s *Scene) debugf(format string, args ...any) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[mapquiz] "+format+"\n", args...)
}

// debugLog prints timing and draw stats to stderr.
func (s *Scene) debugLog() {
	if !s.debug {
		return
	}
	v := s.camera.View()
	_, _ = fmt.Fprintf(os.Stderr,
		"[mapquiz] update: %v | draw: %v | regions drawn: %d | culled: %d\n",
		s.stats.updateTime, s.stats.drawTime, s.stats.drawn, s.stats.culled)
	_, _ = fmt.Fprintf(os.Stderr,
		"[mapquiz] view: %.1f,%.1f %.1fx%.1f\n", v.X, v.Y, v.Width, v.Height)
}
