package mapquiz

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("mapquiz: invalid config")

// WindowConfig controls the game window.
type WindowConfig struct {
	Title   string `toml:"title"`
	Width   int    `toml:"width"`
	Height  int    `toml:"height"`
	ShowFPS bool   `toml:"show_fps"`
}

// GestureConfig controls click/drag classification.
type GestureConfig struct {
	// Threshold is the drag distance in screen pixels.
	Threshold float64 `toml:"threshold"`
}

// ZoomConfig controls the viewport controller.
type ZoomConfig struct {
	Step float64 `toml:"step"`
	Min  float64 `toml:"min"`
	Max  float64 `toml:"max"`
	// ResetSeconds is the duration of the animated reset to the home view.
	ResetSeconds float64 `toml:"reset_seconds"`
}

// QuizConfig controls quiz behavior.
type QuizConfig struct {
	HintAfter       int     `toml:"hint_after"`
	FeedbackSeconds float64 `toml:"feedback_seconds"`
	ShowLabels      bool    `toml:"show_labels"`
	// Seed fixes the prompt order when non-zero.
	Seed uint64 `toml:"seed"`
}

// Config is the full application configuration.
type Config struct {
	Debug         bool          `toml:"debug"`
	ScreenshotDir string        `toml:"screenshot_dir"`
	Window        WindowConfig  `toml:"window"`
	Gesture       GestureConfig `toml:"gesture"`
	Zoom          ZoomConfig    `toml:"zoom"`
	Quiz          QuizConfig    `toml:"quiz"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ScreenshotDir: "screenshots",
		Window: WindowConfig{
			Title:  "Map Quiz",
			Width:  1280,
			Height: 720,
		},
		Gesture: GestureConfig{Threshold: DefaultDragThreshold},
		Zoom: ZoomConfig{
			Step:         DefaultZoomStep,
			Min:          DefaultMinZoom,
			Max:          DefaultMaxZoom,
			ResetSeconds: 0.4,
		},
		Quiz: QuizConfig{
			HintAfter:       DefaultHintAfter,
			FeedbackSeconds: DefaultFeedbackSeconds,
		},
	}
}

// DecodeConfig reads TOML from r on top of DefaultConfig and validates it.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a TOML config file.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// WriteFile writes c as TOML to path.
func (c Config) WriteFile(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Validate checks every field for a usable value.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	case !positive(c.Gesture.Threshold):
		return fmt.Errorf("%w: gesture threshold %v", ErrInvalidConfig, c.Gesture.Threshold)
	case !positive(c.Zoom.Step) || c.Zoom.Step >= 1:
		return fmt.Errorf("%w: zoom step %v outside (0, 1)", ErrInvalidConfig, c.Zoom.Step)
	case !positive(c.Zoom.Min) || !positive(c.Zoom.Max) || c.Zoom.Min > c.Zoom.Max:
		return fmt.Errorf("%w: zoom limits [%v, %v]", ErrInvalidConfig, c.Zoom.Min, c.Zoom.Max)
	case c.Zoom.ResetSeconds < 0:
		return fmt.Errorf("%w: negative reset duration", ErrInvalidConfig)
	case c.Quiz.HintAfter < 0:
		return fmt.Errorf("%w: negative hint_after", ErrInvalidConfig)
	case !positive(c.Quiz.FeedbackSeconds):
		return fmt.Errorf("%w: feedback duration %v", ErrInvalidConfig, c.Quiz.FeedbackSeconds)
	}
	return nil
}
