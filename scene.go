package mapquiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

// hudHeight is the height of the status bar above the map.
const hudHeight = 24

// Command is a scene action bound to a key.
type Command string

const (
	CommandRestart      Command = "restart"       // R
	CommandReview       Command = "review"        // V
	CommandToggleLabels Command = "toggle-labels" // L
	CommandResetView    Command = "reset-view"    // Home or 0
)

var commandKeys = []struct {
	key ebiten.Key
	cmd Command
}{
	{ebiten.KeyR, CommandRestart},
	{ebiten.KeyV, CommandReview},
	{ebiten.KeyL, CommandToggleLabels},
	{ebiten.KeyHome, CommandResetView},
	{ebiten.Key0, CommandResetView},
	{ebiten.KeyNumpad0, CommandResetView},
}

// Scene is the top-level object that owns the map, the camera, the quiz and
// input routing. It implements ebiten.Game.
type Scene struct {
	// ClearColor fills the window behind the map each frame.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string

	title   string
	width   int
	height  int
	showFPS bool
	debug   bool

	camera  *Camera
	router  *InputRouter
	input   InputSource
	frame   *Surface
	pan     *GestureClassifier
	quiz    *Quiz
	regions []*Region

	showLabels   bool
	resetSeconds float32
	threshold    float64
	lastResult   AnswerResult
	lastAnswered *Region

	injectQueue     []syntheticPointerEvent
	commandQueue    []Command
	testRunner      *TestRunner
	screenshotQueue []string

	stats debugStats

	vertices []ebiten.Vertex
	indices  []uint16
}

// NewScene builds a scene for map m using cfg.
func NewScene(m *MapDef, cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	regions, err := m.Build()
	if err != nil {
		return nil, err
	}

	display := Rect{
		Y:      hudHeight,
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height - hudHeight),
	}
	cam, err := NewCamera(display, m.ContentSize(), m.Home())
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	if err := cam.SetZoomLimits(cfg.Zoom.Step, cfg.Zoom.Min, cfg.Zoom.Max); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	var rng *rand.Rand
	if cfg.Quiz.Seed != 0 {
		rng = rand.New(rand.NewPCG(cfg.Quiz.Seed, cfg.Quiz.Seed))
	}
	quiz, err := NewQuiz(regions, rng)
	if err != nil {
		return nil, err
	}
	quiz.HintAfter = cfg.Quiz.HintAfter

	title := cfg.Window.Title
	if m.Name != "" {
		title = title + " - " + m.Name
	}

	s := &Scene{
		ClearColor:    Color{R: 0.11, G: 0.16, B: 0.24, A: 1},
		ScreenshotDir: cfg.ScreenshotDir,
		title:         title,
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
		showFPS:       cfg.Window.ShowFPS,
		camera:        cam,
		router:        NewInputRouter(cam),
		input:         ebitenInput{},
		quiz:          quiz,
		regions:       regions,
		showLabels:    cfg.Quiz.ShowLabels,
		resetSeconds:  float32(cfg.Zoom.ResetSeconds),
		threshold:     cfg.Gesture.Threshold,
	}
	for _, r := range regions {
		r.SetFeedbackDuration(float32(cfg.Quiz.FeedbackSeconds))
	}
	if err := s.bindSurfaces(); err != nil {
		return nil, err
	}
	s.SetDebugMode(cfg.Debug)
	return s, nil
}

// bindSurfaces registers the map frame with its pan/zoom classifier and
// every region with its click classifier. Extra region bounds go below all
// outlines so an outline always wins over a neighbour's enlarged area.
func (s *Scene) bindSurfaces() error {
	d := s.camera.Display
	s.frame = NewSurface("map", HitRect{X: d.X, Y: d.Y, Width: d.Width, Height: d.Height}, SpaceScreen)
	s.frame.OnWheel = func(ev WheelEvent) {
		if err := s.camera.Zoom(ev.Delta, ev.X, ev.Y); err != nil {
			s.debugf("zoom: %v", err)
		}
	}
	s.router.AddSurface(s.frame)

	pan, err := NewGestureClassifier(s.frame)
	if err != nil {
		return err
	}
	if err := pan.SetThreshold(s.threshold); err != nil {
		return err
	}
	pan.SetOnDrag(func(ev PointerEvent) {
		if err := s.camera.Pan(ev.DX, ev.DY); err != nil {
			s.debugf("pan: %v", err)
		}
	})
	s.pan = pan

	for _, r := range s.regions {
		if err := r.bind(s.frame, s.threshold, s.answer); err != nil {
			s.Close()
			return fmt.Errorf("region %q: %w", r.ID, err)
		}
	}
	for _, r := range s.regions {
		if r.boundsSurface != nil {
			s.router.AddSurface(r.boundsSurface)
		}
	}
	for _, r := range s.regions {
		s.router.AddSurface(r.shapeSurface)
	}
	return nil
}

// Close detaches every classifier and removes the scene's surfaces from its
// router. The scene takes no pointer input afterwards.
func (s *Scene) Close() {
	for _, r := range s.regions {
		r.unbind(s.router)
	}
	if s.pan != nil {
		s.pan.RemoveBindings()
		s.pan = nil
	}
	s.router.RemoveSurface(s.frame)
	s.frame = nil
}

// answer is the click callback of every region.
func (s *Scene) answer(r *Region) {
	res, err := s.quiz.Answer(r.ID)
	if err != nil {
		s.debugf("answer %q: %v", r.ID, err)
		return
	}
	s.lastResult = res
	s.lastAnswered = r
	done, total := s.quiz.Progress()
	s.debugf("answer %q: %s (%d/%d)", r.ID, res, done, total)
}

// Camera returns the map camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Quiz returns the quiz state.
func (s *Scene) Quiz() *Quiz { return s.quiz }

// Router returns the input router.
func (s *Scene) Router() *InputRouter { return s.router }

// Regions returns the map regions in definition order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Regions() []*Region { return s.regions }

// LastResult returns the outcome of the most recent answer and the region
// that was clicked, or nil before the first answer.
func (s *Scene) LastResult() (AnswerResult, *Region) { return s.lastResult, s.lastAnswered }

// ShowLabels reports whether all region labels are drawn.
func (s *Scene) ShowLabels() bool { return s.showLabels }

// SetInputSource replaces the real mouse with src. Injected events still
// take precedence.
func (s *Scene) SetInputSource(src InputSource) {
	if src == nil {
		src = ebitenInput{}
	}
	s.input = src
}

// SetDebugMode enables or disables debug mode. When enabled, answers,
// rejected pan/zoom steps and per-frame timing are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Do runs a command at the start of the next Update.
func (s *Scene) Do(cmd Command) {
	s.commandQueue = append(s.commandQueue, cmd)
}

func (s *Scene) run(cmd Command) {
	switch cmd {
	case CommandRestart:
		s.quiz.Restart()
		s.lastAnswered = nil
	case CommandReview:
		if s.quiz.Review() {
			s.lastAnswered = nil
		}
	case CommandToggleLabels:
		s.showLabels = !s.showLabels
	case CommandResetView:
		s.camera.Reset(s.resetSeconds, ease.OutCubic)
	default:
		s.debugf("unknown command %q", cmd)
		return
	}
	s.debugf("command %s", cmd)
}

// RegionAt returns the region under screen point (x, y), or nil.
func (s *Scene) RegionAt(x, y float64) *Region {
	if !s.camera.Display.Contains(x, y) {
		return nil
	}
	cx, cy := s.camera.ScreenToContent(x, y)
	for i := len(s.regions) - 1; i >= 0; i-- {
		if s.regions[i].Shape.Contains(cx, cy) {
			return s.regions[i]
		}
	}
	for i := len(s.regions) - 1; i >= 0; i-- {
		if s.regions[i].Contains(cx, cy) {
			return s.regions[i]
		}
	}
	return nil
}

// Update runs queued commands, advances animations and processes input.
func (s *Scene) Update() error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	dt := float32(1.0 / float64(ebiten.TPS()))

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.readKeys()
	for _, cmd := range s.commandQueue {
		s.run(cmd)
	}
	s.commandQueue = s.commandQueue[:0]

	s.camera.update(dt)
	for _, r := range s.regions {
		r.update(dt)
	}
	s.processInput()

	if s.debug {
		s.stats.updateTime = time.Since(t0)
	}
	return nil
}

// readKeys queues commands for keys pressed this frame.
func (s *Scene) readKeys() {
	for _, ck := range commandKeys {
		if inpututil.IsKeyJustPressed(ck.key) {
			s.Do(ck.cmd)
		}
	}
}

// processInput feeds one injected event, or the polled input when nothing
// is queued, to the router.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.router.Feed(s.input.Poll())
}

// Layout reports the fixed logical screen size.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	return s.width, s.height
}
