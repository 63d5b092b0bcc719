package mapquiz

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"
)

// DefaultDragThreshold is the distance, in screen pixels, the pointer must
// travel from its press position before a press stops counting as a click.
const DefaultDragThreshold = 20.0

var (
	// ErrNoSurfaces is returned when a classifier is constructed without a
	// surface to listen on.
	ErrNoSurfaces = errors.New("mapquiz: gesture classifier needs at least one surface")
	// ErrInvalidThreshold is returned for a non-positive or non-finite drag threshold.
	ErrInvalidThreshold = errors.New("mapquiz: drag threshold must be positive and finite")
)

// PointerLatch records whether any mouse button is held anywhere in the
// window, independent of which surface (if any) is under the pointer.
//
// It is written by the document-level down/up handling of an InputRouter and
// read by every GestureClassifier on move, so a release that happened over
// another surface is not mistaken for an ongoing drag.
type PointerLatch struct {
	pressed atomic.Bool
}

// Press marks the button as held.
func (l *PointerLatch) Press() { l.pressed.Store(true) }

// Release marks the button as released.
func (l *PointerLatch) Release() { l.pressed.Store(false) }

// Pressed reports whether a button is currently held.
func (l *PointerLatch) Pressed() bool { return l.pressed.Load() }

// DocumentPointer is the process-wide latch shared by all classifiers that
// were not given their own with SetLatch.
var DocumentPointer = &PointerLatch{}

// PointerSession is a snapshot of a classifier's press tracking.
// Start is nil exactly when Down is false; Dragging implies Down.
type PointerSession struct {
	Down     bool
	Dragging bool
	Start    *Vec2
}

type pointerSession struct {
	down     bool
	dragging bool
	start    Vec2
}

func (p *pointerSession) reset() {
	*p = pointerSession{}
}

// GestureClassifier turns down/move/up events delivered to a group of
// surfaces into click, drag, down and up callbacks.
//
// A press becomes a drag once the pointer has moved at least the threshold
// away from where it went down; a release that never became a drag is a
// click. The drag callback fires on every move while pressed, including the
// moves before the threshold is reached.
type GestureClassifier struct {
	surfaces  []*Surface
	threshold float64
	latch     *PointerLatch
	session   pointerSession
	detached  bool

	onPointerDown func(PointerEvent)
	onPointerUp   func(PointerEvent)
	onDrag        func(PointerEvent)
	onDragStart   func(PointerEvent)
	onClick       func(PointerEvent)
}

// NewGestureClassifier binds a new classifier to the given surfaces.
func NewGestureClassifier(surfaces ...*Surface) (*GestureClassifier, error) {
	if len(surfaces) == 0 {
		return nil, ErrNoSurfaces
	}
	for i, s := range surfaces {
		if s == nil {
			return nil, fmt.Errorf("%w: surface %d is nil", ErrNoSurfaces, i)
		}
	}
	g := &GestureClassifier{
		surfaces:  append([]*Surface(nil), surfaces...),
		threshold: DefaultDragThreshold,
		latch:     DocumentPointer,
	}
	for _, s := range g.surfaces {
		s.bind(g)
	}
	return g, nil
}

// SetThreshold sets the drag distance in screen pixels.
func (g *GestureClassifier) SetThreshold(pixels float64) error {
	if !(pixels > 0) || math.IsInf(pixels, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, pixels)
	}
	g.threshold = pixels
	return nil
}

// Threshold returns the drag distance in screen pixels.
func (g *GestureClassifier) Threshold() float64 { return g.threshold }

// SetLatch replaces the shared DocumentPointer latch. A nil latch restores
// the default.
func (g *GestureClassifier) SetLatch(l *PointerLatch) {
	if l == nil {
		l = DocumentPointer
	}
	g.latch = l
}

// SetOnPointerDown sets the callback for presses on a bound surface.
func (g *GestureClassifier) SetOnPointerDown(fn func(PointerEvent)) { g.onPointerDown = fn }

// SetOnPointerUp sets the callback for releases that follow a press on a
// bound surface.
func (g *GestureClassifier) SetOnPointerUp(fn func(PointerEvent)) { g.onPointerUp = fn }

// SetOnDrag sets the callback fired on every move while pressed.
func (g *GestureClassifier) SetOnDrag(fn func(PointerEvent)) { g.onDrag = fn }

// SetOnDragStart sets the callback fired once when a press becomes a drag.
func (g *GestureClassifier) SetOnDragStart(fn func(PointerEvent)) { g.onDragStart = fn }

// SetOnClick sets the callback fired when a press is released without
// having become a drag.
func (g *GestureClassifier) SetOnClick(fn func(PointerEvent)) { g.onClick = fn }

// Surfaces returns the bound surfaces. The returned slice MUST NOT be mutated.
func (g *GestureClassifier) Surfaces() []*Surface { return g.surfaces }

// Detached reports whether RemoveBindings has been called.
func (g *GestureClassifier) Detached() bool { return g.detached }

// Session returns a copy of the current press tracking state.
func (g *GestureClassifier) Session() PointerSession {
	ps := PointerSession{Down: g.session.down, Dragging: g.session.dragging}
	if g.session.down {
		start := g.session.start
		ps.Start = &start
	}
	return ps
}

// HandlePointerDown starts a new press at the event position.
func (g *GestureClassifier) HandlePointerDown(ev PointerEvent) {
	if g.detached {
		return
	}
	g.session = pointerSession{down: true, start: Vec2{ev.X, ev.Y}}
	g.emit(g.onPointerDown, ev)
}

// HandlePointerMove reports a drag while pressed and promotes the press to a
// drag once it has moved far enough. A move that arrives while this
// classifier still thinks it is pressed but the latch says no button is
// held means the release happened elsewhere; the press is dropped silently.
func (g *GestureClassifier) HandlePointerMove(ev PointerEvent) {
	if g.detached || !g.session.down {
		return
	}
	if !g.latch.Pressed() {
		g.session.reset()
		return
	}
	g.emit(g.onDrag, ev)
	if g.session.dragging || !g.session.down {
		return
	}
	if math.Hypot(ev.X-g.session.start.X, ev.Y-g.session.start.Y) >= g.threshold {
		g.session.dragging = true
		g.emit(g.onDragStart, ev)
	}
}

// HandlePointerUp ends the press, firing click first when it never became a
// drag, then up. The session is cleared even when no press was recorded.
func (g *GestureClassifier) HandlePointerUp(ev PointerEvent) {
	if g.detached {
		return
	}
	down, dragging := g.session.down, g.session.dragging
	g.session.reset()
	if down && !dragging {
		g.emit(g.onClick, ev)
	}
	if down {
		g.emit(g.onPointerUp, ev)
	}
}

// RemoveBindings detaches the classifier from all its surfaces. Safe to call
// more than once; no callback fires afterwards.
func (g *GestureClassifier) RemoveBindings() {
	if g.detached {
		return
	}
	g.detached = true
	for _, s := range g.surfaces {
		s.unbind(g)
	}
	g.session.reset()
}

func (g *GestureClassifier) emit(fn func(PointerEvent), ev PointerEvent) {
	if fn == nil || g.detached {
		return
	}
	fn(ev)
}
