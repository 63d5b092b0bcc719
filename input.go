package mapquiz

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in HitShape types ---

// HitShape is a hit-testable area in its surface's coordinate space.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a simple polygon hit area. Concave outlines are supported;
// containment follows the even-odd rule.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside the polygon by casting a ray
// towards +X and counting edge crossings.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.Points[i], p.Points[j]
		if (a.Y > y) == (b.Y > y) {
			continue
		}
		cx := a.X + (y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
		if x < cx {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the polygon's axis-aligned bounding box.
func (p HitPolygon) Bounds() Rect {
	if len(p.Points) == 0 {
		return Rect{}
	}
	minX, minY := p.Points[0].X, p.Points[0].Y
	maxX, maxY := minX, minY
	for _, pt := range p.Points[1:] {
		minX = min(minX, pt.X)
		minY = min(minY, pt.Y)
		maxX = max(maxX, pt.X)
		maxY = max(maxY, pt.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// --- Surfaces ---

// Space selects the coordinate space a surface's shape is expressed in.
type Space uint8

const (
	SpaceScreen  Space = iota // window pixels
	SpaceContent              // map content units, projected through the camera
)

// PointerEvent is a raw pointer event as delivered to classifiers and
// handed back to their callbacks.
type PointerEvent struct {
	Type EventType
	// X and Y are the pointer position in screen pixels.
	X, Y float64
	// DX and DY are the movement since the previous event in screen pixels.
	DX, DY float64
	// ContentX and ContentY are X and Y projected into content units.
	ContentX, ContentY float64
	Button             MouseButton
	Modifiers          KeyModifiers
	// Target is the topmost surface under the pointer, or nil.
	Target *Surface
}

// WheelEvent is a scroll wheel event. Delta is positive when scrolling
// towards the user.
type WheelEvent struct {
	X, Y               float64
	ContentX, ContentY float64
	Delta              float64
	Modifiers          KeyModifiers
	Target             *Surface
}

// Surface is a hit-testable area that classifiers listen on. Events
// delivered to a surface bubble to its Parent; a surface is only hit where
// its Parent is hit too.
type Surface struct {
	Name   string
	Shape  HitShape
	Space  Space
	Parent *Surface

	// OnWheel, if set, receives wheel events targeting this surface or one
	// of its descendants.
	OnWheel func(WheelEvent)

	listeners []*GestureClassifier
}

// NewSurface creates a surface with the given shape.
func NewSurface(name string, shape HitShape, space Space) *Surface {
	return &Surface{Name: name, Shape: shape, Space: space}
}

// Listeners returns the number of classifiers bound to s.
func (s *Surface) Listeners() int {
	return len(s.listeners)
}

func (s *Surface) bind(g *GestureClassifier) {
	if !slices.Contains(s.listeners, g) {
		s.listeners = append(s.listeners, g)
	}
}

func (s *Surface) unbind(g *GestureClassifier) {
	if i := slices.Index(s.listeners, g); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

// Projector converts screen coordinates to content coordinates.
type Projector interface {
	ScreenToContent(sx, sy float64) (cx, cy float64)
}

// PointerState is the polled pointer and wheel state for one frame.
type PointerState struct {
	X, Y      float64
	Pressed   bool
	Button    MouseButton
	Modifiers KeyModifiers
	// Wheel is the scroll amount this frame, positive towards the user.
	Wheel float64
}

// --- Input routing ---

// InputRouter turns per-frame pointer state into down, move, up and wheel
// events and delivers them to the classifiers bound on the surface under the
// pointer and its ancestors. The latch is updated after delivery, the way a
// document-level listener sees an event last.
type InputRouter struct {
	surfaces  []*Surface
	projector Projector
	latch     *PointerLatch

	pressed bool
	button  MouseButton
	last    Vec2
	hasLast bool
	hover   *Surface

	seen []*GestureClassifier
}

// NewInputRouter creates a router. projector may be nil when no surface
// uses SpaceContent.
func NewInputRouter(projector Projector) *InputRouter {
	return &InputRouter{projector: projector, latch: DocumentPointer}
}

// SetLatch replaces the DocumentPointer latch the router writes to.
func (r *InputRouter) SetLatch(l *PointerLatch) {
	if l == nil {
		l = DocumentPointer
	}
	r.latch = l
}

// AddSurface registers s on top of the surfaces added before it.
func (r *InputRouter) AddSurface(s *Surface) {
	if s != nil && !slices.Contains(r.surfaces, s) {
		r.surfaces = append(r.surfaces, s)
	}
}

// RemoveSurface unregisters s.
func (r *InputRouter) RemoveSurface(s *Surface) {
	if i := slices.Index(r.surfaces, s); i >= 0 {
		r.surfaces = slices.Delete(r.surfaces, i, i+1)
	}
	if r.hover == s {
		r.hover = nil
	}
}

// Surfaces returns the registered surfaces in painter order. The returned
// slice MUST NOT be mutated.
func (r *InputRouter) Surfaces() []*Surface {
	return r.surfaces
}

// Hover returns the surface that was under the pointer after the last Feed.
func (r *InputRouter) Hover() *Surface {
	return r.hover
}

// Pressed reports whether the router saw a button held after the last Feed.
func (r *InputRouter) Pressed() bool {
	return r.pressed
}

// Position returns the last pointer position in screen pixels.
func (r *InputRouter) Position() Vec2 {
	return r.last
}

// HitTest returns the topmost surface at screen point (x, y), or nil.
func (r *InputRouter) HitTest(x, y float64) *Surface {
	cx, cy := r.project(x, y)
	for i := len(r.surfaces) - 1; i >= 0; i-- {
		if r.hits(r.surfaces[i], x, y, cx, cy) {
			return r.surfaces[i]
		}
	}
	return nil
}

func (r *InputRouter) hits(s *Surface, x, y, cx, cy float64) bool {
	if s.Shape == nil {
		return false
	}
	for p := s; p != nil; p = p.Parent {
		if p.Shape == nil {
			continue
		}
		px, py := x, y
		if p.Space == SpaceContent {
			px, py = cx, cy
		}
		if !p.Shape.Contains(px, py) {
			return false
		}
	}
	return true
}

func (r *InputRouter) project(x, y float64) (float64, float64) {
	if r.projector == nil {
		return x, y
	}
	return r.projector.ScreenToContent(x, y)
}

// Feed processes one frame of polled input. Movement is delivered before a
// press or release in the same frame.
func (r *InputRouter) Feed(st PointerState) {
	pos := Vec2{st.X, st.Y}
	r.hover = r.HitTest(st.X, st.Y)

	if r.hasLast && pos != r.last {
		r.dispatch(EventPointerMove, st, pos.Sub(r.last))
	}
	r.last = pos
	r.hasLast = true

	switch {
	case st.Pressed && !r.pressed:
		r.pressed = true
		r.button = st.Button
		r.dispatch(EventPointerDown, st, Vec2{})
		r.latch.Press()
	case !st.Pressed && r.pressed:
		r.pressed = false
		r.dispatch(EventPointerUp, st, Vec2{})
		r.latch.Release()
	}

	if st.Wheel != 0 {
		r.dispatchWheel(st)
	}
}

func (r *InputRouter) dispatch(typ EventType, st PointerState, delta Vec2) {
	cx, cy := r.project(st.X, st.Y)
	button := st.Button
	if r.pressed || typ == EventPointerUp {
		button = r.button
	}
	ev := PointerEvent{
		Type: typ,
		X:    st.X, Y: st.Y,
		DX: delta.X, DY: delta.Y,
		ContentX: cx, ContentY: cy,
		Button:    button,
		Modifiers: st.Modifiers,
		Target:    r.hover,
	}

	r.seen = r.seen[:0]
	for s := r.hover; s != nil; s = s.Parent {
		for _, g := range slices.Clone(s.listeners) {
			if slices.Contains(r.seen, g) {
				continue
			}
			r.seen = append(r.seen, g)
			switch typ {
			case EventPointerDown:
				g.HandlePointerDown(ev)
			case EventPointerMove:
				g.HandlePointerMove(ev)
			case EventPointerUp:
				g.HandlePointerUp(ev)
			}
		}
	}
}

func (r *InputRouter) dispatchWheel(st PointerState) {
	cx, cy := r.project(st.X, st.Y)
	ev := WheelEvent{
		X: st.X, Y: st.Y,
		ContentX: cx, ContentY: cy,
		Delta:     st.Wheel,
		Modifiers: st.Modifiers,
		Target:    r.hover,
	}
	for s := r.hover; s != nil; s = s.Parent {
		if s.OnWheel != nil {
			s.OnWheel(ev)
		}
	}
}

// --- Ebitengine polling ---

// InputSource supplies one frame of pointer state.
type InputSource interface {
	Poll() PointerState
}

// ebitenInput polls the real mouse and keyboard.
type ebitenInput struct{}

func (ebitenInput) Poll() PointerState {
	mx, my := ebiten.CursorPosition()
	st := PointerState{X: float64(mx), Y: float64(my), Modifiers: readModifiers()}

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		st.Pressed = true
		if left {
			st.Button = MouseButtonLeft
		} else if right {
			st.Button = MouseButtonRight
		} else {
			st.Button = MouseButtonMiddle
		}
	}

	// Ebitengine reports wheel-away-from-user as positive.
	_, wy := ebiten.Wheel()
	st.Wheel = -wy
	return st
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
