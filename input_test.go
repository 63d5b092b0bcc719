package mapquiz

import (
	"testing"
)

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitPolygonContains(t *testing.T) {
	p := HitPolygon{Points: []Vec2{
		{0, 0}, {100, 0}, {100, 100}, {0, 100},
	}}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 50, true},
		{"on left edge", 0, 50, true},
		{"outside", -1, 50, false},
		{"outside far", 200, 200, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitPolygon.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}

	degen := HitPolygon{Points: []Vec2{{0, 0}, {1, 1}}}
	if degen.Contains(0, 0) {
		t.Error("degenerate polygon should not contain anything")
	}
}

func TestHitPolygonContains_Concave(t *testing.T) {
	// U shape open at the top: the notch between the arms is outside.
	u := HitPolygon{Points: []Vec2{
		{0, 0}, {30, 0}, {30, 70}, {70, 70}, {70, 0}, {100, 0}, {100, 100}, {0, 100},
	}}
	if !u.Contains(15, 20) || !u.Contains(85, 20) {
		t.Error("U should contain both arms")
	}
	if u.Contains(50, 20) {
		t.Error("U should not contain the notch")
	}
	if !u.Contains(50, 90) {
		t.Error("U should contain its base")
	}
}

func TestHitPolygonContains_ReversedWinding(t *testing.T) {
	p := HitPolygon{Points: []Vec2{
		{0, 100}, {100, 100}, {100, 0}, {0, 0},
	}}
	if !p.Contains(50, 50) {
		t.Error("reversed winding polygon should still contain center point")
	}
	if p.Contains(-1, 50) {
		t.Error("reversed winding polygon should not contain outside point")
	}
}

func TestHitPolygonBounds(t *testing.T) {
	p := HitPolygon{Points: []Vec2{{10, 20}, {50, 20}, {50, 80}, {10, 80}}}
	want := Rect{X: 10, Y: 20, Width: 40, Height: 60}
	if got := p.Bounds(); got != want {
		t.Errorf("Bounds = %+v, want %+v", got, want)
	}
	if got := (HitPolygon{}).Bounds(); got != (Rect{}) {
		t.Errorf("empty Bounds = %+v", got)
	}
}

// --- InputRouter tests ---

// scaleProjector maps screen to content by a uniform factor.
type scaleProjector float64

func (s scaleProjector) ScreenToContent(x, y float64) (float64, float64) {
	return x * float64(s), y * float64(s)
}

func newTestRouter(t *testing.T) (*InputRouter, *PointerLatch) {
	t.Helper()
	latch := &PointerLatch{}
	r := NewInputRouter(nil)
	r.SetLatch(latch)
	return r, latch
}

func bindRecorder(t *testing.T, latch *PointerLatch, surfaces ...*Surface) (*GestureClassifier, *recorder) {
	t.Helper()
	g, err := NewGestureClassifier(surfaces...)
	if err != nil {
		t.Fatal(err)
	}
	g.SetLatch(latch)
	rec := &recorder{}
	g.SetOnPointerDown(func(PointerEvent) { rec.calls = append(rec.calls, "down") })
	g.SetOnPointerUp(func(PointerEvent) { rec.calls = append(rec.calls, "up") })
	g.SetOnDrag(func(PointerEvent) { rec.calls = append(rec.calls, "drag") })
	g.SetOnClick(func(PointerEvent) { rec.calls = append(rec.calls, "click") })
	return g, rec
}

func press(x, y float64) PointerState   { return PointerState{X: x, Y: y, Pressed: true} }
func release(x, y float64) PointerState { return PointerState{X: x, Y: y} }

func TestRouterClick(t *testing.T) {
	r, latch := newTestRouter(t)
	s := NewSurface("box", HitRect{Width: 100, Height: 100}, SpaceScreen)
	r.AddSurface(s)
	_, rec := bindRecorder(t, latch, s)

	r.Feed(press(10, 10))
	if !latch.Pressed() {
		t.Error("latch not pressed after down")
	}
	r.Feed(release(10, 10))
	if latch.Pressed() {
		t.Error("latch still pressed after up")
	}

	if rec.count("click") != 1 || rec.count("down") != 1 || rec.count("up") != 1 {
		t.Errorf("calls = %v, want down, click, up", rec.calls)
	}
}

func TestRouterDragDeltas(t *testing.T) {
	r, latch := newTestRouter(t)
	s := NewSurface("box", HitRect{Width: 100, Height: 100}, SpaceScreen)
	r.AddSurface(s)
	g, err := NewGestureClassifier(s)
	if err != nil {
		t.Fatal(err)
	}
	g.SetLatch(latch)
	var deltas []Vec2
	clicked := false
	g.SetOnDrag(func(ev PointerEvent) { deltas = append(deltas, Vec2{ev.DX, ev.DY}) })
	g.SetOnClick(func(PointerEvent) { clicked = true })

	r.Feed(press(10, 10))
	r.Feed(press(25, 12))
	r.Feed(press(40, 10))
	r.Feed(release(40, 10))

	want := []Vec2{{15, 2}, {15, -2}}
	if len(deltas) != len(want) || deltas[0] != want[0] || deltas[1] != want[1] {
		t.Errorf("deltas = %v, want %v", deltas, want)
	}
	if clicked {
		t.Error("click fired after a 30px drag")
	}
}

func TestRouterMoveBeforeRelease(t *testing.T) {
	r, latch := newTestRouter(t)
	s := NewSurface("box", HitRect{Width: 100, Height: 100}, SpaceScreen)
	r.AddSurface(s)
	_, rec := bindRecorder(t, latch, s)

	r.Feed(press(10, 10))
	// Move and release in the same frame: the move is delivered first.
	r.Feed(release(50, 10))

	want := []string{"down", "drag", "up"}
	if len(rec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
	for i := range want {
		if rec.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", rec.calls, want)
		}
	}
}

func TestRouterBubblesToParentOnce(t *testing.T) {
	r, latch := newTestRouter(t)
	frame := NewSurface("frame", HitRect{Width: 200, Height: 200}, SpaceScreen)
	child := NewSurface("child", HitRect{X: 50, Y: 50, Width: 50, Height: 50}, SpaceScreen)
	child.Parent = frame
	r.AddSurface(frame)
	r.AddSurface(child)

	_, frameRec := bindRecorder(t, latch, frame)
	_, bothRec := bindRecorder(t, latch, frame, child)

	r.Feed(press(60, 60))
	if r.Hover() != child {
		t.Fatalf("Hover = %v, want child", r.Hover())
	}
	r.Feed(release(60, 60))

	if frameRec.count("click") != 1 {
		t.Errorf("parent classifier calls = %v, want one click", frameRec.calls)
	}
	if bothRec.count("down") != 1 || bothRec.count("click") != 1 {
		t.Errorf("classifier on child and parent calls = %v, want each once", bothRec.calls)
	}
}

func TestRouterParentClips(t *testing.T) {
	r, _ := newTestRouter(t)
	frame := NewSurface("frame", HitRect{Width: 100, Height: 100}, SpaceScreen)
	child := NewSurface("child", HitRect{X: 80, Y: 80, Width: 100, Height: 100}, SpaceScreen)
	child.Parent = frame
	r.AddSurface(frame)
	r.AddSurface(child)

	if got := r.HitTest(90, 90); got != child {
		t.Errorf("HitTest inside both = %v, want child", got)
	}
	if got := r.HitTest(150, 150); got != nil {
		t.Errorf("HitTest outside parent = %v, want nil", got)
	}
}

func TestRouterTopmostWins(t *testing.T) {
	r, _ := newTestRouter(t)
	below := NewSurface("below", HitRect{Width: 100, Height: 100}, SpaceScreen)
	above := NewSurface("above", HitRect{Width: 50, Height: 50}, SpaceScreen)
	r.AddSurface(below)
	r.AddSurface(above)
	r.AddSurface(above) // duplicate ignored
	if len(r.Surfaces()) != 2 {
		t.Errorf("Surfaces = %d, want 2", len(r.Surfaces()))
	}
	if got := r.HitTest(10, 10); got != above {
		t.Errorf("HitTest = %v, want above", got)
	}
	if got := r.HitTest(80, 80); got != below {
		t.Errorf("HitTest = %v, want below", got)
	}
}

func TestRouterNilShapeNeverHits(t *testing.T) {
	r, _ := newTestRouter(t)
	group := NewSurface("group", nil, SpaceScreen)
	child := NewSurface("child", HitRect{Width: 10, Height: 10}, SpaceScreen)
	child.Parent = group
	r.AddSurface(group)
	r.AddSurface(child)
	if got := r.HitTest(5, 5); got != child {
		t.Errorf("HitTest = %v, want child (nil parent shape does not clip)", got)
	}
	if got := r.HitTest(50, 50); got != nil {
		t.Errorf("HitTest = %v, want nil", got)
	}
}

func TestRouterContentSpace(t *testing.T) {
	r := NewInputRouter(scaleProjector(4))
	r.SetLatch(&PointerLatch{})
	s := NewSurface("region", HitRect{X: 100, Y: 100, Width: 100, Height: 100}, SpaceContent)
	r.AddSurface(s)

	if got := r.HitTest(30, 30); got != s {
		t.Errorf("HitTest(30,30) = %v, want region (content 120,120)", got)
	}
	if got := r.HitTest(10, 10); got != nil {
		t.Errorf("HitTest(10,10) = %v, want nil (content 40,40)", got)
	}

	var ev PointerEvent
	g, err := NewGestureClassifier(s)
	if err != nil {
		t.Fatal(err)
	}
	g.SetLatch(r.latch)
	g.SetOnPointerDown(func(e PointerEvent) { ev = e })
	r.Feed(press(30, 30))
	if ev.X != 30 || ev.ContentX != 120 || ev.Target != s {
		t.Errorf("event = %+v, want screen 30, content 120, target region", ev)
	}
}

func TestRouterReleaseElsewhereDoesNotStickDown(t *testing.T) {
	r, latch := newTestRouter(t)
	a := NewSurface("a", HitRect{Width: 100, Height: 100}, SpaceScreen)
	b := NewSurface("b", HitRect{X: 200, Width: 100, Height: 100}, SpaceScreen)
	r.AddSurface(a)
	r.AddSurface(b)
	ga, rec := bindRecorder(t, latch, a)

	r.Feed(press(10, 10))    // down on a
	r.Feed(press(250, 10))   // move onto b, a sees nothing
	r.Feed(release(250, 10)) // up over b, only the latch sees it
	if !ga.Session().Down {
		t.Fatal("a should still think it is pressed")
	}
	r.Feed(release(20, 20)) // move back over a with no button
	if ga.Session().Down {
		t.Error("a still down after moving with the latch released")
	}
	if rec.count("drag") != 0 || rec.count("click") != 0 || rec.count("up") != 0 {
		t.Errorf("calls = %v, want only the first down", rec.calls)
	}

	r.Feed(press(20, 20))
	r.Feed(release(20, 20))
	if rec.count("click") != 1 {
		t.Errorf("later click suppressed: %v", rec.calls)
	}
}

func TestRouterWheelBubbles(t *testing.T) {
	r, _ := newTestRouter(t)
	frame := NewSurface("frame", HitRect{Width: 200, Height: 200}, SpaceScreen)
	child := NewSurface("child", HitRect{Width: 50, Height: 50}, SpaceScreen)
	child.Parent = frame
	r.AddSurface(frame)
	r.AddSurface(child)

	var got []WheelEvent
	frame.OnWheel = func(ev WheelEvent) { got = append(got, ev) }

	r.Feed(PointerState{X: 10, Y: 10, Wheel: -2})
	if len(got) != 1 {
		t.Fatalf("wheel events = %d, want 1", len(got))
	}
	if got[0].Delta != -2 || got[0].Target != child {
		t.Errorf("wheel event = %+v", got[0])
	}

	r.Feed(PointerState{X: 500, Y: 500, Wheel: 1})
	if len(got) != 1 {
		t.Error("wheel outside every surface was delivered")
	}
}

func TestRouterRemoveSurface(t *testing.T) {
	r, _ := newTestRouter(t)
	s := NewSurface("s", HitRect{Width: 10, Height: 10}, SpaceScreen)
	r.AddSurface(s)
	r.Feed(release(5, 5))
	if r.Hover() != s {
		t.Fatal("Hover != s")
	}
	r.RemoveSurface(s)
	if r.Hover() != nil || len(r.Surfaces()) != 0 {
		t.Error("RemoveSurface left state behind")
	}
}

func TestRouterButtonCarriedToUp(t *testing.T) {
	r, latch := newTestRouter(t)
	s := NewSurface("s", HitRect{Width: 10, Height: 10}, SpaceScreen)
	r.AddSurface(s)
	g, _ := bindRecorder(t, latch, s)
	var up PointerEvent
	g.SetOnPointerUp(func(ev PointerEvent) { up = ev })

	r.Feed(PointerState{X: 5, Y: 5, Pressed: true, Button: MouseButtonRight})
	r.Feed(PointerState{X: 5, Y: 5})
	if up.Button != MouseButtonRight || up.Type != EventPointerUp {
		t.Errorf("up event = %+v, want right button", up)
	}
	if r.Pressed() {
		t.Error("router still pressed")
	}
}
