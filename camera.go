package mapquiz

import "github.com/tanema/gween/ease"

// Camera shows a viewport of the map content inside a screen rectangle and
// applies pan and zoom requests through a ViewportController.
type Camera struct {
	// Display is the screen-space rectangle the map renders into.
	Display Rect

	controller ViewportController
	view       Viewport
	home       Viewport

	tween *tweenGroup

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool
}

// NewCamera creates a camera over content of the given size. home is the
// natural view region; a zero home shows the whole content. home is scaled
// about its center into the default zoom limits, and the display is
// letterboxed to the home aspect so both axes share one scale.
func NewCamera(display Rect, content Vec2, home Viewport) (*Camera, error) {
	ctl := NewViewportController(content, Vec2{display.Width, display.Height})
	if err := ctl.Validate(); err != nil {
		return nil, err
	}
	if home == (Viewport{}) {
		home = Viewport{Width: content.X, Height: content.Y}
	}
	home, err := ctl.fit(home)
	if err != nil {
		return nil, err
	}
	display = letterbox(display, home.Size())
	ctl.Display = Vec2{display.Width, display.Height}

	// A no-op step clamps home into the content bounds.
	home, err = ctl.Next(home, ViewportInput{})
	if err != nil {
		return nil, err
	}
	return &Camera{
		Display:    display,
		controller: ctl,
		view:       home,
		home:       home,
		dirty:      true,
	}, nil
}

// SetZoomLimits replaces the zoom step and the relative zoom limits. The
// home and current views are scaled into the new limits; limits that
// cannot hold them at their aspect are rejected.
func (c *Camera) SetZoomLimits(step, minZoom, maxZoom float64) error {
	ctl := c.controller
	ctl.ZoomStep, ctl.MinZoom, ctl.MaxZoom = step, minZoom, maxZoom
	if err := ctl.Validate(); err != nil {
		return err
	}
	home, err := ctl.fit(c.home)
	if err != nil {
		return err
	}
	if home, err = ctl.Next(home, ViewportInput{}); err != nil {
		return err
	}
	view, err := ctl.fit(c.view)
	if err != nil {
		return err
	}
	if view, err = ctl.Next(view, ViewportInput{}); err != nil {
		return err
	}
	c.controller = ctl
	c.home = home
	c.tween = nil
	c.setView(view)
	return nil
}

// letterbox returns the largest rectangle with the aspect of size centered
// inside r.
func letterbox(r Rect, size Vec2) Rect {
	want := size.X / size.Y
	switch have := r.Width / r.Height; {
	case want > have:
		h := r.Width / want
		return Rect{X: r.X, Y: r.Y + (r.Height-h)/2, Width: r.Width, Height: h}
	case want < have:
		w := r.Height * want
		return Rect{X: r.X + (r.Width-w)/2, Y: r.Y, Width: w, Height: r.Height}
	}
	return r
}

// Controller returns the camera's viewport controller.
func (c *Camera) Controller() ViewportController { return c.controller }

// View returns the current viewport.
func (c *Camera) View() Viewport { return c.view }

// Home returns the natural viewport the camera resets to.
func (c *Camera) Home() Viewport { return c.home }

// Apply runs one controller step from the current viewport. On error the
// viewport is left unchanged. Any running reset animation is cancelled.
func (c *Camera) Apply(in ViewportInput) error {
	next, err := c.controller.Next(c.view, in)
	if err != nil {
		return err
	}
	c.tween = nil
	c.setView(next)
	return nil
}

// Pan moves the view by a pointer drag of (dx, dy) screen pixels. The
// content follows the pointer.
func (c *Camera) Pan(dx, dy float64) error {
	return c.Apply(ViewportInput{Pan: Vec2{-dx, -dy}})
}

// Zoom applies one scroll step anchored at screen point (sx, sy).
// Positive delta zooms out.
func (c *Camera) Zoom(delta, sx, sy float64) error {
	return c.Apply(ViewportInput{
		Scroll:  delta,
		Pointer: Vec2{sx - c.Display.X, sy - c.Display.Y},
	})
}

// Reset animates back to the home viewport over duration seconds. A
// non-positive duration resets immediately.
func (c *Camera) Reset(duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.ResetNow()
		return
	}
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	c.tween = tweenViewport(&c.view, c.home, duration, easeFn)
}

// ResetNow jumps to the home viewport.
func (c *Camera) ResetNow() {
	c.tween = nil
	c.setView(c.home)
}

// Animating reports whether a reset animation is running.
func (c *Camera) Animating() bool { return c.tween != nil }

// update advances the reset animation. Called from Scene.Update().
func (c *Camera) update(dt float32) {
	if c.tween == nil {
		return
	}
	c.tween.update(dt)
	c.dirty = true
	if c.tween.done {
		c.tween = nil
		c.view = c.home
	}
}

func (c *Camera) setView(v Viewport) {
	if v != c.view {
		c.view = v
		c.dirty = true
	}
}

// computeViewMatrix recomputes the cached content-to-screen matrix if dirty.
//
// viewMatrix = Translate(Display.X, Display.Y) * Scale(sx, sy) * Translate(-view.X, -view.Y)
// where sx, sy = display size / viewport size.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	sx := c.Display.Width / c.view.Width
	sy := c.Display.Height / c.view.Height
	c.viewMatrix = [6]float64{
		sx, 0, 0, sy,
		c.Display.X - c.view.X*sx,
		c.Display.Y - c.view.Y*sy,
	}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// Scale returns screen pixels per content unit on each axis.
func (c *Camera) Scale() Vec2 {
	m := c.computeViewMatrix()
	return Vec2{m[0], m[3]}
}

// ContentToScreen converts content coordinates to screen coordinates.
func (c *Camera) ContentToScreen(cx, cy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, cx, cy)
}

// ScreenToContent converts screen coordinates to content coordinates.
func (c *Camera) ScreenToContent(sx, sy float64) (cx, cy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the visible content rectangle.
func (c *Camera) VisibleBounds() Rect {
	return c.view.Rect()
}
