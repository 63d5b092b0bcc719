package mapquiz

import (
	"errors"
	"fmt"
	"math"
)

// Zoom defaults. MinZoom and MaxZoom are fractions of the natural content
// size: a viewport may shrink to a fifth of the content. MaxZoom bounds the
// starting view; scrolling out stops at the content size.
const (
	DefaultZoomStep = 0.05
	DefaultMinZoom  = 0.2
	DefaultMaxZoom  = 2.0
)

// ErrDegenerateViewport is returned when a size involved in a viewport
// computation is zero, negative, or not finite.
var ErrDegenerateViewport = errors.New("mapquiz: degenerate viewport geometry")

// Viewport is the visible window into the content plane, in content units.
type Viewport struct {
	X, Y          float64
	Width, Height float64
}

// Rect returns the viewport as a Rect.
func (v Viewport) Rect() Rect {
	return Rect{X: v.X, Y: v.Y, Width: v.Width, Height: v.Height}
}

// Size returns the viewport width and height.
func (v Viewport) Size() Vec2 {
	return Vec2{v.Width, v.Height}
}

// ViewportInput is one pan and/or zoom request.
type ViewportInput struct {
	// Pan moves the viewport origin, in device pixels. Positive X shows
	// content further to the right.
	Pan Vec2
	// Scroll is the signed wheel amount. Only its sign is used: positive
	// grows the viewport (zoom out), negative shrinks it (zoom in).
	Scroll float64
	// Pointer is the zoom anchor in device pixels relative to the display's
	// top-left corner. The content point under it stays put.
	Pointer Vec2
}

// ViewportController computes bounded pan/zoom steps for a fixed content
// plane shown on a display of fixed device size. The zero value is not
// usable; see NewViewportController.
type ViewportController struct {
	// Content is the natural content size in content units.
	Content Vec2
	// Display is the size of the rendering surface in device pixels.
	Display Vec2
	// ZoomStep is the fraction of the current size added or removed per
	// scroll event.
	ZoomStep float64
	// MinZoom and MaxZoom bound the viewport size as fractions of Content.
	// A scroll step never grows the viewport past min(MaxZoom, 1).
	MinZoom float64
	MaxZoom float64
}

// NewViewportController returns a controller with the default zoom limits.
func NewViewportController(content, display Vec2) ViewportController {
	return ViewportController{
		Content:  content,
		Display:  display,
		ZoomStep: DefaultZoomStep,
		MinZoom:  DefaultMinZoom,
		MaxZoom:  DefaultMaxZoom,
	}
}

// Validate checks the controller's own configuration.
func (c ViewportController) Validate() error {
	if !positive(c.Content.X) || !positive(c.Content.Y) {
		return fmt.Errorf("%w: content size %vx%v", ErrDegenerateViewport, c.Content.X, c.Content.Y)
	}
	if !positive(c.Display.X) || !positive(c.Display.Y) {
		return fmt.Errorf("%w: display size %vx%v", ErrDegenerateViewport, c.Display.X, c.Display.Y)
	}
	if !positive(c.ZoomStep) || c.ZoomStep >= 1 {
		return fmt.Errorf("%w: zoom step %v outside (0, 1)", ErrDegenerateViewport, c.ZoomStep)
	}
	if !positive(c.MinZoom) || !positive(c.MaxZoom) || c.MinZoom > c.MaxZoom {
		return fmt.Errorf("%w: zoom limits [%v, %v]", ErrDegenerateViewport, c.MinZoom, c.MaxZoom)
	}
	return nil
}

// Next returns the viewport that results from applying in to cur. cur is
// not modified. The returned viewport always satisfies
//
//	0 <= X <= max(Content.X - Width, 0)
//
// and likewise for Y. Zoom is aspect-locked: both axes scale by the same
// factor or not at all.
func (c ViewportController) Next(cur Viewport, in ViewportInput) (Viewport, error) {
	if err := c.Validate(); err != nil {
		return Viewport{}, err
	}
	if !positive(cur.Width) || !positive(cur.Height) || !finite(cur.X) || !finite(cur.Y) {
		return Viewport{}, fmt.Errorf("%w: viewport %+v", ErrDegenerateViewport, cur)
	}
	if !finite(in.Pan.X) || !finite(in.Pan.Y) || !finite(in.Scroll) ||
		!finite(in.Pointer.X) || !finite(in.Pointer.Y) {
		return Viewport{}, fmt.Errorf("%w: input %+v", ErrDegenerateViewport, in)
	}

	// Content narrower than the viewport on either axis leaves nothing to
	// pan over, so scrolling may only zoom in.
	noGrow := c.Content.X-cur.Width < 0 || c.Content.Y-cur.Height < 0

	w, h := cur.Width, cur.Height
	if dir := sign(in.Scroll); dir < 0 || (dir > 0 && !noGrow) {
		w, h = c.zoomed(cur, dir)
	}

	// Keep the content point under the pointer fixed.
	fx := in.Pointer.X / c.Display.X
	fy := in.Pointer.Y / c.Display.Y
	x := cur.X - fx*(w-cur.Width)
	y := cur.Y - fy*(h-cur.Height)

	// Pan is in device pixels; convert with the post-zoom scale.
	x += in.Pan.X * w / c.Display.X
	y += in.Pan.Y * h / c.Display.Y

	return Viewport{
		X:      clamp(x, 0, math.Max(c.Content.X-w, 0)),
		Y:      clamp(y, 0, math.Max(c.Content.Y-h, 0)),
		Width:  w,
		Height: h,
	}, nil
}

// zoomed returns the size after one zoom step in direction dir. The axis
// whose clamped factor is closest to 1 decides the factor for both axes; a
// factor of 1 (or one pointing the wrong way) leaves the size unchanged.
func (c ViewportController) zoomed(cur Viewport, dir float64) (w, h float64) {
	f := 1 + dir*c.ZoomStep
	hi := c.MaxZoom
	if dir > 0 {
		hi = min(hi, 1)
	}
	cw := clamp(cur.Width*f, c.MinZoom*c.Content.X, hi*c.Content.X)
	ch := clamp(cur.Height*f, c.MinZoom*c.Content.Y, hi*c.Content.Y)
	kx := cw / cur.Width
	ky := ch / cur.Height

	k := kx
	w, h = cw, cur.Height*kx
	if math.Abs(ky-1) < math.Abs(kx-1) {
		k = ky
		w, h = cur.Width*ky, ch
	}
	if (dir > 0 && k <= 1) || (dir < 0 && k >= 1) {
		return cur.Width, cur.Height
	}
	return w, h
}

// fit scales v about its center into the zoom limits. It fails when no
// single scale brings both axes within them.
func (c ViewportController) fit(v Viewport) (Viewport, error) {
	if !positive(v.Width) || !positive(v.Height) || !finite(v.X) || !finite(v.Y) {
		return Viewport{}, fmt.Errorf("%w: viewport %+v", ErrDegenerateViewport, v)
	}
	lo := max(c.MinZoom*c.Content.X/v.Width, c.MinZoom*c.Content.Y/v.Height)
	hi := min(c.MaxZoom*c.Content.X/v.Width, c.MaxZoom*c.Content.Y/v.Height)
	if lo > hi {
		return Viewport{}, fmt.Errorf("%w: viewport %vx%v outside zoom limits [%v, %v]",
			ErrDegenerateViewport, v.Width, v.Height, c.MinZoom, c.MaxZoom)
	}
	k := clamp(1, lo, hi)
	if k == 1 {
		return v, nil
	}
	w, h := v.Width*k, v.Height*k
	return Viewport{
		X:      v.X - (w-v.Width)/2,
		Y:      v.Y - (h-v.Height)/2,
		Width:  w,
		Height: h,
	}, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
