package mapquiz

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Debug font metrics used to center text drawn with ebitenutil.DebugPrintAt.
const (
	glyphW = 6
	glyphH = 16
)

var (
	colorRegion    = Color{R: 0.62, G: 0.68, B: 0.58, A: 1}
	colorHover     = Color{R: 0.74, G: 0.80, B: 0.68, A: 1}
	colorCorrect   = Color{R: 0.30, G: 0.72, B: 0.38, A: 1}
	colorIncorrect = Color{R: 0.88, G: 0.27, B: 0.25, A: 1}
	colorHighlight = Color{R: 0.98, G: 0.82, B: 0.22, A: 1}
	colorOutline   = Color{R: 0.16, G: 0.18, B: 0.16, A: 1}
	colorPanel     = Color{R: 0, G: 0, B: 0, A: 0.6}
)

// regionFillRule matches HitPolygon.Contains so the filled area is the
// clickable area.
const regionFillRule = ebiten.FillRuleEvenOdd

// whiteImage backs vector fills; vertices sample its inner pixel.
var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

func ensureWhiteImage() {
	if whiteImage != nil {
		return
	}
	whiteImage = ebiten.NewImage(3, 3)
	whiteImage.Fill(ColorWhite.toNRGBA())
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}

// Draw renders the map, the HUD and any queued screenshots.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}
	ensureWhiteImage()
	screen.Fill(s.ClearColor.toNRGBA())

	d := s.camera.Display
	mapImg := screen.SubImage(image.Rect(
		int(d.X), int(d.Y),
		int(d.X+d.Width), int(d.Y+d.Height),
	)).(*ebiten.Image)
	s.drawMap(mapImg)
	s.drawHUD(screen)
	if s.showFPS {
		drawFPS(screen, s.width)
	}

	if s.debug {
		s.stats.drawTime = time.Since(t0)
		s.debugLog()
	}
	s.flushScreenshots(screen)
}

// drawMap draws every visible region and then the labels on top.
func (s *Scene) drawMap(dst *ebiten.Image) {
	visible := s.camera.VisibleBounds()
	hover := s.router.Hover()
	s.stats.drawn, s.stats.culled = 0, 0

	for _, r := range s.regions {
		if !r.Shape.Bounds().Intersects(visible) {
			s.stats.culled++
			continue
		}
		hovered := hover != nil && (hover == r.shapeSurface || hover == r.boundsSurface)
		s.drawRegion(dst, r, regionColor(r, hovered))
		s.stats.drawn++
	}
	for _, r := range s.regions {
		if r.LabelVisible(s.showLabels) {
			s.drawLabel(dst, r)
		}
	}
}

// regionColor picks the fill for a region's feedback state. Flash and
// highlight fade out by blending towards the base color.
func regionColor(r *Region, hovered bool) Color {
	base := colorRegion
	if hovered {
		base = colorHover
	}
	if r.correct {
		base = colorCorrect
	}
	if r.flashA > 0 {
		base = blend(base, colorIncorrect, r.flashA)
	}
	if r.highA > 0 {
		base = blend(base, colorHighlight, r.highA)
	}
	return base
}

func blend(a, b Color, t float64) Color {
	t = clamp(t, 0, 1)
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// drawRegion fills and outlines a region's polygon in screen space.
func (s *Scene) drawRegion(dst *ebiten.Image, r *Region, fill Color) {
	var path vector.Path
	pts := r.Shape.Points
	for i, p := range pts {
		x, y := s.camera.ContentToScreen(p.X, p.Y)
		if i == 0 {
			path.MoveTo(float32(x), float32(y))
		} else {
			path.LineTo(float32(x), float32(y))
		}
	}
	path.Close()

	s.vertices, s.indices = path.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR = float32(fill.R)
		v.ColorG = float32(fill.G)
		v.ColorB = float32(fill.B)
		v.ColorA = float32(fill.A)
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: regionFillRule, AntiAlias: true}
	dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, op)

	outline := colorOutline.toNRGBA()
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		x0, y0 := s.camera.ContentToScreen(a.X, a.Y)
		x1, y1 := s.camera.ContentToScreen(b.X, b.Y)
		vector.StrokeLine(dst, float32(x0), float32(y0), float32(x1), float32(y1), 1, outline, true)
	}
}

// drawLabel draws a region's name centered on its label point over a
// translucent panel.
func (s *Scene) drawLabel(dst *ebiten.Image, r *Region) {
	x, y := s.camera.ContentToScreen(r.Label.X, r.Label.Y)
	w := float64(len(r.Name) * glyphW)
	lx := x - w/2
	ly := y - glyphH/2
	vector.DrawFilledRect(dst, float32(lx-3), float32(ly-1), float32(w+6), glyphH+2, colorPanel.toNRGBA(), false)
	ebitenutil.DebugPrintAt(dst, r.Name, int(lx), int(ly))
}
