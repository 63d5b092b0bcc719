package mapquiz

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

func TestRegionColor(t *testing.T) {
	r := mustRegion(t, "a", "A", square(0, 0, 10))
	if regionColor(r, false) != colorRegion {
		t.Error("idle color")
	}
	if regionColor(r, true) != colorHover {
		t.Error("hover color")
	}
	r.MarkCorrect()
	if regionColor(r, true) != colorCorrect {
		t.Error("correct color should win over hover")
	}
	r.Reset()
	r.MarkIncorrect()
	c := regionColor(r, false)
	if !approxEqual(c.R, colorIncorrect.R, 1e-9) || !approxEqual(c.G, colorIncorrect.G, 1e-9) {
		t.Errorf("full flash color = %+v, want %+v", c, colorIncorrect)
	}
}

func TestBlend(t *testing.T) {
	a := Color{R: 0, G: 0, B: 0, A: 1}
	b := Color{R: 1, G: 0.5, B: 0, A: 1}
	got := blend(a, b, 0.5)
	if !approxEqual(got.R, 0.5, 1e-9) || !approxEqual(got.G, 0.25, 1e-9) || got.A != 1 {
		t.Errorf("blend = %+v", got)
	}
	if blend(a, b, -1) != a {
		t.Error("blend below 0 should clamp to a")
	}
	if got := blend(a, b, 2); !approxEqual(got.R, 1, 1e-9) {
		t.Errorf("blend above 1 = %+v, want b", got)
	}
}

func TestColorToNRGBA(t *testing.T) {
	c := Color{R: 1, G: 0.5, B: -1, A: 2}.toNRGBA()
	if c.R != 255 || c.G != 128 || c.B != 0 || c.A != 255 {
		t.Errorf("toNRGBA = %+v", c)
	}
	if got := ColorWhite.WithAlpha(0.5).A; got != 0.5 {
		t.Errorf("WithAlpha A = %v", got)
	}
}

func TestRegionFillMatchesHitTest(t *testing.T) {
	if regionFillRule != ebiten.FillRuleEvenOdd {
		t.Fatalf("regionFillRule = %v, want even-odd like HitPolygon", regionFillRule)
	}
	// A pentagram covers its inner pentagon twice: neither filled nor hit.
	star := HitPolygon{Points: []Vec2{{50, 0}, {79, 90}, {2, 35}, {98, 35}, {21, 90}}}
	if star.Contains(50, 50) {
		t.Error("inner pentagon of a pentagram should not be hit")
	}
	if !star.Contains(50, 10) || !star.Contains(10, 37) {
		t.Error("star points should be hit")
	}
}
