package mapquiz

import (
	"errors"
	"fmt"
)

// DefaultFeedbackSeconds is how long incorrect and highlight feedback lasts.
const DefaultFeedbackSeconds = 1.0

// ErrInvalidRegion is returned for a region without an id or with fewer
// than three outline points.
var ErrInvalidRegion = errors.New("mapquiz: invalid region")

// Region is one clickable area of the map.
type Region struct {
	ID   string
	Name string
	// Shape is the outline in content units.
	Shape HitPolygon
	// Bounds is an optional extra hit area in content units, used to make
	// small regions easier to click.
	Bounds HitShape
	// Label is where the name is drawn when HasLabel is true.
	Label    Vec2
	HasLabel bool

	correct   bool
	flash     *tweenGroup
	flashA    float64
	highlight *tweenGroup
	highA     float64
	feedback  float32

	shapeSurface  *Surface
	boundsSurface *Surface
	classifier    *GestureClassifier
}

// NewRegion creates a region from its outline.
func NewRegion(id, name string, outline []Vec2) (*Region, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty id", ErrInvalidRegion)
	}
	if len(outline) < 3 {
		return nil, fmt.Errorf("%w: %q has %d points, need at least 3", ErrInvalidRegion, id, len(outline))
	}
	for _, p := range outline {
		if !finite(p.X) || !finite(p.Y) {
			return nil, fmt.Errorf("%w: %q has a non-finite point", ErrInvalidRegion, id)
		}
	}
	if name == "" {
		name = id
	}
	return &Region{
		ID:       id,
		Name:     name,
		Shape:    HitPolygon{Points: append([]Vec2(nil), outline...)},
		feedback: DefaultFeedbackSeconds,
	}, nil
}

// SetLabel places the region's name label.
func (r *Region) SetLabel(at Vec2) {
	r.Label = at
	r.HasLabel = true
}

// SetFeedbackDuration sets how long incorrect and highlight feedback lasts.
func (r *Region) SetFeedbackDuration(seconds float32) {
	if seconds > 0 {
		r.feedback = seconds
	}
}

// MarkCorrect marks the region as found. It stays marked until Reset.
func (r *Region) MarkCorrect() {
	r.correct = true
	r.flash = nil
	r.flashA = 0
}

// MarkIncorrect starts the incorrect flash, which also reveals the label.
// Returns false if the region is already found or already flashing.
func (r *Region) MarkIncorrect() bool {
	if r.correct || r.flash != nil {
		return false
	}
	r.flash = fade(&r.flashA, r.feedback)
	return true
}

// Highlight starts the hint highlight. Returns false if already highlighted.
func (r *Region) Highlight() bool {
	if r.highlight != nil {
		return false
	}
	r.highlight = fade(&r.highA, r.feedback)
	return true
}

// Reset clears all feedback.
func (r *Region) Reset() {
	r.correct = false
	r.flash, r.flashA = nil, 0
	r.highlight, r.highA = nil, 0
}

// Correct reports whether the region has been found.
func (r *Region) Correct() bool { return r.correct }

// Flashing reports whether the incorrect flash is running.
func (r *Region) Flashing() bool { return r.flash != nil }

// Highlighted reports whether the hint highlight is running.
func (r *Region) Highlighted() bool { return r.highlight != nil }

// LabelVisible reports whether the label should be drawn. Labels show when
// all labels are on or while the incorrect flash runs.
func (r *Region) LabelVisible(showAll bool) bool {
	return r.HasLabel && (showAll || r.flash != nil)
}

// Contains reports whether content point (x, y) is inside the outline or
// the extra bounds.
func (r *Region) Contains(x, y float64) bool {
	if r.Shape.Contains(x, y) {
		return true
	}
	return r.Bounds != nil && r.Bounds.Contains(x, y)
}

// Classifier returns the click classifier bound by the scene, or nil.
func (r *Region) Classifier() *GestureClassifier { return r.classifier }

// update advances feedback tweens. Called from Scene.Update().
func (r *Region) update(dt float32) {
	if r.flash != nil {
		r.flash.update(dt)
		if r.flash.done {
			r.flash, r.flashA = nil, 0
		}
	}
	if r.highlight != nil {
		r.highlight.update(dt)
		if r.highlight.done {
			r.highlight, r.highA = nil, 0
		}
	}
}

// bind creates the region's surfaces under parent and binds a click
// classifier that calls onClick. The caller registers the surfaces with its
// router.
func (r *Region) bind(parent *Surface, threshold float64, onClick func(*Region)) error {
	shape := NewSurface(r.ID, r.Shape, SpaceContent)
	shape.Parent = parent
	surfaces := []*Surface{shape}
	var bounds *Surface
	if r.Bounds != nil {
		bounds = NewSurface(r.ID+".bounds", r.Bounds, SpaceContent)
		bounds.Parent = parent
		surfaces = append(surfaces, bounds)
	}

	g, err := NewGestureClassifier(surfaces...)
	if err != nil {
		return err
	}
	if err := g.SetThreshold(threshold); err != nil {
		g.RemoveBindings()
		return err
	}
	g.SetOnClick(func(PointerEvent) { onClick(r) })

	r.unbind(nil)
	r.shapeSurface, r.boundsSurface = shape, bounds
	r.classifier = g
	return nil
}

// unbind detaches the classifier and removes the region's surfaces from
// router, if given.
func (r *Region) unbind(router *InputRouter) {
	if r.classifier != nil {
		r.classifier.RemoveBindings()
		r.classifier = nil
	}
	if router != nil {
		router.RemoveSurface(r.shapeSurface)
		router.RemoveSurface(r.boundsSurface)
	}
	r.shapeSurface, r.boundsSurface = nil, nil
}
