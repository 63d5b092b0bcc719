package mapquiz

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenGroup animates up to 4 float64 fields simultaneously. The owner calls
// update(dt) each frame; done is set once every tween has finished.
type tweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	done   bool
}

// update advances all tweens by dt seconds and writes values to the fields.
func (g *tweenGroup) update(dt float32) {
	if g.done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.done = allDone
}

// tweenViewport animates every field of v to the matching field of to.
func tweenViewport(v *Viewport, to Viewport, duration float32, fn ease.TweenFunc) *tweenGroup {
	g := &tweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(v.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(v.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(v.Width), float32(to.Width), duration, fn)
	g.tweens[3] = gween.New(float32(v.Height), float32(to.Height), duration, fn)
	g.fields[0] = &v.X
	g.fields[1] = &v.Y
	g.fields[2] = &v.Width
	g.fields[3] = &v.Height
	return g
}

// tweenValue animates a single field from its current value to to.
func tweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *tweenGroup {
	g := &tweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// fade sets field to 1 and animates it back to 0.
func fade(field *float64, duration float32) *tweenGroup {
	*field = 1
	return tweenValue(field, 0, duration, ease.InQuad)
}
