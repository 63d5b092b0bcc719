// Package mapquiz is an interactive "find the region" map quiz for
// [Ebitengine].
//
// A map is a set of polygon [Region] values in content units. The player
// pans the map by dragging, zooms with the mouse wheel around the cursor,
// and clicks regions to answer the current prompt.
//
// # Quick start
//
//	m, err := mapquiz.LoadMap("world.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	scene, err := mapquiz.NewScene(m, mapquiz.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := mapquiz.Run(scene); err != nil {
//		log.Fatal(err)
//	}
//
// # Input
//
// Pointer input flows from an [InputSource] through an [InputRouter], which
// hit-tests registered [Surface] values and bubbles events up the parent
// chain. A [GestureClassifier] bound to one or more surfaces turns press,
// move and release into click and drag callbacks. Movement of at least
// [DefaultDragThreshold] pixels from the press position makes the gesture
// a drag and suppresses the click.
//
// A process-wide [PointerLatch] records whether the primary button is held
// anywhere in the window. A press that started outside a classifier's
// surfaces never turns into a drag inside them.
//
// # Viewport
//
// [ViewportController] computes the next visible rectangle of the content
// from a pan displacement, a wheel delta and the pointer position. Zoom is
// anchored at the pointer, keeps the aspect ratio, and is limited to a
// fraction of the content size. Pan is clamped so the viewport never leaves
// the content. [Camera] wraps a controller with the screen mapping used for
// drawing and hit testing, and animates a reset to the home view with
// [gween].
//
// # Scripted play-throughs
//
// [LoadTestScript] reads a JSON script of clicks, drags, scrolls, commands
// and screenshots that [Scene.SetTestRunner] replays frame by frame.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package mapquiz
