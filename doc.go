// Package mach is a small toolkit for animated 2D math scenes on
// [Ebitengine]: function graphs, vectors, polar curves and captions on a
// Cartesian plane that can be zoomed, panned and stepped through.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window, a
// [Scene] and its frame loop:
//
//	wave := mach.NewUpdateFunc(func(ctx context.Context, o *mach.Object) error {
//		c := o.Canvas()
//		mach.Axis(c, mach.AxisGray(1))
//		mach.Plot(c, math.Sin, mach.Blue, 3)
//		return nil
//	})
//	if err := mach.Run(ctx, mach.RunConfig{Title: "sin"}, wave); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, create the scene yourself on any [Surface] and call
// [Scene.Start] and [Scene.Update] once per frame.
//
// # Coordinates
//
// Every scene has a transform in a [Registry]: a scale in device pixels per
// Cartesian unit and a pan offset in device pixels. The origin sits at the
// center of the surface, Y grows upward. [Canvas] converts between
// Cartesian, device and window (layout) coordinates; device pixels are
// layout pixels times the surface resolution.
//
// # Scene objects
//
// Embed [Object] in a struct to make a scene object. What the scene does
// with it each frame depends on the hooks it implements: [Mounter] and
// [Updater] draw, [Jobber] runs follow-up jobs, [Sequencer] reacts to
// [Scene.IncrementSequence] and [Initializer]/[Cleaner] bracket its life in
// the scene. A failing hook only affects its own object.
//
// # Animation
//
// [Animatable] eases a number, slice or map toward a target on the scene's
// [Ticker]. [Transformable] cross-fades between several functions, their
// colors and their line weights. Timed tweens ([Scene.ZoomTo],
// [Scene.PanTo], [NewTween]) use [gween] easing functions.
//
// # Input and testing
//
// With interactivity on, the wheel zooms and a left-button drag pans.
// Clicks, pans, zooms and sequence steps can be observed with
// [Scene.OnClick] and friends, injected with [Scene.InjectClick] and
// friends, or scripted with [LoadTestScript]. [Scene.Screenshot] writes the
// rendered frame to a PNG.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package mach
