package mach

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"time"
)

var (
	// ErrNoSurface is returned by NewScene when it is given no surface.
	ErrNoSurface = errors.New("mach: scene needs a drawing surface")
	// ErrSceneDestroyed is returned by operations on a destroyed scene.
	ErrSceneDestroyed = errors.New("mach: scene destroyed")
)

// HookError reports a failing object hook. Scene.Update joins one per failing
// object.
type HookError struct {
	Object ObjectID
	Hook   string
	Err    error
}

func (e *HookError) Error() string {
	return fmt.Sprintf("mach: object %d %s: %v", e.Object, e.Hook, e.Err)
}

func (e *HookError) Unwrap() error { return e.Err }

// Scene owns a surface, the objects drawn on it and their frame loop.
//
// Each call to Update is one frame: the surface is cleared, every object's
// Mount, Update and Jobs hooks run in insertion order, then the frame
// counter, delta time, ticker and Cartesian unit advance. An object that
// fails a hook skips its remaining hooks for that frame; the others still
// run.
//
// A Scene is not safe for concurrent use. Drive it from one goroutine, as
// Run does.
type Scene struct {
	id       SceneID
	cfg      SceneConfig
	debug    bool
	surface  Surface
	canvas   *Canvas
	registry *Registry
	ticker   *Ticker
	clock    Clock

	objects []SceneObject
	members map[*Object]struct{}

	started   bool
	running   bool
	destroyed bool

	frame         uint64
	deltaTime     time.Duration
	then          time.Time
	cartesianUnit float64
	sequenceStep  int

	// Input state
	input           InputSource
	handlers        handlerRegistry
	pointer         pointerState
	dragDeadZone    float64
	injectQueue     []syntheticEvent
	sink            EventSink
	testRunner      *TestRunner
	screenshotQueue []string
}

// NewScene creates a scene drawing to surface. The scene's transform is set
// to cfg.Zoom immediately and the surface takes cfg.Resolution. A zero cfg
// means DefaultSceneConfig; otherwise only zero Resolution, Zoom, Clock and
// ScreenshotDir are filled in.
func NewScene(surface Surface, cfg SceneConfig) (*Scene, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if cfg == (SceneConfig{}) {
		cfg = DefaultSceneConfig()
	}
	cfg = cfg.withDefaults()

	s := &Scene{
		id:           nextSceneID(),
		cfg:          cfg,
		debug:        cfg.Debug,
		surface:      surface,
		registry:     cfg.Registry,
		ticker:       NewTicker(),
		clock:        cfg.Clock,
		members:      make(map[*Object]struct{}),
		dragDeadZone: defaultDragDeadZone,
	}
	if s.registry == nil {
		s.registry = NewRegistry()
	}
	s.registry.Register(s.id, s.ticker)
	s.registry.SetScaleImmediate(s.id, cfg.Zoom)
	surface.SetResolution(cfg.Resolution)
	s.canvas = NewCanvas(surface, s.registry, s.id)
	s.cartesianUnit = s.computeCartesianUnit()

	if s.debug {
		w, h := surface.Size()
		s.logf("scene %d created (%dx%d, resolution %v, zoom %v)", s.id, w, h, cfg.Resolution, cfg.Zoom)
	}
	return s, nil
}

// ID returns the scene's identity in its registry.
func (s *Scene) ID() SceneID { return s.id }

// Config returns the options the scene was created with, defaults applied.
func (s *Scene) Config() SceneConfig { return s.cfg }

// Surface returns the scene's drawing surface.
func (s *Scene) Surface() Surface { return s.surface }

// Canvas returns the drawing context bound to this scene.
func (s *Scene) Canvas() *Canvas { return s.canvas }

// Registry returns the registry holding the scene's transform.
func (s *Scene) Registry() *Registry { return s.registry }

// Ticker returns the ticker advanced once per frame. Animations created on it
// are cancelled when the scene is destroyed, after which Ticker returns nil.
func (s *Scene) Ticker() *Ticker {
	if s.destroyed {
		return nil
	}
	return s.ticker
}

// Objects returns the scene's objects in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Scene) Objects() []SceneObject { return s.objects }

// Frame returns the number of completed frames.
func (s *Scene) Frame() uint64 { return s.frame }

// DeltaTime returns the duration of the last completed frame.
func (s *Scene) DeltaTime() time.Duration { return s.deltaTime }

// CartesianUnit returns how many layout pixels one Cartesian unit spans.
func (s *Scene) CartesianUnit() float64 { return s.cartesianUnit }

// SequenceStep returns the step the next IncrementSequence passes.
func (s *Scene) SequenceStep() int { return s.sequenceStep }

// Running reports whether the frame loop is running.
func (s *Scene) Running() bool { return s.running }

// Destroyed reports whether Destroy has been called.
func (s *Scene) Destroyed() bool { return s.destroyed }

// SetDebugMode enables or disables debug logging and misuse panics.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Add appends objects to the scene. Objects already present are skipped. On a
// started scene new objects are bound, and initialized, immediately.
func (s *Scene) Add(objs ...SceneObject) error {
	if s.destroyed {
		if s.debug {
			panic(fmt.Sprintf("mach debug: Add on destroyed scene %d", s.id))
		}
		return ErrSceneDestroyed
	}
	var errs []error
	for _, obj := range objs {
		o := obj.object()
		if _, ok := s.members[o]; ok {
			continue
		}
		s.members[o] = struct{}{}
		s.objects = append(s.objects, obj)
		if s.started {
			if err := s.bind(obj); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if s.debug && len(s.objects) > debugMaxObjects {
		s.logf("warning: scene %d has %d objects (threshold %d)", s.id, len(s.objects), debugMaxObjects)
	}
	return errors.Join(errs...)
}

// Remove takes objects out of the scene, calling Cleanup on those that
// implement Cleaner. Unknown objects are ignored.
func (s *Scene) Remove(objs ...SceneObject) {
	for _, obj := range objs {
		o := obj.object()
		if _, ok := s.members[o]; !ok {
			continue
		}
		delete(s.members, o)
		for i, cur := range s.objects {
			if cur.object() == o {
				copy(s.objects[i:], s.objects[i+1:])
				s.objects[len(s.objects)-1] = nil
				s.objects = s.objects[:len(s.objects)-1]
				break
			}
		}
		s.release(obj)
	}
}

// Has reports whether obj is in the scene.
func (s *Scene) Has(obj SceneObject) bool {
	_, ok := s.members[obj.object()]
	return ok
}

// Start sizes the surface from its layout box, binds every object and
// starts the frame loop. Errors from Init hooks are joined and returned; the
// scene starts regardless.
func (s *Scene) Start() error {
	if s.destroyed {
		return ErrSceneDestroyed
	}
	if s.running {
		return nil
	}
	s.Resize()
	s.cartesianUnit = s.computeCartesianUnit()
	s.then = s.clock.Now()

	var errs []error
	if !s.started {
		s.started = true
		for _, obj := range s.objects {
			if err := s.bind(obj); err != nil {
				errs = append(errs, err)
			}
		}
	}
	s.running = true
	if s.debug {
		s.logf("scene %d started with %d objects", s.id, len(s.objects))
	}
	return errors.Join(errs...)
}

// Stop ends the frame loop after the current frame. Start resumes it.
func (s *Scene) Stop() {
	if s.running && s.debug {
		s.logf("scene %d stopped at frame %d", s.id, s.frame)
	}
	s.running = false
}

// Destroy stops the scene, cancels every animation on its ticker, releases
// its transform and removes all objects and callbacks.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.Stop()
	s.destroyed = true
	s.ticker.Stop()
	s.registry.Release(s.id)
	for _, obj := range s.objects {
		s.release(obj)
	}
	clear(s.objects)
	s.objects = s.objects[:0]
	clear(s.members)
	s.handlers = handlerRegistry{}
	s.injectQueue = s.injectQueue[:0]
	s.screenshotQueue = s.screenshotQueue[:0]
	s.input = nil
	s.sink = nil
	s.testRunner = nil
	if s.debug {
		s.logf("scene %d destroyed", s.id)
	}
}

// Resize sizes the surface to its layout box times the resolution.
func (s *Scene) Resize() {
	box := s.surface.LayoutBox()
	if box.Width <= 0 || box.Height <= 0 {
		return
	}
	res := s.surface.Resolution()
	s.surface.Resize(int(box.Width*res), int(box.Height*res))
}

// Update runs one frame. It does nothing unless the scene is running.
// Hook failures are returned joined as *HookError values; they never stop
// other objects from running.
func (s *Scene) Update(ctx context.Context) error {
	if s.destroyed {
		return ErrSceneDestroyed
	}
	if !s.running {
		return nil
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	now := s.clock.Now()

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.surface.Clear(s.cfg.Background)

	var errs []error
	// Hooks may add or remove objects. The frame runs over the objects present
	// when it began, minus any removed along the way.
	for _, obj := range slices.Clone(s.objects) {
		if _, ok := s.members[obj.object()]; !ok {
			continue
		}
		obj.object().beforeUpdate(s.deltaTime, s.frame, s.cartesianUnit)
		if err := runHooks(ctx, obj, &stats); err != nil {
			errs = append(errs, err)
			if s.debug {
				s.logf("%v", err)
			}
		}
	}

	if s.debug {
		stats.hookTime = time.Since(t0)
		t0 = time.Now()
	}

	s.frame++
	s.deltaTime = now.Sub(s.then)
	s.then = now
	stats.taskCount = s.ticker.Len()
	s.ticker.Tick(s.deltaTime)
	s.cartesianUnit = s.computeCartesianUnit()

	if s.debug {
		stats.tickTime = time.Since(t0)
		stats.objectCount = len(s.objects)
		s.debugLog(stats)
	}

	s.flushScreenshots()

	return errors.Join(errs...)
}

// runHooks calls obj's Mount, Update and Jobs hooks in that order and stops
// at the first failure.
func runHooks(ctx context.Context, obj SceneObject, stats *debugStats) error {
	id := obj.object().ID()
	if m, ok := obj.(Mounter); ok {
		stats.mounts++
		if err := m.Mount(ctx); err != nil {
			return &HookError{Object: id, Hook: "mount", Err: err}
		}
	}
	if u, ok := obj.(Updater); ok {
		stats.updates++
		if err := u.Update(ctx); err != nil {
			return &HookError{Object: id, Hook: "update", Err: err}
		}
	}
	if j, ok := obj.(Jobber); ok {
		for i, job := range j.Jobs() {
			if job == nil {
				continue
			}
			stats.jobs++
			if err := job(ctx); err != nil {
				return &HookError{Object: id, Hook: fmt.Sprintf("job %d", i), Err: err}
			}
		}
	}
	return nil
}

// IncrementSequence calls Sequence with the current step on every object
// that implements Sequencer, in insertion order, then advances the step.
// It is independent of the frame loop.
func (s *Scene) IncrementSequence() {
	if s.destroyed {
		return
	}
	step := s.sequenceStep
	for _, obj := range s.objects {
		if sq, ok := obj.(Sequencer); ok {
			sq.Sequence(step)
		}
	}
	s.sequenceStep++
	s.fireSequence(step)
	if s.debug {
		s.logf("scene %d sequence step %d", s.id, step)
	}
}

// Zoom eases the scene's scale toward scale. It does nothing once the scene
// is destroyed.
func (s *Scene) Zoom(scale float64) {
	if s.destroyed {
		return
	}
	s.registry.SetScale(s.id, scale)
}

// CartesianToDevice converts a Cartesian point to device pixels.
func (s *Scene) CartesianToDevice(x, y float64) (dx, dy float64, ok bool) {
	return s.canvas.CartesianToDevice(x, y)
}

// DeviceToCartesian converts device pixels to a Cartesian point.
func (s *Scene) DeviceToCartesian(dx, dy float64) (x, y float64, ok bool) {
	return s.canvas.DeviceToCartesian(dx, dy)
}

// DOMToCartesian converts window coordinates to a Cartesian point.
func (s *Scene) DOMToCartesian(x, y float64) (cx, cy float64, ok bool) {
	return s.canvas.DOMToCartesian(x, y)
}

// VisibleBounds returns the Cartesian rectangle currently on screen.
func (s *Scene) VisibleBounds() Bounds {
	return s.canvas.VisibleBounds()
}

// computeCartesianUnit returns the layout pixels spanned by one Cartesian
// unit at the current scale.
func (s *Scene) computeCartesianUnit() float64 {
	x0, _, _ := s.canvas.CartesianToDevice(0, 0)
	x1, _, _ := s.canvas.CartesianToDevice(1, 0)
	res := s.surface.Resolution()
	if res <= 0 {
		res = 1
	}
	return (x1 - x0) / res
}

func (s *Scene) bind(obj SceneObject) error {
	o := obj.object()
	o.bind(s)
	if in, ok := obj.(Initializer); ok {
		if err := in.Init(); err != nil {
			return &HookError{Object: o.id, Hook: "init", Err: err}
		}
	}
	return nil
}

func (s *Scene) release(obj SceneObject) {
	if c, ok := obj.(Cleaner); ok {
		c.Cleanup()
	}
	obj.object().unbind()
}

func (s *Scene) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[mach] "+format+"\n", args...)
}
