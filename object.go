package mach

import (
	"context"
	"time"
)

// ObjectID identifies a scene object. IDs are issued in increasing order and
// never reused.
type ObjectID uint32

// objectIDCounter is a plain counter (no atomic: objects are created and
// added from the host goroutine).
var objectIDCounter uint32

func nextObjectID() ObjectID {
	objectIDCounter++
	return ObjectID(objectIDCounter)
}

// Job is a deferred callback run after an object's Update, once per frame.
type Job func(ctx context.Context) error

// SceneObject is anything a Scene can hold. Embed Object to get one:
//
//	type Wave struct {
//		mach.Object
//		phase *mach.Animatable[float64]
//	}
//
// What the scene does with the object each frame depends on which of
// Initializer, Mounter, Updater, Jobber, Sequencer and Cleaner it implements.
type SceneObject interface {
	object() *Object
}

// Initializer is called once when the object is bound to a started scene,
// before its first frame. The object's Ticker and Canvas are available.
type Initializer interface {
	Init() error
}

// Mounter draws static content. Mount runs every frame, before Update.
type Mounter interface {
	Mount(ctx context.Context) error
}

// Updater draws and advances dynamic content every frame.
type Updater interface {
	Update(ctx context.Context) error
}

// Jobber exposes jobs that run, in order, after Update every frame.
type Jobber interface {
	Jobs() []Job
}

// Sequencer is advanced by Scene.IncrementSequence with the step number,
// starting at 0.
type Sequencer interface {
	Sequence(step int)
}

// Cleaner is called when the object is removed or its scene is destroyed.
type Cleaner interface {
	Cleanup()
}

// Object is the state every scene object carries. The scene refreshes the
// timing fields right before the object's hooks run each frame.
type Object struct {
	id            ObjectID
	scene         *Scene
	canvas        *Canvas
	deltaTime     time.Duration
	frame         uint64
	cartesianUnit float64
	once          map[string]struct{}
}

func (o *Object) object() *Object { return o }

// ID returns the object's identity, issuing it on first use.
func (o *Object) ID() ObjectID {
	if o.id == 0 {
		o.id = nextObjectID()
	}
	return o.id
}

// Scene returns the scene the object is bound to, or nil.
func (o *Object) Scene() *Scene { return o.scene }

// Canvas returns the drawing context of the owning scene, or nil.
func (o *Object) Canvas() *Canvas { return o.canvas }

// DeltaTime returns the duration of the previous frame.
func (o *Object) DeltaTime() time.Duration { return o.deltaTime }

// Frame returns the number of frames the scene had completed when the
// current frame began.
func (o *Object) Frame() uint64 { return o.frame }

// CartesianUnit returns how many layout pixels one Cartesian unit spans.
func (o *Object) CartesianUnit() float64 { return o.cartesianUnit }

// Ticker returns the owning scene's ticker, for creating Animatables and
// Transformables. Nil when the object is not bound.
func (o *Object) Ticker() *Ticker {
	if o.scene == nil {
		return nil
	}
	return o.scene.ticker
}

// Once calls fn the first time it is called with key and reports whether
// fn ran.
func (o *Object) Once(key string, fn func()) bool {
	if _, done := o.once[key]; done {
		return false
	}
	if o.once == nil {
		o.once = make(map[string]struct{})
	}
	o.once[key] = struct{}{}
	fn()
	return true
}

// Zoom eases the owning scene to scale. No-op when unbound.
func (o *Object) Zoom(scale float64) {
	if o.scene != nil {
		o.scene.Zoom(scale)
	}
}

func (o *Object) bind(s *Scene) {
	o.ID()
	o.scene = s
	o.canvas = s.canvas
	o.deltaTime = s.deltaTime
	o.frame = s.frame
	o.cartesianUnit = s.cartesianUnit
}

func (o *Object) unbind() {
	o.scene = nil
	o.canvas = nil
}

func (o *Object) beforeUpdate(dt time.Duration, frame uint64, unit float64) {
	o.deltaTime = dt
	o.frame = frame
	o.cartesianUnit = unit
}

// UpdateFunc adapts a function to a SceneObject with an Update hook.
type UpdateFunc struct {
	Object
	Fn func(ctx context.Context, o *Object) error
}

// NewUpdateFunc wraps fn in a scene object.
func NewUpdateFunc(fn func(ctx context.Context, o *Object) error) *UpdateFunc {
	return &UpdateFunc{Fn: fn}
}

// Update implements Updater.
func (u *UpdateFunc) Update(ctx context.Context) error {
	if u.Fn == nil {
		return nil
	}
	return u.Fn(ctx, &u.Object)
}
