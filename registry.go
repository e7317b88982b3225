package mach

import (
	"math"
	"time"
)

const (
	// DefaultScale is the number of device pixels per Cartesian unit used for
	// scenes that have not set a scale.
	DefaultScale = 60.0
	// MinScale is the smallest scale the registry accepts.
	MinScale = 1.0

	scaleBlend     = 0.1
	scaleTolerance = 0.1
)

// SceneID identifies a scene's entry in a Registry.
type SceneID uint32

// sceneIDCounter is a plain counter (no atomic: scenes are created from the
// host goroutine).
var sceneIDCounter uint32

func nextSceneID() SceneID {
	sceneIDCounter++
	return SceneID(sceneIDCounter)
}

// Transform is the coordinate state of one scene: the current scale, the
// scale it is easing toward, and the pan offset in device pixels.
type Transform struct {
	Scale       float64
	TargetScale float64
	PanX, PanY  float64
}

func defaultTransform() Transform {
	return Transform{Scale: DefaultScale, TargetScale: DefaultScale}
}

type transformEntry struct {
	Transform
	ticker *Ticker
	easing *Task
}

// Registry holds the Transform of every scene that uses it. Scenes created
// without an explicit registry get a private one; pass the same Registry to
// several scenes to inspect them from one place.
//
// Reading an id that was never written yields DefaultScale and zero pan. The
// entry is only materialized by a write.
type Registry struct {
	entries map[SceneID]*transformEntry
	ticker  *Ticker
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[SceneID]*transformEntry),
		ticker:  NewTicker(),
	}
}

// entry returns the entry for id, creating it with defaults if needed.
func (r *Registry) entry(id SceneID) *transformEntry {
	e, ok := r.entries[id]
	if !ok {
		e = &transformEntry{Transform: defaultTransform()}
		r.entries[id] = e
	}
	return e
}

// Register binds the ticker that drives id's zoom easing. Scenes call this
// on creation with their own ticker.
func (r *Registry) Register(id SceneID, ticker *Ticker) {
	r.entry(id).ticker = ticker
}

// Release cancels id's easing and forgets its state.
func (r *Registry) Release(id SceneID) {
	if e, ok := r.entries[id]; ok {
		e.easing.Cancel()
		delete(r.entries, id)
	}
}

// Tick advances easing for entries that have no ticker of their own.
func (r *Registry) Tick(dt time.Duration) {
	r.ticker.Tick(dt)
}

// Len returns the number of materialized entries.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Get returns a snapshot of id's transform.
func (r *Registry) Get(id SceneID) Transform {
	if e, ok := r.entries[id]; ok {
		return e.Transform
	}
	return defaultTransform()
}

// Scale returns id's current scale.
func (r *Registry) Scale(id SceneID) float64 {
	return r.Get(id).Scale
}

// TargetScale returns the scale id is easing toward.
func (r *Registry) TargetScale(id SceneID) float64 {
	return r.Get(id).TargetScale
}

// Animating reports whether id's scale is still easing.
func (r *Registry) Animating(id SceneID) bool {
	e, ok := r.entries[id]
	return ok && e.easing.Active()
}

// SetScale eases id's scale toward scale, moving a tenth of the remaining
// distance per frame until it is within 0.1. Calls made while an ease is
// running only move the target.
func (r *Registry) SetScale(id SceneID, scale float64) {
	e := r.entry(id)
	e.TargetScale = clampScale(scale)
	if e.easing.Active() {
		return
	}
	ticker := e.ticker
	if ticker == nil {
		ticker = r.ticker
	}
	e.easing = ticker.Schedule(func(time.Duration) bool {
		e.Scale = Lerp(e.Scale, e.TargetScale, scaleBlend)
		return math.Abs(e.Scale-e.TargetScale) <= scaleTolerance
	})
}

// SetScaleImmediate sets both the scale and its target and cancels any ease
// in progress.
func (r *Registry) SetScaleImmediate(id SceneID, scale float64) {
	e := r.entry(id)
	e.easing.Cancel()
	e.easing = nil
	e.Scale = clampScale(scale)
	e.TargetScale = e.Scale
}

// Pan returns id's pan offset in device pixels.
func (r *Registry) Pan(id SceneID) (x, y float64) {
	t := r.Get(id)
	return t.PanX, t.PanY
}

// PanBy moves id's view by (dx, dy) device pixels.
func (r *Registry) PanBy(id SceneID, dx, dy float64) {
	e := r.entry(id)
	e.PanX += dx
	e.PanY += dy
}

// SetPan sets id's pan offset.
func (r *Registry) SetPan(id SceneID, x, y float64) {
	e := r.entry(id)
	e.PanX = x
	e.PanY = y
}

func clampScale(s float64) float64 {
	if !(s >= MinScale) {
		return MinScale
	}
	return s
}

// --- Conversions ---

// ViewMatrix returns the Cartesian -> device affine matrix for id on s.
func (r *Registry) ViewMatrix(s Sizer, id SceneID) [6]float64 {
	w, h := s.Size()
	return viewAffine(float64(w), float64(h), r.Get(id))
}

// CartesianToDevice converts a Cartesian point to device pixels on s.
// If either coordinate is Undefined the result is (Undefined, Undefined,
// false): the point is unplottable and should be skipped.
func (r *Registry) CartesianToDevice(s Sizer, id SceneID, x, y float64) (dx, dy float64, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return Undefined, Undefined, false
	}
	dx, dy = transformPoint(r.ViewMatrix(s, id), x, y)
	return dx, dy, true
}

// DeviceToCartesian is the inverse of CartesianToDevice.
func (r *Registry) DeviceToCartesian(s Sizer, id SceneID, dx, dy float64) (x, y float64, ok bool) {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		return Undefined, Undefined, false
	}
	x, y = transformPoint(invertAffine(r.ViewMatrix(s, id)), dx, dy)
	return x, y, true
}

// DOMToCartesian converts layout (window) coordinates to Cartesian ones. The
// point is made relative to the surface's layout box and multiplied by its
// resolution before the device -> Cartesian step.
func (r *Registry) DOMToCartesian(s Surface, id SceneID, x, y float64) (cx, cy float64, ok bool) {
	box := s.LayoutBox()
	res := s.Resolution()
	return r.DeviceToCartesian(s, id, (x-box.X)*res, (y-box.Y)*res)
}

// VisibleBounds returns the Cartesian rectangle currently visible on s.
func (r *Registry) VisibleBounds(s Sizer, id SceneID) Bounds {
	w, h := s.Size()
	inv := invertAffine(r.ViewMatrix(s, id))

	fw, fh := float64(w), float64(h)

	// Transform the four surface corners to Cartesian space.
	x0, y0 := transformPoint(inv, 0, 0)
	x1, y1 := transformPoint(inv, fw, 0)
	x2, y2 := transformPoint(inv, fw, fh)
	x3, y3 := transformPoint(inv, 0, fh)

	return Bounds{
		XMin: math.Min(math.Min(x0, x1), math.Min(x2, x3)),
		XMax: math.Max(math.Max(x0, x1), math.Max(x2, x3)),
		YMin: math.Min(math.Min(y0, y1), math.Min(y2, y3)),
		YMax: math.Max(math.Max(y0, y1), math.Max(y2, y3)),
	}
}

// PolarToCartesian converts polar coordinates to Cartesian ones. Undefined
// inputs produce Undefined outputs.
func PolarToCartesian(r, theta float64) (x, y float64) {
	sin, cos := math.Sincos(theta)
	return r * cos, r * sin
}

// CartesianToPolar converts a Cartesian point to (radius, angle).
func CartesianToPolar(x, y float64) (r, theta float64) {
	return math.Hypot(x, y), math.Atan2(y, x)
}
