package mach

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrShapeMismatch is returned when an Animatable is given a value whose
	// shape differs from its current one (slice length or map key set).
	ErrShapeMismatch = errors.New("mach: animatable shape mismatch")
	// ErrBlendRange is returned by Animate for a blend factor outside (0, 1].
	ErrBlendRange = errors.New("mach: blend factor out of range")
)

const (
	// DefaultBlend is the per-frame blend factor used by Animatable.Set.
	DefaultBlend = 0.05
	// DefaultPrecision is the distance below which an Animatable snaps to its
	// target.
	DefaultPrecision = 0.001
)

// Value is the set of shapes an Animatable can hold: a scalar, a fixed-length
// tuple or a flat record of named numbers.
type Value interface {
	float64 | []float64 | map[string]float64
}

// Animatable is a value that eases toward a target one frame at a time.
// Each tick moves every component a fixed fraction of the remaining distance.
// Once no component is further than the precision from its target, the
// current value is set exactly to the target and the task ends.
//
// An Animatable runs as a single Task on its Ticker. Retargeting while the
// task is live only moves the target; the running blend factor is kept.
// An Animatable without a ticker applies every target immediately.
type Animatable[T Value] struct {
	current   T
	target    T
	blend     float64
	precision float64
	ticker    *Ticker
	task      *Task
}

// NewAnimatable creates an Animatable at rest on initial. Slices and maps are
// copied, so the caller may reuse initial.
func NewAnimatable[T Value](ticker *Ticker, initial T) *Animatable[T] {
	return &Animatable[T]{
		current:   cloneValue(initial),
		target:    cloneValue(initial),
		blend:     DefaultBlend,
		precision: DefaultPrecision,
		ticker:    ticker,
	}
}

// Read returns a copy of the current value.
func (a *Animatable[T]) Read() T {
	return cloneValue(a.current)
}

// Target returns a copy of the value being eased toward.
func (a *Animatable[T]) Target() T {
	return cloneValue(a.target)
}

// Set eases toward target with DefaultBlend.
func (a *Animatable[T]) Set(target T) error {
	return a.Animate(target, DefaultBlend)
}

// Animate eases toward target, moving blend of the remaining distance per
// tick. blend must be in (0, 1]; anything else returns ErrBlendRange. If an
// ease is already running only its target changes. Without a live ticker the
// target applies immediately.
func (a *Animatable[T]) Animate(target T, blend float64) error {
	if !(blend > 0 && blend <= 1) {
		return fmt.Errorf("%w: %v", ErrBlendRange, blend)
	}
	if err := sameShape(a.current, target); err != nil {
		return err
	}
	a.target = cloneValue(target)
	if a.ticker == nil || a.ticker.Stopped() {
		a.current = cloneValue(target)
		return nil
	}
	if a.task.Active() {
		return nil
	}
	a.blend = blend
	a.task = a.ticker.Schedule(a.step)
	return nil
}

// SetImmediate sets both the current value and the target, cancelling any
// ease in progress.
func (a *Animatable[T]) SetImmediate(v T) error {
	if err := sameShape(a.current, v); err != nil {
		return err
	}
	a.task.Cancel()
	a.task = nil
	a.current = cloneValue(v)
	a.target = cloneValue(v)
	return nil
}

// SetPrecision sets the snap distance. Non-positive values restore
// DefaultPrecision.
func (a *Animatable[T]) SetPrecision(p float64) {
	if !(p > 0) {
		p = DefaultPrecision
	}
	a.precision = p
}

// Precision returns the snap distance.
func (a *Animatable[T]) Precision() float64 {
	return a.precision
}

// Active reports whether an ease is in progress.
func (a *Animatable[T]) Active() bool {
	return a.task.Active()
}

// Stop cancels the ease in progress, leaving the current value where it is.
func (a *Animatable[T]) Stop() {
	a.task.Cancel()
	a.task = nil
	a.target = cloneValue(a.current)
}

func (a *Animatable[T]) step(time.Duration) bool {
	var dist float64
	switch cur := any(a.current).(type) {
	case float64:
		tgt := any(a.target).(float64)
		next := Lerp(cur, tgt, a.blend)
		dist = math.Abs(tgt - next)
		a.current = any(next).(T)
	case []float64:
		tgt := any(a.target).([]float64)
		for i := range cur {
			cur[i] = Lerp(cur[i], tgt[i], a.blend)
			dist = math.Max(dist, math.Abs(tgt[i]-cur[i]))
		}
	case map[string]float64:
		tgt := any(a.target).(map[string]float64)
		for k, v := range cur {
			cur[k] = Lerp(v, tgt[k], a.blend)
			dist = math.Max(dist, math.Abs(tgt[k]-cur[k]))
		}
	}
	if dist <= a.precision || math.IsNaN(dist) {
		a.current = cloneValue(a.target)
		return true
	}
	return false
}

func cloneValue[T Value](v T) T {
	switch x := any(v).(type) {
	case []float64:
		if x == nil {
			return v
		}
		return any(append([]float64(nil), x...)).(T)
	case map[string]float64:
		if x == nil {
			return v
		}
		m := make(map[string]float64, len(x))
		for k, val := range x {
			m[k] = val
		}
		return any(m).(T)
	}
	return v
}

func sameShape[T Value](cur, next T) error {
	switch c := any(cur).(type) {
	case []float64:
		n := any(next).([]float64)
		if len(c) != len(n) {
			return fmt.Errorf("%w: length %d, got %d", ErrShapeMismatch, len(c), len(n))
		}
	case map[string]float64:
		n := any(next).(map[string]float64)
		if len(c) != len(n) {
			return fmt.Errorf("%w: %d keys, got %d", ErrShapeMismatch, len(c), len(n))
		}
		for k := range c {
			if _, ok := n[k]; !ok {
				return fmt.Errorf("%w: missing key %q", ErrShapeMismatch, k)
			}
		}
	}
	return nil
}
