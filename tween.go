package mach

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values over a fixed duration and hands them to
// an apply function after each step. Unlike Animatable, which approaches its
// target asymptotically, a tween reaches its end value exactly when the
// duration has elapsed.
//
// Groups created through Scene.ZoomTo, Scene.PanTo or NewTween run on a
// Ticker; a bare group can also be driven by calling Update directly.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	values [4]float64
	apply  func(v []float64)
	task   *Task
	Done   bool
}

// Update advances all tweens by dt seconds and applies the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.values[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
	if g.apply != nil {
		g.apply(g.values[:g.count])
	}
}

// Values returns the last applied values.
func (g *TweenGroup) Values() []float64 {
	return append([]float64(nil), g.values[:g.count]...)
}

// Cancel stops the group where it is.
func (g *TweenGroup) Cancel() {
	g.Done = true
	g.task.Cancel()
}

// newTweenGroup builds a group from matching from/to values. Extra values
// beyond 4 are ignored.
func newTweenGroup(from, to []float64, duration time.Duration, fn ease.TweenFunc, apply func(v []float64)) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{apply: apply}
	g.count = min(len(from), len(to), len(g.tweens))
	for i := 0; i < g.count; i++ {
		g.tweens[i] = gween.New(float32(from[i]), float32(to[i]), float32(duration.Seconds()), fn)
		g.values[i] = from[i]
	}
	return g
}

// schedule runs g on ticker, one Update per tick with the tick's delta.
func (g *TweenGroup) schedule(ticker *Ticker) *TweenGroup {
	g.task = ticker.Schedule(func(dt time.Duration) bool {
		g.Update(float32(dt.Seconds()))
		return g.Done
	})
	return g
}

// NewTween tweens from toward to over duration on ticker, calling apply with
// the values after every tick. A nil fn is linear.
func NewTween(ticker *Ticker, from, to []float64, duration time.Duration, fn ease.TweenFunc, apply func(v []float64)) *TweenGroup {
	return newTweenGroup(from, to, duration, fn, apply).schedule(ticker)
}

// ZoomTo tweens the scene's scale to scale over duration. Any asymptotic
// zoom in progress is cancelled. On a destroyed scene the returned group is
// already done.
func (s *Scene) ZoomTo(scale float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	if s.destroyed {
		return &TweenGroup{Done: true}
	}
	from := s.registry.Scale(s.id)
	to := clampScale(scale)
	s.registry.SetScaleImmediate(s.id, from)
	return NewTween(s.ticker, []float64{from}, []float64{to}, duration, fn, func(v []float64) {
		s.registry.SetScaleImmediate(s.id, v[0])
	})
}

// PanTo tweens the scene's pan offset to (x, y) device pixels over duration.
func (s *Scene) PanTo(x, y float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	if s.destroyed {
		return &TweenGroup{Done: true}
	}
	px, py := s.registry.Pan(s.id)
	return NewTween(s.ticker, []float64{px, py}, []float64{x, y}, duration, fn, func(v []float64) {
		s.registry.SetPan(s.id, v[0], v[1])
	})
}
