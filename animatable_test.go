package mach

import (
	"errors"
	"math"
	"testing"
)

// runUntilIdle ticks tk until it has no tasks left and returns the number of
// ticks. It gives up after limit ticks.
func runUntilIdle(tk *Ticker, limit int) int {
	n := 0
	for tk.Len() > 0 && n < limit {
		tk.Tick(0)
		n++
	}
	return n
}

func TestAnimatableScalarConvergesExactly(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, 0.0)
	if err := a.Set(1); err != nil {
		t.Fatal(err)
	}

	tk.Tick(0)
	assertNear(t, "after one tick", a.Read(), DefaultBlend)

	n := 1 + runUntilIdle(tk, 1000)
	if a.Active() {
		t.Fatal("animation never finished")
	}
	if got := a.Read(); got != 1 {
		t.Errorf("final value = %v, want exactly 1", got)
	}
	// 0.95^n <= 0.001 first holds at n = 135.
	if n != 135 {
		t.Errorf("converged in %d ticks, want 135", n)
	}
}

func TestAnimatableSliceConverges(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, []float64{0, 10, -5})
	if err := a.Animate([]float64{1, 10, 5}, 0.5); err != nil {
		t.Fatal(err)
	}
	runUntilIdle(tk, 1000)

	got := a.Read()
	want := []float64{1, 10, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAnimatableMapConverges(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, map[string]float64{"x": 0, "y": 0})
	if err := a.Set(map[string]float64{"x": 3, "y": -2}); err != nil {
		t.Fatal(err)
	}
	runUntilIdle(tk, 1000)

	got := a.Read()
	if got["x"] != 3 || got["y"] != -2 {
		t.Errorf("final = %v, want x=3 y=-2", got)
	}
}

func TestAnimatableShapeMismatch(t *testing.T) {
	tk := NewTicker()

	s := NewAnimatable(tk, []float64{1, 2})
	if err := s.Set([]float64{1, 2, 3}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("slice length change: err = %v, want ErrShapeMismatch", err)
	}
	if err := s.SetImmediate([]float64{1}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("SetImmediate length change: err = %v, want ErrShapeMismatch", err)
	}

	m := NewAnimatable(tk, map[string]float64{"a": 1})
	if err := m.Set(map[string]float64{"b": 1}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("map key change: err = %v, want ErrShapeMismatch", err)
	}
	if err := m.Set(map[string]float64{"a": 1, "b": 2}); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("map key added: err = %v, want ErrShapeMismatch", err)
	}
	if tk.Len() != 0 {
		t.Errorf("rejected targets scheduled %d tasks", tk.Len())
	}
}

func TestAnimatableBlendRange(t *testing.T) {
	for _, blend := range []float64{0, -0.5, 1.5, 2, math.NaN()} {
		tk := NewTicker()
		a := NewAnimatable(tk, 0.0)
		if err := a.Animate(1, blend); !errors.Is(err, ErrBlendRange) {
			t.Errorf("Animate(1, %v) err = %v, want ErrBlendRange", blend, err)
		}
		if tk.Len() != 0 || a.Target() != 0 {
			t.Errorf("blend %v: tasks, target = %d, %v, want 0, 0", blend, tk.Len(), a.Target())
		}
	}

	tk := NewTicker()
	a := NewAnimatable(tk, 0.0)
	if err := a.Animate(4, 1); err != nil {
		t.Fatal(err)
	}
	tk.Tick(0)
	if a.Read() != 4 || a.Active() {
		t.Errorf("blend 1: Read, Active = %v, %v, want 4, false", a.Read(), a.Active())
	}
}

func TestAnimatableReadReturnsCopy(t *testing.T) {
	a := NewAnimatable(NewTicker(), []float64{1, 2})
	v := a.Read()
	v[0] = 99
	if a.Read()[0] != 1 {
		t.Error("mutating Read result changed the animatable")
	}

	init := []float64{5, 6}
	b := NewAnimatable(nil, init)
	init[0] = 0
	if b.Read()[0] != 5 {
		t.Error("mutating the initial slice changed the animatable")
	}
}

func TestAnimatableRetargetKeepsBlend(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, 0.0)
	_ = a.Animate(1, 0.5)
	tk.Tick(0)
	assertNear(t, "first tick", a.Read(), 0.5)

	// A second Animate while running only moves the target.
	_ = a.Animate(2, 0.01)
	if tk.Len() != 1 {
		t.Fatalf("tasks = %d, want 1", tk.Len())
	}
	tk.Tick(0)
	assertNear(t, "second tick", a.Read(), 1.25)
	if got := a.Target(); got != 2 {
		t.Errorf("Target = %v, want 2", got)
	}
}

func TestAnimatableNilTickerAppliesImmediately(t *testing.T) {
	a := NewAnimatable(nil, 0.0)
	if err := a.Set(7); err != nil {
		t.Fatal(err)
	}
	if got := a.Read(); got != 7 {
		t.Errorf("Read = %v, want 7", got)
	}
	if a.Active() {
		t.Error("animatable without ticker should never be active")
	}
}

func TestAnimatableSetImmediateCancels(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, 0.0)
	_ = a.Set(10)
	tk.Tick(0)
	_ = a.SetImmediate(-1)

	if a.Active() {
		t.Error("SetImmediate should cancel the ease")
	}
	tk.Tick(0)
	if got := a.Read(); got != -1 {
		t.Errorf("Read = %v, want -1", got)
	}
}

func TestAnimatableStop(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, 0.0)
	_ = a.Animate(10, 0.5)
	tk.Tick(0)
	a.Stop()
	tk.Tick(0)

	if got := a.Read(); got != 5 {
		t.Errorf("Read = %v, want 5", got)
	}
	if got := a.Target(); got != 5 {
		t.Errorf("Target after Stop = %v, want 5", got)
	}
}

func TestAnimatablePrecision(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, 0.0)
	a.SetPrecision(0.5)
	_ = a.Animate(1, 0.5)
	tk.Tick(0)

	// 0.5 away is within precision: snap.
	if got := a.Read(); got != 1 {
		t.Errorf("Read = %v, want 1", got)
	}
	a.SetPrecision(-1)
	if a.Precision() != DefaultPrecision {
		t.Errorf("Precision = %v, want default", a.Precision())
	}
}

func TestAnimatableRestartAfterFinish(t *testing.T) {
	tk := NewTicker()
	a := NewAnimatable(tk, 0.0)
	_ = a.Animate(1, 1)
	runUntilIdle(tk, 10)
	_ = a.Animate(0, 1)
	if !a.Active() {
		t.Error("a new target after finishing should start a new ease")
	}
	runUntilIdle(tk, 10)
	if a.Read() != 0 {
		t.Errorf("Read = %v, want 0", a.Read())
	}
}
