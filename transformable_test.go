package mach

import (
	"errors"
	"math"
	"testing"
)

func TestNewTransformableNeedsCurves(t *testing.T) {
	_, err := NewTransformable(NewTicker())
	if !errors.Is(err, ErrNoCurves) {
		t.Errorf("err = %v, want ErrNoCurves", err)
	}
}

func TestTransformableStartsOnFirstCurve(t *testing.T) {
	tf, err := NewTransformable(NewTicker(),
		Curve{Fn: Linear(1, 0), Color: Red, Weight: 2},
		Curve{Fn: Linear(2, 0), Color: Blue, Weight: 4},
	)
	if err != nil {
		t.Fatal(err)
	}
	ws := tf.Weights()
	if ws[0] != 1 || ws[1] != 0 {
		t.Errorf("Weights = %v, want [1 0]", ws)
	}
	if tf.Index() != 0 || tf.Len() != 2 {
		t.Errorf("Index, Len = %d, %d, want 0, 2", tf.Index(), tf.Len())
	}
	assertNear(t, "Fn(3)", tf.Fn()(3), 3)
	if tf.Color() != Red {
		t.Errorf("Color = %v, want Red", tf.Color())
	}
	if tf.Weight() != 2 {
		t.Errorf("Weight = %v, want 2", tf.Weight())
	}
}

func TestTransformableCrossFade(t *testing.T) {
	tk := NewTicker()
	tf, _ := NewTransformable(tk,
		Curve{Fn: Linear(1, 0)},
		Curve{Fn: Linear(2, 0)},
		Curve{Fn: Linear(3, 0)},
	)

	i, err := tf.SwapTo(2)
	if err != nil || i != 2 {
		t.Fatalf("SwapTo(2) = %d, %v", i, err)
	}
	tk.Tick(0)
	mid := tf.Weights()
	if !(mid[0] < 1 && mid[2] > 0) {
		t.Errorf("weights after one tick = %v, want fading", mid)
	}

	runUntilIdle(tk, 10000)
	ws := tf.Weights()
	if ws[0] != 0 || ws[1] != 0 || ws[2] != 1 {
		t.Errorf("final weights = %v, want exactly [0 0 1]", ws)
	}
	assertNear(t, "Fn(2)", tf.Fn()(2), 6)
}

func TestTransformableSwapOutOfRange(t *testing.T) {
	tk := NewTicker()
	tf, _ := NewTransformable(tk, Curve{Fn: math.Sin}, Curve{Fn: math.Cos})

	for _, i := range []int{-1, 2, 10} {
		got, err := tf.SwapTo(i)
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("SwapTo(%d) err = %v, want ErrOutOfRange", i, err)
		}
		if got != 0 {
			t.Errorf("SwapTo(%d) = %d, want current index 0", i, got)
		}
	}
	if tk.Len() != 0 {
		t.Errorf("failed swaps scheduled %d tasks", tk.Len())
	}
}

func TestTransformableNextWraps(t *testing.T) {
	tf, _ := NewTransformable(NewTicker(), Curve{Fn: math.Sin}, Curve{Fn: math.Cos})
	if i, _ := tf.Next(); i != 1 {
		t.Errorf("Next = %d, want 1", i)
	}
	if i, _ := tf.Next(); i != 0 {
		t.Errorf("Next = %d, want 0", i)
	}
}

func TestTransformableFnSkipsUndefined(t *testing.T) {
	tf, _ := NewTransformable(nil,
		Curve{Fn: Logarithmic(1, math.E)},
		Curve{Fn: Linear(0, 4)},
	)
	_ = tf.weights[0].SetImmediate(0.5)
	_ = tf.weights[1].SetImmediate(0.5)

	// ln is undefined at -1; only the constant contributes.
	assertNear(t, "Fn(-1)", tf.Fn()(-1), 2)
	assertNear(t, "Fn(1)", tf.Fn()(1), 2)
}

func TestTransformableRenderBlendsStyle(t *testing.T) {
	tf, _ := NewTransformable(nil,
		Curve{Fn: Linear(0, 0), Color: Color{1, 0, 0, 1}, Weight: 2},
		Curve{Fn: Linear(0, 1), Color: Color{0, 0, 1, 1}, Weight: 4},
	)
	_ = tf.weights[0].SetImmediate(0.5)
	_ = tf.weights[1].SetImmediate(0.5)

	var gotColor Color
	var gotWeight float64
	var gotY float64
	tf.Render(nil, func(_ *Canvas, fn func(float64) float64, color Color, weight float64) {
		gotColor, gotWeight, gotY = color, weight, fn(0)
	})

	assertNear(t, "R", gotColor.R, 0.5)
	assertNear(t, "B", gotColor.B, 0.5)
	assertNear(t, "A", gotColor.A, 1)
	assertNear(t, "weight", gotWeight, 3)
	assertNear(t, "y", gotY, 0.5)
}

func TestTransformableRenderKeepsStyleWhenAllWeightsZero(t *testing.T) {
	tf, _ := NewTransformable(nil,
		Curve{Fn: Linear(0, 0), Color: Green, Weight: 5},
		Curve{Fn: Linear(0, 1), Color: Blue, Weight: 1},
	)
	_ = tf.weights[0].SetImmediate(0)

	var gotColor Color
	var gotWeight float64
	tf.Render(nil, func(_ *Canvas, _ func(float64) float64, color Color, weight float64) {
		gotColor, gotWeight = color, weight
	})
	if gotColor != Green || gotWeight != 5 {
		t.Errorf("style = %v, %v, want Green, 5", gotColor, gotWeight)
	}
}

func TestTransformableZeroCurveStyle(t *testing.T) {
	tf, _ := NewTransformable(nil, Curve{Fn: math.Sin})
	if tf.Color() != ColorWhite {
		t.Errorf("Color = %v, want white", tf.Color())
	}
	if tf.Weight() != 1 {
		t.Errorf("Weight = %v, want 1", tf.Weight())
	}
}

func TestTransformableRenderDefaultsToPlot(t *testing.T) {
	c, s := newTestCanvas(200, 100)
	tf, _ := NewTransformable(nil, Curve{Fn: Linear(0, 0), Weight: 3})
	tf.Render(c, nil)

	if len(s.strokes) != 1 {
		t.Fatalf("strokes = %d, want 1", len(s.strokes))
	}
	st := s.strokes[0]
	if st.width != 3 {
		t.Errorf("stroke width = %v, want 3", st.width)
	}
	// y = 0 is the horizontal line through the device center.
	for _, cmd := range st.cmds {
		if cmd.Args[1] != 50 {
			t.Fatalf("point %v is off the x axis", cmd.Args)
		}
	}
}
