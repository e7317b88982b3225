package mach

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCurves is returned by NewTransformable when no curves are given.
	ErrNoCurves = errors.New("mach: transformable needs at least one curve")
	// ErrOutOfRange is returned by Transformable.SwapTo for an index outside
	// [0, N).
	ErrOutOfRange = errors.New("mach: index out of range")
)

// weightPrecision is tighter than DefaultPrecision; the last step of a
// cross-fade is otherwise visible as a jump.
const weightPrecision = 0.0005

// Curve is one shape of a Transformable: a function of x, the color it is
// drawn with and its line weight. A zero Color draws white and a zero Weight
// draws 1 pixel wide.
type Curve struct {
	Fn     func(x float64) float64
	Color  Color
	Weight float64
}

func (c Curve) color() Color {
	if c.Color == (Color{}) {
		return ColorWhite
	}
	return c.Color
}

func (c Curve) weight() float64 {
	if c.Weight <= 0 {
		return 1
	}
	return c.Weight
}

// DrawFunc draws fn on c. Plot is a DrawFunc.
type DrawFunc func(c *Canvas, fn func(x float64) float64, color Color, weight float64)

// Transformable cross-fades between several curves. Each curve has a weight
// that eases toward 1 when it is the target and toward 0 otherwise; the curve
// drawn is the weighted sum of all of them.
type Transformable struct {
	curves  []Curve
	weights []*Animatable[float64]
	color   *Animatable[[]float64]
	weight  *Animatable[float64]
	index   int
}

// NewTransformable creates a Transformable showing the first curve. The
// weights ease on ticker.
func NewTransformable(ticker *Ticker, curves ...Curve) (*Transformable, error) {
	if len(curves) == 0 {
		return nil, ErrNoCurves
	}
	t := &Transformable{
		curves:  append([]Curve(nil), curves...),
		weights: make([]*Animatable[float64], len(curves)),
	}
	for i := range t.weights {
		w := NewAnimatable(ticker, 0.0)
		w.SetPrecision(weightPrecision)
		t.weights[i] = w
	}
	_ = t.weights[0].SetImmediate(1)

	c := curves[0].color()
	t.color = NewAnimatable(nil, []float64{c.R, c.G, c.B, c.A})
	t.weight = NewAnimatable(nil, curves[0].weight())
	return t, nil
}

// Len returns the number of curves.
func (t *Transformable) Len() int {
	return len(t.curves)
}

// Index returns the curve currently being faded in.
func (t *Transformable) Index() int {
	return t.index
}

// Weights returns the current weight of every curve.
func (t *Transformable) Weights() []float64 {
	out := make([]float64, len(t.weights))
	for i, w := range t.weights {
		out[i] = w.Read()
	}
	return out
}

// Color returns the color computed by the last Render.
func (t *Transformable) Color() Color {
	c := t.color.Read()
	return Color{c[0], c[1], c[2], c[3]}
}

// Weight returns the line weight computed by the last Render.
func (t *Transformable) Weight() float64 {
	return t.weight.Read()
}

// Fn returns the blended function for the current weights. Curves that are
// undefined at x are left out of the sum.
func (t *Transformable) Fn() func(x float64) float64 {
	ws := t.Weights()
	return func(x float64) float64 {
		var y float64
		for i, c := range t.curves {
			v := c.Fn(x)
			if !HoldsValue(v) {
				continue
			}
			y += v * ws[i]
		}
		return y
	}
}

// Render draws the blended curve with draw, or with Plot when draw is nil.
// The blended color and weight are the weight-averaged colors and weights of
// the curves; when every weight is zero the previous values are kept.
func (t *Transformable) Render(c *Canvas, draw DrawFunc) {
	if draw == nil {
		draw = Plot
	}

	ws := t.Weights()
	var sum, r, g, b, a, lw float64
	for i, cv := range t.curves {
		w := ws[i]
		col := cv.color()
		r += col.R * w
		g += col.G * w
		b += col.B * w
		a += col.A * w
		lw += cv.weight() * w
		sum += w
	}
	if sum > 0 {
		_ = t.color.SetImmediate([]float64{r / sum, g / sum, b / sum, a / sum})
		_ = t.weight.SetImmediate(lw / sum)
	}

	draw(c, t.Fn(), t.Color(), t.Weight())
}

// SwapTo starts fading to curve i and returns i.
func (t *Transformable) SwapTo(i int) (int, error) {
	if i < 0 || i >= len(t.curves) {
		return t.index, fmt.Errorf("%w: swap to %d of %d curves", ErrOutOfRange, i, len(t.curves))
	}
	t.index = i
	for j, w := range t.weights {
		target := 0.0
		if j == i {
			target = 1
		}
		if err := w.Set(target); err != nil {
			return t.index, err
		}
	}
	return i, nil
}

// Next fades to the curve after the current one, wrapping around.
func (t *Transformable) Next() (int, error) {
	return t.SwapTo((t.index + 1) % len(t.curves))
}
