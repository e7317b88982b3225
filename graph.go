package mach

import (
	"errors"
	"fmt"
	"math"
)

// ErrSingular is returned by PolynomialFromPoints when the points do not
// determine a unique polynomial, e.g. two of them share an x.
var ErrSingular = errors.New("mach: singular system")

const (
	axisTickHalf   = 5 // device pixels either side of the axis
	axisWeight     = 2 // device pixels
	polarStep      = 0.01
	pointOuter     = 8 // device pixels
	pointInner     = 6 // device pixels
	pointLabelGap  = 10
	arrowHeadSize  = 12 // device pixels
	arrowHeadAngle = math.Pi / 7
)

// AxisGray is the default axis color, dimmed by opacity.
func AxisGray(opacity float64) Color {
	v := 80.0 / 255 * clamp01(opacity)
	return Color{v, v, v, 1}
}

// Axis draws the x and y axes through the Cartesian origin with a tick at
// every unit.
func Axis(c *Canvas, color Color) {
	w, h := c.Size()
	fw, fh := float64(w), float64(h)
	ox, oy, _ := c.CartesianToDevice(0, 0)
	unit := c.Scale()

	var p Path
	p.MoveTo(0, oy)
	p.LineTo(fw, oy)
	p.MoveTo(ox, 0)
	p.LineTo(ox, fh)

	for _, x := range ticks(ox, unit, fw) {
		p.MoveTo(x, oy-axisTickHalf)
		p.LineTo(x, oy+axisTickHalf)
	}
	for _, y := range ticks(oy, unit, fh) {
		p.MoveTo(ox-axisTickHalf, y)
		p.LineTo(ox+axisTickHalf, y)
	}
	c.Stroke(&p, color, axisWeight)
}

// ticks returns the positions origin + k*step that fall within [0, limit].
func ticks(origin, step, limit float64) []float64 {
	if !(step > 0) || !HoldsValue(origin) {
		return nil
	}
	first := origin - math.Floor(origin/step)*step
	out := make([]float64, 0, int(limit/step)+1)
	for v := first; v <= limit; v += step {
		out = append(out, v)
	}
	return out
}

// Plot draws fn across the visible x range, sampling once per device pixel.
// The line is broken wherever fn is undefined or leaves the surface by more
// than its own height, so asymptotes and gaps do not draw stray segments.
// Plot is a DrawFunc.
func Plot(c *Canvas, fn func(x float64) float64, color Color, weight float64) {
	w, h := c.Size()
	fh := float64(h)

	var p Path
	pen := false
	for px := 0; px <= w; px++ {
		x, _, _ := c.DeviceToCartesian(float64(px), 0)
		y := fn(x)
		if !HoldsValue(y) {
			pen = false
			continue
		}
		dx, dy, _ := c.CartesianToDevice(x, y)
		if dy < -fh || dy > 2*fh {
			pen = false
			continue
		}
		if pen {
			p.LineTo(dx, dy)
		} else {
			p.MoveTo(dx, dy)
			pen = true
		}
	}
	c.Stroke(&p, color, weight)
}

// Linear returns y = m*x + b.
func Linear(m, b float64) func(float64) float64 {
	return func(x float64) float64 { return m*x + b }
}

// Quadratic returns y = a*x² + b*x + c.
func Quadratic(a, b, c float64) func(float64) float64 {
	return func(x float64) float64 { return (a*x+b)*x + c }
}

// Cubic returns y = a*x³ + b*x² + c*x + d.
func Cubic(a, b, c, d float64) func(float64) float64 {
	return func(x float64) float64 { return ((a*x+b)*x+c)*x + d }
}

// Exponential returns y = a * b^x.
func Exponential(a, b float64) func(float64) float64 {
	return func(x float64) float64 { return a * math.Pow(b, x) }
}

// Logarithmic returns y = a * log_b(x). Undefined for x <= 0.
func Logarithmic(a, b float64) func(float64) float64 {
	lb := math.Log(b)
	return func(x float64) float64 {
		if x <= 0 {
			return Undefined
		}
		return a * math.Log(x) / lb
	}
}

// Hyperbolic returns y = a / (b*x). Undefined at x = 0.
func Hyperbolic(a, b float64) func(float64) float64 {
	return func(x float64) float64 {
		d := b * x
		if d == 0 {
			return Undefined
		}
		return a / d
	}
}

// Polynomial returns the polynomial with the given coefficients, highest
// degree first: Polynomial(1, 0, -4) is x² - 4.
func Polynomial(coefficients ...float64) func(float64) float64 {
	cs := append([]float64(nil), coefficients...)
	return func(x float64) float64 {
		var y float64
		for _, c := range cs {
			y = y*x + c
		}
		return y
	}
}

// PolynomialCoefficientsFromRoots expands (x - r1)(x - r2)... into
// coefficients, highest degree first.
func PolynomialCoefficientsFromRoots(roots ...float64) []float64 {
	cs := []float64{1}
	for _, r := range roots {
		next := make([]float64, len(cs)+1)
		for i, c := range cs {
			next[i] += c
			next[i+1] -= c * r
		}
		cs = next
	}
	return cs
}

// PolynomialFromRoots returns the monic polynomial with the given roots.
func PolynomialFromRoots(roots ...float64) func(float64) float64 {
	return Polynomial(PolynomialCoefficientsFromRoots(roots...)...)
}

// PolynomialCoefficientsFromPoints returns the coefficients, highest degree
// first, of the lowest degree polynomial through every point. It solves the
// Vandermonde system by Gaussian elimination with partial pivoting.
func PolynomialCoefficientsFromPoints(points []Vec2) ([]float64, error) {
	n := len(points)
	if n == 0 {
		return nil, fmt.Errorf("%w: no points", ErrSingular)
	}
	a := make([][]float64, n)
	b := make([]float64, n)
	for i, pt := range points {
		row := make([]float64, n)
		for j := range row {
			row[j] = math.Pow(pt.X, float64(n-j-1))
		}
		a[i] = row
		b[i] = pt.Y
	}

	for i := 0; i < n; i++ {
		pivot := i
		for j := i + 1; j < n; j++ {
			if math.Abs(a[j][i]) > math.Abs(a[pivot][i]) {
				pivot = j
			}
		}
		if math.Abs(a[pivot][i]) < 1e-12 {
			return nil, fmt.Errorf("%w: points do not determine a polynomial", ErrSingular)
		}
		a[i], a[pivot] = a[pivot], a[i]
		b[i], b[pivot] = b[pivot], b[i]

		for j := i + 1; j < n; j++ {
			ratio := a[j][i] / a[i][i]
			for k := i; k < n; k++ {
				a[j][k] -= ratio * a[i][k]
			}
			b[j] -= ratio * b[i]
		}
	}

	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		x[i] = b[i]
		for j := i + 1; j < n; j++ {
			x[i] -= a[i][j] * x[j]
		}
		x[i] /= a[i][i]
	}
	return x, nil
}

// PolynomialFromPoints returns the lowest degree polynomial through every
// point.
func PolynomialFromPoints(points []Vec2) (func(float64) float64, error) {
	cs, err := PolynomialCoefficientsFromPoints(points)
	if err != nil {
		return nil, err
	}
	return Polynomial(cs...), nil
}

// Derivative returns the forward-difference derivative of fn with step h.
// A non-positive h uses 1e-6.
func Derivative(fn func(float64) float64, h float64) func(float64) float64 {
	if !(h > 0) {
		h = 1e-6
	}
	return func(x float64) float64 {
		return (fn(x+h) - fn(x)) / h
	}
}

// Segment strokes a polyline through points. Undefined points break the line.
func Segment(c *Canvas, points []Vec2, color Color, weight float64) {
	var p Path
	pen := false
	for _, pt := range points {
		dx, dy, ok := c.CartesianToDevice(pt.X, pt.Y)
		if !ok {
			pen = false
			continue
		}
		if pen {
			p.LineTo(dx, dy)
		} else {
			p.MoveTo(dx, dy)
			pen = true
		}
	}
	c.Stroke(&p, color, weight)
}

// CurveSegment strokes a smooth curve through points: cubic Béziers over each
// run of three points, finished with a quadratic through the last two.
// Undefined points are dropped.
func CurveSegment(c *Canvas, points []Vec2, color Color, weight float64) {
	dev := make([]Vec2, 0, len(points))
	for _, pt := range points {
		if dx, dy, ok := c.CartesianToDevice(pt.X, pt.Y); ok {
			dev = append(dev, Vec2{dx, dy})
		}
	}
	n := len(dev)
	if n == 0 {
		return
	}

	var p Path
	p.MoveTo(dev[0].X, dev[0].Y)
	for i := 1; i < n-2; i++ {
		p.CubicTo(dev[i].X, dev[i].Y, dev[i+1].X, dev[i+1].Y, dev[i+2].X, dev[i+2].Y)
	}
	if n > 2 {
		p.QuadTo(dev[n-2].X, dev[n-2].Y, dev[n-1].X, dev[n-1].Y)
	} else {
		p.LineTo(dev[n-1].X, dev[n-1].Y)
	}
	c.Stroke(&p, color, weight)
}

// Polar draws r = fn(θ) for θ in [0, bounds) with the given step. Non-positive
// bounds and step default to 2π and 0.01. Where fn is undefined the curve
// falls back to the origin.
func Polar(c *Canvas, fn func(theta float64) float64, color Color, weight, bounds, step float64) {
	if !(bounds > 0) {
		bounds = 2 * math.Pi
	}
	if !(step > 0) {
		step = polarStep
	}
	ox, oy, _ := c.CartesianToDevice(0, 0)

	var p Path
	started := false
	for theta := 0.0; theta < bounds; theta += step {
		r := fn(theta)
		dx, dy := ox, oy
		if HoldsValue(r) {
			x, y := PolarToCartesian(r, theta)
			dx, dy, _ = c.CartesianToDevice(x, y)
		}
		if started {
			p.LineTo(dx, dy)
		} else {
			p.MoveTo(dx, dy)
			started = true
		}
	}
	c.Stroke(&p, color, weight)
}

// Superellipse draws the closed curve |x-k|^d/rx^d + |y-h|^d/ry^d = 1
// centered at (k, h).
func Superellipse(c *Canvas, k, h, rx, ry, degree float64, color Color, weight float64) {
	var p Path
	e := 2 / degree
	first := true
	for t := 0.0; t < 2*math.Pi; t += polarStep {
		sin, cos := math.Sincos(t)
		x := k + rx*sign(cos)*math.Pow(math.Abs(cos), e)
		y := h + ry*sign(sin)*math.Pow(math.Abs(sin), e)
		dx, dy, ok := c.CartesianToDevice(x, y)
		if !ok {
			continue
		}
		if first {
			p.MoveTo(dx, dy)
			first = false
		} else {
			p.LineTo(dx, dy)
		}
	}
	if !first {
		p.Close()
	}
	c.Stroke(&p, color, weight)
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// GraphPoint marks (x, y) with an outlined dot and a caption. An empty
// caption prints the coordinates. The caption sits beside the dot on the side
// chosen by alignX and alignY, and shares the color's opacity. A fully
// transparent color draws only the caption.
func GraphPoint(c *Canvas, x, y float64, color Color, caption string, alignX, alignY Align) {
	dx, dy, ok := c.CartesianToDevice(x, y)
	if !ok {
		return
	}
	drawPointMarker(c, dx, dy, color)
	if caption == "" {
		caption = fmt.Sprintf("(%.2f, %.2f)", x, y)
	}
	tx, ty := pointLabelAnchor(dx, dy, alignX, alignY)
	c.Text(caption, tx, ty, ColorWhite.WithAlpha(color.A), alignX, alignY)
}

// drawPointMarker draws the outlined dot at device (dx, dy). Fully
// transparent points have no marker.
func drawPointMarker(c *Canvas, dx, dy float64, color Color) {
	if color.A == 0 {
		return
	}
	var outer, inner Path
	outer.Circle(dx, dy, pointOuter)
	c.Fill(&outer, ColorBlack)
	inner.Circle(dx, dy, pointInner)
	c.Fill(&inner, color)
}

// pointLabelAnchor offsets a caption anchor away from a point marker.
func pointLabelAnchor(dx, dy float64, alignX, alignY Align) (float64, float64) {
	return Lerp(dx-pointLabelGap, dx+pointLabelGap, float64(alignX)),
		Lerp(dy-pointLabelGap, dy+pointLabelGap, float64(alignY))
}
