package mach

import "math"

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Div returns v / s.
func (v Vec2) Div(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Magnitude returns the length of v.
func (v Vec2) Magnitude() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	m := v.Magnitude()
	if m == 0 {
		return Vec2{}
	}
	return v.Div(m)
}

// Vec2FromPoints returns the vector from a to b.
func Vec2FromPoints(a, b Vec2) Vec2 { return b.Sub(a) }

// VectorArrow draws v as an arrow starting at origin, both in Cartesian
// units. The head is a fixed size in device pixels.
func VectorArrow(c *Canvas, origin, v Vec2, color Color, weight float64) {
	end := origin.Add(v)
	ax, ay, ok1 := c.CartesianToDevice(origin.X, origin.Y)
	bx, by, ok2 := c.CartesianToDevice(end.X, end.Y)
	if !ok1 || !ok2 {
		return
	}

	var p Path
	p.MoveTo(ax, ay)
	p.LineTo(bx, by)

	if bx != ax || by != ay {
		back := math.Atan2(ay-by, ax-bx)
		for _, side := range [2]float64{-1, 1} {
			sin, cos := math.Sincos(back + side*arrowHeadAngle)
			p.MoveTo(bx, by)
			p.LineTo(bx+cos*arrowHeadSize, by+sin*arrowHeadSize)
		}
	}
	c.Stroke(&p, color, weight)
}
