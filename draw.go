package mach

// Drawing primitives. Positions are Cartesian; radii, widths and line weights
// are device pixels. Undefined positions draw nothing.

// Point draws a filled dot of radius weight at (x, y).
func Point(c *Canvas, x, y float64, color Color, weight float64) {
	dx, dy, ok := c.CartesianToDevice(x, y)
	if !ok {
		return
	}
	var p Path
	p.Circle(dx, dy, weight)
	c.Fill(&p, color)
}

// Circle draws a filled circle centered at (x, y).
func Circle(c *Canvas, x, y, radius float64, color Color) {
	dx, dy, ok := c.CartesianToDevice(x, y)
	if !ok {
		return
	}
	var p Path
	p.Circle(dx, dy, radius)
	c.Fill(&p, color)
}

// SemiCircle draws a filled circular sector centered at (x, y), from start to
// end radians measured clockwise on screen.
func SemiCircle(c *Canvas, x, y, radius float64, color Color, start, end float64) {
	dx, dy, ok := c.CartesianToDevice(x, y)
	if !ok {
		return
	}
	var p Path
	p.MoveTo(dx, dy)
	p.Arc(dx, dy, radius, start, end)
	p.Close()
	c.Fill(&p, color)
}

// Arc strokes a circular arc centered at (x, y), from start to end radians
// measured clockwise on screen.
func Arc(c *Canvas, x, y, radius float64, color Color, start, end, weight float64) {
	dx, dy, ok := c.CartesianToDevice(x, y)
	if !ok {
		return
	}
	var p Path
	p.Arc(dx, dy, radius, start, end)
	c.Stroke(&p, color, weight)
}

// FillRect fills a width x height device-pixel rectangle whose top-left
// corner is at (x, y).
func FillRect(c *Canvas, x, y, width, height float64, color Color) {
	dx, dy, ok := c.CartesianToDevice(x, y)
	if !ok {
		return
	}
	var p Path
	p.Rect(dx, dy, width, height)
	c.Fill(&p, color)
}

// Line strokes a straight line from (x1, y1) to (x2, y2).
func Line(c *Canvas, x1, y1, x2, y2 float64, color Color, weight float64) {
	ax, ay, ok1 := c.CartesianToDevice(x1, y1)
	bx, by, ok2 := c.CartesianToDevice(x2, y2)
	if !ok1 || !ok2 {
		return
	}
	var p Path
	p.MoveTo(ax, ay)
	p.LineTo(bx, by)
	c.Stroke(&p, color, weight)
}

// QuadCurve strokes a quadratic Bézier from (x1, y1) to (x3, y3) with control
// point (x2, y2).
func QuadCurve(c *Canvas, x1, y1, x2, y2, x3, y3 float64, color Color, weight float64) {
	ax, ay, ok1 := c.CartesianToDevice(x1, y1)
	bx, by, ok2 := c.CartesianToDevice(x2, y2)
	cx, cy, ok3 := c.CartesianToDevice(x3, y3)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	var p Path
	p.MoveTo(ax, ay)
	p.QuadTo(bx, by, cx, cy)
	c.Stroke(&p, color, weight)
}
