package mach

import "math"

// Sizer reports the pixel size of a drawing surface.
type Sizer interface {
	Size() (width, height int)
}

// Surface is the immediate-mode drawing target a Scene renders into. Device
// coordinates have their origin at the top-left with Y down.
//
// The layout box is where the surface sits in the host window, in window
// (layout) pixels. The device size is the layout size times the resolution.
type Surface interface {
	Sizer
	// Resize sets the device pixel size.
	Resize(width, height int)
	// LayoutBox returns the surface's rectangle in window coordinates.
	LayoutBox() Rect
	// Resolution returns the device pixels per layout pixel.
	Resolution() float64
	// SetResolution sets the device pixels per layout pixel.
	SetResolution(r float64)

	// Clear fills the whole surface with bg.
	Clear(bg Color)
	// Stroke outlines p with the given color and line width in device pixels.
	Stroke(p *Path, c Color, width float64)
	// Fill fills the closed subpaths of p.
	Fill(p *Path, c Color)
	// Text draws s anchored at (x, y). See Align for the anchor semantics.
	Text(s string, x, y float64, c Color, alignX, alignY Align)
}

// PathOp identifies a Path command.
type PathOp uint8

const (
	PathMoveTo  PathOp = iota // Args: x, y
	PathLineTo                // Args: x, y
	PathQuadTo                // Args: cx, cy, x, y
	PathCubicTo               // Args: c1x, c1y, c2x, c2y, x, y
	PathArc                   // Args: cx, cy, radius, start, end, direction (0 clockwise)
	PathClose                 // no args
)

// PathCmd is one recorded Path command.
type PathCmd struct {
	Op   PathOp
	Args [6]float64
}

// Path records device-space path commands. Surfaces replay them with their
// own vector backend; tests inspect them directly.
type Path struct {
	cmds []PathCmd
}

// MoveTo starts a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: PathMoveTo, Args: [6]float64{x, y}})
}

// LineTo adds a straight segment to (x, y).
func (p *Path) LineTo(x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: PathLineTo, Args: [6]float64{x, y}})
}

// QuadTo adds a quadratic Bézier segment.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: PathQuadTo, Args: [6]float64{cx, cy, x, y}})
}

// CubicTo adds a cubic Bézier segment.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.cmds = append(p.cmds, PathCmd{Op: PathCubicTo, Args: [6]float64{c1x, c1y, c2x, c2y, x, y}})
}

// Arc adds a clockwise arc (in device space) around (cx, cy).
func (p *Path) Arc(cx, cy, radius, start, end float64) {
	p.cmds = append(p.cmds, PathCmd{Op: PathArc, Args: [6]float64{cx, cy, radius, start, end, 0}})
}

// Circle adds a full circle subpath.
func (p *Path) Circle(cx, cy, radius float64) {
	p.MoveTo(cx+radius, cy)
	p.Arc(cx, cy, radius, 0, 2*math.Pi)
	p.Close()
}

// Rect adds a closed rectangle subpath.
func (p *Path) Rect(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Close closes the current subpath.
func (p *Path) Close() {
	p.cmds = append(p.cmds, PathCmd{Op: PathClose})
}

// Commands returns the recorded commands. The slice MUST NOT be mutated.
func (p *Path) Commands() []PathCmd {
	return p.cmds
}

// Len returns the number of recorded commands.
func (p *Path) Len() int {
	return len(p.cmds)
}

// Reset drops every command but keeps the backing storage.
func (p *Path) Reset() {
	p.cmds = p.cmds[:0]
}
