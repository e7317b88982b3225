package mach

import (
	"math"
	"testing"
	"time"
)

// --- Test doubles ---

type recordedPath struct {
	cmds  []PathCmd
	color Color
	width float64
}

type recordedText struct {
	s              string
	x, y           float64
	color          Color
	alignX, alignY Align
}

// recordSurface is a Surface that records every draw call instead of
// rasterizing, so tests can run without a graphics driver.
type recordSurface struct {
	w, h    int
	box     Rect
	res     float64
	clears  []Color
	strokes []recordedPath
	fills   []recordedPath
	texts   []recordedText
}

func newRecordSurface(w, h int) *recordSurface {
	return &recordSurface{
		w: w, h: h,
		res: 1,
		box: Rect{Width: float64(w), Height: float64(h)},
	}
}

func (s *recordSurface) Size() (int, int)        { return s.w, s.h }
func (s *recordSurface) Resize(w, h int)         { s.w, s.h = w, h }
func (s *recordSurface) LayoutBox() Rect         { return s.box }
func (s *recordSurface) Resolution() float64     { return s.res }
func (s *recordSurface) SetResolution(r float64) { s.res = r }
func (s *recordSurface) Clear(bg Color)          { s.clears = append(s.clears, bg) }

func (s *recordSurface) Stroke(p *Path, c Color, width float64) {
	cmds := append([]PathCmd(nil), p.Commands()...)
	s.strokes = append(s.strokes, recordedPath{cmds: cmds, color: c, width: width})
}

func (s *recordSurface) Fill(p *Path, c Color) {
	cmds := append([]PathCmd(nil), p.Commands()...)
	s.fills = append(s.fills, recordedPath{cmds: cmds, color: c})
}

func (s *recordSurface) Text(str string, x, y float64, c Color, alignX, alignY Align) {
	s.texts = append(s.texts, recordedText{s: str, x: x, y: y, color: c, alignX: alignX, alignY: alignY})
}

func (s *recordSurface) reset() {
	s.clears = nil
	s.strokes = nil
	s.fills = nil
	s.texts = nil
}

// manualClock only moves when told to.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// newTestCanvas returns a canvas on a w x h record surface with the default
// transform.
func newTestCanvas(w, h int) (*Canvas, *recordSurface) {
	s := newRecordSurface(w, h)
	return NewCanvas(s, NewRegistry(), nextSceneID()), s
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// --- Path ---

func TestPathRecordsCommands(t *testing.T) {
	var p Path
	p.MoveTo(1, 2)
	p.LineTo(3, 4)
	p.QuadTo(5, 6, 7, 8)
	p.CubicTo(1, 1, 2, 2, 3, 3)
	p.Close()

	want := []PathOp{PathMoveTo, PathLineTo, PathQuadTo, PathCubicTo, PathClose}
	if p.Len() != len(want) {
		t.Fatalf("Len = %d, want %d", p.Len(), len(want))
	}
	for i, cmd := range p.Commands() {
		if cmd.Op != want[i] {
			t.Errorf("cmd[%d].Op = %d, want %d", i, cmd.Op, want[i])
		}
	}
	if got := p.Commands()[2].Args; got[2] != 7 || got[3] != 8 {
		t.Errorf("QuadTo end = (%v, %v), want (7, 8)", got[2], got[3])
	}
}

func TestPathCircle(t *testing.T) {
	var p Path
	p.Circle(10, 20, 5)
	cmds := p.Commands()
	if len(cmds) != 3 {
		t.Fatalf("len = %d, want 3", len(cmds))
	}
	if cmds[0].Op != PathMoveTo || cmds[0].Args[0] != 15 || cmds[0].Args[1] != 20 {
		t.Errorf("circle start = %+v, want MoveTo(15, 20)", cmds[0])
	}
	arc := cmds[1]
	if arc.Op != PathArc || arc.Args[2] != 5 || arc.Args[4] != 2*math.Pi {
		t.Errorf("arc = %+v, want full arc of radius 5", arc)
	}
	if cmds[2].Op != PathClose {
		t.Error("circle should be closed")
	}
}

func TestPathRect(t *testing.T) {
	var p Path
	p.Rect(0, 0, 4, 3)
	cmds := p.Commands()
	if len(cmds) != 5 {
		t.Fatalf("len = %d, want 5", len(cmds))
	}
	corner := cmds[2].Args
	if corner[0] != 4 || corner[1] != 3 {
		t.Errorf("opposite corner = (%v, %v), want (4, 3)", corner[0], corner[1])
	}
}

func TestPathReset(t *testing.T) {
	var p Path
	p.MoveTo(0, 0)
	p.LineTo(1, 1)
	p.Reset()
	if p.Len() != 0 {
		t.Errorf("Len after Reset = %d, want 0", p.Len())
	}
}
