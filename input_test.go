package mach

import (
	"testing"
)

// fakeInput is an InputSource driven by the test.
type fakeInput struct {
	x, y    float64
	buttons [3]bool
	wheel   float64
	seq     bool
}

func (f *fakeInput) CursorPosition() (float64, float64) { return f.x, f.y }
func (f *fakeInput) MousePressed(b MouseButton) bool    { return f.buttons[b] }

func (f *fakeInput) Wheel() (float64, float64) {
	dy := f.wheel
	f.wheel = 0
	return 0, dy
}

func (f *fakeInput) SequencePressed() bool {
	p := f.seq
	f.seq = false
	return p
}

// newInputScene returns a started scene whose layout box is 512x384 at the
// given resolution.
func newInputScene(t *testing.T, res float64) *Scene {
	t.Helper()
	surf := newRecordSurface(1, 1)
	surf.box = Rect{Width: 512, Height: 384}
	cfg := DefaultSceneConfig()
	cfg.Resolution = res
	cfg.Clock = newManualClock()
	s, err := NewScene(surf, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	return s
}

func drainInput(s *Scene) {
	for len(s.injectQueue) > 0 {
		s.processInput()
	}
}

// --- Click ---

func TestClickReportsCartesianPoint(t *testing.T) {
	tests := []struct {
		name   string
		res    float64
		x, y   float64
		cx, cy float64
	}{
		{"resolution 1", 1, 256 + 60, 192 - 120, 1, 2},
		{"resolution 2", 2, 256 + 30, 192 + 60, 1, -2},
		{"origin", 2, 256, 192, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newInputScene(t, tt.res)
			var got []ClickEvent
			s.OnClick(func(e ClickEvent) { got = append(got, e) })

			s.InjectClick(tt.x, tt.y)
			drainInput(s)

			if len(got) != 1 {
				t.Fatalf("clicks = %d, want 1", len(got))
			}
			e := got[0]
			if e.X != tt.x || e.Y != tt.y || e.Button != MouseButtonLeft {
				t.Errorf("event = %+v", e)
			}
			assertNear(t, "cx", e.Cartesian.X, tt.cx)
			assertNear(t, "cy", e.Cartesian.Y, tt.cy)
		})
	}
}

func TestClickFiresOnRelease(t *testing.T) {
	s := newInputScene(t, 1)
	clicks := 0
	s.OnClick(func(ClickEvent) { clicks++ })

	s.InjectClick(10, 10)
	s.processInput()
	if clicks != 0 {
		t.Error("click should not fire on press")
	}
	s.processInput()
	if clicks != 1 {
		t.Errorf("clicks = %d after release, want 1", clicks)
	}
}

func TestSmallMovementIsStillAClick(t *testing.T) {
	s := newInputScene(t, 1)
	clicks := 0
	s.OnClick(func(ClickEvent) { clicks++ })

	s.InjectPress(100, 100)
	s.InjectMove(103, 100)
	s.InjectRelease(103, 100)
	drainInput(s)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if x, y := s.Registry().Pan(s.ID()); x != 0 || y != 0 {
		t.Errorf("pan = (%v, %v), want none inside the dead zone", x, y)
	}
}

// --- Pan ---

func TestDragPansByDevicePixels(t *testing.T) {
	s := newInputScene(t, 2)
	clicks := 0
	s.OnClick(func(ClickEvent) { clicks++ })
	var pans []PanEvent
	s.OnPan(func(e PanEvent) { pans = append(pans, e) })

	s.InjectDrag(100, 100, 150, 80, 3)
	drainInput(s)

	x, y := s.Registry().Pan(s.ID())
	assertNear(t, "panX", x, 100)
	assertNear(t, "panY", y, -40)
	if clicks != 0 {
		t.Error("a drag should not click")
	}
	if len(pans) != 1 || pans[0].DX != 100 || pans[0].DY != -40 || pans[0].PanX != 100 {
		t.Errorf("pan events = %+v", pans)
	}
}

func TestDragPanAccumulates(t *testing.T) {
	s := newInputScene(t, 1)
	s.InjectDrag(0, 0, 40, 20, 6)
	drainInput(s)
	s.InjectDrag(0, 0, -10, 0, 3)
	drainInput(s)

	x, y := s.Registry().Pan(s.ID())
	assertNear(t, "panX", x, 30)
	assertNear(t, "panY", y, 20)
}

func TestDragWithMoveDisabled(t *testing.T) {
	s := newInputScene(t, 1)
	s.cfg.Interactive.Move = false
	pans := 0
	s.OnPan(func(PanEvent) { pans++ })

	s.InjectDrag(0, 0, 100, 100, 4)
	drainInput(s)

	if x, y := s.Registry().Pan(s.ID()); x != 0 || y != 0 {
		t.Errorf("pan = (%v, %v), want (0, 0)", x, y)
	}
	if pans != 0 {
		t.Errorf("pan events = %d, want 0", pans)
	}
}

func TestRightButtonDragDoesNotPan(t *testing.T) {
	s := newInputScene(t, 1)
	in := &fakeInput{x: 10, y: 10}
	s.SetInput(in)

	in.buttons[MouseButtonRight] = true
	s.processInput()
	in.x, in.y = 80, 60
	s.processInput()
	in.buttons[MouseButtonRight] = false
	s.processInput()

	if x, y := s.Registry().Pan(s.ID()); x != 0 || y != 0 {
		t.Errorf("pan = (%v, %v), want (0, 0)", x, y)
	}
}

func TestRealInputDrag(t *testing.T) {
	s := newInputScene(t, 1)
	in := &fakeInput{x: 10, y: 10}
	s.SetInput(in)

	in.buttons[MouseButtonLeft] = true
	s.processInput()
	in.x = 30
	s.processInput()
	in.x = 35
	s.processInput()
	in.buttons[MouseButtonLeft] = false
	s.processInput()

	x, _ := s.Registry().Pan(s.ID())
	assertNear(t, "panX", x, 25)
}

// --- Wheel ---

func TestWheelStepsTargetScale(t *testing.T) {
	s := newInputScene(t, 1)
	var zooms []float64
	s.OnZoom(func(e ZoomEvent) { zooms = append(zooms, e.Target) })

	s.InjectWheel(1)
	s.processInput()
	if got := s.Registry().TargetScale(s.ID()); got != 59 {
		t.Errorf("after scroll down target = %v, want 59", got)
	}
	s.InjectWheel(-1)
	s.InjectWheel(-3)
	drainInput(s)
	if got := s.Registry().TargetScale(s.ID()); got != 61 {
		t.Errorf("after two scrolls up target = %v, want 61", got)
	}
	if len(zooms) != 3 || zooms[0] != 59 || zooms[2] != 61 {
		t.Errorf("zoom events = %v, want [59 60 61]", zooms)
	}
	if !s.Registry().Animating(s.ID()) {
		t.Error("wheel should ease the scale, not set it")
	}
}

func TestWheelClampsAtMinScale(t *testing.T) {
	s := newInputScene(t, 1)
	s.Registry().SetScaleImmediate(s.ID(), 1.5)
	s.InjectWheel(1)
	s.InjectWheel(1)
	drainInput(s)
	if got := s.Registry().TargetScale(s.ID()); got != MinScale {
		t.Errorf("target = %v, want %v", got, MinScale)
	}
}

func TestWheelWithScrollDisabled(t *testing.T) {
	s := newInputScene(t, 1)
	s.cfg.Interactive.Scroll = false
	s.InjectWheel(1)
	drainInput(s)
	if got := s.Registry().TargetScale(s.ID()); got != DefaultScale {
		t.Errorf("target = %v, want unchanged", got)
	}
}

func TestRealWheel(t *testing.T) {
	s := newInputScene(t, 1)
	in := &fakeInput{wheel: -1}
	s.SetInput(in)
	s.processInput()
	if got := s.Registry().TargetScale(s.ID()); got != 61 {
		t.Errorf("target = %v, want 61", got)
	}
}

// --- Sequence key ---

func TestSequenceKey(t *testing.T) {
	s := newInputScene(t, 1)
	in := &fakeInput{seq: true}
	s.SetInput(in)
	s.processInput()
	s.processInput()
	if s.SequenceStep() != 1 {
		t.Errorf("SequenceStep = %d, want 1", s.SequenceStep())
	}
}

// --- Precedence and handles ---

func TestInjectedInputTakesPrecedence(t *testing.T) {
	s := newInputScene(t, 1)
	in := &fakeInput{seq: true}
	s.SetInput(in)

	s.InjectWheel(1)
	s.processInput()
	if s.SequenceStep() != 0 {
		t.Error("real input should be skipped while an injected event is consumed")
	}
	s.processInput()
	if s.SequenceStep() != 1 {
		t.Error("real input should resume once the queue is empty")
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s := newInputScene(t, 1)
	var a, b int
	ha := s.OnClick(func(ClickEvent) { a++ })
	s.OnClick(func(ClickEvent) { b++ })

	s.InjectClick(1, 1)
	drainInput(s)
	ha.Remove()
	s.InjectClick(1, 1)
	drainInput(s)

	if a != 1 || b != 2 {
		t.Errorf("a, b = %d, %d, want 1, 2", a, b)
	}

	hs := s.OnSequence(func(int) { a++ })
	hs.Remove()
	s.IncrementSequence()
	if a != 1 {
		t.Error("removed sequence handler fired")
	}

	var zero CallbackHandle
	zero.Remove() // must not panic
}

// --- Event sink ---

type recordSink struct {
	events []InputEvent
}

func (r *recordSink) EmitEvent(e InputEvent) { r.events = append(r.events, e) }

func TestEventSinkReceivesEveryEvent(t *testing.T) {
	s := newInputScene(t, 1)
	sink := &recordSink{}
	s.SetEventSink(sink)

	s.InjectClick(256+60, 192)
	s.InjectDrag(0, 0, 20, 0, 3)
	s.InjectWheel(1)
	s.InjectSequence()
	drainInput(s)

	want := []EventType{EventClick, EventPan, EventZoom, EventSequence}
	if len(sink.events) != len(want) {
		t.Fatalf("events = %+v, want %d", sink.events, len(want))
	}
	for i, typ := range want {
		if sink.events[i].Type != typ {
			t.Errorf("event %d type = %d, want %d", i, sink.events[i].Type, typ)
		}
		if sink.events[i].Scene != s.ID() {
			t.Errorf("event %d scene = %d, want %d", i, sink.events[i].Scene, s.ID())
		}
	}
	if c := sink.events[0].Cartesian; c.X != 1 || c.Y != 0 {
		t.Errorf("click cartesian = %v, want (1, 0)", c)
	}
	if sink.events[1].DX != 20 {
		t.Errorf("pan DX = %v, want 20", sink.events[1].DX)
	}
	if sink.events[2].Target != 59 {
		t.Errorf("zoom target = %v, want 59", sink.events[2].Target)
	}
	if sink.events[3].Step != 0 {
		t.Errorf("sequence step = %d, want 0", sink.events[3].Step)
	}
}

func TestEventSinkClearedOnDestroy(t *testing.T) {
	s := newInputScene(t, 1)
	sink := &recordSink{}
	s.SetEventSink(sink)
	s.SetEventSink(nil)
	s.IncrementSequence()
	if len(sink.events) != 0 {
		t.Error("nil sink should disable forwarding")
	}

	s.SetEventSink(sink)
	s.Destroy()
	s.panBy(1, 1)
	if len(sink.events) != 0 {
		t.Error("destroyed scene should not forward events")
	}
}
