package mach

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// --- Constants ---

const (
	defaultDragDeadZone = 4.0 // layout pixels
	wheelZoomStep       = 1.0 // scale units per wheel notch
)

// InputSource reports raw input for a scene. Positions are in window (layout)
// pixels, the same space DOMToCartesian takes.
type InputSource interface {
	// CursorPosition returns the pointer position.
	CursorPosition() (x, y float64)
	// MousePressed reports whether b is held down.
	MousePressed(b MouseButton) bool
	// Wheel returns the scroll delta since the last frame. Positive dy
	// scrolls down (zooms out).
	Wheel() (dx, dy float64)
	// SequencePressed reports whether the sequence key went down this frame.
	SequencePressed() bool
}

// ebitenInput reads input from ebiten. The game's logical screen is the
// device surface, so cursor positions are divided by the resolution.
type ebitenInput struct {
	resolution   float64
	sequenceKeys []ebiten.Key
}

func (in *ebitenInput) CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	res := in.resolution
	if res <= 0 {
		res = 1
	}
	return float64(x) / res, float64(y) / res
}

func (in *ebitenInput) MousePressed(b MouseButton) bool {
	switch b {
	case MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case MouseButtonMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	default:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
}

func (in *ebitenInput) Wheel() (float64, float64) {
	dx, dy := ebiten.Wheel()
	return dx, -dy
}

func (in *ebitenInput) SequencePressed() bool {
	for _, k := range in.sequenceKeys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// SetInput sets where the scene reads pointer, wheel and key input. Run
// installs an ebiten-backed source; nil leaves only injected input.
func (s *Scene) SetInput(src InputSource) {
	s.input = src
}

// SetDragDeadZone sets the movement, in layout pixels, before a press turns
// into a pan instead of a click.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// --- Events ---

// ClickEvent describes a press and release without a drag in between.
type ClickEvent struct {
	// X, Y are window (layout) coordinates.
	X, Y float64
	// Cartesian is the clicked point in the scene's Cartesian space.
	Cartesian Vec2
	Button    MouseButton
}

// PanEvent describes one frame of a drag pan.
type PanEvent struct {
	// DX, DY are the pan increment in device pixels.
	DX, DY float64
	// PanX, PanY are the pan offset after the increment.
	PanX, PanY float64
}

// ZoomEvent describes a wheel zoom.
type ZoomEvent struct {
	// Target is the scale the view now eases toward.
	Target float64
}

// EventSink is the interface for optional ECS integration. When set on a
// Scene, every click, pan, zoom and sequence event is forwarded to it after
// the scene's own callbacks have run.
type EventSink interface {
	EmitEvent(event InputEvent)
}

// InputEvent carries scene input data for an EventSink. Only the fields of
// the event's Type are set.
type InputEvent struct {
	Type  EventType
	Scene SceneID
	// Click fields (EventClick)
	X, Y      float64
	Cartesian Vec2
	Button    MouseButton
	// Pan fields (EventPan)
	DX, DY     float64
	PanX, PanY float64
	// Zoom fields (EventZoom)
	Target float64
	// Sequence fields (EventSequence)
	Step int
}

// SetEventSink sets the optional ECS bridge. Nil disables forwarding.
func (s *Scene) SetEventSink(sink EventSink) {
	s.sink = sink
}

func (s *Scene) emit(evt InputEvent) {
	if s.sink == nil {
		return
	}
	evt.Scene = s.id
	s.sink.EmitEvent(evt)
}

// --- Per-pointer state ---

type pointerState struct {
	down     bool
	dragging bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	button   MouseButton // button captured at press time
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

type handlerRegistry struct {
	click    []handler[ClickEvent]
	pan      []handler[PanEvent]
	zoom     []handler[ZoomEvent]
	sequence []handler[int]
	nextID   uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventPan:
		h.reg.pan = removeHandler(h.reg.pan, h.id)
	case EventZoom:
		h.reg.zoom = removeHandler(h.reg.zoom, h.id)
	case EventSequence:
		h.reg.sequence = removeHandler(h.reg.sequence, h.id)
	}
}

func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = handler[T]{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

// OnClick registers a callback for clicks. The event carries the Cartesian
// point that was clicked.
func (s *Scene) OnClick(fn func(ClickEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, handler[ClickEvent]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// OnPan registers a callback fired each frame a drag moves the view.
func (s *Scene) OnPan(fn func(PanEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.pan = append(s.handlers.pan, handler[PanEvent]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventPan}
}

// OnZoom registers a callback fired when the wheel changes the target scale.
func (s *Scene) OnZoom(fn func(ZoomEvent)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.zoom = append(s.handlers.zoom, handler[ZoomEvent]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventZoom}
}

// OnSequence registers a callback fired after IncrementSequence has advanced
// every object, with the step that was passed to them.
func (s *Scene) OnSequence(fn func(step int)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.sequence = append(s.handlers.sequence, handler[int]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventSequence}
}

// --- Input processing ---

// processInput is called from Scene.Update before the objects run. Injected
// events take precedence: while one is consumed the real input is skipped.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	if s.input == nil {
		return
	}

	x, y := s.input.CursorPosition()

	// If pointer is already down, keep the stored button to avoid changing
	// mid-interaction.
	var pressed bool
	var button MouseButton
	left := s.input.MousePressed(MouseButtonLeft)
	right := s.input.MousePressed(MouseButtonRight)
	middle := s.input.MousePressed(MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}
	s.processPointer(x, y, pressed, button)

	if _, dy := s.input.Wheel(); dy != 0 {
		s.processWheel(dy)
	}
	if s.input.SequencePressed() {
		s.IncrementSequence()
	}
}

// processPointer runs the pointer state machine. Coordinates are layout
// pixels.
func (s *Scene) processPointer(x, y float64, pressed bool, button MouseButton) {
	ps := &s.pointer

	switch {
	case pressed && !ps.down:
		// Just pressed: capture button for the duration of this interaction.
		ps.down = true
		ps.dragging = false
		ps.button = button
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
	case !pressed && ps.down:
		// Just released: a press that never turned into a drag is a click.
		if !ps.dragging {
			s.fireClick(x, y, ps.button)
		}
		ps.down = false
		ps.dragging = false
	case pressed && ps.down:
		if x == ps.lastX && y == ps.lastY {
			return
		}
		if !ps.dragging {
			if math.Hypot(x-ps.startX, y-ps.startY) <= s.dragDeadZone {
				ps.lastX, ps.lastY = x, y
				return
			}
			ps.dragging = true
			// Pan the distance covered inside the dead zone too.
			ps.lastX, ps.lastY = ps.startX, ps.startY
		}
		if ps.button == MouseButtonLeft && s.cfg.Interactive.Move {
			s.panBy(x-ps.lastX, y-ps.lastY)
		}
		ps.lastX, ps.lastY = x, y
	}
}

// panBy moves the view by a layout-pixel delta.
func (s *Scene) panBy(dx, dy float64) {
	res := s.surface.Resolution()
	dx, dy = dx*res, dy*res
	s.registry.PanBy(s.id, dx, dy)
	px, py := s.registry.Pan(s.id)
	evt := PanEvent{DX: dx, DY: dy, PanX: px, PanY: py}
	for _, h := range s.handlers.pan {
		h.fn(evt)
	}
	s.emit(InputEvent{Type: EventPan, DX: dx, DY: dy, PanX: px, PanY: py})
}

// processWheel steps the target scale by one unit per event: down zooms out,
// up zooms in. The target never drops below MinScale.
func (s *Scene) processWheel(dy float64) {
	if !s.cfg.Interactive.Scroll {
		return
	}
	target := s.registry.TargetScale(s.id)
	if dy > 0 {
		target -= wheelZoomStep
	} else {
		target += wheelZoomStep
	}
	target = clampScale(target)
	s.registry.SetScale(s.id, target)
	evt := ZoomEvent{Target: target}
	for _, h := range s.handlers.zoom {
		h.fn(evt)
	}
	s.emit(InputEvent{Type: EventZoom, Target: target})
}

// --- Event dispatch ---

func (s *Scene) fireClick(x, y float64, button MouseButton) {
	if len(s.handlers.click) == 0 && s.sink == nil {
		return
	}
	cx, cy, _ := s.DOMToCartesian(x, y)
	evt := ClickEvent{X: x, Y: y, Cartesian: Vec2{X: cx, Y: cy}, Button: button}
	for _, h := range s.handlers.click {
		h.fn(evt)
	}
	s.emit(InputEvent{Type: EventClick, X: x, Y: y, Cartesian: evt.Cartesian, Button: button})
}

func (s *Scene) fireSequence(step int) {
	for _, h := range s.handlers.sequence {
		h.fn(step)
	}
	s.emit(InputEvent{Type: EventSequence, Step: step})
}
