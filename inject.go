package mach

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticSequence
)

// syntheticEvent represents a single injected input event. Window (layout)
// coordinates are used, the same space real pointer input arrives in.
type syntheticEvent struct {
	kind    syntheticKind
	x, y    float64
	pressed bool
	button  MouseButton
	wheel   float64
}

// InjectPress queues a pointer press event at the given window coordinates
// (left button). The event is consumed on the next frame's processInput call.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectMove queues a pointer move event at the given window coordinates
// with the button held down. Use this between InjectPress and InjectRelease
// to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		x: x, y: y,
		pressed: true,
		button:  MouseButtonLeft,
	})
}

// InjectRelease queues a pointer release event at the given window coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		x: x, y: y,
		pressed: false,
		button:  MouseButtonLeft,
	})
}

// InjectClick is a convenience that queues a press followed by a release
// at the same window coordinates. Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// frames-2 moves evenly spaced toward and ending at (toX, toY), and release
// at (toX, toY). The total sequence consumes `frames` frames. With fewer than
// 3 frames there is no move, so the release registers as a click.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		s.InjectMove(Lerp(fromX, toX, t), Lerp(fromY, toY, t))
	}
	s.InjectRelease(toX, toY)
}

// InjectWheel queues one wheel event. Positive dy scrolls down (zooms out).
func (s *Scene) InjectWheel(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticWheel, wheel: dy})
}

// InjectSequence queues a press of the sequence key.
func (s *Scene) InjectSequence() {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticSequence})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the same paths as real input. Returns true if an event was
// consumed (real input should be skipped).
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch evt.kind {
	case syntheticWheel:
		s.processWheel(evt.wheel)
	case syntheticSequence:
		s.IncrementSequence()
	default:
		s.processPointer(evt.x, evt.y, evt.pressed, evt.button)
	}
	return true
}
