package mach

import "time"

// Ticker runs per-frame animation tasks. Each Tick advances every live task
// exactly once, in the order the tasks were scheduled. Tasks scheduled while a
// Tick is running first run on the following Tick.
//
// A Scene owns one Ticker and ticks it once per frame after its objects have
// been processed. Animatables, zoom easing and tweens all run on it, so
// destroying the scene cancels them together.
type Ticker struct {
	tasks   []*Task
	ticks   uint64
	stopped bool
}

// Task is one self-driving animation registered on a Ticker.
type Task struct {
	step   func(dt time.Duration) bool
	ticker *Ticker
	done   bool
}

// NewTicker creates an empty Ticker.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Schedule registers step to run once per Tick until it returns true or the
// task is cancelled.
// On a stopped ticker the returned task is already inactive.
func (t *Ticker) Schedule(step func(dt time.Duration) bool) *Task {
	task := &Task{step: step, ticker: t}
	if t.stopped {
		task.done = true
		return task
	}
	t.tasks = append(t.tasks, task)
	return task
}

// Tick advances every live task by dt and drops finished ones.
func (t *Ticker) Tick(dt time.Duration) {
	t.ticks++
	n := len(t.tasks)
	for i := 0; i < n && i < len(t.tasks); i++ {
		task := t.tasks[i]
		if task.done {
			continue
		}
		if task.step(dt) {
			task.done = true
		}
	}

	live := t.tasks[:0]
	for _, task := range t.tasks {
		if !task.done {
			live = append(live, task)
		}
	}
	for i := len(live); i < len(t.tasks); i++ {
		t.tasks[i] = nil
	}
	t.tasks = live
}

// Len returns the number of tasks that will run on the next Tick.
func (t *Ticker) Len() int {
	n := 0
	for _, task := range t.tasks {
		if !task.done {
			n++
		}
	}
	return n
}

// Ticks returns how many times Tick has been called.
func (t *Ticker) Ticks() uint64 {
	return t.ticks
}

// CancelAll cancels every pending task.
func (t *Ticker) CancelAll() {
	for _, task := range t.tasks {
		task.done = true
	}
	clear(t.tasks)
	t.tasks = t.tasks[:0]
}

// Stop cancels every pending task and refuses new ones. A scene stops its
// ticker when destroyed.
func (t *Ticker) Stop() {
	t.CancelAll()
	t.stopped = true
}

// Stopped reports whether Stop has been called.
func (t *Ticker) Stopped() bool {
	return t != nil && t.stopped
}

// Active reports whether the task is still scheduled.
func (k *Task) Active() bool {
	return k != nil && !k.done
}

// Cancel stops the task. It is removed on the next Tick. Safe on nil.
func (k *Task) Cancel() {
	if k != nil {
		k.done = true
	}
}
