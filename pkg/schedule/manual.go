package schedule

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Scheduler driven by an explicit mock clock. Nothing fires
// until Advance moves the clock past a deadline. Callbacks run on the
// goroutine calling Advance, in deadline order, which mirrors the core's
// single-threaded event discipline.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	tasks map[TaskID]*manualTask
}

type manualTask struct {
	deadline time.Time
	interval time.Duration // 0 for one-shot
	fn       func()
}

// NewManual creates a Manual scheduler starting at an arbitrary epoch.
func NewManual() *Manual {
	return &Manual{
		now:   time.Unix(0, 0),
		tasks: make(map[TaskID]*manualTask),
	}
}

// Now returns the mock clock reading.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// After arms a one-shot timer.
func (m *Manual) After(id TaskID, delay time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[id] = &manualTask{deadline: m.now.Add(delay), fn: fn}
}

// Every arms a repeating timer.
func (m *Manual) Every(id TaskID, interval time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks[id] = &manualTask{deadline: m.now.Add(interval), interval: interval, fn: fn}
}

// Cancel disarms a timer.
func (m *Manual) Cancel(id TaskID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tasks, id)
}

// Stop disarms every timer.
func (m *Manual) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = make(map[TaskID]*manualTask)
}

// Armed reports whether a timer is currently armed.
func (m *Manual) Armed(id TaskID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tasks[id]
	return ok
}

// Advance moves the clock forward, firing due timers in deadline order.
// Repeating timers re-arm and may fire several times within one call.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)

	for {
		id, t := m.nextDueLocked(target)
		if t == nil {
			break
		}

		// Clock jumps to the firing instant so callbacks that re-arm
		// timers measure delays from the right point.
		m.now = t.deadline
		if t.interval > 0 {
			t.deadline = t.deadline.Add(t.interval)
		} else {
			delete(m.tasks, id)
		}
		fn := t.fn

		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}

	m.now = target
	m.mu.Unlock()
}

// nextDueLocked returns the earliest timer due at or before target.
// Equal deadlines fire in TaskID order so tests are deterministic.
func (m *Manual) nextDueLocked(target time.Time) (TaskID, *manualTask) {
	var ids []TaskID
	for id, t := range m.tasks {
		if !t.deadline.After(target) {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return "", nil
	}
	sort.Slice(ids, func(i, j int) bool {
		ti, tj := m.tasks[ids[i]], m.tasks[ids[j]]
		if !ti.deadline.Equal(tj.deadline) {
			return ti.deadline.Before(tj.deadline)
		}
		return ids[i] < ids[j]
	})
	return ids[0], m.tasks[ids[0]]
}

// Compile-time interface satisfaction check.
var _ Scheduler = (*Manual)(nil)
