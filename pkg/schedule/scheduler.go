package schedule

import (
	"sync"
	"time"
)

// TaskID names a timer by purpose. Scheduling an id that is already armed
// resets its deadline.
type TaskID string

// Timer purposes used by the driver core.
const (
	// TaskRecordTick is the periodic recording-duration recomputation.
	TaskRecordTick TaskID = "record-tick"

	// TaskCalibrationStall is the stall-timeout after 99% calibration.
	TaskCalibrationStall TaskID = "calibration-stall"

	// TaskDebounceFlush is the debounced parameter-update flush.
	TaskDebounceFlush TaskID = "debounce-flush"

	// TaskSettlingDelay is the wait after a mode switch before a
	// dependent capture action.
	TaskSettlingDelay TaskID = "settling-delay"

	// TaskThermalPoll is the thermal-status poll timer.
	TaskThermalPoll TaskID = "thermal-poll"

	// TaskCaptureStatusKick re-requests capture status after an
	// exposure-parameter edit.
	TaskCaptureStatusKick TaskID = "capture-status-kick"
)

// Scheduler arms, re-arms and cancels purpose-keyed timers.
// Implementations must make Cancel a no-op for unknown ids.
type Scheduler interface {
	// After arms a one-shot timer. An already-armed id is reset.
	After(id TaskID, delay time.Duration, fn func())

	// Every arms a repeating timer with a fixed interval, first firing
	// one interval from now. An already-armed id is reset.
	Every(id TaskID, interval time.Duration, fn func())

	// Cancel disarms a timer. Cancelling an unknown or fired timer is a
	// no-op.
	Cancel(id TaskID)

	// Stop disarms every timer.
	Stop()
}

// task is one armed timer.
type task struct {
	timer    *time.Timer
	interval time.Duration // 0 for one-shot
}

// TimerScheduler is the real-time Scheduler implementation.
type TimerScheduler struct {
	mu    sync.Mutex
	tasks map[TaskID]*task
}

// NewTimerScheduler creates a Scheduler backed by time.AfterFunc.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{
		tasks: make(map[TaskID]*task),
	}
}

// After arms a one-shot timer.
func (s *TimerScheduler) After(id TaskID, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(id)
	t := &task{}
	t.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		if s.tasks[id] == t {
			delete(s.tasks, id)
		}
		s.mu.Unlock()
		fn()
	})
	s.tasks[id] = t
}

// Every arms a repeating timer.
func (s *TimerScheduler) Every(id TaskID, interval time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked(id)
	t := &task{interval: interval}
	var arm func()
	arm = func() {
		t.timer = time.AfterFunc(interval, func() {
			s.mu.Lock()
			live := s.tasks[id] == t
			if live {
				arm()
			}
			s.mu.Unlock()
			if live {
				fn()
			}
		})
	}
	arm()
	s.tasks[id] = t
}

// Cancel disarms a timer.
func (s *TimerScheduler) Cancel(id TaskID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(id)
}

// Stop disarms every timer.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.tasks {
		t.timer.Stop()
		delete(s.tasks, id)
	}
}

func (s *TimerScheduler) cancelLocked(id TaskID) {
	if t, ok := s.tasks[id]; ok {
		t.timer.Stop()
		delete(s.tasks, id)
	}
}

// Compile-time interface satisfaction check.
var _ Scheduler = (*TimerScheduler)(nil)
