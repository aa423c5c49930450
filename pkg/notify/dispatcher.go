package notify

import "sync"

// Dispatcher fans events out to any number of sinks.
type Dispatcher struct {
	mu    sync.RWMutex
	sinks []Sink
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Subscribe adds a sink. Subscribing the same sink twice delivers events
// twice; callers own deduplication.
func (d *Dispatcher) Subscribe(s Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks = append(d.sinks, s)
}

// Notify delivers the event to every subscribed sink in subscription order.
func (d *Dispatcher) Notify(ev Event) {
	d.mu.RLock()
	sinks := make([]Sink, len(d.sinks))
	copy(sinks, d.sinks)
	d.mu.RUnlock()

	for _, s := range sinks {
		s.Notify(ev)
	}
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ev Event)

// Notify calls the function.
func (f SinkFunc) Notify(ev Event) { f(ev) }

// FeedbackFunc adapts a function to the Feedback interface.
type FeedbackFunc func(cue FeedbackCue)

// Play calls the function.
func (f FeedbackFunc) Play(cue FeedbackCue) { f(cue) }

// Recorder is a Sink that records events, for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Notify records the event.
func (r *Recorder) Notify(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// CountKind returns how many recorded events have the given kind.
func (r *Recorder) CountKind(kind EventKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ev := range r.events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

// CueRecorder is a Feedback that records cues, for tests.
type CueRecorder struct {
	mu   sync.Mutex
	cues []FeedbackCue
}

// Play records the cue.
func (c *CueRecorder) Play(cue FeedbackCue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cues = append(c.cues, cue)
}

// Cues returns a copy of the recorded cues.
func (c *CueRecorder) Cues() []FeedbackCue {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]FeedbackCue, len(c.cues))
	copy(out, c.cues)
	return out
}

// Compile-time interface satisfaction checks.
var (
	_ Sink     = (*Dispatcher)(nil)
	_ Sink     = SinkFunc(nil)
	_ Sink     = (*Recorder)(nil)
	_ Feedback = FeedbackFunc(nil)
	_ Feedback = (*CueRecorder)(nil)
)
