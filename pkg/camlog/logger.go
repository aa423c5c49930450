package camlog

// Logger is the interface applications implement to receive protocol
// log events. Pass Noop to disable logging.
type Logger interface {
	// Log records a protocol event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking affects
	// the driver's message loop.
	Log(event Event)
}

// Noop discards all events. Use when logging is disabled.
// Noop is safe for concurrent use and usable as a zero value.
type Noop struct{}

// Log discards the event.
func (Noop) Log(Event) {}

// Compile-time interface satisfaction check.
var _ Logger = Noop{}
