// Package notify defines the driver's outward-facing change events and the
// audible-feedback contract.
//
// The UI-binding layer consumes typed Events through a Sink; capture
// success/failure cues go through Feedback. Both collaborators live outside
// this module, so no-op implementations are provided for tests and
// headless use.
package notify
