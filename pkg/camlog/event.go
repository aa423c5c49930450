package camlog

import (
	"time"

	"github.com/google/uuid"

	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// Event represents one captured protocol event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the link session (UUID).
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Type-specific payload (one of these will be set).
	Message     *MessageEvent     `cbor:"5,keyasint,omitempty"`
	StateChange *StateChangeEvent `cbor:"6,keyasint,omitempty"`
	Error       *ErrorEventData   `cbor:"7,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an inbound message from the camera.
	DirectionIn Direction = 0
	// DirectionOut indicates an outbound message to the camera.
	DirectionOut Direction = 1
	// DirectionNone indicates an event with no wire traffic.
	DirectionNone Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	case DirectionNone:
		return "-"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a link message.
	CategoryMessage Category = 0
	// CategoryState indicates a driver state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MessageEvent captures one decoded link message.
type MessageEvent struct {
	// Type is the envelope message type.
	Type wire.MessageType `cbor:"1,keyasint"`

	// Component is the source or target component id.
	Component uint8 `cbor:"2,keyasint"`

	// Command is set for command and ack messages.
	Command *wire.CommandID `cbor:"3,keyasint,omitempty"`

	// Param is set for parameter traffic.
	Param string `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures a driver state transition.
type StateChangeEvent struct {
	// Entity names the state machine that changed.
	Entity string `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// NewConnectionID generates a fresh session identifier.
func NewConnectionID() string {
	return uuid.NewString()
}

// Inbound builds a message event for traffic received from the camera.
func Inbound(msgType wire.MessageType, component uint8) Event {
	return Event{
		Timestamp: time.Now(),
		Direction: DirectionIn,
		Category:  CategoryMessage,
		Message:   &MessageEvent{Type: msgType, Component: component},
	}
}

// Outbound builds a message event for traffic sent to the camera.
func Outbound(msgType wire.MessageType, component uint8) Event {
	return Event{
		Timestamp: time.Now(),
		Direction: DirectionOut,
		Category:  CategoryMessage,
		Message:   &MessageEvent{Type: msgType, Component: component},
	}
}

// StateChange builds a state transition event.
func StateChange(entity, oldState, newState string) Event {
	return Event{
		Timestamp:   time.Now(),
		Direction:   DirectionNone,
		Category:    CategoryState,
		StateChange: &StateChangeEvent{Entity: entity, OldState: oldState, NewState: newState},
	}
}

// Error builds an error event.
func Error(context string, err error) Event {
	return Event{
		Timestamp: time.Now(),
		Direction: DirectionNone,
		Category:  CategoryError,
		Error:     &ErrorEventData{Message: err.Error(), Context: context},
	}
}
