package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Message type identifiers.
type MessageType uint8

const (
	// Inbound telemetry (device to driver).

	// MsgCapabilityResponse carries the gimbal version/capability word.
	MsgCapabilityResponse MessageType = 1

	// MsgMountOrientation carries gimbal attitude telemetry.
	MsgMountOrientation MessageType = 2

	// MsgCommandAck acknowledges a previously issued command.
	MsgCommandAck MessageType = 3

	// MsgHeartbeat is the vehicle heartbeat with the custom-mode word.
	MsgHeartbeat MessageType = 4

	// MsgCaptureStatus is the authoritative capture status report.
	MsgCaptureStatus MessageType = 5

	// MsgParamValue reports a named parameter value.
	MsgParamValue MessageType = 6

	// Outbound (driver to device).

	// MsgCommand issues a command to a component.
	MsgCommand MessageType = 16

	// MsgParamSet writes a named parameter value.
	MsgParamSet MessageType = 17

	// MsgParamRequest requests one parameter (or all, with an empty name).
	MsgParamRequest MessageType = 18
)

// String returns the message type name.
func (t MessageType) String() string {
	switch t {
	case MsgCapabilityResponse:
		return "CAPABILITY_RESPONSE"
	case MsgMountOrientation:
		return "MOUNT_ORIENTATION"
	case MsgCommandAck:
		return "COMMAND_ACK"
	case MsgHeartbeat:
		return "HEARTBEAT"
	case MsgCaptureStatus:
		return "CAPTURE_STATUS"
	case MsgParamValue:
		return "PARAM_VALUE"
	case MsgCommand:
		return "COMMAND"
	case MsgParamSet:
		return "PARAM_SET"
	case MsgParamRequest:
		return "PARAM_REQUEST"
	default:
		return "UNKNOWN"
	}
}

// Component ids on the link.
const (
	// ComponentAutopilot is the vehicle's default component.
	ComponentAutopilot uint8 = 1

	// ComponentCamera is the camera payload.
	ComponentCamera uint8 = 100

	// ComponentGimbal is the gimbal subsystem.
	ComponentGimbal uint8 = 154
)

// Envelope wraps every link message.
//
// CBOR encoding:
//
//	{
//	  1: type,       // uint8
//	  2: component,  // uint8: source (inbound) or target (outbound)
//	  3: payload     // type-specific map
//	}
type Envelope struct {
	Type      MessageType     `cbor:"1,keyasint"`
	Component uint8           `cbor:"2,keyasint"`
	Payload   cbor.RawMessage `cbor:"3,keyasint,omitempty"`
}

// Validate checks if the envelope carries a known message type.
func (e *Envelope) Validate() error {
	if e.Type.String() == "UNKNOWN" {
		return fmt.Errorf("unknown message type: %d", e.Type)
	}
	return nil
}

// CapabilityResponse carries the gimbal firmware version word.
//
// The version word packs major/minor/patch into the top three bytes.
type CapabilityResponse struct {
	VersionWord  uint32 `cbor:"1,keyasint"`
	Capabilities uint64 `cbor:"2,keyasint,omitempty"`
}

// Version fields are extracted with byte-shifted masks.

// Major returns the major version field.
func (c *CapabilityResponse) Major() uint8 { return uint8((c.VersionWord >> 24) & 0xFF) }

// Minor returns the minor version field.
func (c *CapabilityResponse) Minor() uint8 { return uint8((c.VersionWord >> 16) & 0xFF) }

// Patch returns the patch version field.
func (c *CapabilityResponse) Patch() uint8 { return uint8((c.VersionWord >> 8) & 0xFF) }

// VersionString formats the version word as "major.minor.patch".
func (c *CapabilityResponse) VersionString() string {
	return fmt.Sprintf("%d.%d.%d", c.Major(), c.Minor(), c.Patch())
}

// MountOrientation is gimbal attitude telemetry in degrees.
type MountOrientation struct {
	Roll  float64 `cbor:"1,keyasint"`
	Pitch float64 `cbor:"2,keyasint"`
	Yaw   float64 `cbor:"3,keyasint"`
}

// CommandAck acknowledges a command, optionally reporting progress.
type CommandAck struct {
	Command  CommandID `cbor:"1,keyasint"`
	Result   AckResult `cbor:"2,keyasint"`
	Progress uint8     `cbor:"3,keyasint,omitempty"`
}

// Heartbeat is the vehicle heartbeat. The custom-mode word encodes the
// flight mode; the sub-mode occupies the top byte.
type Heartbeat struct {
	BaseMode   uint8  `cbor:"1,keyasint"`
	CustomMode uint32 `cbor:"2,keyasint"`
}

// Flight sub-modes carried in the custom-mode word.
const (
	// SubModeAutoMission is the autonomous mission leg.
	SubModeAutoMission uint8 = 4
)

// SubMode extracts the flight sub-mode from the custom-mode word.
func (h *Heartbeat) SubMode() uint8 {
	return uint8(h.CustomMode >> 24)
}

// CaptureStatus is the authoritative capture status report. The device
// measures RecordingTimeMS itself; the driver uses it to resynchronize its
// local recording clock.
type CaptureStatus struct {
	ImageStatus     uint8  `cbor:"1,keyasint"`
	VideoStatus     uint8  `cbor:"2,keyasint"`
	RecordingTimeMS uint32 `cbor:"3,keyasint"`
	StorageTotal    uint32 `cbor:"4,keyasint"` // KiB
	StorageFree     uint32 `cbor:"5,keyasint"` // KiB
}

// ParamValue reports a named parameter value. Values are scalars or, for
// block parameters such as the thermal status, raw bytes.
type ParamValue struct {
	Name  string `cbor:"1,keyasint"`
	Value any    `cbor:"2,keyasint,omitempty"`
}

// Command issues a command to a component. Args are command-specific; a
// missing arg reads as zero.
type Command struct {
	Command CommandID `cbor:"1,keyasint"`
	Args    []float64 `cbor:"2,keyasint,omitempty"`
}

// Arg returns the i-th argument, or 0 if absent.
func (c *Command) Arg(i int) float64 {
	if i < 0 || i >= len(c.Args) {
		return 0
	}
	return c.Args[i]
}

// ParamSet writes a named parameter value.
type ParamSet struct {
	Name  string `cbor:"1,keyasint"`
	Value any    `cbor:"2,keyasint,omitempty"`
}

// ParamRequest requests a parameter value. An empty name requests the full
// parameter list.
type ParamRequest struct {
	Name string `cbor:"1,keyasint,omitempty"`
}
