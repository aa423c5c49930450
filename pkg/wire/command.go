package wire

// CommandID identifies a link command.
type CommandID uint16

const (
	// CmdRequestCapabilities requests the component's version/capability
	// word. Arg 0 set to 1 requests the gimbal version.
	CmdRequestCapabilities CommandID = 1

	// CmdPreflightCalibration starts a self-test/calibration sequence.
	// Arg 4 set to 1 selects the gimbal test.
	CmdPreflightCalibration CommandID = 2

	// CmdSetMode switches the camera between photo and video mode.
	CmdSetMode CommandID = 3

	// CmdImageCapture triggers a photo capture.
	CmdImageCapture CommandID = 4

	// CmdVideoStart starts video recording.
	CmdVideoStart CommandID = 5

	// CmdVideoStop stops video recording.
	CmdVideoStop CommandID = 6

	// CmdRequestCaptureStatus asks the camera to re-send its capture
	// status report.
	CmdRequestCaptureStatus CommandID = 7
)

// String returns the command name.
func (c CommandID) String() string {
	switch c {
	case CmdRequestCapabilities:
		return "REQUEST_CAPABILITIES"
	case CmdPreflightCalibration:
		return "PREFLIGHT_CALIBRATION"
	case CmdSetMode:
		return "SET_MODE"
	case CmdImageCapture:
		return "IMAGE_CAPTURE"
	case CmdVideoStart:
		return "VIDEO_START"
	case CmdVideoStop:
		return "VIDEO_STOP"
	case CmdRequestCaptureStatus:
		return "REQUEST_CAPTURE_STATUS"
	default:
		return "UNKNOWN"
	}
}

// Argument index of the gimbal-test flag in CmdPreflightCalibration.
const CalibrationGimbalArg = 4

// Argument value requesting the gimbal version in CmdRequestCapabilities.
const CapabilityRequestVersion = 1

// AckResult is the result code in a CommandAck.
type AckResult uint8

const (
	// AckAccepted means the command was accepted and executed.
	AckAccepted AckResult = 0

	// AckTemporarilyRejected means the command cannot run right now.
	AckTemporarilyRejected AckResult = 1

	// AckDenied means the command was refused.
	AckDenied AckResult = 2

	// AckUnsupported means the command is not implemented.
	AckUnsupported AckResult = 3

	// AckFailed means the command started but did not complete.
	AckFailed AckResult = 4

	// AckInProgress means the command is still running; Progress carries
	// the completion percentage.
	AckInProgress AckResult = 5
)

// String returns the ack result name.
func (r AckResult) String() string {
	switch r {
	case AckAccepted:
		return "ACCEPTED"
	case AckTemporarilyRejected:
		return "TEMPORARILY_REJECTED"
	case AckDenied:
		return "DENIED"
	case AckUnsupported:
		return "UNSUPPORTED"
	case AckFailed:
		return "FAILED"
	case AckInProgress:
		return "IN_PROGRESS"
	default:
		return "UNKNOWN"
	}
}

// Camera modes carried in CmdSetMode arg 0 and the CAM_MODE parameter.
const (
	// CameraModePhoto is still-capture mode.
	CameraModePhoto uint32 = 0

	// CameraModeVideo is video-recording mode.
	CameraModeVideo uint32 = 1
)

// Video capture status values in CaptureStatus.VideoStatus.
const (
	// VideoStatusStopped means no recording is active.
	VideoStatusStopped uint8 = 0

	// VideoStatusRunning means a recording is active.
	VideoStatusRunning uint8 = 1

	// VideoStatusUndefined means the status is not yet known (pre-telemetry).
	VideoStatusUndefined uint8 = 255
)

// Photo capture status values in CaptureStatus.ImageStatus.
const (
	// PhotoStatusIdle means the camera can take a photo.
	PhotoStatusIdle uint8 = 0

	// PhotoStatusInProgress means a capture is running.
	PhotoStatusInProgress uint8 = 1

	// PhotoStatusUndefined means the status is not yet known.
	PhotoStatusUndefined uint8 = 255
)
