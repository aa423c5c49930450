package notify

// EventKind classifies a state-change event.
type EventKind uint8

const (
	// EventGimbalVersion fires when the gimbal version is first known.
	EventGimbalVersion EventKind = iota + 1

	// EventOrientation fires when an attitude axis moves past the noise
	// threshold.
	EventOrientation

	// EventOrientationAvailable fires once, on the first attitude sample.
	EventOrientationAvailable

	// EventCalibration fires on calibration state or progress changes.
	EventCalibration

	// EventVideoStatus fires on video capture status transitions.
	EventVideoStatus

	// EventRecordTime fires when the local recording clock advances.
	EventRecordTime

	// EventActiveSettings fires when the editable-parameter set changes.
	EventActiveSettings

	// EventSpotArea fires when the spot-metering area parameter changes.
	EventSpotArea

	// EventThermalStatus fires when a thermal status block decodes.
	EventThermalStatus

	// EventThermalPalette fires when the palette parameter changes.
	EventThermalPalette

	// EventParametersReady fires once the initial parameter load completes.
	EventParametersReady

	// EventParametersResynced fires when a full re-request is issued.
	EventParametersResynced

	// EventParameter fires on any generic parameter change.
	EventParameter
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case EventGimbalVersion:
		return "GIMBAL_VERSION"
	case EventOrientation:
		return "ORIENTATION"
	case EventOrientationAvailable:
		return "ORIENTATION_AVAILABLE"
	case EventCalibration:
		return "CALIBRATION"
	case EventVideoStatus:
		return "VIDEO_STATUS"
	case EventRecordTime:
		return "RECORD_TIME"
	case EventActiveSettings:
		return "ACTIVE_SETTINGS"
	case EventSpotArea:
		return "SPOT_AREA"
	case EventThermalStatus:
		return "THERMAL_STATUS"
	case EventThermalPalette:
		return "THERMAL_PALETTE"
	case EventParametersReady:
		return "PARAMETERS_READY"
	case EventParametersResynced:
		return "PARAMETERS_RESYNCED"
	case EventParameter:
		return "PARAMETER"
	default:
		return "UNKNOWN"
	}
}

// Event is one typed state-change notification.
type Event struct {
	// Kind classifies the event.
	Kind EventKind

	// Name is the parameter or axis name, when one applies.
	Name string

	// Value is the new value, when one applies.
	Value any
}

// Sink consumes state-change events. Implementations must not block;
// events are emitted from message handlers and timer callbacks.
type Sink interface {
	Notify(ev Event)
}

// FeedbackCue identifies an audible/visual capture cue.
type FeedbackCue uint8

const (
	// CueShutter is the photo-capture success cue.
	CueShutter FeedbackCue = iota + 1

	// CueRecordStart is the recording-start cue.
	CueRecordStart

	// CueRecordStop is the recording-stop cue (played twice by
	// convention in the reference hardware).
	CueRecordStop

	// CueError is the rejection/failure cue.
	CueError
)

// String returns the cue name.
func (c FeedbackCue) String() string {
	switch c {
	case CueShutter:
		return "SHUTTER"
	case CueRecordStart:
		return "RECORD_START"
	case CueRecordStop:
		return "RECORD_STOP"
	case CueError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Feedback plays capture cues. The reference implementation plays WAV
// assets; tests record the cue sequence.
type Feedback interface {
	Play(cue FeedbackCue)
}

// NoopSink discards all events. Safe as a zero value.
type NoopSink struct{}

// Notify discards the event.
func (NoopSink) Notify(Event) {}

// NoopFeedback discards all cues. Safe as a zero value.
type NoopFeedback struct{}

// Play discards the cue.
func (NoopFeedback) Play(FeedbackCue) {}

// Compile-time interface satisfaction checks.
var (
	_ Sink     = NoopSink{}
	_ Feedback = NoopFeedback{}
)
