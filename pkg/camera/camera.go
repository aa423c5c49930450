package camera

import (
	"errors"
	"sync"
	"time"

	"github.com/camlink-protocol/camlink-go/pkg/camlog"
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/param"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// Well known parameter names from the camera definition file.
const (
	ParamMode           = "CAM_MODE"
	ParamShutterSpeed   = "CAM_SHUTTERSPD"
	ParamISO            = "CAM_ISO"
	ParamEV             = "CAM_EV"
	ParamExposureMode   = "CAM_EXPMODE"
	ParamMetering       = "CAM_METERING"
	ParamWhiteBalance   = "CAM_WBMODE"
	ParamVideoRes       = "CAM_VIDRES"
	ParamVideoFormat    = "CAM_VIDFMT"
	ParamSpotArea       = "CAM_SPOTAREA"
	ParamIRPalette      = "CAM_IRPALETTE"
	ParamIRTempRange    = "CAM_IRTEMPRENA"
	ParamIRTempMax      = "CAM_IRTEMPMAX"
	ParamIRTempMin      = "CAM_IRTEMPMIN"
	ParamThermalStatus  = "CAM_TEMPSTATUS"
	ParamROI            = "ROI"
	exposureModeManual  = uint32(1)
)

// Timing constants for the driver's scheduled work.
const (
	recordTickInterval    = 333 * time.Millisecond
	calibrationStallDelay = 5 * time.Second
	settlingDelay         = 2500 * time.Millisecond
	debounceDelay         = 100 * time.Millisecond
	thermalFirstPoll      = 100 * time.Millisecond
	thermalPollInterval   = time.Second
	captureStatusKick     = time.Second
)

// MinFreeStorageKB is the free-space floor below which capture
// operations are refused.
const MinFreeStorageKB = 250

var (
	// ErrNotReady is returned by operations that require the parameter
	// set to be fully loaded.
	ErrNotReady = errors.New("camera: parameters not ready")
	// ErrBusy is returned when a capture operation conflicts with the
	// camera's current activity.
	ErrBusy = errors.New("camera: device busy")
	// ErrStorage is returned when storage is missing or below the
	// minimum free-space floor.
	ErrStorage = errors.New("camera: insufficient storage")
	// ErrUnsupported is returned for operations the detected hardware
	// variant does not provide.
	ErrUnsupported = errors.New("camera: unsupported on this variant")
)

// Link is the outbound half of the command and telemetry connection.
// Implementations deliver to the camera component unless a different
// component id is given explicitly.
type Link interface {
	// SendCommand issues a command with up to seven float arguments.
	// A nil return means the peer accepted the request.
	SendCommand(component uint8, cmd wire.CommandID, args ...float64) error

	// SendParam writes a parameter value to the device.
	SendParam(name string, value any) error

	// RequestParam asks the device to report a single parameter.
	RequestParam(name string) error

	// RequestAllParams asks the device to report every parameter.
	RequestAllParams() error
}

// Config carries the collaborators a Control needs. Registry and Link
// are required; everything else has a working default.
type Config struct {
	ModelName string
	Registry  param.Registry
	Link      Link

	// FrameWidth and FrameHeight describe the video frame used to map
	// spot metering coordinates. Zero values default to 1280x720.
	FrameWidth  int
	FrameHeight int

	Scheduler schedule.Scheduler
	Sink      notify.Sink
	Feedback  notify.Feedback
	Logger    camlog.Logger

	// Now supplies the wall clock, overridable in tests.
	Now func() time.Time
}

// Control is the driver state machine for one camera connection.
type Control struct {
	mu sync.Mutex

	caps     Capabilities
	reg      param.Registry
	link     Link
	session  string
	sched    schedule.Scheduler
	sink     notify.Sink
	feedback notify.Feedback
	logger   camlog.Logger
	now      func() time.Time

	frameWidth  int
	frameHeight int

	gimbalVersion string

	roll, pitch, yaw float64
	orientationKnown bool

	calState    CalibrationState
	calProgress uint8

	photoStatus  uint8
	videoStatus  uint8
	recordStart  time.Time
	recordTime   time.Duration
	storageTotal uint32
	storageFree  uint32

	inMission  bool
	paramsReady bool

	activeSettings []string

	pending      map[string]struct{}
	pendingOrder []string

	thermal      wire.ThermalStatus
	thermalKnown bool

	buttonDown map[ButtonID]bool

	events []notify.Event
	cues   []notify.FeedbackCue
}

// New builds a Control around the given collaborators. The variant is
// detected from cfg.ModelName.
func New(cfg Config) *Control {
	c := &Control{
		caps:        DetectVariant(cfg.ModelName),
		reg:         cfg.Registry,
		session:     camlog.NewConnectionID(),
		sched:       cfg.Scheduler,
		sink:        cfg.Sink,
		feedback:    cfg.Feedback,
		logger:      cfg.Logger,
		now:         cfg.Now,
		frameWidth:  cfg.FrameWidth,
		frameHeight: cfg.FrameHeight,
		videoStatus: wire.VideoStatusUndefined,
		photoStatus: wire.PhotoStatusUndefined,
		pending:     make(map[string]struct{}),
		buttonDown:  make(map[ButtonID]bool),
	}
	if c.sched == nil {
		c.sched = schedule.NewTimerScheduler()
	}
	if c.sink == nil {
		c.sink = notify.NoopSink{}
	}
	if c.feedback == nil {
		c.feedback = notify.NoopFeedback{}
	}
	if c.logger == nil {
		c.logger = camlog.Noop{}
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.frameWidth == 0 {
		c.frameWidth = 1280
	}
	if c.frameHeight == 0 {
		c.frameHeight = 720
	}
	c.link = &loggingLink{inner: cfg.Link, c: c}
	return c
}

// logEvent stamps the session id onto a protocol event and records it.
func (c *Control) logEvent(ev camlog.Event) {
	ev.ConnectionID = c.session
	c.logger.Log(ev)
}

// Capabilities reports the detected hardware variant.
func (c *Control) Capabilities() Capabilities { return c.caps }

// Close stops all scheduled work.
func (c *Control) Close() {
	c.sched.Stop()
}

// Reset drops all connection-scoped state. Called when the link goes
// down so a reconnect starts from a clean slate.
func (c *Control) Reset() {
	c.reg.ResetLoaded()
	// The ROI parameter is host-synthesized; the device never re-reports
	// it, so it must not hold the ready latch open after a reconnect.
	if p, ok := c.reg.Get(ParamROI); ok {
		_ = c.reg.SetRaw(ParamROI, p.Value())
	}
	c.mu.Lock()
	c.sched.Cancel(schedule.TaskRecordTick)
	c.sched.Cancel(schedule.TaskCalibrationStall)
	c.sched.Cancel(schedule.TaskDebounceFlush)
	c.sched.Cancel(schedule.TaskSettlingDelay)
	c.sched.Cancel(schedule.TaskThermalPoll)
	c.sched.Cancel(schedule.TaskCaptureStatusKick)
	c.gimbalVersion = ""
	c.orientationKnown = false
	c.calState = CalibrationInactive
	c.calProgress = 0
	c.photoStatus = wire.PhotoStatusUndefined
	c.videoStatus = wire.VideoStatusUndefined
	c.recordTime = 0
	c.storageTotal = 0
	c.storageFree = 0
	c.inMission = false
	c.paramsReady = false
	c.activeSettings = nil
	c.pending = make(map[string]struct{})
	c.pendingOrder = nil
	c.thermalKnown = false
	c.buttonDown = make(map[ButtonID]bool)
	c.unlockAndFlush()
	c.logEvent(camlog.StateChange("control", "connected", "reset"))
}

// HandleMessage routes one inbound envelope to the matching handler.
// Unknown message types are ignored.
func (c *Control) HandleMessage(env *wire.Envelope) error {
	if err := env.Validate(); err != nil {
		c.logEvent(camlog.Error("validate", err))
		return err
	}
	c.logEvent(camlog.Inbound(env.Type, env.Component))
	if err := c.routeMessage(env); err != nil {
		c.logEvent(camlog.Error("decode "+env.Type.String(), err))
		return err
	}
	return nil
}

func (c *Control) routeMessage(env *wire.Envelope) error {
	switch env.Type {
	case wire.MsgCapabilityResponse:
		var cr wire.CapabilityResponse
		if err := env.DecodePayload(&cr); err != nil {
			return err
		}
		c.handleCapabilityResponse(env.Component, &cr)
	case wire.MsgMountOrientation:
		var mo wire.MountOrientation
		if err := env.DecodePayload(&mo); err != nil {
			return err
		}
		c.handleMountOrientation(&mo)
	case wire.MsgCommandAck:
		var ack wire.CommandAck
		if err := env.DecodePayload(&ack); err != nil {
			return err
		}
		c.handleCommandAck(env.Component, &ack)
	case wire.MsgHeartbeat:
		var hb wire.Heartbeat
		if err := env.DecodePayload(&hb); err != nil {
			return err
		}
		c.handleHeartbeat(env.Component, &hb)
	case wire.MsgCaptureStatus:
		var cs wire.CaptureStatus
		if err := env.DecodePayload(&cs); err != nil {
			return err
		}
		c.handleCaptureStatus(&cs)
	case wire.MsgParamValue:
		var pv wire.ParamValue
		if err := env.DecodePayload(&pv); err != nil {
			return err
		}
		c.HandleParamValue(pv.Name, pv.Value)
	}
	return nil
}

// ParametersReady reports whether every defined parameter has received
// its first value from the device.
func (c *Control) ParametersReady() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paramsReady
}

// RequestAllParameters asks the device to re-send every parameter.
func (c *Control) RequestAllParameters() error {
	return c.link.RequestAllParams()
}

// queueEvent records a notification for delivery after the lock drops.
// Must be called with c.mu held.
func (c *Control) queueEvent(kind notify.EventKind, name string, value any) {
	c.events = append(c.events, notify.Event{Kind: kind, Name: name, Value: value})
}

// queueCue records a feedback cue for delivery after the lock drops.
// Must be called with c.mu held.
func (c *Control) queueCue(cue notify.FeedbackCue) {
	c.cues = append(c.cues, cue)
}

// unlockAndFlush releases the lock and delivers everything queued while
// it was held. Sinks may call back into the Control safely.
func (c *Control) unlockAndFlush() {
	events := c.events
	cues := c.cues
	c.events = nil
	c.cues = nil
	c.mu.Unlock()
	for i := range events {
		c.sink.Notify(events[i])
	}
	for _, cue := range cues {
		c.feedback.Play(cue)
	}
}
