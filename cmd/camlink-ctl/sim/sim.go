// Package sim provides an in-process simulated camera for exercising
// the driver without hardware. It implements camera.Link and answers
// commands with the telemetry a real camera would produce.
package sim

import (
	"fmt"
	"sync"

	"github.com/camlink-protocol/camlink-go/pkg/param"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// Camera is a simulated device behind the link.
type Camera struct {
	mu sync.Mutex

	deliver func(*wire.Envelope)

	versionWord uint32
	recording   bool
	recordMS    uint32

	values map[string]any
	order  []string

	storageTotal uint32
	storageFree  uint32
}

// New builds a simulated camera seeded from a parameter definition.
// Parameters take their definition defaults, or the first option value
// when no default is given.
func New(def *param.Definition, versionWord uint32) *Camera {
	c := &Camera{
		versionWord:  versionWord,
		values:       make(map[string]any),
		storageTotal: 16 * 1024 * 1024,
		storageFree:  12 * 1024 * 1024,
	}
	for _, p := range def.Parameters {
		v := p.Default
		if v == nil && len(p.Options) > 0 {
			v = p.Options[0].Value
		}
		if v == nil {
			v = uint32(0)
		}
		c.values[p.Name] = v
		c.order = append(c.order, p.Name)
	}
	return c
}

// OnMessage sets the inbound delivery target, normally the control's
// HandleMessage wrapped to discard the error.
func (c *Camera) OnMessage(fn func(*wire.Envelope)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deliver = fn
}

func (c *Camera) send(msgType wire.MessageType, component uint8, payload any) error {
	c.mu.Lock()
	fn := c.deliver
	c.mu.Unlock()
	if fn == nil {
		return nil
	}
	env, err := wire.NewEnvelope(msgType, component, payload)
	if err != nil {
		return err
	}
	fn(env)
	return nil
}

// SendCommand handles one host command and synthesizes the telemetry a
// real camera would send back.
func (c *Camera) SendCommand(component uint8, cmd wire.CommandID, args ...float64) error {
	switch cmd {
	case wire.CmdRequestCapabilities:
		return c.send(wire.MsgCapabilityResponse, wire.ComponentGimbal,
			&wire.CapabilityResponse{VersionWord: c.versionWord})

	case wire.CmdPreflightCalibration:
		// Compressed calibration run: steps then the completion marker.
		for _, progress := range []uint8{25, 50, 75, 99, 255} {
			if err := c.send(wire.MsgCommandAck, wire.ComponentGimbal, &wire.CommandAck{
				Command:  wire.CmdPreflightCalibration,
				Result:   wire.AckInProgress,
				Progress: progress,
			}); err != nil {
				return err
			}
		}
		return nil

	case wire.CmdSetMode:
		if len(args) < 2 {
			return fmt.Errorf("set mode needs a mode argument")
		}
		c.mu.Lock()
		c.values["CAM_MODE"] = uint32(args[1])
		c.mu.Unlock()
		return c.sendParam("CAM_MODE")

	case wire.CmdImageCapture:
		c.mu.Lock()
		if c.storageFree > 2048 {
			c.storageFree -= 2048
		}
		c.mu.Unlock()
		return c.sendCaptureStatus()

	case wire.CmdVideoStart:
		c.mu.Lock()
		c.recording = true
		c.recordMS = 0
		c.mu.Unlock()
		return c.sendCaptureStatus()

	case wire.CmdVideoStop:
		c.mu.Lock()
		c.recording = false
		c.recordMS = 0
		c.mu.Unlock()
		return c.sendCaptureStatus()

	case wire.CmdRequestCaptureStatus:
		return c.sendCaptureStatus()

	default:
		return fmt.Errorf("unsupported command %s", cmd)
	}
}

// SendParam stores a host parameter write and echoes it back, the way
// real firmware confirms writes.
func (c *Camera) SendParam(name string, value any) error {
	c.mu.Lock()
	if _, known := c.values[name]; !known {
		c.mu.Unlock()
		return fmt.Errorf("unknown parameter %q", name)
	}
	c.values[name] = value
	c.mu.Unlock()
	return c.sendParam(name)
}

// RequestParam reports one parameter.
func (c *Camera) RequestParam(name string) error {
	c.mu.Lock()
	_, known := c.values[name]
	c.mu.Unlock()
	if !known {
		return fmt.Errorf("unknown parameter %q", name)
	}
	return c.sendParam(name)
}

// RequestAllParams reports every parameter in definition order.
func (c *Camera) RequestAllParams() error {
	c.mu.Lock()
	names := make([]string, len(c.order))
	copy(names, c.order)
	c.mu.Unlock()
	for _, name := range names {
		if err := c.sendParam(name); err != nil {
			return err
		}
	}
	return nil
}

// AdvanceRecording bumps the device-side recording clock, simulating
// elapsed recording time before the next status report.
func (c *Camera) AdvanceRecording(ms uint32) {
	c.mu.Lock()
	if c.recording {
		c.recordMS += ms
	}
	c.mu.Unlock()
}

func (c *Camera) sendParam(name string) error {
	c.mu.Lock()
	value := c.values[name]
	c.mu.Unlock()
	return c.send(wire.MsgParamValue, wire.ComponentCamera,
		&wire.ParamValue{Name: name, Value: value})
}

func (c *Camera) sendCaptureStatus() error {
	c.mu.Lock()
	status := &wire.CaptureStatus{
		ImageStatus:     wire.PhotoStatusIdle,
		VideoStatus:     wire.VideoStatusStopped,
		RecordingTimeMS: c.recordMS,
		StorageTotal:    c.storageTotal,
		StorageFree:     c.storageFree,
	}
	if c.recording {
		status.VideoStatus = wire.VideoStatusRunning
	}
	c.mu.Unlock()
	return c.send(wire.MsgCaptureStatus, wire.ComponentCamera, status)
}
