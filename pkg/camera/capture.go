package camera

import (
	"fmt"
	"time"

	"github.com/camlink-protocol/camlink-go/pkg/camlog"
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// CameraModeUndefined is reported before the mode parameter loads.
const CameraModeUndefined = uint32(0xFF)

// CameraMode returns the current capture mode from the mode parameter.
func (c *Control) CameraMode() uint32 {
	p, ok := c.reg.Get(ParamMode)
	if !ok || !p.Loaded() {
		return CameraModeUndefined
	}
	return p.Uint()
}

// VideoStatus returns the last reported recording state.
func (c *Control) VideoStatus() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.videoStatus
}

// RecordTime returns the elapsed recording time.
func (c *Control) RecordTime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recordTime
}

// RecordTimeString renders the elapsed recording time as hh:mm:ss.
func (c *Control) RecordTimeString() string {
	d := c.RecordTime()
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Storage returns total and free space in KiB as last reported.
func (c *Control) Storage() (total, free uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storageTotal, c.storageFree
}

// TakePhoto requests a single still capture and plays the matching
// feedback cue for the outcome.
func (c *Control) TakePhoto() error {
	err := c.link.SendCommand(wire.ComponentCamera, wire.CmdImageCapture, 0, 1, 1)
	c.mu.Lock()
	if err != nil {
		c.queueCue(notify.CueError)
	} else {
		c.queueCue(notify.CueShutter)
	}
	c.unlockAndFlush()
	return err
}

// StartVideo requests the start of a recording. The start cue plays
// when the device reports the recording as running, not here.
func (c *Control) StartVideo() error {
	err := c.link.SendCommand(wire.ComponentCamera, wire.CmdVideoStart, 0)
	if err != nil {
		c.mu.Lock()
		c.queueCue(notify.CueError)
		c.unlockAndFlush()
	}
	return err
}

// StopVideo requests the end of the current recording.
func (c *Control) StopVideo() error {
	err := c.link.SendCommand(wire.ComponentCamera, wire.CmdVideoStop)
	if err != nil {
		c.mu.Lock()
		c.queueCue(notify.CueError)
		c.unlockAndFlush()
	}
	return err
}

// ToggleVideo starts or stops recording based on the current status.
func (c *Control) ToggleVideo() error {
	if c.VideoStatus() == wire.VideoStatusRunning {
		return c.StopVideo()
	}
	return c.StartVideo()
}

// SetPhotoMode switches the camera into still capture mode.
func (c *Control) SetPhotoMode() error {
	return c.setMode(wire.CameraModePhoto)
}

// SetVideoMode switches the camera into recording mode.
func (c *Control) SetVideoMode() error {
	return c.setMode(wire.CameraModeVideo)
}

func (c *Control) setMode(mode uint32) error {
	if c.CameraMode() == mode {
		return nil
	}
	if err := c.reg.SetRaw(ParamMode, mode); err != nil {
		return err
	}
	return c.link.SendCommand(wire.ComponentCamera, wire.CmdSetMode, 0, float64(mode))
}

func (c *Control) handleCaptureStatus(cs *wire.CaptureStatus) {
	c.mu.Lock()
	c.photoStatus = cs.ImageStatus
	c.storageTotal = cs.StorageTotal
	c.storageFree = cs.StorageFree
	c.setVideoStatusLocked(cs.VideoStatus)
	if c.videoStatus == wire.VideoStatusRunning {
		// The device clock is authoritative; re-anchor ours to it.
		c.recordStart = c.now().Add(-time.Duration(cs.RecordingTimeMS) * time.Millisecond)
		c.recordTime = time.Duration(cs.RecordingTimeMS) * time.Millisecond
		c.queueEvent(notify.EventRecordTime, "", c.recordTime)
	}
	c.unlockAndFlush()
}

// setVideoStatusLocked applies a recording state transition. Must be
// called with c.mu held.
func (c *Control) setVideoStatusLocked(status uint8) {
	old := c.videoStatus
	if status == old {
		return
	}
	c.videoStatus = status
	c.queueEvent(notify.EventVideoStatus, "", status)
	c.logEvent(camlog.StateChange("video", videoStatusName(old), videoStatusName(status)))
	if status == wire.VideoStatusRunning {
		c.recordStart = c.now()
		c.recordTime = 0
		c.sched.Every(schedule.TaskRecordTick, recordTickInterval, c.onRecordTick)
		c.queueCue(notify.CueRecordStart)
		c.recomputeActiveSettingsLocked()
		return
	}
	c.sched.Cancel(schedule.TaskRecordTick)
	c.recordTime = 0
	c.queueEvent(notify.EventRecordTime, "", time.Duration(0))
	if old == wire.VideoStatusUndefined {
		// First report after connect just tells us the camera is
		// ready; there was no recording of ours to stop.
		c.queueCue(notify.CueRecordStart)
	} else {
		c.queueCue(notify.CueRecordStop)
	}
	c.recomputeActiveSettingsLocked()
}

func (c *Control) onRecordTick() {
	c.mu.Lock()
	if c.videoStatus == wire.VideoStatusRunning {
		c.recordTime = c.now().Sub(c.recordStart)
		c.queueEvent(notify.EventRecordTime, "", c.recordTime)
	}
	c.unlockAndFlush()
}

func videoStatusName(s uint8) string {
	switch s {
	case wire.VideoStatusStopped:
		return "Stopped"
	case wire.VideoStatusRunning:
		return "Running"
	default:
		return "Undefined"
	}
}
