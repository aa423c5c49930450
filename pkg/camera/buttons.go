package camera

import (
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// ButtonID identifies a hardware control on the operator grip.
type ButtonID int

const (
	// ButtonShutter is the still-capture trigger.
	ButtonShutter ButtonID = iota
	// ButtonVideo is the recording toggle.
	ButtonVideo
)

func (b ButtonID) String() string {
	switch b {
	case ButtonShutter:
		return "Shutter"
	case ButtonVideo:
		return "Video"
	default:
		return "Unknown"
	}
}

// HandleButton feeds one hardware button sample into the driver.
// Actions fire on the released-to-pressed edge only; repeated pressed
// samples are ignored.
func (c *Control) HandleButton(btn ButtonID, pressed bool) {
	c.mu.Lock()
	was := c.buttonDown[btn]
	c.buttonDown[btn] = pressed
	c.mu.Unlock()
	if !pressed || was {
		return
	}
	switch btn {
	case ButtonShutter:
		c.shutterPressed()
	case ButtonVideo:
		c.videoPressed()
	}
}

// captureGuard rejects capture actions when storage is absent or nearly
// full, or when the camera is still busy with the previous capture.
func (c *Control) captureGuard() error {
	c.mu.Lock()
	total, free := c.storageTotal, c.storageFree
	photo := c.photoStatus
	c.mu.Unlock()
	if total == 0 || free < MinFreeStorageKB {
		return ErrStorage
	}
	if photo != wire.PhotoStatusIdle {
		return ErrBusy
	}
	return nil
}

func (c *Control) shutterPressed() {
	if err := c.captureGuard(); err != nil {
		c.playError()
		return
	}
	switch c.CameraMode() {
	case wire.CameraModePhoto:
		_ = c.TakePhoto()
	case wire.CameraModeVideo:
		// An active recording blocks stills even on hardware that can
		// take photos in video mode.
		if c.VideoStatus() != wire.VideoStatusStopped {
			c.playError()
			return
		}
		if c.caps.PhotosInVideoMode() {
			_ = c.TakePhoto()
			return
		}
		// Switching modes interrupts the sensor pipeline; wait for it
		// to settle before triggering the capture.
		if err := c.SetPhotoMode(); err != nil {
			c.playError()
			return
		}
		c.sched.After(schedule.TaskSettlingDelay, settlingDelay, func() { _ = c.TakePhoto() })
	default:
		c.playError()
	}
}

func (c *Control) videoPressed() {
	if err := c.captureGuard(); err != nil {
		c.playError()
		return
	}
	switch c.CameraMode() {
	case wire.CameraModeVideo:
		_ = c.ToggleVideo()
	case wire.CameraModePhoto:
		if err := c.SetVideoMode(); err != nil {
			c.playError()
			return
		}
		c.sched.After(schedule.TaskSettlingDelay, settlingDelay, func() { _ = c.StartVideo() })
	default:
		c.playError()
	}
}

func (c *Control) playError() {
	c.mu.Lock()
	c.queueCue(notify.CueError)
	c.unlockAndFlush()
}
