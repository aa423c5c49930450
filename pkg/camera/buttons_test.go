package camera

import (
	"testing"

	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

func (h *harness) pressAndRelease(btn ButtonID) {
	h.ctrl.HandleButton(btn, true)
	h.ctrl.HandleButton(btn, false)
}

func TestShutterStorageGuard(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()

	// No capture status yet: storage unknown.
	h.pressAndRelease(ButtonShutter)
	if h.link.commandCount(wire.CmdImageCapture) != 0 {
		t.Error("no capture without storage information")
	}
	if countCues(h.cues.Cues(), notify.CueError) != 1 {
		t.Error("expected the error cue")
	}

	// Free space under the floor.
	h.deliver(t, wire.MsgCaptureStatus, wire.ComponentCamera, &wire.CaptureStatus{
		ImageStatus:  wire.PhotoStatusIdle,
		VideoStatus:  wire.VideoStatusStopped,
		StorageTotal: 16 * 1024 * 1024,
		StorageFree:  MinFreeStorageKB - 1,
	})
	h.pressAndRelease(ButtonShutter)
	if h.link.commandCount(wire.CmdImageCapture) != 0 {
		t.Error("no capture with a nearly full card")
	}
}

func TestShutterBusyGuard(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()

	h.reportCaptureStatus(t, wire.PhotoStatusInProgress, wire.VideoStatusStopped, 0)
	h.pressAndRelease(ButtonShutter)
	if h.link.commandCount(wire.CmdImageCapture) != 0 {
		t.Error("no capture while the previous one is running")
	}
	if countCues(h.cues.Cues(), notify.CueError) != 1 {
		t.Error("expected the error cue")
	}
}

func TestShutterInPhotoMode(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusStopped, 0)

	h.pressAndRelease(ButtonShutter)
	if h.link.commandCount(wire.CmdImageCapture) != 1 {
		t.Fatal("expected one capture command")
	}
	if countCues(h.cues.Cues(), notify.CueShutter) != 1 {
		t.Error("expected the shutter cue")
	}
}

func TestShutterEdgeDetection(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusStopped, 0)

	h.ctrl.HandleButton(ButtonShutter, true)
	h.ctrl.HandleButton(ButtonShutter, true) // held, not a new edge
	if h.link.commandCount(wire.CmdImageCapture) != 1 {
		t.Errorf("captures: got %d, want 1", h.link.commandCount(wire.CmdImageCapture))
	}

	h.ctrl.HandleButton(ButtonShutter, false)
	h.ctrl.HandleButton(ButtonShutter, true)
	if h.link.commandCount(wire.CmdImageCapture) != 2 {
		t.Errorf("captures after release+press: got %d, want 2", h.link.commandCount(wire.CmdImageCapture))
	}
}

func TestShutterInVideoModePhotosSupported(t *testing.T) {
	// The E90 family can shoot stills in video mode, but only while no
	// recording is running.
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.ctrl.HandleParamValue(ParamMode, uint32(1))
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusStopped, 0)

	h.pressAndRelease(ButtonShutter)
	if h.link.commandCount(wire.CmdImageCapture) != 1 {
		t.Error("expected a capture without a mode switch")
	}
	if h.link.commandCount(wire.CmdSetMode) != 0 {
		t.Error("no mode switch expected")
	}
}

func TestShutterRejectedWhileRecordingDespitePhotoSupport(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.ctrl.HandleParamValue(ParamMode, uint32(1))
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusRunning, 0)

	h.pressAndRelease(ButtonShutter)
	if got := h.link.commandCount(wire.CmdImageCapture); got != 0 {
		t.Errorf("captures while recording: got %d, want 0", got)
	}
	if countCues(h.cues.Cues(), notify.CueError) != 1 {
		t.Error("expected an error cue")
	}
}

func TestShutterInVideoModeSwitchesAndSettles(t *testing.T) {
	// Base models must switch to photo mode and let the sensor settle.
	h := newHarness(t, "SL-90", standardDefinition)
	h.loadStandardParams()
	h.ctrl.HandleParamValue(ParamMode, uint32(1))
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusStopped, 0)

	h.pressAndRelease(ButtonShutter)
	if h.link.commandCount(wire.CmdSetMode) != 1 {
		t.Fatal("expected a mode switch")
	}
	if h.link.commandCount(wire.CmdImageCapture) != 0 {
		t.Fatal("capture must wait for the settling delay")
	}
	if !h.clock.Armed(schedule.TaskSettlingDelay) {
		t.Fatal("settling timer should be armed")
	}

	h.clock.Advance(settlingDelay)
	if h.link.commandCount(wire.CmdImageCapture) != 1 {
		t.Error("expected the deferred capture")
	}
}

func TestShutterWhileRecordingWithoutSupportErrors(t *testing.T) {
	h := newHarness(t, "SL-90", standardDefinition)
	h.loadStandardParams()
	h.ctrl.HandleParamValue(ParamMode, uint32(1))
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusRunning, 0)

	h.pressAndRelease(ButtonShutter)
	if h.link.commandCount(wire.CmdImageCapture) != 0 {
		t.Error("no capture while recording on this variant")
	}
	if countCues(h.cues.Cues(), notify.CueError) == 0 {
		t.Error("expected the error cue")
	}
}

func TestVideoButtonTogglesInVideoMode(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.ctrl.HandleParamValue(ParamMode, uint32(1))
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusStopped, 0)

	h.pressAndRelease(ButtonVideo)
	if h.link.commandCount(wire.CmdVideoStart) != 1 {
		t.Fatal("expected a start command")
	}

	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusRunning, 0)
	h.pressAndRelease(ButtonVideo)
	if h.link.commandCount(wire.CmdVideoStop) != 1 {
		t.Error("expected a stop command")
	}
}

func TestVideoButtonGuardAppliesBeforeStop(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.ctrl.HandleParamValue(ParamMode, uint32(1))
	h.deliver(t, wire.MsgCaptureStatus, wire.ComponentCamera, &wire.CaptureStatus{
		ImageStatus:  wire.PhotoStatusIdle,
		VideoStatus:  wire.VideoStatusRunning,
		StorageTotal: 16 * 1024 * 1024,
		StorageFree:  MinFreeStorageKB - 1,
	})

	h.pressAndRelease(ButtonVideo)
	if got := h.link.commandCount(wire.CmdVideoStop); got != 0 {
		t.Errorf("stop commands with the guard tripped: got %d, want 0", got)
	}
	if countCues(h.cues.Cues(), notify.CueError) != 1 {
		t.Error("expected an error cue")
	}
}

func TestVideoButtonTogglesRecording(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.ctrl.HandleParamValue(ParamMode, uint32(1))
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusRunning, 0)

	h.pressAndRelease(ButtonVideo)
	if h.link.commandCount(wire.CmdVideoStop) != 1 {
		t.Error("expected a stop for the running recording")
	}

	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusStopped, 0)
	h.pressAndRelease(ButtonVideo)
	if h.link.commandCount(wire.CmdVideoStart) != 1 {
		t.Error("expected a start once stopped")
	}
}

func TestVideoButtonInPhotoModeSwitchesAndSettles(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()
	h.reportCaptureStatus(t, wire.PhotoStatusIdle, wire.VideoStatusStopped, 0)

	h.pressAndRelease(ButtonVideo)
	if h.link.commandCount(wire.CmdSetMode) != 1 {
		t.Fatal("expected a mode switch")
	}
	if h.link.commandCount(wire.CmdVideoStart) != 0 {
		t.Fatal("start must wait for the settling delay")
	}

	h.clock.Advance(settlingDelay)
	if h.link.commandCount(wire.CmdVideoStart) != 1 {
		t.Error("expected the deferred start")
	}
}
