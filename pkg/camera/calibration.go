package camera

import (
	"github.com/camlink-protocol/camlink-go/pkg/camlog"
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// CalibrationState tracks gimbal calibration from kickoff to finish.
type CalibrationState int

const (
	CalibrationInactive CalibrationState = iota
	CalibrationInProgress
	// CalibrationSettling means progress reached its final reported
	// step and the driver is waiting out the firmware's silent phase.
	CalibrationSettling
	CalibrationComplete
)

func (s CalibrationState) String() string {
	switch s {
	case CalibrationInactive:
		return "Inactive"
	case CalibrationInProgress:
		return "InProgress"
	case CalibrationSettling:
		return "Settling"
	case CalibrationComplete:
		return "Complete"
	default:
		return "Unknown"
	}
}

// The firmware stops reporting at this step and finishes silently.
const calibrationLastStep = 99

// Calibrate starts a gimbal accelerometer calibration run.
func (c *Control) Calibrate() error {
	return c.link.SendCommand(wire.ComponentGimbal, wire.CmdPreflightCalibration,
		0, 0, 0, 0, 1)
}

// CalibrationUpdate is the payload published with every calibration
// event.
type CalibrationUpdate struct {
	State    CalibrationState
	Progress uint8
}

// CalibrationProgress returns the current state and percent complete.
func (c *Control) CalibrationProgress() (CalibrationState, uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calState, c.calProgress
}

func (c *Control) handleCommandAck(component uint8, ack *wire.CommandAck) {
	if ack.Command != wire.CmdPreflightCalibration || component != wire.ComponentGimbal {
		return
	}
	c.mu.Lock()
	old := c.calState
	if ack.Progress == 255 {
		c.sched.Cancel(schedule.TaskCalibrationStall)
		c.calState = CalibrationComplete
		c.calProgress = 100
	} else {
		if ack.Progress > 0 && (c.calState == CalibrationInactive || c.calState == CalibrationComplete) {
			c.calState = CalibrationInProgress
		}
		c.calProgress = ack.Progress
		if ack.Progress == calibrationLastStep {
			c.calState = CalibrationSettling
			// The firmware goes quiet at the last step; give it a
			// bounded window before declaring the run finished.
			c.sched.After(schedule.TaskCalibrationStall, calibrationStallDelay, c.onCalibrationStall)
		}
	}
	// Every consumed ack republishes, even with unchanged progress.
	c.queueEvent(notify.EventCalibration, "", CalibrationUpdate{State: c.calState, Progress: c.calProgress})
	if old != c.calState {
		c.logEvent(camlog.StateChange("calibration", old.String(), c.calState.String()))
	}
	c.unlockAndFlush()
}

func (c *Control) onCalibrationStall() {
	c.mu.Lock()
	if c.calState == CalibrationSettling && c.calProgress == calibrationLastStep {
		c.calState = CalibrationComplete
		c.calProgress = 100
		c.queueEvent(notify.EventCalibration, "", CalibrationUpdate{State: c.calState, Progress: c.calProgress})
	}
	c.unlockAndFlush()
}
