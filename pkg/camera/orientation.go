package camera

import (
	"math"

	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// orientationThreshold is the minimum per-axis change, in degrees,
// before a new mount orientation is worth republishing.
const orientationThreshold = 0.5

// Orientation returns the last published gimbal attitude in degrees
// and whether any attitude has been received yet.
func (c *Control) Orientation() (roll, pitch, yaw float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roll, c.pitch, c.yaw, c.orientationKnown
}

func (c *Control) handleMountOrientation(mo *wire.MountOrientation) {
	c.mu.Lock()
	if !c.orientationKnown {
		c.orientationKnown = true
		c.queueEvent(notify.EventOrientationAvailable, "", true)
	}
	if exceedsThreshold(c.roll, mo.Roll) {
		c.roll = mo.Roll
		c.queueEvent(notify.EventOrientation, "roll", mo.Roll)
	}
	if exceedsThreshold(c.pitch, mo.Pitch) {
		c.pitch = mo.Pitch
		c.queueEvent(notify.EventOrientation, "pitch", mo.Pitch)
	}
	if exceedsThreshold(c.yaw, mo.Yaw) {
		c.yaw = mo.Yaw
		c.queueEvent(notify.EventOrientation, "yaw", mo.Yaw)
	}
	c.unlockAndFlush()
}

func exceedsThreshold(old, new float64) bool {
	return math.Abs(new-old) > orientationThreshold
}
