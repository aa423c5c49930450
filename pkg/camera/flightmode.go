package camera

import (
	"github.com/camlink-protocol/camlink-go/pkg/camlog"
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// InMissionMode reports whether the vehicle is flying an automated
// mission. The camera firmware rewrites settings on its own during a
// mission, so the driver re-reads everything when it ends.
func (c *Control) InMissionMode() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inMission
}

func (c *Control) handleHeartbeat(component uint8, hb *wire.Heartbeat) {
	if component != wire.ComponentAutopilot {
		return
	}
	mission := hb.SubMode() == wire.SubModeAutoMission
	c.mu.Lock()
	if mission == c.inMission {
		c.mu.Unlock()
		return
	}
	c.inMission = mission
	c.logEvent(camlog.StateChange("flight-mode", flightModeName(!mission), flightModeName(mission)))
	if !mission {
		c.queueEvent(notify.EventParametersResynced, "", true)
	}
	c.unlockAndFlush()

	if !mission {
		// The firmware may have rewritten exposure settings during the
		// mission; the cached values are no longer trustworthy.
		_ = c.link.RequestAllParams()
	}
}

func flightModeName(mission bool) string {
	if mission {
		return "mission"
	}
	return "manual"
}
