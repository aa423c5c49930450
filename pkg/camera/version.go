package camera

import (
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// RequestCapabilities asks the gimbal to report its firmware version
// word and capability flags.
func (c *Control) RequestCapabilities() error {
	return c.link.SendCommand(wire.ComponentGimbal, wire.CmdRequestCapabilities,
		wire.CapabilityRequestVersion)
}

// GimbalVersion returns the decoded firmware version, or the empty
// string while it is unknown.
func (c *Control) GimbalVersion() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gimbalVersion
}

func (c *Control) handleCapabilityResponse(component uint8, cr *wire.CapabilityResponse) {
	if component != wire.ComponentGimbal {
		return
	}
	c.mu.Lock()
	if c.gimbalVersion == "" {
		c.gimbalVersion = cr.VersionString()
		c.queueEvent(notify.EventGimbalVersion, "", c.gimbalVersion)
	}
	c.unlockAndFlush()
}
