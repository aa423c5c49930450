package camera

import (
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// ActiveSettings returns the parameter names currently editable by the
// operator, in definition order.
func (c *Control) ActiveSettings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.activeSettings))
	copy(out, c.activeSettings)
	return out
}

// hiddenSettings are internal parameters never offered for editing.
var hiddenSettings = map[string]struct{}{
	ParamSpotArea:      {},
	ParamThermalStatus: {},
}

// recomputeActiveSettingsLocked rebuilds the editable parameter list
// from the definition's exclusion rules and the recording state.
// Must be called with c.mu held.
func (c *Control) recomputeActiveSettingsLocked() {
	excluded := make(map[string]struct{})
	for name := range hiddenSettings {
		excluded[name] = struct{}{}
	}
	for _, rule := range c.reg.Rules() {
		if rule.Matches(c.reg) {
			for _, name := range rule.Excludes {
				excluded[name] = struct{}{}
			}
		}
	}
	if c.videoStatus == wire.VideoStatusRunning && c.caps.RestrictEditsWhileRecording() {
		excluded[ParamVideoRes] = struct{}{}
		excluded[ParamVideoFormat] = struct{}{}
	}
	active := make([]string, 0, len(c.reg.Names()))
	for _, name := range c.reg.Names() {
		if _, skip := excluded[name]; !skip {
			active = append(active, name)
		}
	}
	if !stringsEqual(active, c.activeSettings) {
		c.activeSettings = active
		c.queueEvent(notify.EventActiveSettings, "", active)
	}
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
