package camera

import (
	"math"

	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/param"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// snappedParams are the parameters whose device-reported values drift
// off the defined option grid and must be snapped back.
func isSnappedParam(name string) bool {
	return name == ParamShutterSpeed || name == ParamISO
}

func isExposureParam(name string) bool {
	switch name {
	case ParamShutterSpeed, ParamISO, ParamEV, ParamExposureMode, ParamMetering, ParamWhiteBalance, ParamMode:
		return true
	}
	return false
}

// HandleParamValue applies one device-reported parameter value,
// snapping off-grid exposure values to the nearest defined option and
// queueing corrections for the debounced write-back.
func (c *Control) HandleParamValue(name string, value any) {
	p, ok := c.reg.Get(name)
	if !ok {
		return
	}
	first := !p.Loaded()

	if isSnappedParam(name) {
		if snapped, off := nearestOption(p, value); off {
			value = snapped
			c.mu.Lock()
			c.deferUpdateLocked(name)
			c.mu.Unlock()
		}
	}
	_ = c.reg.SetRaw(name, value)

	c.mu.Lock()
	c.queueEvent(notify.EventParameter, name, p.Value())
	c.paramHookLocked(name, p)
	c.recomputeActiveSettingsLocked()
	if first {
		c.readyCheckLocked()
	}
	c.unlockAndFlush()
}

// ValidateParameter reports whether a host-supplied value would survive
// the device round trip unchanged.
func (c *Control) ValidateParameter(name string, value any) bool {
	p, ok := c.reg.Get(name)
	if !ok {
		return false
	}
	if !isSnappedParam(name) {
		return true
	}
	_, off := nearestOption(p, value)
	return !off
}

// WriteParameter records a host-initiated value and sends it to the
// device. The device echoes the accepted value back, which is applied
// through HandleParamValue like any other report.
func (c *Control) WriteParameter(name string, value any) error {
	c.mu.Lock()
	ready := c.paramsReady
	c.mu.Unlock()
	if !ready {
		return ErrNotReady
	}
	if err := c.reg.Set(name, value); err != nil {
		return err
	}
	return c.link.SendParam(name, value)
}

// deferUpdateLocked queues a corrected value for write-back and arms
// the debounce window. Must be called with c.mu held.
func (c *Control) deferUpdateLocked(name string) {
	if _, queued := c.pending[name]; !queued {
		c.pending[name] = struct{}{}
		c.pendingOrder = append(c.pendingOrder, name)
	}
	c.sched.After(schedule.TaskDebounceFlush, debounceDelay, c.onDebounceFlush)
}

// PendingUpdates returns the names queued for the next write-back.
func (c *Control) PendingUpdates() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.pendingOrder))
	copy(out, c.pendingOrder)
	return out
}

func (c *Control) onDebounceFlush() {
	c.mu.Lock()
	names := c.pendingOrder
	c.pending = make(map[string]struct{})
	c.pendingOrder = nil
	c.mu.Unlock()

	// Thermal hardware has no manual exposure surface; corrections are
	// local-only there. Everyone else only writes back while the
	// operator is in manual exposure.
	if c.caps.ThermalImaging() || !c.manualExposure() {
		return
	}
	for _, name := range names {
		p, ok := c.reg.Get(name)
		if !ok {
			continue
		}
		if err := c.link.SendParam(name, p.Value()); err != nil {
			c.mu.Lock()
			c.queueCue(notify.CueError)
			c.unlockAndFlush()
		}
	}
}

func (c *Control) manualExposure() bool {
	p, ok := c.reg.Get(ParamExposureMode)
	return ok && p.Loaded() && p.Uint() == exposureModeManual
}

// paramHookLocked runs per-parameter side effects after a device
// report. Must be called with c.mu held.
func (c *Control) paramHookLocked(name string, p *param.Parameter) {
	switch {
	case name == ParamThermalStatus && c.caps.ThermalImaging():
		c.handleThermalBlockLocked(p.Bytes())
	case name == ParamIRPalette && c.caps.ThermalImaging():
		c.queueEvent(notify.EventThermalPalette, name, p.Uint())
	case name == ParamSpotArea && c.caps.SupportsSpotMetering():
		x, y := unpackSpotArea(p.Uint(), c.frameWidth, c.frameHeight)
		c.queueEvent(notify.EventSpotArea, name, [2]int{x, y})
	case isExposureParam(name):
		// Some firmware revisions stop pushing capture status after an
		// exposure change; disable the shutter and ask for a fresh one
		// once things settle.
		c.photoStatus = wire.PhotoStatusUndefined
		c.sched.After(schedule.TaskCaptureStatusKick, captureStatusKick, c.onCaptureStatusKick)
	}
}

func (c *Control) onCaptureStatusKick() {
	_ = c.link.SendCommand(wire.ComponentCamera, wire.CmdRequestCaptureStatus)
}

// readyCheckLocked flips the parameters-ready latch once every defined
// parameter has loaded. Must be called with c.mu held.
func (c *Control) readyCheckLocked() {
	if c.paramsReady || !c.reg.AllLoaded() {
		return
	}
	c.paramsReady = true
	if c.caps.ThermalImaging() {
		c.synthesizeROILocked()
		if !c.thermalKnown {
			c.sched.After(schedule.TaskThermalPoll, thermalFirstPoll, c.onThermalPoll)
		}
	}
	c.recomputeActiveSettingsLocked()
	c.queueEvent(notify.EventParametersReady, "", true)
}

// nearestOption returns the defined option value closest to the given
// raw value, and whether the raw value was off the option grid. The
// scan keeps the first option at the minimum distance, so ties resolve
// to the earlier entry.
func nearestOption(p *param.Parameter, value any) (any, bool) {
	opts := p.Options()
	if len(opts) == 0 {
		return value, false
	}
	target, ok := param.ToFloat64(value)
	if !ok {
		return value, false
	}
	best := opts[0].Value
	bestDiff := math.Inf(1)
	for _, opt := range opts {
		f, ok := param.ToFloat64(opt.Value)
		if !ok {
			continue
		}
		if diff := math.Abs(f - target); diff < bestDiff {
			bestDiff = diff
			best = opt.Value
		}
	}
	return best, bestDiff != 0
}
