package camera

import (
	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/param"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

// ROI selector values for the synthesized ROI parameter.
const (
	ROICenterArea uint32 = 0
	ROISpot       uint32 = 1
)

// paletteNames maps the CAM_IRPALETTE value to its color map name.
var paletteNames = []string{
	"Fusion",
	"Rainbow",
	"Globow",
	"IceFire",
	"IronBlack",
	"WhiteHot",
	"BlackHot",
	"Rain",
	"Iron",
	"GrayRed",
	"GrayFusion",
}

// Palette returns the selected thermal color map. Out-of-range values
// fall back to the first entry, matching the device's own rendering.
func (c *Control) Palette() (string, error) {
	if !c.caps.ThermalImaging() {
		return "", ErrUnsupported
	}
	p, ok := c.reg.Get(ParamIRPalette)
	if !ok || !p.Loaded() {
		return "", ErrNotReady
	}
	if idx := p.Uint(); int(idx) < len(paletteNames) {
		return paletteNames[idx], nil
	}
	return paletteNames[0], nil
}

// ThermalStatus returns the last decoded temperature block and whether
// one has been received.
func (c *Control) ThermalStatus() (wire.ThermalStatus, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.thermal, c.thermalKnown
}

// IRTempRange returns the active measurable temperature range in
// degrees. With the range lock enabled the configured bounds apply,
// otherwise the sensor's own scene extremes do.
func (c *Control) IRTempRange() (min, max float64) {
	if p, ok := c.reg.Get(ParamIRTempRange); ok && p.Loaded() && p.Bool() {
		if pmin, ok := c.reg.Get(ParamIRTempMin); ok {
			min = pmin.Float()
		}
		if pmax, ok := c.reg.Get(ParamIRTempMax); ok {
			max = pmax.Float()
		}
		return min, max
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return wire.Degrees(c.thermal.All.MinVal), wire.Degrees(c.thermal.All.MaxVal)
}

// ROI returns the synthesized region-of-interest selector value.
func (c *Control) ROI() (uint32, error) {
	if !c.caps.ThermalImaging() {
		return 0, ErrUnsupported
	}
	p, ok := c.reg.Get(ParamROI)
	if !ok {
		return 0, ErrNotReady
	}
	return p.Uint(), nil
}

// SetROI updates the region-of-interest selector. The parameter is
// host-internal and never leaves the driver.
func (c *Control) SetROI(v uint32) error {
	if !c.caps.ThermalImaging() {
		return ErrUnsupported
	}
	if v != ROICenterArea && v != ROISpot {
		return param.ErrNoSuchValue
	}
	return c.reg.SetRaw(ParamROI, v)
}

// handleThermalBlockLocked decodes one thermal status block. The first
// successful decode promotes the poll timer from its fast initial probe
// to the steady reporting cadence. Must be called with c.mu held.
func (c *Control) handleThermalBlockLocked(block []byte) {
	ts, err := wire.DecodeThermalStatus(block)
	if err != nil {
		return
	}
	c.thermal = *ts
	if !c.thermalKnown {
		c.thermalKnown = true
		c.sched.Every(schedule.TaskThermalPoll, thermalPollInterval, c.onThermalPoll)
	}
	c.queueEvent(notify.EventThermalStatus, ParamThermalStatus, *ts)
}

func (c *Control) onThermalPoll() {
	_ = c.link.RequestParam(ParamThermalStatus)
}

// synthesizeROILocked registers the host-side ROI parameter once the
// device parameter set is complete. Must be called with c.mu held.
func (c *Control) synthesizeROILocked() {
	if _, exists := c.reg.Get(ParamROI); exists {
		return
	}
	p := param.NewParameter(&param.Metadata{
		Name: ParamROI,
		Type: param.TypeUint32,
		Options: []param.Option{
			{Name: "Center Area", Value: int64(ROICenterArea)},
			{Name: "Spot", Value: int64(ROISpot)},
		},
		ReadOnly:    true,
		Default:     int64(ROICenterArea),
		Description: "Temperature region of interest",
	})
	if err := c.reg.Add(p); err == nil {
		_ = c.reg.SetRaw(ParamROI, int64(ROICenterArea))
	}
}
