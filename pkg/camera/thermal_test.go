package camera

import (
	"testing"
	"time"

	"github.com/camlink-protocol/camlink-go/pkg/notify"
	"github.com/camlink-protocol/camlink-go/pkg/schedule"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

func newThermalHarness(t *testing.T) *harness {
	return newHarness(t, "SL-ET", thermalDefinition)
}

func (h *harness) loadThermalParams() {
	h.ctrl.HandleParamValue(ParamMode, uint32(0))
	h.ctrl.HandleParamValue(ParamIRPalette, uint32(2))
	h.ctrl.HandleParamValue(ParamIRTempRange, false)
	h.ctrl.HandleParamValue(ParamIRTempMax, 120.0)
	h.ctrl.HandleParamValue(ParamIRTempMin, -10.0)
	h.ctrl.HandleParamValue(ParamThermalStatus, []byte{})
}

func thermalBlock(ts *wire.ThermalStatus) []byte {
	return wire.EncodeThermalStatus(ts)
}

func TestThermalPollLifecycle(t *testing.T) {
	h := newThermalHarness(t)

	if h.clock.Armed(schedule.TaskThermalPoll) {
		t.Fatal("no polling before parameters are ready")
	}
	h.loadThermalParams()
	if !h.clock.Armed(schedule.TaskThermalPoll) {
		t.Fatal("ready should arm the initial probe")
	}

	// Initial fast probe.
	h.clock.Advance(100 * time.Millisecond)
	if got := h.link.requestCount(ParamThermalStatus); got != 1 {
		t.Fatalf("status requests after probe: got %d, want 1", got)
	}

	// First decoded block promotes the probe to the steady cadence.
	block := thermalBlock(&wire.ThermalStatus{
		LockedMaxTemp: 4250,
		LockedMinTemp: -550,
		All:           wire.AreaTemp{CenterVal: 2135, MaxVal: 4250, MinVal: -550},
	})
	h.ctrl.HandleParamValue(ParamThermalStatus, block)

	if h.sink.CountKind(notify.EventThermalStatus) != 1 {
		t.Error("expected a thermal status event")
	}
	ts, known := h.ctrl.ThermalStatus()
	if !known || ts.All.CenterVal != 2135 {
		t.Errorf("ThermalStatus: got %+v (known=%v)", ts, known)
	}

	h.clock.Advance(3 * time.Second)
	if got := h.link.requestCount(ParamThermalStatus); got != 4 {
		t.Errorf("status requests after 3s steady polling: got %d, want 4", got)
	}
}

func TestThermalBadBlockIgnored(t *testing.T) {
	h := newThermalHarness(t)
	h.loadThermalParams()

	h.ctrl.HandleParamValue(ParamThermalStatus, []byte{1, 2, 3})
	if _, known := h.ctrl.ThermalStatus(); known {
		t.Error("truncated block must not mark thermal data valid")
	}
	if h.sink.CountKind(notify.EventThermalStatus) != 0 {
		t.Error("no event expected for a bad block")
	}
}

func TestIRTempRangeSelection(t *testing.T) {
	h := newThermalHarness(t)
	h.loadThermalParams()

	block := thermalBlock(&wire.ThermalStatus{
		All: wire.AreaTemp{CenterVal: 2000, MaxVal: 3550, MinVal: -125},
	})
	h.ctrl.HandleParamValue(ParamThermalStatus, block)

	// Range lock off: the scene extremes apply, in hundredths.
	min, max := h.ctrl.IRTempRange()
	if min != -1.25 || max != 35.5 {
		t.Errorf("scene range: got %v..%v, want -1.25..35.5", min, max)
	}

	// Range lock on: the configured bounds apply.
	h.ctrl.HandleParamValue(ParamIRTempRange, true)
	min, max = h.ctrl.IRTempRange()
	if min != -10.0 || max != 120.0 {
		t.Errorf("locked range: got %v..%v, want -10..120", min, max)
	}
}

func TestPaletteSelection(t *testing.T) {
	h := newThermalHarness(t)

	if _, err := h.ctrl.Palette(); err != ErrNotReady {
		t.Fatalf("Palette before ready: got %v, want ErrNotReady", err)
	}

	h.loadThermalParams()

	if got, err := h.ctrl.Palette(); err != nil || got != "Globow" {
		t.Errorf("Palette: got %q, %v, want Globow", got, err)
	}

	h.ctrl.HandleParamValue(ParamIRPalette, uint32(6))
	if got, _ := h.ctrl.Palette(); got != "BlackHot" {
		t.Errorf("Palette: got %q, want BlackHot", got)
	}

	// Out-of-range values render the first color map.
	h.ctrl.HandleParamValue(ParamIRPalette, uint32(42))
	if got, _ := h.ctrl.Palette(); got != "Fusion" {
		t.Errorf("out-of-range palette: got %q, want Fusion", got)
	}
}

func TestPaletteUnsupportedOnStandard(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()

	if _, err := h.ctrl.Palette(); err != ErrUnsupported {
		t.Errorf("Palette on a standard variant: got %v, want ErrUnsupported", err)
	}
}

func TestROISynthesizedAtReady(t *testing.T) {
	h := newThermalHarness(t)

	if _, err := h.ctrl.ROI(); err != ErrNotReady {
		t.Fatalf("ROI before ready: got %v, want ErrNotReady", err)
	}

	h.loadThermalParams()

	v, err := h.ctrl.ROI()
	if err != nil {
		t.Fatalf("ROI failed: %v", err)
	}
	if v != ROICenterArea {
		t.Errorf("default ROI: got %d, want center area", v)
	}

	if err := h.ctrl.SetROI(ROISpot); err != nil {
		t.Fatalf("SetROI failed: %v", err)
	}
	if v, _ := h.ctrl.ROI(); v != ROISpot {
		t.Errorf("ROI after set: got %d, want spot", v)
	}
	if err := h.ctrl.SetROI(7); err == nil {
		t.Error("out-of-set ROI value should be rejected")
	}

	// Host-internal: nothing goes out on the link.
	if got := h.link.sentParams(ParamROI); len(got) != 0 {
		t.Errorf("ROI must never be written to the device, got %v", got)
	}

	// The synthesized parameter is read-only for the host-facing path.
	if err := h.reg.Set(ParamROI, uint32(0)); err == nil {
		t.Error("direct host writes to ROI should be rejected")
	}
}

func TestROIUnsupportedOnStandard(t *testing.T) {
	h := newStandardHarness(t)
	h.loadStandardParams()

	if _, err := h.ctrl.ROI(); err != ErrUnsupported {
		t.Errorf("ROI on standard variant: got %v, want ErrUnsupported", err)
	}
	if err := h.ctrl.SetROI(ROISpot); err != ErrUnsupported {
		t.Errorf("SetROI on standard variant: got %v, want ErrUnsupported", err)
	}
}

func TestPaletteChangeNotifies(t *testing.T) {
	h := newThermalHarness(t)
	h.loadThermalParams()

	before := h.sink.CountKind(notify.EventThermalPalette)
	h.ctrl.HandleParamValue(ParamIRPalette, uint32(5))
	if h.sink.CountKind(notify.EventThermalPalette)-before != 1 {
		t.Error("expected a palette event")
	}
}

func TestThermalVariantDiscardsWriteBacks(t *testing.T) {
	h := newThermalHarness(t)
	h.loadThermalParams()

	// Thermal definitions carry no shutter/ISO, but even a queued
	// correction must never reach the link.
	h.ctrl.onDebounceFlush()
	if len(h.link.params) != 0 {
		t.Errorf("unexpected write-backs: %v", h.link.params)
	}
}
