package sim

import (
	"testing"

	"github.com/camlink-protocol/camlink-go/pkg/camera"
	"github.com/camlink-protocol/camlink-go/pkg/param"
	"github.com/camlink-protocol/camlink-go/pkg/wire"
)

const simDefinition = `
vendor: CamLink
model: E90
version: 1
parameters:
  - name: CAM_MODE
    type: uint32
    default: 0
    options:
      - {name: Photo, value: 0}
      - {name: Video, value: 1}
  - name: CAM_EXPMODE
    type: uint32
    default: 0
  - name: CAM_SHUTTERSPD
    type: float64
    options:
      - {name: 1/60, value: 0.016}
      - {name: 1/125, value: 0.008}
  - name: CAM_ISO
    type: uint32
    default: 100
  - name: CAM_EV
    type: float64
    default: 0.0
  - name: CAM_METERING
    type: uint32
    default: 0
  - name: CAM_WBMODE
    type: uint32
    default: 0
  - name: CAM_VIDRES
    type: uint32
    default: 0
  - name: CAM_VIDFMT
    type: uint32
    default: 0
  - name: CAM_SPOTAREA
    type: uint32
    default: 0
`

// endToEnd wires a simulated camera to a real control.
func endToEnd(t *testing.T) (*camera.Control, *Camera) {
	t.Helper()
	def, err := param.ParseDefinition([]byte(simDefinition))
	if err != nil {
		t.Fatalf("ParseDefinition failed: %v", err)
	}
	reg, err := def.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}

	cam := New(def, 2<<24|1<<16|7<<8)
	ctrl := camera.New(camera.Config{
		ModelName: def.Model,
		Registry:  reg,
		Link:      cam,
	})
	cam.OnMessage(func(env *wire.Envelope) {
		if err := ctrl.HandleMessage(env); err != nil {
			t.Errorf("HandleMessage failed: %v", err)
		}
	})
	t.Cleanup(ctrl.Close)
	return ctrl, cam
}

func TestSimParameterBootstrap(t *testing.T) {
	ctrl, _ := endToEnd(t)

	if err := ctrl.RequestAllParameters(); err != nil {
		t.Fatalf("RequestAllParameters failed: %v", err)
	}
	if !ctrl.ParametersReady() {
		t.Fatal("expected ready after the full report")
	}
	if ctrl.CameraMode() != wire.CameraModePhoto {
		t.Errorf("mode: got %d, want photo", ctrl.CameraMode())
	}
}

func TestSimVersionReport(t *testing.T) {
	ctrl, _ := endToEnd(t)

	if err := ctrl.RequestCapabilities(); err != nil {
		t.Fatalf("RequestCapabilities failed: %v", err)
	}
	if got := ctrl.GimbalVersion(); got != "2.1.7" {
		t.Errorf("GimbalVersion: got %q, want %q", got, "2.1.7")
	}
}

func TestSimCalibrationRun(t *testing.T) {
	ctrl, _ := endToEnd(t)

	if err := ctrl.Calibrate(); err != nil {
		t.Fatalf("Calibrate failed: %v", err)
	}
	state, progress := ctrl.CalibrationProgress()
	if state != camera.CalibrationComplete || progress != 100 {
		t.Errorf("got %v/%d, want Complete/100", state, progress)
	}
}

func TestSimVideoLifecycle(t *testing.T) {
	ctrl, cam := endToEnd(t)
	if err := ctrl.RequestAllParameters(); err != nil {
		t.Fatalf("RequestAllParameters failed: %v", err)
	}

	if err := ctrl.StartVideo(); err != nil {
		t.Fatalf("StartVideo failed: %v", err)
	}
	if ctrl.VideoStatus() != wire.VideoStatusRunning {
		t.Fatal("expected running after start")
	}

	cam.AdvanceRecording(4500)
	if err := cam.sendCaptureStatus(); err != nil {
		t.Fatalf("status report failed: %v", err)
	}
	if got := ctrl.RecordTimeString(); got != "00:00:04" {
		t.Errorf("RecordTimeString: got %q, want %q", got, "00:00:04")
	}

	if err := ctrl.StopVideo(); err != nil {
		t.Fatalf("StopVideo failed: %v", err)
	}
	if ctrl.VideoStatus() != wire.VideoStatusStopped {
		t.Error("expected stopped after stop")
	}
}

func TestSimParamEcho(t *testing.T) {
	ctrl, cam := endToEnd(t)
	if err := ctrl.RequestAllParameters(); err != nil {
		t.Fatalf("RequestAllParameters failed: %v", err)
	}

	if err := cam.SendParam("CAM_ISO", uint32(400)); err != nil {
		t.Fatalf("SendParam failed: %v", err)
	}
	if err := ctrl.RequestAllParameters(); err != nil {
		t.Fatalf("RequestAllParameters failed: %v", err)
	}
}
