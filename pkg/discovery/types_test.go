package discovery

import (
	"testing"
)

func TestStreamTXTRoundTrip(t *testing.T) {
	info := &StreamInfo{
		Vendor:      "CamLink",
		Model:       "SL-90",
		Serial:      "A123456",
		Path:        "/live",
		FrameWidth:  1920,
		FrameHeight: 1080,
	}

	txt := EncodeStreamTXT(info)
	decoded, err := DecodeStreamTXT(txt)
	if err != nil {
		t.Fatalf("DecodeStreamTXT failed: %v", err)
	}

	if decoded.Vendor != info.Vendor {
		t.Errorf("Vendor: got %q, want %q", decoded.Vendor, info.Vendor)
	}
	if decoded.Model != info.Model {
		t.Errorf("Model: got %q, want %q", decoded.Model, info.Model)
	}
	if decoded.Serial != info.Serial {
		t.Errorf("Serial: got %q, want %q", decoded.Serial, info.Serial)
	}
	if decoded.Path != info.Path {
		t.Errorf("Path: got %q, want %q", decoded.Path, info.Path)
	}
	if decoded.FrameWidth != 1920 || decoded.FrameHeight != 1080 {
		t.Errorf("frame size: got %dx%d, want 1920x1080", decoded.FrameWidth, decoded.FrameHeight)
	}
}

func TestDecodeStreamTXTFrameSizeOptional(t *testing.T) {
	decoded, err := DecodeStreamTXT([]string{"md=SL-90", "fw=bogus"})
	if err != nil {
		t.Fatalf("DecodeStreamTXT failed: %v", err)
	}
	if decoded.FrameWidth != 0 || decoded.FrameHeight != 0 {
		t.Errorf("frame size: got %dx%d, want 0x0", decoded.FrameWidth, decoded.FrameHeight)
	}
}

func TestDecodeStreamTXTRequiresModel(t *testing.T) {
	if _, err := DecodeStreamTXT([]string{"vn=CamLink"}); err == nil {
		t.Error("expected an error without a model key")
	}
	// Malformed records are skipped, not fatal.
	if _, err := DecodeStreamTXT([]string{"garbage", "md=SL-90"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStreamServiceURL(t *testing.T) {
	svc := &StreamService{
		Port:      554,
		Addresses: []string{"192.168.42.1", "fe80::1"},
		Path:      "live",
	}
	if got := svc.URL(); got != "rtsp://192.168.42.1:554/live" {
		t.Errorf("URL: got %q", got)
	}

	svc.Addresses = nil
	if got := svc.URL(); got != "" {
		t.Errorf("URL without addresses: got %q", got)
	}
}

func TestMergeAddresses(t *testing.T) {
	got := mergeAddresses([]string{"a", "b"}, []string{"b", "c"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
			break
		}
	}
}
