package param

import (
	"errors"
	"testing"
)

func TestRegistrySetRejectsReadOnly(t *testing.T) {
	reg := NewMemoryRegistry()
	if err := reg.Add(NewParameter(&Metadata{Name: "ROI", Type: TypeUint32, ReadOnly: true, Default: int64(0)})); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := reg.Set("ROI", int64(1)); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Set() error = %v, want ErrReadOnly", err)
	}

	// Telemetry path still applies
	if err := reg.SetRaw("ROI", int64(1)); err != nil {
		t.Errorf("SetRaw() error = %v", err)
	}
	p, _ := reg.Get("ROI")
	if p.Uint() != 1 {
		t.Errorf("value = %d, want 1", p.Uint())
	}
}

func TestRegistryUnknownName(t *testing.T) {
	reg := NewMemoryRegistry()
	if err := reg.Set("CAM_NOPE", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("Set() error = %v, want ErrNotFound", err)
	}
}

func TestRegistryChangeCallback(t *testing.T) {
	reg := NewMemoryRegistry()
	_ = reg.Add(NewParameter(&Metadata{Name: "CAM_ISO", Type: TypeUint32}))

	var fired int
	reg.OnChange(func(p *Parameter) { fired++ })

	_ = reg.SetRaw("CAM_ISO", uint32(100))
	_ = reg.SetRaw("CAM_ISO", uint32(100)) // unchanged, no callback
	_ = reg.SetRaw("CAM_ISO", uint32(200))

	if fired != 2 {
		t.Errorf("change callbacks = %d, want 2", fired)
	}
}

func TestRegistryNamesOrder(t *testing.T) {
	reg := NewMemoryRegistry()
	for _, name := range []string{"CAM_MODE", "CAM_ISO", "CAM_SHUTTERSPD"} {
		_ = reg.Add(NewParameter(&Metadata{Name: name, Type: TypeFloat64}))
	}

	names := reg.Names()
	want := []string{"CAM_MODE", "CAM_ISO", "CAM_SHUTTERSPD"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestOptionName(t *testing.T) {
	p := NewParameter(&Metadata{
		Name: "CAM_ISO",
		Type: TypeUint32,
		Options: []Option{
			{Name: "ISO 100", Value: int64(100)},
			{Name: "ISO 200", Value: int64(200)},
		},
	})

	p.setValue(uint32(200)) // width differs from option value on purpose
	if got := p.OptionName(); got != "ISO 200" {
		t.Errorf("OptionName() = %q, want %q", got, "ISO 200")
	}

	p.setValue(uint32(150))
	if got := p.OptionName(); got != "150" {
		t.Errorf("OptionName() = %q, want raw %q", got, "150")
	}
}

func TestParameterLoaded(t *testing.T) {
	p := NewParameter(&Metadata{Name: "CAM_EV", Type: TypeFloat64})
	if p.Loaded() {
		t.Error("Loaded() = true before any value")
	}
	p.setValue(0.0)
	if !p.Loaded() {
		t.Error("Loaded() = false after value applied")
	}
}
