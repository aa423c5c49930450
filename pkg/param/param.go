package param

import (
	"errors"
	"fmt"
	"sync"
)

// Parameter errors.
var (
	ErrNotFound    = errors.New("parameter not found")
	ErrReadOnly    = errors.New("parameter is read-only")
	ErrValueType   = errors.New("invalid value type for parameter")
	ErrNoSuchValue = errors.New("value not in parameter option set")
)

// DataType represents the type of a parameter value.
type DataType uint8

const (
	TypeUnknown DataType = iota
	TypeBool
	TypeUint32
	TypeInt32
	TypeFloat64
	TypeString
	TypeBytes
)

// String returns the data type name.
func (d DataType) String() string {
	names := []string{"unknown", "bool", "uint32", "int32", "float64", "string", "bytes"}
	if int(d) < len(names) {
		return names[d]
	}
	return "unknown"
}

// Option is one entry of a parameter's enumerated allowed-value set.
type Option struct {
	// Name is the display label ("1/500", "ISO 400").
	Name string

	// Value is the raw value sent on the wire.
	Value any
}

// Metadata describes a parameter's fixed properties.
type Metadata struct {
	// Name is the unique parameter key.
	Name string

	// Type is the data type of the raw value.
	Type DataType

	// Options is the enumerated allowed-value set (nil = unconstrained).
	Options []Option

	// ReadOnly forbids host-side writes.
	ReadOnly bool

	// Default is the initial raw value.
	Default any

	// Description is a human-readable description.
	Description string
}

// Parameter is a parameter instance with its current raw value.
type Parameter struct {
	mu   sync.RWMutex
	meta *Metadata
	value any

	// loaded is true once a value has arrived from the device.
	loaded bool
}

// NewParameter creates a parameter from metadata. A default supplies a
// display value but the parameter stays unloaded until the device
// reports one.
func NewParameter(meta *Metadata) *Parameter {
	p := &Parameter{meta: meta}
	if meta.Default != nil {
		p.value = meta.Default
	}
	return p
}

// Name returns the unique parameter key.
func (p *Parameter) Name() string { return p.meta.Name }

// Type returns the parameter data type.
func (p *Parameter) Type() DataType { return p.meta.Type }

// ReadOnly reports whether host-side writes are forbidden.
func (p *Parameter) ReadOnly() bool { return p.meta.ReadOnly }

// Options returns the enumerated allowed-value set, or nil.
func (p *Parameter) Options() []Option { return p.meta.Options }

// Metadata returns the parameter metadata.
func (p *Parameter) Metadata() *Metadata { return p.meta }

// Value returns the current raw value.
func (p *Parameter) Value() any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Loaded reports whether any value has been applied yet.
func (p *Parameter) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// setValue applies a raw value. Returns true if the stored value changed.
func (p *Parameter) setValue(value any) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	changed := !p.loaded || !valuesEqual(p.value, value)
	p.value = value
	p.loaded = true
	return changed
}

// resetLoaded clears the loaded flag, keeping the last value for
// display until the device reports again.
func (p *Parameter) resetLoaded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.loaded = false
}

// Float returns the current value as float64, or 0 if not numeric.
func (p *Parameter) Float() float64 {
	v, _ := ToFloat64(p.Value())
	return v
}

// Uint returns the current value as uint32, or 0 if not numeric.
func (p *Parameter) Uint() uint32 {
	v, ok := ToFloat64(p.Value())
	if !ok || v < 0 {
		return 0
	}
	return uint32(v)
}

// Bool returns the current value as bool. Numeric values read as v != 0.
func (p *Parameter) Bool() bool {
	switch v := p.Value().(type) {
	case bool:
		return v
	default:
		f, ok := ToFloat64(v)
		return ok && f != 0
	}
}

// Bytes returns the current value as raw bytes, or nil.
func (p *Parameter) Bytes() []byte {
	if b, ok := p.Value().([]byte); ok {
		return b
	}
	return nil
}

// ValueString formats the current raw value for display and rule matching.
func (p *Parameter) ValueString() string {
	return fmt.Sprintf("%v", p.Value())
}

// OptionName returns the display label of the current value, or the raw
// value formatted when it matches no option.
func (p *Parameter) OptionName() string {
	cur := p.Value()
	for _, opt := range p.meta.Options {
		if valuesEqual(opt.Value, cur) {
			return opt.Name
		}
	}
	return p.ValueString()
}

// ToFloat64 converts any numeric value to float64.
func ToFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// valuesEqual compares raw values, treating numerics of different widths as
// equal when they represent the same number.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	fa, okA := ToFloat64(a)
	fb, okB := ToFloat64(b)
	if okA && okB {
		return fa == fb
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return false
}
