package wire

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// TempScale is the fixed-point scale of thermal readings: values on the
// wire are hundredths of a degree Celsius.
const TempScale = 100

// ThermalStatusSize is the encoded size of a ThermalStatus block.
const ThermalStatusSize = 10

// AreaTemp holds the temperature summary of an averaging window.
type AreaTemp struct {
	CenterVal int16
	MaxVal    int16
	MinVal    int16
}

// ThermalStatus is the fixed-layout thermal telemetry block reported by the
// thermal-imaging variant through the temperature-status parameter.
// All fields are hundredths of a degree.
type ThermalStatus struct {
	LockedMaxTemp int16
	LockedMinTemp int16
	All           AreaTemp
}

// DecodeThermalStatus decodes the raw block bytes of the temperature-status
// parameter, little-endian.
func DecodeThermalStatus(data []byte) (*ThermalStatus, error) {
	if len(data) < ThermalStatusSize {
		return nil, fmt.Errorf("thermal status block too short: %d bytes", len(data))
	}
	var ts ThermalStatus
	r := bytes.NewReader(data)
	if err := binary.Read(r, binary.LittleEndian, &ts); err != nil {
		return nil, fmt.Errorf("failed to decode thermal status: %w", err)
	}
	return &ts, nil
}

// EncodeThermalStatus encodes the block, little-endian. Used by simulators
// and tests; real devices produce this block themselves.
func EncodeThermalStatus(ts *ThermalStatus) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, ts)
	return buf.Bytes()
}

// Degrees converts a wire reading to degrees Celsius.
func Degrees(raw int16) float64 {
	return float64(raw) / TempScale
}
