package camera

import "strings"

// Capabilities describes what a detected hardware variant can do. The
// driver consults it instead of branching on model names.
type Capabilities interface {
	// ThermalImaging reports whether the camera carries an IR sensor
	// with temperature telemetry and palette selection.
	ThermalImaging() bool

	// SupportsSpotMetering reports whether the camera accepts a spot
	// metering area.
	SupportsSpotMetering() bool

	// PhotosInVideoMode reports whether still capture works without
	// first switching to photo mode.
	PhotosInVideoMode() bool

	// RestrictEditsWhileRecording reports whether resolution and
	// format settings must be hidden during an active recording.
	RestrictEditsWhileRecording() bool
}

// StandardVariant is the visible-light camera family.
type StandardVariant struct {
	photosInVideo bool
}

func (StandardVariant) ThermalImaging() bool              { return false }
func (StandardVariant) SupportsSpotMetering() bool        { return true }
func (v StandardVariant) PhotosInVideoMode() bool         { return v.photosInVideo }
func (StandardVariant) RestrictEditsWhileRecording() bool { return true }

// ThermalVariant is the IR imaging camera family. It has no manual
// exposure surface, so parameter edits apply immediately and video
// settings stay editable while recording.
type ThermalVariant struct{}

func (ThermalVariant) ThermalImaging() bool              { return true }
func (ThermalVariant) SupportsSpotMetering() bool        { return false }
func (ThermalVariant) PhotosInVideoMode() bool           { return false }
func (ThermalVariant) RestrictEditsWhileRecording() bool { return false }

// DetectVariant maps a reported model name to its capability set.
// Unrecognized names fall back to the most conservative standard
// variant.
func DetectVariant(modelName string) Capabilities {
	switch {
	case strings.Contains(modelName, "ET"):
		return ThermalVariant{}
	case strings.Contains(modelName, "E90"):
		return StandardVariant{photosInVideo: true}
	default:
		return StandardVariant{}
	}
}
