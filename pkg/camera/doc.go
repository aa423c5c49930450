// Package camera implements the gimbal camera driver core.
//
// A Control owns all per-device state: exposure parameters, capture
// sessions, gimbal calibration and attitude, flight-mode tracking, and
// thermal imaging status. State changes only from inbound link messages and
// scheduled timer callbacks, processed one at a time in arrival order; host
// operations (take photo, start video, calibrate) issue link commands and
// queue feedback cues but never block.
package camera
