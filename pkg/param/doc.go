// Package param implements the named device-parameter registry.
//
// The camera owns its parameters; the driver never invents one. Parameters
// arrive through the definition file (metadata, option sets, exclusion
// rules) and are populated from link telemetry. The core reads and writes
// them strictly by name through the Registry interface.
package param
