// Package wire defines the camlink message model and CBOR codec.
//
// Every message crossing the vehicle link is a CBOR map with integer keys
// wrapped in an Envelope carrying the message type and the source (or
// target) component id. Inbound telemetry and outbound commands share the
// same envelope; the payload structure is selected by the envelope type.
package wire
