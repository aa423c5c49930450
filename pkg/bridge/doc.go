// Package bridge publishes camera state to an MQTT broker.
//
// Ground station dashboards and flight log collectors subscribe to the
// camlink/# topic tree instead of speaking the camera link directly.
// The bridge is a notify.Sink: wire it to a camera.Control and every
// state notification becomes a retained JSON message.
package bridge
