// Package discovery locates camera video streams on the local network.
//
// Cameras advertise their RTSP endpoint over mDNS/DNS-SD together with
// a TXT record describing vendor, model and stream path. The Browser
// aggregates announcements from multiple interfaces into one service
// entry per instance, so consumers see a stable stream list.
package discovery
