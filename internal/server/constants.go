// Package server exposes the daemon's status over HTTP and WebSocket
package server

import "time"

// Server configuration constants
const (
	// StatsPushInterval is how often connected WebSocket clients receive
	// a stats snapshot.
	StatsPushInterval = time.Second
)
