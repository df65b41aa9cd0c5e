// Package daemon drives the periodic capture loop
package daemon

// Change detection constants
const (
	// MaxHashDistance is the Hamming distance at or below which two
	// perception hashes are treated as the same screen content.
	MaxHashDistance = 3

	// hashInputSize bounds the raster fed to the perception hash so the
	// hashing cost does not grow with screen resolution.
	hashInputSize = 256
)
