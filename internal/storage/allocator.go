// Package storage computes timestamp-partitioned capture paths and makes
// sure their directories exist before anything is written.
package storage

import (
	cryptorand "crypto/rand"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"time"

	"screenshotd/internal/errors"
)

const (
	// treeName is the fixed directory under the base dir.
	treeName = "Screenshots"

	// nameBytes of randomness per filename: 4 bytes hex-encode to the
	// 8-character name. 32 bits is only probabilistically unique; a
	// colliding name silently overwrites the earlier file. That is an
	// accepted policy, not a bug: at one capture per second the chance of
	// a collision within a single hour-bucket is negligible, and detecting
	// one would buy nothing.
	nameBytes = 4

	suffix  = ".png"
	dirMode = 0o755
)

// Allocator computes capture paths under a base directory. The random
// source is injectable so tests can supply a deterministic sequence.
type Allocator struct {
	base string
	rand io.Reader
}

// NewAllocator creates an allocator rooted at base. A nil rnd uses
// crypto/rand.
func NewAllocator(base string, rnd io.Reader) *Allocator {
	if rnd == nil {
		rnd = cryptorand.Reader
	}
	return &Allocator{base: base, rand: rnd}
}

// Allocate returns <base>/Screenshots/YYYY/MM/DD/HH/<rand8>.png for the
// given local time, creating the directory chain first. Directory creation
// is recursive and idempotent, and happens even if the capture that follows
// fails. The returned path is not reserved; see the collision note above.
func (a *Allocator) Allocate(t time.Time) (string, error) {
	dir := filepath.Join(a.base, treeName,
		t.Format("2006"), t.Format("01"), t.Format("02"), t.Format("15"))
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", errors.Wrap(err, errors.CodeStorage, "create capture directory").
			WithMetadata("dir", dir)
	}

	var b [nameBytes]byte
	if _, err := io.ReadFull(a.rand, b[:]); err != nil {
		return "", errors.Wrap(err, errors.CodeStorage, "read random name bytes")
	}
	return filepath.Join(dir, hex.EncodeToString(b[:])+suffix), nil
}
