package daemon

import (
	"image"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
)

// detector decides whether a frame is perceptually identical to the one
// before it. It runs on the daemon goroutine only.
type detector struct {
	maxDistance int
	last        *goimagehash.ImageHash
}

func newDetector(maxDistance int) *detector {
	return &detector{maxDistance: maxDistance}
}

// Unchanged reports whether img matches the previous frame within the
// configured hash distance. The first frame, and any frame that fails to
// hash, counts as changed so a capture is never lost to detector errors.
func (d *detector) Unchanged(img image.Image) bool {
	small := resize.Thumbnail(hashInputSize, hashInputSize, img, resize.Bilinear)
	hash, err := goimagehash.PerceptionHash(small)
	if err != nil {
		return false
	}
	if d.last == nil {
		d.last = hash
		return false
	}
	dist, err := d.last.Distance(hash)
	if err != nil {
		d.last = hash
		return false
	}
	if dist <= d.maxDistance {
		return true
	}
	d.last = hash
	return false
}
