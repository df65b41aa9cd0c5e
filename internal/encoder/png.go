// Package encoder writes normalized frames as lossless PNG files.
package encoder

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"screenshotd/internal/errors"
)

// RowFunc produces one Normalized Row per call: interleaved 8-bit R,G,B
// bytes for scanline y, written into dst. The encoder calls it exactly
// height times, strictly top to bottom.
type RowFunc func(y int, dst []byte) error

// PNG encodes row streams into PNG files. All encoding happens on the
// single daemon goroutine, so a one-slot buffer pool is enough to reuse
// the codec's scratch buffers between iterations.
type PNG struct {
	enc png.Encoder
}

// NewPNG returns an encoder with default (lossless) compression.
func NewPNG() *PNG {
	return &PNG{enc: png.Encoder{
		CompressionLevel: png.DefaultCompression,
		BufferPool:       &bufferPool{},
	}}
}

// bufferPool implements png.EncoderBufferPool without synchronization;
// the encoder is never used concurrently.
type bufferPool struct {
	b *png.EncoderBuffer
}

func (p *bufferPool) Get() *png.EncoderBuffer   { return p.b }
func (p *bufferPool) Put(eb *png.EncoderBuffer) { p.b = eb }

// Encode streams height rows from next and writes a complete PNG to w:
// 8-bit depth, three channels, no interlacing. The raster is assembled
// fully opaque, which the PNG writer emits as 24-bit truecolor.
func (e *PNG) Encode(w io.Writer, width, height int, next RowFunc) error {
	if width <= 0 || height <= 0 {
		return errors.Newf(errors.CodeEncode, "invalid dimensions %dx%d", width, height)
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	row := make([]byte, 3*width)
	for y := 0; y < height; y++ {
		if err := next(y, row); err != nil {
			return errors.Wrapf(err, errors.CodeEncode, "read row %d", y)
		}
		p := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			p[4*x+0] = row[3*x+0]
			p[4*x+1] = row[3*x+1]
			p[4*x+2] = row[3*x+2]
			p[4*x+3] = 0xFF
		}
	}

	if err := e.enc.Encode(w, img); err != nil {
		return errors.Wrap(err, errors.CodeEncode, "write png stream")
	}
	return nil
}

// EncodeFile encodes to a temporary file beside path and renames it into
// place only after a fully successful encode, so a failure or crash never
// leaves a truncated image at the canonical path. The temp file is closed
// and removed on every failure path.
func (e *PNG) EncodeFile(path string, width, height int, next RowFunc) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".capture-*")
	if err != nil {
		return errors.Wrap(err, errors.CodeStorage, "create temp file").
			WithMetadata("dir", dir)
	}

	if err := e.Encode(tmp, width, height, next); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, errors.CodeEncode, "close temp file")
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, errors.CodeEncode, "rename into place").
			WithMetadata("path", path)
	}
	return nil
}
