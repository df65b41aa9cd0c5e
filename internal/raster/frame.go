package raster

import (
	"image"

	"screenshotd/internal/errors"
)

// Frame is one full-screen capture: a packed pixel buffer plus the format
// needed to interpret it. Frames are created fresh each iteration, owned by
// that iteration, and discarded after encoding.
type Frame struct {
	Width  int
	Height int
	Stride int // bytes per scanline, including any padding
	Data   []byte
	Format PixelFormat
}

// RowSize is the length in bytes of one normalized row (interleaved R,G,B).
func (f *Frame) RowSize() int { return 3 * f.Width }

// ReadRow normalizes scanline y into dst as interleaved 8-bit R,G,B bytes.
// dst must hold at least RowSize bytes.
func (f *Frame) ReadRow(y int, dst []byte) error {
	if y < 0 || y >= f.Height {
		return errors.Newf(errors.CodeEncode, "row %d out of range [0,%d)", y, f.Height)
	}
	if len(dst) < f.RowSize() {
		return errors.Newf(errors.CodeEncode, "row buffer too small: %d < %d", len(dst), f.RowSize())
	}
	bpp := f.Format.bytesPerPixel()
	line := f.Data[y*f.Stride:]
	if len(line) < f.Width*bpp {
		return errors.Newf(errors.CodeEncode, "frame data truncated at row %d", y)
	}
	for x := 0; x < f.Width; x++ {
		word := f.Format.word(line[x*bpp:])
		dst[3*x+0] = f.Format.Red.extract(word)
		dst[3*x+1] = f.Format.Green.extract(word)
		dst[3*x+2] = f.Format.Blue.extract(word)
	}
	return nil
}

// Image normalizes the whole frame into an opaque RGBA image. The encoder
// streams rows instead; this path serves change detection and tests.
func (f *Frame) Image() (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	row := make([]byte, f.RowSize())
	for y := 0; y < f.Height; y++ {
		if err := f.ReadRow(y, row); err != nil {
			return nil, err
		}
		p := img.Pix[y*img.Stride:]
		for x := 0; x < f.Width; x++ {
			p[4*x+0] = row[3*x+0]
			p[4*x+1] = row[3*x+1]
			p[4*x+2] = row[3*x+2]
			p[4*x+3] = 0xFF
		}
	}
	return img, nil
}
