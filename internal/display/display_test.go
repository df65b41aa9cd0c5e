package display

import (
	"testing"

	"github.com/jezek/xgb/xproto"

	"screenshotd/internal/errors"
	"screenshotd/internal/raster"
)

func testSetup() *xproto.SetupInfo {
	return &xproto.SetupInfo{
		ImageByteOrder: xproto.ImageOrderLSBFirst,
		PixmapFormats: []xproto.Format{
			{Depth: 1, BitsPerPixel: 1, ScanlinePad: 32},
			{Depth: 24, BitsPerPixel: 32, ScanlinePad: 32},
			{Depth: 16, BitsPerPixel: 16, ScanlinePad: 32},
		},
	}
}

func testScreen(visual xproto.Visualid, depth byte) *xproto.ScreenInfo {
	return &xproto.ScreenInfo{
		RootVisual: visual,
		RootDepth:  depth,
		AllowedDepths: []xproto.DepthInfo{
			{
				Depth: 24,
				Visuals: []xproto.VisualInfo{
					{VisualId: 0x21, RedMask: 0xFF0000, GreenMask: 0x00FF00, BlueMask: 0x0000FF},
				},
			},
			{
				Depth: 16,
				Visuals: []xproto.VisualInfo{
					{VisualId: 0x22, RedMask: 0xF800, GreenMask: 0x07E0, BlueMask: 0x001F},
				},
			},
		},
	}
}

func TestPixelFormatForTrueColor24(t *testing.T) {
	format, err := pixelFormatFor(testSetup(), testScreen(0x21, 24))
	if err != nil {
		t.Fatalf("pixelFormatFor: %v", err)
	}
	if format.BitsPerPixel != 32 {
		t.Errorf("BitsPerPixel = %d, want 32", format.BitsPerPixel)
	}
	if format.Red.Shift != 16 || format.Green.Shift != 8 || format.Blue.Shift != 0 {
		t.Errorf("shifts = %d/%d/%d, want 16/8/0",
			format.Red.Shift, format.Green.Shift, format.Blue.Shift)
	}
	if format.ByteOrder != raster.LSBFirst {
		t.Error("byte order should be LSBFirst")
	}
}

func TestPixelFormatFor16Bit(t *testing.T) {
	format, err := pixelFormatFor(testSetup(), testScreen(0x22, 16))
	if err != nil {
		t.Fatalf("pixelFormatFor: %v", err)
	}
	if format.BitsPerPixel != 16 {
		t.Errorf("BitsPerPixel = %d, want 16", format.BitsPerPixel)
	}
	if format.Red.Width != 5 || format.Green.Width != 6 || format.Blue.Width != 5 {
		t.Errorf("widths = %d/%d/%d, want 5/6/5",
			format.Red.Width, format.Green.Width, format.Blue.Width)
	}
}

func TestPixelFormatForUnknownVisual(t *testing.T) {
	_, err := pixelFormatFor(testSetup(), testScreen(0x99, 24))
	if !errors.IsCode(err, errors.CodeDisplayConnection) {
		t.Errorf("got %v, want DISPLAY_CONNECTION error", err)
	}
}

func TestPixelFormatForMissingPixmapFormat(t *testing.T) {
	setup := testSetup()
	setup.PixmapFormats = setup.PixmapFormats[:1]
	_, err := pixelFormatFor(setup, testScreen(0x21, 24))
	if !errors.IsCode(err, errors.CodeDisplayConnection) {
		t.Errorf("got %v, want DISPLAY_CONNECTION error", err)
	}
}
