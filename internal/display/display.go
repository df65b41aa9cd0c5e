// Package display owns the X11 connection and captures raw frames of the
// root window. The connection, screen geometry, and pixel format are
// resolved once at startup and held for the life of the process; every
// capture reuses them.
package display

import (
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"screenshotd/internal/errors"
	"screenshotd/internal/raster"
)

// Session is the long-lived capture context: one display connection, the
// root window it targets, and the packed pixel format its frames arrive in.
type Session struct {
	conn   *xgb.Conn
	root   xproto.Window
	width  uint16
	height uint16
	format raster.PixelFormat
}

// Open connects to the X display (empty string means $DISPLAY) and resolves
// the root window geometry and visual format. Failure here is fatal to the
// process.
func Open(display string) (*Session, error) {
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDisplayConnection, "connect to X display")
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	format, err := pixelFormatFor(setup, screen)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Session{
		conn:   conn,
		root:   screen.Root,
		width:  screen.WidthInPixels,
		height: screen.HeightInPixels,
		format: format,
	}, nil
}

// pixelFormatFor resolves the root visual's channel masks and the pixmap
// format's bits-per-pixel into a raster.PixelFormat.
func pixelFormatFor(setup *xproto.SetupInfo, screen *xproto.ScreenInfo) (raster.PixelFormat, error) {
	var visual *xproto.VisualInfo
	for _, depth := range screen.AllowedDepths {
		if depth.Depth != screen.RootDepth {
			continue
		}
		for i := range depth.Visuals {
			if depth.Visuals[i].VisualId == screen.RootVisual {
				visual = &depth.Visuals[i]
			}
		}
	}
	if visual == nil {
		return raster.PixelFormat{}, errors.Newf(errors.CodeDisplayConnection,
			"root visual %d not found at depth %d", screen.RootVisual, screen.RootDepth)
	}

	bpp := 0
	for _, pf := range setup.PixmapFormats {
		if pf.Depth == screen.RootDepth {
			bpp = int(pf.BitsPerPixel)
		}
	}
	if bpp == 0 {
		return raster.PixelFormat{}, errors.Newf(errors.CodeDisplayConnection,
			"no pixmap format for depth %d", screen.RootDepth)
	}

	order := raster.LSBFirst
	if setup.ImageByteOrder == xproto.ImageOrderMSBFirst {
		order = raster.MSBFirst
	}

	return raster.PixelFormat{
		Red:          raster.ChannelFromMask(visual.RedMask),
		Green:        raster.ChannelFromMask(visual.GreenMask),
		Blue:         raster.ChannelFromMask(visual.BlueMask),
		BitsPerPixel: bpp,
		ByteOrder:    order,
	}, nil
}

// Size returns the screen dimensions queried at startup.
func (s *Session) Size() (width, height int) {
	return int(s.width), int(s.height)
}

// Format returns the pixel format of captured frames.
func (s *Session) Format() raster.PixelFormat { return s.format }

// Capture reads the full root window as a ZPixmap and wraps it in a Frame.
// The frame belongs to the calling iteration and is not reused.
func (s *Session) Capture() (*raster.Frame, error) {
	reply, err := xproto.GetImage(s.conn, xproto.ImageFormatZPixmap,
		xproto.Drawable(s.root), 0, 0, s.width, s.height, 0xFFFFFFFF).Reply()
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeCapture, "read root window image")
	}

	w, h := int(s.width), int(s.height)
	if h == 0 || len(reply.Data) < h {
		return nil, errors.Newf(errors.CodeCapture, "empty image reply for %dx%d screen", w, h)
	}
	stride := len(reply.Data) / h
	if stride < w*((s.format.BitsPerPixel+7)/8) {
		return nil, errors.Newf(errors.CodeCapture,
			"short image reply: %d bytes for %dx%d at %d bpp",
			len(reply.Data), w, h, s.format.BitsPerPixel)
	}

	return &raster.Frame{
		Width:  w,
		Height: h,
		Stride: stride,
		Data:   reply.Data,
		Format: s.format,
	}, nil
}

// Close releases the display connection.
func (s *Session) Close() {
	s.conn.Close()
}
