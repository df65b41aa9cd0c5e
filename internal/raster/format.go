// Package raster interprets packed pixel buffers as captured from the
// display and normalizes them into 8-bit-per-channel RGB scanlines.
package raster

import "math/bits"

// ByteOrder is the byte order of packed pixel words in a frame buffer,
// as reported by the display server at connection time.
type ByteOrder int

const (
	LSBFirst ByteOrder = iota
	MSBFirst
)

// Channel describes how one color channel is packed into a pixel word.
type Channel struct {
	Mask  uint32
	Shift uint // bit offset of the channel's least significant bit
	Width uint // number of bits the channel occupies
}

// ChannelFromMask derives the shift and width from a contiguous bit mask.
// A zero mask yields a zero channel, which normalizes to 0.
func ChannelFromMask(mask uint32) Channel {
	if mask == 0 {
		return Channel{}
	}
	return Channel{
		Mask:  mask,
		Shift: uint(bits.TrailingZeros32(mask)),
		Width: uint(bits.OnesCount32(mask)),
	}
}

// extract pulls the channel value out of a packed pixel word and scales it
// to 8 bits. Channels narrower than 8 bits (e.g. 5-bit RGB565) are expanded
// proportionally so full intensity maps to 0xFF.
func (c Channel) extract(word uint32) uint8 {
	if c.Width == 0 {
		return 0
	}
	v := (word & c.Mask) >> c.Shift
	if c.Width == 8 {
		return uint8(v)
	}
	if c.Width > 8 {
		return uint8(v >> (c.Width - 8))
	}
	max := uint32(1)<<c.Width - 1
	return uint8(v * 0xFF / max)
}

// PixelFormat describes the packed pixel layout of a frame buffer. It is
// resolved from the display's root visual once at startup and passed
// explicitly with every frame, so the normalizer carries no layout
// assumptions of its own.
type PixelFormat struct {
	Red, Green, Blue Channel
	BitsPerPixel     int
	ByteOrder        ByteOrder
}

// bytesPerPixel rounds the storage size of one pixel up to whole bytes.
func (f PixelFormat) bytesPerPixel() int {
	return (f.BitsPerPixel + 7) / 8
}

// word reads one packed pixel from p.
func (f PixelFormat) word(p []byte) uint32 {
	var w uint32
	n := f.bytesPerPixel()
	if f.ByteOrder == MSBFirst {
		for i := 0; i < n; i++ {
			w = w<<8 | uint32(p[i])
		}
		return w
	}
	for i := n - 1; i >= 0; i-- {
		w = w<<8 | uint32(p[i])
	}
	return w
}
