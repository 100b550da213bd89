// Package imaging provides the decoded pixel buffer, the point-query pixel
// inspector, channel extraction and the safety-checked image loader.
package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// Format describes the per-pixel color representation of a buffer.
type Format int

const (
	// FormatRGB is an opaque three-channel image.
	FormatRGB Format = iota
	// FormatRGBA carries a meaningful alpha channel.
	FormatRGBA
	// FormatGray is a single-channel view, stored expanded to RGB.
	FormatGray
)

// Buffer is a decoded image: row-major NRGBA pixels with a fixed
// width/height. It is immutable once built; derived views (channel
// extraction) are whole new buffers, never in-place edits.
type Buffer struct {
	img    *image.NRGBA
	format Format
}

// FromImage normalizes a decoded image into a Buffer. The pixel data is
// copied into an NRGBA raster with its origin at (0,0).
func FromImage(src image.Image) *Buffer {
	bounds := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)

	format := FormatRGBA
	if op, ok := src.(interface{ Opaque() bool }); ok && op.Opaque() {
		format = FormatRGB
	}
	if _, ok := src.(*image.Gray); ok {
		format = FormatGray
	}

	return &Buffer{img: dst, format: format}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	return b.img.Rect.Dx()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.img.Rect.Dy()
}

// Empty reports whether the buffer holds no pixels.
func (b *Buffer) Empty() bool {
	return b.Width() == 0 || b.Height() == 0
}

// Format returns the buffer's pixel format.
func (b *Buffer) Format() Format {
	return b.format
}

// HasAlpha reports whether the buffer carries a meaningful alpha channel.
func (b *Buffer) HasAlpha() bool {
	return b.format == FormatRGBA
}

// AspectRatio returns width divided by height, or 0 for an empty buffer.
func (b *Buffer) AspectRatio() float64 {
	if b.Height() == 0 {
		return 0
	}
	return float64(b.Width()) / float64(b.Height())
}

// ColorAt returns the color of the pixel at integer coordinates (x, y).
// The second return value is false when the coordinates fall outside
// [0,width) x [0,height).
func (b *Buffer) ColorAt(x, y int) (color.NRGBA, bool) {
	if x < 0 || y < 0 || x >= b.Width() || y >= b.Height() {
		return color.NRGBA{}, false
	}
	return b.img.NRGBAAt(x, y), true
}

// Image exposes the underlying raster for rendering and encoding.
// Callers must treat it as read-only.
func (b *Buffer) Image() image.Image {
	return b.img
}
