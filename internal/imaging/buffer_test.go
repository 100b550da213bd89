package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFromImageOpaqueIsRGB(t *testing.T) {
	buf := FromImage(solidNRGBA(4, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 255}))

	assert.Equal(t, 4, buf.Width())
	assert.Equal(t, 3, buf.Height())
	assert.Equal(t, FormatRGB, buf.Format())
	assert.False(t, buf.HasAlpha())
}

func TestFromImageTranslucentIsRGBA(t *testing.T) {
	buf := FromImage(solidNRGBA(2, 2, color.NRGBA{R: 10, G: 20, B: 30, A: 128}))

	assert.Equal(t, FormatRGBA, buf.Format())
	assert.True(t, buf.HasAlpha())
}

func TestFromImageGray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 99})

	buf := FromImage(gray)
	assert.Equal(t, FormatGray, buf.Format())
	assert.False(t, buf.HasAlpha())

	c, ok := buf.ColorAt(1, 1)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 99, G: 99, B: 99, A: 255}, c)
}

func TestFromImageNormalizesOrigin(t *testing.T) {
	src := image.NewNRGBA(image.Rect(5, 5, 9, 8))
	src.SetNRGBA(5, 5, color.NRGBA{R: 200, A: 255})

	buf := FromImage(src)
	assert.Equal(t, 4, buf.Width())
	assert.Equal(t, 3, buf.Height())

	c, ok := buf.ColorAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, uint8(200), c.R)
}

func TestColorAtBounds(t *testing.T) {
	buf := FromImage(solidNRGBA(3, 2, color.NRGBA{R: 1, G: 2, B: 3, A: 255}))

	_, ok := buf.ColorAt(0, 0)
	assert.True(t, ok)
	_, ok = buf.ColorAt(2, 1)
	assert.True(t, ok)

	for _, pt := range []image.Point{{-1, 0}, {0, -1}, {3, 0}, {0, 2}} {
		_, ok := buf.ColorAt(pt.X, pt.Y)
		assert.False(t, ok, "expected (%d,%d) to be out of bounds", pt.X, pt.Y)
	}
}

func TestAspectRatio(t *testing.T) {
	buf := FromImage(solidNRGBA(200, 100, color.NRGBA{A: 255}))
	assert.InDelta(t, 2.0, buf.AspectRatio(), 1e-9)
}

func TestEmpty(t *testing.T) {
	buf := FromImage(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	assert.True(t, buf.Empty())
	assert.Equal(t, 0.0, buf.AspectRatio())
}
