package imaging

import "image"

// Channel identifies one color channel of a buffer.
type Channel int

const (
	// ChannelNone means the original, unmodified image.
	ChannelNone Channel = iota
	ChannelRed
	ChannelGreen
	ChannelBlue
)

// String returns the human-readable channel name used in view titles.
func (c Channel) String() string {
	switch c {
	case ChannelRed:
		return "Red"
	case ChannelGreen:
		return "Green"
	case ChannelBlue:
		return "Blue"
	default:
		return ""
	}
}

// ExtractChannel returns a new grayscale buffer whose pixel intensity is the
// chosen channel of the source pixel. The source buffer is left untouched;
// this runs outside the interaction hot path and only assumes a row-major,
// fixed bytes-per-pixel layout.
func ExtractChannel(src *Buffer, ch Channel) *Buffer {
	w, h := src.Width(), src.Height()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))

	var offset int
	switch ch {
	case ChannelRed:
		offset = 0
	case ChannelGreen:
		offset = 1
	case ChannelBlue:
		offset = 2
	default:
		offset = 0
	}

	for y := 0; y < h; y++ {
		srcRow := src.img.Pix[y*src.img.Stride : y*src.img.Stride+w*4]
		dstRow := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for x := 0; x < w; x++ {
			v := srcRow[x*4+offset]
			dstRow[x*4+0] = v
			dstRow[x*4+1] = v
			dstRow[x*4+2] = v
			dstRow[x*4+3] = 0xff
		}
	}

	return &Buffer{img: dst, format: FormatGray}
}
