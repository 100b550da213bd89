package grid

import (
	"image"
	"math"

	"github.com/Dav0ud/imagegridviewer/internal/view"
)

// Render rasterizes a viewport's visible rectangle into a w x h pixel image
// using nearest-neighbor sampling, letterbox-centered the same way the
// interactive transform is. Pixels outside the image stay transparent.
// Both the on-screen raster and the snapshot composer draw through this.
func Render(vp *view.Viewport, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if !vp.HasImage() || w <= 0 || h <= 0 {
		return dst
	}

	buf := vp.Buffer()
	vis := vp.VisibleRect()
	if vis.Empty() {
		return dst
	}

	scale := float64(w) / vis.W
	if sy := float64(h) / vis.H; sy < scale {
		scale = sy
	}
	offX := (float64(w) - vis.W*scale) / 2
	offY := (float64(h) - vis.H*scale) / 2

	imgW := buf.Width()
	imgH := buf.Height()

	for dy := 0; dy < h; dy++ {
		sy := int(math.Floor(vis.Y + (float64(dy)-offY)/scale))
		if sy < 0 || sy >= imgH {
			continue
		}
		for dx := 0; dx < w; dx++ {
			sx := int(math.Floor(vis.X + (float64(dx)-offX)/scale))
			if sx < 0 || sx >= imgW {
				continue
			}
			clr, _ := buf.ColorAt(sx, sy)
			dst.SetNRGBA(dx, dy, clr)
		}
	}
	return dst
}
