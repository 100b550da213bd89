package grid

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font/basicfont"

	"github.com/Dav0ud/imagegridviewer/internal/errors"
)

// Snapshot cell geometry.
const (
	snapshotCellW = 320
	snapshotCellH = 240
	labelMargin   = 6
)

// Snapshot composes the current grid view into one image: each cell shows
// its viewport's visible rectangle exactly as displayed, with the title
// overlaid; failed cells show their error message.
func (c *Coordinator) Snapshot() image.Image {
	cols := c.columns
	rows := c.Rows()
	if rows == 0 {
		cols = 1
		rows = 1
	}

	dc := gg.NewContext(cols*snapshotCellW, rows*snapshotCellH)
	dc.SetRGB(0.08, 0.08, 0.08)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	for i, vp := range c.viewports {
		row, col := c.Position(i)
		x0 := float64(col * snapshotCellW)
		y0 := float64(row * snapshotCellH)

		if vp.HasImage() {
			cell := Render(vp, snapshotCellW, snapshotCellH)
			dc.DrawImage(cell, col*snapshotCellW, row*snapshotCellH)
		} else if loadErr := vp.Err(); loadErr != nil {
			dc.SetRGB(0.8, 0.2, 0.2)
			msg := strings.ReplaceAll(loadErr.Message(), "\n", " ")
			msg += "\n" + filepath.Base(vp.Path())
			dc.DrawStringWrapped(msg, x0+snapshotCellW/2, y0+snapshotCellH/2,
				0.5, 0.5, snapshotCellW-2*labelMargin, 1.3, gg.AlignCenter)
		}

		// Title overlay, shadowed for legibility over arbitrary content.
		dc.SetRGBA(0, 0, 0, 0.65)
		dc.DrawString(vp.Title(), x0+labelMargin+1, y0+2*labelMargin+1)
		dc.SetRGB(1, 1, 1)
		dc.DrawString(vp.Title(), x0+labelMargin, y0+2*labelMargin)
	}

	return dc.Image()
}

// EncodeSnapshot writes img to w in the format named by ext
// (".png", ".jpg"/".jpeg" or ".bmp").
func EncodeSnapshot(img image.Image, w io.Writer, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 90})
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return errors.Newf("unsupported snapshot format %q", ext)
	}
}

// SaveSnapshot writes img to path; the extension picks the encoder
// (.png, .jpg/.jpeg, .bmp).
func SaveSnapshot(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create snapshot file %s", path)
	}
	defer f.Close()

	if err := EncodeSnapshot(img, f, filepath.Ext(path)); err != nil {
		return errors.Wrapf(err, "cannot encode snapshot %s", path)
	}
	return nil
}
