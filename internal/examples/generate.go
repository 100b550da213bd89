// Package examples generates the placeholder dataset that makes the viewer
// runnable out of the box: one flat-colored image per pass of a pretend
// render pipeline, plus the matching suffix file.
package examples

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"

	"github.com/Dav0ud/imagegridviewer/internal/dataset"
	"github.com/Dav0ud/imagegridviewer/internal/errors"
)

const (
	// SubDir is the directory created under the target base directory.
	SubDir = "testscene"
	// PrefixName is the shared image prefix inside SubDir.
	PrefixName = "scene1_"

	width  = 256
	height = 256
)

// Suffixes lists the generated images in pipeline order.
var Suffixes = []string{
	"geometry.png",
	"texture.png",
	"diffuse.png",
	"specular.png",
	"fresnel.png",
	"shadow.png",
}

// palette assigns each pass a distinct, vaguely plausible color.
var palette = map[string]color.NRGBA{
	"geometry.png": {R: 150, G: 220, B: 150, A: 255},
	"texture.png":  {R: 128, G: 128, B: 128, A: 255},
	"diffuse.png":  {R: 210, G: 200, B: 190, A: 255},
	"specular.png": {R: 245, G: 245, B: 255, A: 255},
	"fresnel.png":  {R: 200, G: 255, B: 255, A: 255},
	"shadow.png":   {R: 40, G: 40, B: 60, A: 255},
}

// Create generates the example dataset under baseDir and returns the prefix
// path to pass to the viewer.
func Create(baseDir string) (string, error) {
	sceneDir := filepath.Join(baseDir, SubDir)
	if err := os.MkdirAll(sceneDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "cannot create example directory %s", sceneDir)
	}

	prefix := filepath.Join(sceneDir, PrefixName)
	for _, suffix := range Suffixes {
		if err := drawImage(prefix+suffix, palette[suffix]); err != nil {
			return "", err
		}
	}

	suffixFile := filepath.Join(sceneDir, dataset.DefaultSuffixFile)
	if err := dataset.WriteSuffixes(suffixFile, Suffixes); err != nil {
		return "", errors.Wrapf(err, "cannot write suffix file %s", suffixFile)
	}

	return prefix, nil
}

func drawImage(path string, fill color.NRGBA) error {
	dc := gg.NewContext(width, height)
	dc.SetColor(fill)
	dc.Clear()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Test Scene", width/2, height/2, 0.5, 0.5)

	if err := dc.SavePNG(path); err != nil {
		return errors.Wrapf(err, "cannot save example image %s", path)
	}
	return nil
}
