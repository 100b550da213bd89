package imaging

import (
	"image"
	"io"
	"os"

	// Register the decoders the viewer accepts. The stdlib registry makes
	// DecodeConfig the header sniff and Decode the full decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Dav0ud/imagegridviewer/internal/config"
	"github.com/Dav0ud/imagegridviewer/internal/errors"
	"github.com/Dav0ud/imagegridviewer/internal/log"
)

// Source loads image files into pixel buffers after a fixed sequence of
// safety checks. Each check short-circuits with its own ErrorKind so a
// failing file degrades to a labelled placeholder instead of a decode
// attempt.
type Source struct {
	// MaxFileSize is the largest file the loader will open, in bytes.
	MaxFileSize int64
	// MaxDimension is the largest accepted intrinsic width or height.
	MaxDimension int
}

// NewSource builds a Source from the configured limits.
func NewSource(cfg *config.Config) *Source {
	return &Source{
		MaxFileSize:  cfg.MaxFileSizeBytes(),
		MaxDimension: cfg.Limits.MaxImageDimension,
	}
}

// Load decodes the image at path. The pre-decode checks run strictly in
// order: existence, readability, file size, format sniff, dimensions; only
// then is the full decode attempted. The first violated check decides the
// returned error kind.
func (s *Source) Load(path string) (*Buffer, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError(path)
		}
		if os.IsPermission(err) {
			return nil, errors.PermissionError(path, err)
		}
		return nil, errors.Wrapf(err, "cannot stat %s", path)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.NotFoundError(path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.PermissionError(path, err)
		}
		return nil, errors.Wrapf(err, "cannot open %s", path)
	}
	defer f.Close()

	if info.Size() > s.MaxFileSize {
		return nil, errors.TooLargeError(path, float64(info.Size())/(1024*1024))
	}

	// Header sniff: identifies the format and intrinsic dimensions without
	// committing to a full decode.
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return nil, errors.UnrecognizedFormatError(path, err)
	}
	if cfg.Width > s.MaxDimension || cfg.Height > s.MaxDimension {
		return nil, errors.DimensionsError(path, cfg.Width, cfg.Height)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrapf(err, "cannot rewind %s", path)
	}

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.CorruptedError(path, err)
	}

	buf := FromImage(img)
	if buf.Empty() {
		return nil, errors.CorruptedError(path, nil)
	}

	log.Debugf("loaded %s (%s, %dx%d)", path, format, buf.Width(), buf.Height())
	return buf, nil
}
