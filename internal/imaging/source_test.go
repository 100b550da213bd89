package imaging

import (
	"bytes"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dav0ud/imagegridviewer/internal/config"
	"github.com/Dav0ud/imagegridviewer/internal/errors"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidNRGBA(w, h, color.NRGBA{R: 90, G: 120, B: 150, A: 255})))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func newTestSource() *Source {
	return NewSource(config.New())
}

func TestLoadPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ok.png")
	writePNG(t, path, 8, 6)

	buf, err := newTestSource().Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, buf.Width())
	assert.Equal(t, 6, buf.Height())

	c, ok := buf.ColorAt(3, 3)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 90, G: 120, B: 150, A: 255}, c)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := newTestSource().Load(filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadDirectory(t *testing.T) {
	_, err := newTestSource().Load(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestLoadPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file modes do not restrict root")
	}
	path := filepath.Join(t.TempDir(), "locked.png")
	writePNG(t, path, 4, 4)
	require.NoError(t, os.Chmod(path, 0o000))

	_, err := newTestSource().Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsPermissionDenied(err))
}

func TestLoadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.png")
	writePNG(t, path, 16, 16)

	src := &Source{MaxFileSize: 10, MaxDimension: 10000}
	_, err := src.Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.TooLarge, errors.KindOf(err))
}

// The size check must precede the format sniff, so an oversized file is
// reported as too large even when its content is not an image at all.
func TestSizeCheckBeforeFormatSniff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.dat")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 100), 0o644))

	src := &Source{MaxFileSize: 10, MaxDimension: 10000}
	_, err := src.Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.TooLarge, errors.KindOf(err))
}

func TestLoadUnrecognizedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("this is not an image"), 0o644))

	_, err := newTestSource().Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.UnrecognizedFormat, errors.KindOf(err))
}

func TestLoadDimensionsTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wide.png")
	writePNG(t, path, 8, 8)

	src := &Source{MaxFileSize: 1 << 20, MaxDimension: 4}
	_, err := src.Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.DimensionsTooLarge, errors.KindOf(err))
}

// A file whose header sniffs as PNG but whose pixel data is cut off must be
// reported as corrupted, not unrecognized.
func TestLoadCorrupted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, solidNRGBA(16, 16, color.NRGBA{A: 255})))
	truncated := buf.Bytes()[:40] // signature + IHDR survive, pixel data does not

	path := filepath.Join(t.TempDir(), "broken.png")
	require.NoError(t, os.WriteFile(path, truncated, 0o644))

	_, err := newTestSource().Load(path)
	require.Error(t, err)
	assert.Equal(t, errors.Corrupted, errors.KindOf(err))
}

func TestLoadErrorCarriesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := newTestSource().Load(path)
	require.Error(t, err)

	loadErr, ok := errors.AsLoadError(err)
	require.True(t, ok)
	assert.Equal(t, path, loadErr.Path())
}
