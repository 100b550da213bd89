package grid

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dav0ud/imagegridviewer/internal/config"
	"github.com/Dav0ud/imagegridviewer/internal/dataset"
	"github.com/Dav0ud/imagegridviewer/internal/errors"
	"github.com/Dav0ud/imagegridviewer/internal/imaging"
	"github.com/Dav0ud/imagegridviewer/pkg/types"
)

func writeSolidPNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

type cell struct {
	label string
	w, h  int
	color color.NRGBA
}

// buildCoordinator writes one PNG per cell and assembles a coordinator over
// them, capturing status lines in the returned pointer.
func buildCoordinator(t *testing.T, columns int, cells []cell) (*Coordinator, *string) {
	t.Helper()
	dir := t.TempDir()

	entries := make([]dataset.Entry, 0, len(cells))
	for _, cl := range cells {
		path := filepath.Join(dir, cl.label+".png")
		writeSolidPNG(t, path, cl.w, cl.h, cl.color)
		entries = append(entries, dataset.Entry{Label: cl.label, Suffix: cl.label + ".png", Path: path})
	}

	var status string
	c := New(entries, columns, imaging.NewSource(config.New()), func(text string) { status = text })
	return c, &status
}

var (
	red  = color.NRGBA{R: 255, A: 255}
	blue = color.NRGBA{B: 255, A: 255}
)

func TestNewBuildsViewportsInOrder(t *testing.T) {
	c, _ := buildCoordinator(t, 2, []cell{
		{"a", 10, 10, red}, {"b", 10, 10, blue}, {"c", 10, 10, red},
	})

	require.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Columns())
	assert.Equal(t, 2, c.Rows())

	row, col := c.Position(2)
	assert.Equal(t, 1, row)
	assert.Equal(t, 0, col)

	for i, vp := range c.Viewports() {
		assert.Equal(t, i, vp.Index())
		assert.True(t, vp.HasImage())
	}
}

func TestNewDegradesFailedLoads(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.png")
	writeSolidPNG(t, good, 4, 4, red)

	entries := []dataset.Entry{
		{Label: "good", Path: good},
		{Label: "gone", Path: filepath.Join(dir, "gone.png")},
		{Label: "bad", Err: errors.TraversalError("../x")},
	}
	c := New(entries, 3, imaging.NewSource(config.New()), nil)

	require.Equal(t, 3, c.Len())
	vps := c.Viewports()
	assert.True(t, vps[0].HasImage())
	assert.False(t, vps[1].HasImage())
	require.NotNil(t, vps[1].Err())
	assert.True(t, errors.IsNotFound(vps[1].Err()))
	assert.False(t, vps[2].HasImage())
	assert.True(t, errors.IsPathTraversal(vps[2].Err()))

	// The entry records the load failure too.
	require.NotNil(t, c.Entries()[1].Err)
}

// One gesture on one viewport must reach every sibling exactly once and
// never echo back: N viewports repaint, N-1 get the pushed rectangle, zero
// re-notifications.
func TestGestureFansOutOnce(t *testing.T) {
	c, _ := buildCoordinator(t, 2, []cell{
		{"a", 10, 10, red}, {"b", 10, 10, blue}, {"c", 10, 10, red},
	})

	vps := c.Viewports()
	repaints := make([]int, len(vps))
	for i, vp := range vps {
		vp.Resize(100, 100)
		i := i
		vp.SetOnChanged(func() { repaints[i]++ })
	}

	vps[0].Zoom(2, types.Pt(50, 50))

	want := vps[0].VisibleRect()
	for i, vp := range vps {
		assert.Equal(t, want, vp.VisibleRect(), "viewport %d out of sync", i)
		assert.Equal(t, 1, repaints[i], "viewport %d repainted %d times", i, repaints[i])
	}
}

func TestPanFansOut(t *testing.T) {
	c, _ := buildCoordinator(t, 2, []cell{{"a", 10, 10, red}, {"b", 10, 10, blue}})
	vps := c.Viewports()
	for _, vp := range vps {
		vp.Resize(100, 100)
	}

	vps[1].Zoom(2, types.Pt(50, 50))
	vps[1].Pan(-10, -10)

	assert.Equal(t, vps[1].VisibleRect(), vps[0].VisibleRect())
}

func TestPointerMovedAggregatesAllViewports(t *testing.T) {
	c, status := buildCoordinator(t, 2, []cell{
		{"a", 10, 10, red},
		{"b", 5, 5, blue},
	})
	vps := c.Viewports()

	c.PointerMoved(vps[0], types.Pt(7.3, 7.9))

	want := fmt.Sprintf("Path: %s  Coords: (7, 7)  |  a: (255,0,0) | b: ---", vps[0].Path())
	assert.Equal(t, want, *status)
}

func TestPointerMovedInsideBothImages(t *testing.T) {
	c, status := buildCoordinator(t, 2, []cell{
		{"a", 10, 10, red},
		{"b", 5, 5, blue},
	})
	vps := c.Viewports()

	c.PointerMoved(vps[0], types.Pt(2, 3))

	want := fmt.Sprintf("Path: %s  Coords: (2, 3)  |  a: (255,0,0) | b: (0,0,255)", vps[0].Path())
	assert.Equal(t, want, *status)
}

// If the hovered viewport has no pixel at the coordinate, only the path is
// shown; readings from siblings alone would be groundless.
func TestPointerMovedOutsideSourceShowsPathOnly(t *testing.T) {
	c, status := buildCoordinator(t, 2, []cell{
		{"a", 10, 10, red},
		{"b", 5, 5, blue},
	})
	vps := c.Viewports()

	c.PointerMoved(vps[1], types.Pt(7, 7))
	assert.Equal(t, "Path: "+vps[1].Path(), *status)
}

func TestPointerMovedIncludesAlphaForRGBA(t *testing.T) {
	c, status := buildCoordinator(t, 1, []cell{
		{"glass", 4, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 128}},
	})
	vps := c.Viewports()
	require.True(t, vps[0].Buffer().HasAlpha())

	c.PointerMoved(vps[0], types.Pt(1, 1))

	want := fmt.Sprintf("Path: %s  Coords: (1, 1)  |  glass: (10,20,30,128)", vps[0].Path())
	assert.Equal(t, want, *status)
}

func TestPointerEnteredAndLeft(t *testing.T) {
	c, status := buildCoordinator(t, 1, []cell{{"a", 4, 4, red}})
	vps := c.Viewports()

	c.PointerEntered(vps[0], vps[0].Path())
	assert.Equal(t, "Path: "+vps[0].Path(), *status)

	c.PointerLeft(vps[0])
	assert.Equal(t, DefaultStatusMessage, *status)
}

func TestPointerMovedThroughViewport(t *testing.T) {
	c, status := buildCoordinator(t, 1, []cell{{"a", 10, 10, red}})
	vp := c.Viewports()[0]
	vp.Resize(20, 20) // scale 2

	vp.PointerMoved(types.Pt(6, 6))
	assert.Contains(t, *status, "Coords: (3, 3)")
}

func TestViewChannelAllAndRestoreAll(t *testing.T) {
	c, _ := buildCoordinator(t, 2, []cell{{"a", 4, 4, red}, {"b", 4, 4, blue}})

	c.ViewChannelAll(imaging.ChannelRed)
	for _, vp := range c.Viewports() {
		assert.Equal(t, imaging.ChannelRed, vp.Channel())
	}

	c.RestoreAll()
	for _, vp := range c.Viewports() {
		assert.Equal(t, imaging.ChannelNone, vp.Channel())
	}
}

func TestNilStatusSinkIsSafe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	writeSolidPNG(t, path, 4, 4, red)

	c := New([]dataset.Entry{{Label: "a", Path: path}}, 1, imaging.NewSource(config.New()), nil)
	c.PointerMoved(c.Viewports()[0], types.Pt(1, 1))
	c.PointerLeft(c.Viewports()[0])
}

func TestClear(t *testing.T) {
	c, _ := buildCoordinator(t, 1, []cell{{"a", 4, 4, red}})
	c.Clear()
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Rows())
}
