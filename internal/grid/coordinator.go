// Package grid owns the viewport collection: construction from a dataset,
// grid placement, the rect-synchronization fan-out and the aggregated pixel
// readout. It is the only component viewports notify, which is what bounds
// every user gesture to a single fan-out pass.
package grid

import (
	"fmt"
	"math"
	"strings"

	"github.com/Dav0ud/imagegridviewer/internal/dataset"
	"github.com/Dav0ud/imagegridviewer/internal/errors"
	"github.com/Dav0ud/imagegridviewer/internal/imaging"
	"github.com/Dav0ud/imagegridviewer/internal/log"
	"github.com/Dav0ud/imagegridviewer/internal/view"
	"github.com/Dav0ud/imagegridviewer/pkg/types"
)

// DefaultStatusMessage is shown when no viewport is hovered.
const DefaultStatusMessage = "Ready. Hover for path. Move over image for pixel values."

// StatusSink receives the single composed status line. The GUI binds its
// status bar; tests capture the strings.
type StatusSink func(text string)

// Coordinator owns N viewports placed row-major over a fixed column count.
// It implements view.GridListener: a rect change on one viewport is pushed
// by value to every sibling through the silent SetViewRect, and pointer
// movement is answered with one aggregated readout across all viewports.
type Coordinator struct {
	entries   []dataset.Entry
	viewports []*view.Viewport
	columns   int
	status    StatusSink
}

var _ view.GridListener = (*Coordinator)(nil)

// New builds one viewport per dataset entry, loading each image through the
// source. A failed load degrades that entry to a placeholder cell and never
// aborts its siblings.
func New(entries []dataset.Entry, columns int, src *imaging.Source, status StatusSink) *Coordinator {
	if columns < 1 {
		columns = 1
	}
	c := &Coordinator{
		entries: entries,
		columns: columns,
		status:  status,
	}

	for i, entry := range entries {
		var vp *view.Viewport
		switch {
		case entry.Err != nil:
			vp = view.NewError(i, entry.Label, entry.Path, entry.Err)
		default:
			buf, err := src.Load(entry.Path)
			if err != nil {
				loadErr, ok := errors.AsLoadError(err)
				if !ok {
					loadErr = errors.NewLoadError(err.Error(), "Cannot load", entry.Path, errors.Unknown, err)
				}
				log.Warnf("load failed for %s: %v", entry.Path, err)
				c.entries[i].Err = loadErr
				vp = view.NewError(i, entry.Label, entry.Path, loadErr)
			} else {
				vp = view.New(i, entry.Label, entry.Path, buf)
			}
		}
		vp.SetListener(c)
		c.viewports = append(c.viewports, vp)
	}
	return c
}

// Len returns the number of grid cells.
func (c *Coordinator) Len() int {
	return len(c.viewports)
}

// Columns returns the fixed column count.
func (c *Coordinator) Columns() int {
	return c.columns
}

// Rows returns the number of grid rows.
func (c *Coordinator) Rows() int {
	if len(c.viewports) == 0 {
		return 0
	}
	return (len(c.viewports)-1)/c.columns + 1
}

// Position returns the (row, col) cell of the entry at index.
func (c *Coordinator) Position(index int) (row, col int) {
	return dataset.Position(index, c.columns)
}

// Viewports returns the owned viewports in dataset order.
func (c *Coordinator) Viewports() []*view.Viewport {
	return c.viewports
}

// Entries returns the dataset entries in order.
func (c *Coordinator) Entries() []dataset.Entry {
	return c.entries
}

// Clear releases the viewport collection. Rebuilding after a dataset change
// is an explicit drop-then-construct step.
func (c *Coordinator) Clear() {
	c.viewports = nil
	c.entries = nil
}

// ViewRectChanged pushes the rectangle to every viewport except the origin.
// SetViewRect never re-notifies, so one gesture costs exactly N-1 downstream
// calls and the fan-out terminates.
func (c *Coordinator) ViewRectChanged(src *view.Viewport, rect types.Rect) {
	for _, vp := range c.viewports {
		if vp != src {
			vp.SetViewRect(rect)
		}
	}
}

// PointerMoved aggregates the color under the same image coordinate across
// every viewport into one status line. Image coordinates are comparable
// across views because grid datasets are pixel-aligned by convention. If the
// source viewport itself has no pixel there, the readout would be groundless
// and only the hovered path is shown.
func (c *Coordinator) PointerMoved(src *view.Viewport, imagePt types.Point) {
	if _, ok := src.ColorAtImage(imagePt); !ok {
		c.publish("Path: " + src.Path())
		return
	}

	x := int(math.Floor(imagePt.X))
	y := int(math.Floor(imagePt.Y))

	parts := make([]string, 0, len(c.viewports))
	for _, vp := range c.viewports {
		parts = append(parts, formatPixel(vp, imagePt))
	}

	c.publish(fmt.Sprintf("Path: %s  Coords: (%d, %d)  |  %s",
		src.Path(), x, y, strings.Join(parts, " | ")))
}

// formatPixel renders one viewport's reading. Out of bounds is an expected
// condition for differently sized siblings, shown as "---".
func formatPixel(vp *view.Viewport, imagePt types.Point) string {
	clr, ok := vp.ColorAtImage(imagePt)
	if !ok {
		return fmt.Sprintf("%s: ---", vp.Label())
	}
	if vp.Buffer().HasAlpha() {
		return fmt.Sprintf("%s: (%d,%d,%d,%d)", vp.Label(), clr.R, clr.G, clr.B, clr.A)
	}
	return fmt.Sprintf("%s: (%d,%d,%d)", vp.Label(), clr.R, clr.G, clr.B)
}

// PointerEntered shows the hovered image path.
func (c *Coordinator) PointerEntered(_ *view.Viewport, path string) {
	c.publish("Path: " + path)
}

// PointerLeft restores the default ready message.
func (c *Coordinator) PointerLeft(_ *view.Viewport) {
	c.publish(DefaultStatusMessage)
}

// ViewChannelAll switches every loaded viewport to a single-channel view.
func (c *Coordinator) ViewChannelAll(ch imaging.Channel) {
	for _, vp := range c.viewports {
		vp.ViewChannel(ch)
	}
}

// RestoreAll restores every viewport's original image.
func (c *Coordinator) RestoreAll() {
	for _, vp := range c.viewports {
		vp.RestoreOriginal()
	}
}

func (c *Coordinator) publish(text string) {
	if c.status != nil {
		c.status(text)
	}
}
