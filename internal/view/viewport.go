// Package view implements the synchronized viewport core: pan/zoom state for
// one image, the mapping between screen and image coordinates, and the
// notification contract the grid coordinator relies on. It is deliberately
// free of any GUI toolkit types so the synchronization engine can be tested
// and reused without a display.
package view

import (
	"fmt"
	"image/color"
	"math"

	"github.com/Dav0ud/imagegridviewer/internal/errors"
	"github.com/Dav0ud/imagegridviewer/internal/imaging"
	"github.com/Dav0ud/imagegridviewer/pkg/types"
)

// Default per-wheel-tick zoom factors.
const (
	ZoomInFactor  = 1.15
	ZoomOutFactor = 1.0 / 1.15
)

// baseHintWidth is the width the size hint is derived from when an image is
// loaded.
const baseHintWidth = 250

// State is the viewport's interaction state. SetViewRect is a silent
// transition and does not participate; only user-driven zoom/pan moves the
// machine out of Idle.
type State int

const (
	// Idle means no gesture is being processed.
	Idle State = iota
	// ZoomInProgress suppresses nested gesture handling until the current
	// zoom or pan completes, after which exactly one notification fires.
	ZoomInProgress
)

// GridListener is the narrow capability a viewport notifies. The grid
// coordinator implements it; nothing else needs to.
type GridListener interface {
	// ViewRectChanged fires after a user-driven zoom or pan completes,
	// carrying the new visible rectangle in image coordinates. It never
	// fires for SetViewRect.
	ViewRectChanged(v *Viewport, rect types.Rect)
	// PointerMoved fires continuously while the pointer is over the
	// viewport, carrying the mapped image coordinate.
	PointerMoved(v *Viewport, imagePt types.Point)
	// PointerEntered fires when the pointer enters the drawable area.
	PointerEntered(v *Viewport, path string)
	// PointerLeft fires when the pointer leaves the drawable area.
	PointerLeft(v *Viewport)
}

// Viewport owns one image's on-screen presentation: the visible rectangle
// within the image's coordinate space, the screen transform derived from it,
// and the gesture state machine. Viewports never share mutable state;
// synchronization passes rectangle values through the coordinator.
type Viewport struct {
	index  int
	label  string
	path   string
	buf    *imaging.Buffer
	orig   *imaging.Buffer // non-nil while a channel view is active
	chann  imaging.Channel
	err    *errors.LoadError
	aspect float64

	viewSize types.Size
	visible  types.Rect
	state    State

	listener  GridListener
	onChanged func() // repaint hook for the widget layer, not a notification
}

// New creates a viewport presenting the given decoded buffer.
func New(index int, label, path string, buf *imaging.Buffer) *Viewport {
	v := &Viewport{
		index:  index,
		label:  label,
		path:   path,
		buf:    buf,
		aspect: buf.AspectRatio(),
	}
	v.FitImage()
	return v
}

// NewError creates a placeholder viewport for a failed load. It participates
// in layout as an empty cell and ignores zoom/pan.
func NewError(index int, label, path string, loadErr *errors.LoadError) *Viewport {
	return &Viewport{
		index: index,
		label: label,
		path:  path,
		err:   loadErr,
	}
}

// SetListener registers the coordinator-side notification target.
func (v *Viewport) SetListener(l GridListener) {
	v.listener = l
}

// SetOnChanged registers the repaint hook invoked whenever presentation
// state changes (including silent SetViewRect pushes).
func (v *Viewport) SetOnChanged(f func()) {
	v.onChanged = f
}

// Index returns the viewport's dataset position.
func (v *Viewport) Index() int { return v.index }

// Label returns the dataset label.
func (v *Viewport) Label() string { return v.label }

// Path returns the image path backing this viewport.
func (v *Viewport) Path() string { return v.path }

// Err returns the load error for a placeholder viewport, or nil.
func (v *Viewport) Err() *errors.LoadError { return v.err }

// HasImage reports whether a decoded buffer is present.
func (v *Viewport) HasImage() bool { return v.buf != nil }

// Buffer returns the currently displayed buffer (channel view included).
func (v *Viewport) Buffer() *imaging.Buffer { return v.buf }

// Channel returns the active channel view, or ChannelNone.
func (v *Viewport) Channel() imaging.Channel { return v.chann }

// State returns the gesture state, exposed for tests.
func (v *Viewport) State() State { return v.state }

// Title returns the overlay caption: the label, annotated while a channel
// view is active.
func (v *Viewport) Title() string {
	if v.chann != imaging.ChannelNone {
		return fmt.Sprintf("%s [%s]", v.label, v.chann)
	}
	return v.label
}

// AspectRatio returns width/height of the source image, 0 without an image.
func (v *Viewport) AspectRatio() float64 { return v.aspect }

// PreferredHeight returns the height that preserves the image's aspect ratio
// at the given width. Without an image it returns 0, meaning unconstrained.
func (v *Viewport) PreferredHeight(width float64) float64 {
	if v.aspect <= 0 {
		return 0
	}
	return width / v.aspect
}

// SizeHint returns a reasonable default cell size respecting the aspect ratio.
func (v *Viewport) SizeHint() types.Size {
	if v.aspect > 0 {
		return types.Size{W: baseHintWidth, H: baseHintWidth / v.aspect}
	}
	return types.Size{W: baseHintWidth, H: baseHintWidth}
}

// Resize records the on-screen size of the viewport in screen units.
func (v *Viewport) Resize(w, h float64) {
	v.viewSize = types.Size{W: w, H: h}
}

// ViewSize returns the last recorded on-screen size.
func (v *Viewport) ViewSize() types.Size { return v.viewSize }

// VisibleRect returns the visible sub-region of the image, in image-local
// floating-point coordinates.
func (v *Viewport) VisibleRect() types.Rect { return v.visible }

// FitImage resets the visible rectangle to the whole image. Programmatic,
// silent.
func (v *Viewport) FitImage() {
	if !v.HasImage() {
		return
	}
	v.visible = types.NewRect(0, 0, float64(v.buf.Width()), float64(v.buf.Height()))
	v.changed()
}

// scale returns screen units per image unit for the current visible rect,
// letterboxed: the limiting axis decides.
func (v *Viewport) scale() float64 {
	if v.visible.Empty() || v.viewSize.Empty() {
		return 1
	}
	sx := v.viewSize.W / v.visible.W
	sy := v.viewSize.H / v.visible.H
	return math.Min(sx, sy)
}

// offset returns the screen position of the visible rect's origin, centering
// the letterboxed content.
func (v *Viewport) offset() types.Point {
	s := v.scale()
	return types.Point{
		X: (v.viewSize.W - v.visible.W*s) / 2,
		Y: (v.viewSize.H - v.visible.H*s) / 2,
	}
}

// MapScreenToImage applies the inverse view transform. The result is valid
// even outside image bounds; callers clip.
func (v *Viewport) MapScreenToImage(p types.Point) types.Point {
	s := v.scale()
	off := v.offset()
	return types.Point{
		X: v.visible.X + (p.X-off.X)/s,
		Y: v.visible.Y + (p.Y-off.Y)/s,
	}
}

// MapImageToScreen applies the view transform.
func (v *Viewport) MapImageToScreen(p types.Point) types.Point {
	s := v.scale()
	off := v.offset()
	return types.Point{
		X: (p.X-v.visible.X)*s + off.X,
		Y: (p.Y-v.visible.Y)*s + off.Y,
	}
}

// Zoom rescales the view by factor around anchor (a screen point), which
// stays visually stationary. factor > 1 zooms in. No-op without an image or
// while another gesture is in progress.
func (v *Viewport) Zoom(factor float64, anchor types.Point) {
	if !v.HasImage() || v.state != Idle || factor <= 0 {
		return
	}
	v.state = ZoomInProgress

	imgAnchor := v.MapScreenToImage(anchor)
	v.visible.W /= factor
	v.visible.H /= factor

	// Reposition so the image point under the anchor maps back to it.
	s := v.scale()
	off := v.offset()
	v.visible.X = imgAnchor.X - (anchor.X-off.X)/s
	v.visible.Y = imgAnchor.Y - (anchor.Y-off.Y)/s

	v.state = Idle
	v.changed()
	if v.listener != nil {
		v.listener.ViewRectChanged(v, v.visible)
	}
}

// Pan shifts the visible rectangle by a screen-space drag delta, with
// scrollbar-equivalent clamping so the view cannot leave the image content.
func (v *Viewport) Pan(dx, dy float64) {
	if !v.HasImage() || v.state != Idle {
		return
	}
	v.state = ZoomInProgress

	s := v.scale()
	v.visible.X -= dx / s
	v.visible.Y -= dy / s
	v.clampPan()

	v.state = Idle
	v.changed()
	if v.listener != nil {
		v.listener.ViewRectChanged(v, v.visible)
	}
}

// clampPan keeps the visible rect on the image per axis. An axis whose
// visible extent exceeds the image does not scroll at all.
func (v *Viewport) clampPan() {
	imgW := float64(v.buf.Width())
	imgH := float64(v.buf.Height())

	if v.visible.W < imgW {
		v.visible.X = clamp(v.visible.X, 0, imgW-v.visible.W)
	} else {
		v.visible.X = (imgW - v.visible.W) / 2
	}
	if v.visible.H < imgH {
		v.visible.Y = clamp(v.visible.Y, 0, imgH-v.visible.H)
	} else {
		v.visible.Y = (imgH - v.visible.H) / 2
	}
}

func clamp(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// SetViewRect fits the given rectangle directly. This is the coordinator's
// synchronization push: it repaints but MUST NOT re-emit ViewRectChanged,
// which is what keeps a gesture on one viewport from echoing around the grid.
func (v *Viewport) SetViewRect(rect types.Rect) {
	if !v.HasImage() || rect.Empty() {
		return
	}
	v.visible = rect
	v.changed()
}

// ColorAtScreen maps a screen point into the image and returns the color of
// the enclosing integer pixel, or ok=false outside the image.
func (v *Viewport) ColorAtScreen(p types.Point) (color.NRGBA, bool) {
	if !v.HasImage() {
		return color.NRGBA{}, false
	}
	return v.ColorAtImage(v.MapScreenToImage(p))
}

// ColorAtImage returns the color at a floating-point image coordinate,
// floored to the enclosing integer pixel.
func (v *Viewport) ColorAtImage(p types.Point) (color.NRGBA, bool) {
	if !v.HasImage() {
		return color.NRGBA{}, false
	}
	return v.buf.ColorAt(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// PointerMoved reports a pointer position in screen coordinates; the mapped
// image coordinate is forwarded to the listener.
func (v *Viewport) PointerMoved(screen types.Point) {
	if v.listener == nil || !v.HasImage() {
		return
	}
	v.listener.PointerMoved(v, v.MapScreenToImage(screen))
}

// PointerEntered reports the pointer entering the drawable area.
func (v *Viewport) PointerEntered() {
	if v.listener == nil {
		return
	}
	v.listener.PointerEntered(v, v.path)
}

// PointerLeft reports the pointer leaving the drawable area.
func (v *Viewport) PointerLeft() {
	if v.listener == nil {
		return
	}
	v.listener.PointerLeft(v)
}

// ViewChannel swaps in a grayscale view of one channel. The original buffer
// is retained for RestoreOriginal; the swap is whole-buffer, never in place.
func (v *Viewport) ViewChannel(ch imaging.Channel) {
	if !v.HasImage() || ch == imaging.ChannelNone {
		return
	}
	if v.orig == nil {
		v.orig = v.buf
	}
	v.buf = imaging.ExtractChannel(v.orig, ch)
	v.chann = ch
	v.changed()
}

// RestoreOriginal swaps the unmodified buffer back in.
func (v *Viewport) RestoreOriginal() {
	if v.orig == nil {
		return
	}
	v.buf = v.orig
	v.orig = nil
	v.chann = imaging.ChannelNone
	v.changed()
}

func (v *Viewport) changed() {
	if v.onChanged != nil {
		v.onChanged()
	}
}
