package gui

import (
	"image"
	"image/color"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/Dav0ud/imagegridviewer/internal/grid"
	"github.com/Dav0ud/imagegridviewer/internal/view"
	"github.com/Dav0ud/imagegridviewer/pkg/types"
)

const (
	minCellWidth  = 120
	minCellHeight = 90
	titleTextSize = 12
	titleInset    = 6
)

// viewportWidget is the Fyne shell around one view.Viewport: it rasterizes
// the visible rectangle and translates scroll, drag and hover events into
// viewport operations. All synchronization logic stays in the view package;
// this widget only repaints when told to.
type viewportWidget struct {
	widget.BaseWidget

	vp       *view.Viewport
	zoomStep float64
	raster   *canvas.Raster
	title    *canvas.Text
	errLbl   *widget.Label
}

var _ fyne.Widget = (*viewportWidget)(nil)
var _ fyne.Scrollable = (*viewportWidget)(nil)
var _ fyne.Draggable = (*viewportWidget)(nil)
var _ desktop.Hoverable = (*viewportWidget)(nil)

func newViewportWidget(vp *view.Viewport, zoomStep float64) *viewportWidget {
	if zoomStep <= 1 {
		zoomStep = view.ZoomInFactor
	}
	w := &viewportWidget{vp: vp, zoomStep: zoomStep}

	w.raster = canvas.NewRaster(func(pw, ph int) image.Image {
		return grid.Render(vp, pw, ph)
	})

	w.title = canvas.NewText(vp.Title(), color.White)
	w.title.TextSize = titleTextSize
	w.title.TextStyle = fyne.TextStyle{Bold: true}

	if loadErr := vp.Err(); loadErr != nil {
		w.errLbl = widget.NewLabel(loadErr.Message() + "\n" + filepath.Base(vp.Path()))
		w.errLbl.Alignment = fyne.TextAlignCenter
		w.errLbl.Wrapping = fyne.TextWrapWord
		w.errLbl.Importance = widget.DangerImportance
	}

	vp.SetOnChanged(w.Refresh)
	w.ExtendBaseWidget(w)
	return w
}

// CreateRenderer is a Fyne lifecycle method.
func (w *viewportWidget) CreateRenderer() fyne.WidgetRenderer {
	return &viewportRenderer{w: w}
}

// Scrolled zooms about the cursor position. Scrolling up zooms in.
func (w *viewportWidget) Scrolled(ev *fyne.ScrollEvent) {
	factor := w.zoomStep
	if ev.Scrolled.DY < 0 {
		factor = 1 / w.zoomStep
	}
	w.vp.Zoom(factor, types.Pt(float64(ev.Position.X), float64(ev.Position.Y)))
}

// Dragged pans by the drag delta.
func (w *viewportWidget) Dragged(ev *fyne.DragEvent) {
	w.vp.Pan(float64(ev.Dragged.DX), float64(ev.Dragged.DY))
}

// DragEnd is a Fyne lifecycle method.
func (w *viewportWidget) DragEnd() {}

// MouseIn reports the pointer entering this cell.
func (w *viewportWidget) MouseIn(_ *desktop.MouseEvent) {
	w.vp.PointerEntered()
}

// MouseMoved forwards the pointer position for the pixel readout.
func (w *viewportWidget) MouseMoved(ev *desktop.MouseEvent) {
	w.vp.PointerMoved(types.Pt(float64(ev.Position.X), float64(ev.Position.Y)))
}

// MouseOut reports the pointer leaving this cell.
func (w *viewportWidget) MouseOut() {
	w.vp.PointerLeft()
}

type viewportRenderer struct {
	w *viewportWidget
}

func (r *viewportRenderer) Layout(size fyne.Size) {
	r.w.vp.Resize(float64(size.Width), float64(size.Height))
	r.w.raster.Resize(size)
	r.w.title.Resize(r.w.title.MinSize())
	r.w.title.Move(fyne.NewPos(titleInset, titleInset))
	if r.w.errLbl != nil {
		r.w.errLbl.Resize(size)
		r.w.errLbl.Move(fyne.NewPos(0, 0))
	}
}

func (r *viewportRenderer) MinSize() fyne.Size {
	return fyne.NewSize(minCellWidth, minCellHeight)
}

func (r *viewportRenderer) Refresh() {
	r.w.title.Text = r.w.vp.Title()
	r.w.title.Refresh()
	canvas.Refresh(r.w.raster)
}

func (r *viewportRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{r.w.raster}
	if r.w.errLbl != nil {
		objects = append(objects, r.w.errLbl)
	}
	return append(objects, r.w.title)
}

func (r *viewportRenderer) Destroy() {}
