// Package gui is the Fyne shell over the viewport engine: the main window,
// the grid of viewport widgets, the status bar, menus and the suffix editor
// dialog. Everything interactive delegates to internal/view and internal/grid.
package gui

import (
	"fmt"
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Dav0ud/imagegridviewer/internal/config"
	"github.com/Dav0ud/imagegridviewer/internal/dataset"
	"github.com/Dav0ud/imagegridviewer/internal/errors"
	"github.com/Dav0ud/imagegridviewer/internal/grid"
	"github.com/Dav0ud/imagegridviewer/internal/imaging"
	"github.com/Dav0ud/imagegridviewer/internal/log"
)

// App is the GUI application.
type App struct {
	fyneApp    fyne.App
	mainWindow fyne.Window
	cfg        *config.Config
	source     *imaging.Source

	prefix     string
	suffixFile string
	filter     string
	columns    int

	coord       *grid.Coordinator
	content     *fyne.Container // swapped between the grid and the welcome view
	statusLabel *widget.Label
	watcher     *dataset.Watcher
}

// NewApp creates the GUI application for one dataset. suffixFile is the
// resolved suffix file path; it may not exist yet, in which case the welcome
// view is shown until the file appears.
func NewApp(cfg *config.Config, prefix, suffixFile, filter string, columns int) *App {
	fyneApp := app.NewWithID("io.github.davoud.igridvu")

	if columns < 1 {
		columns = cfg.Grid.Columns
	}

	a := &App{
		fyneApp:    fyneApp,
		cfg:        cfg,
		source:     imaging.NewSource(cfg),
		prefix:     prefix,
		suffixFile: suffixFile,
		filter:     filter,
		columns:    columns,
	}

	a.mainWindow = a.fyneApp.NewWindow(windowTitle(prefix))
	return a
}

func windowTitle(prefix string) string {
	return "Image Grid Viewer: " + prefix + "..."
}

// Run builds the window, starts the suffix watcher and enters the event loop.
func (a *App) Run() {
	a.setupMainWindow()
	a.startWatcher()

	a.mainWindow.SetOnClosed(func() {
		if a.watcher != nil {
			a.watcher.Stop()
		}
	})

	a.mainWindow.Resize(fyne.NewSize(1024, 768))
	a.mainWindow.ShowAndRun()
}

func (a *App) setupMainWindow() {
	a.statusLabel = widget.NewLabel(grid.DefaultStatusMessage)
	a.statusLabel.Truncation = fyne.TextTruncateEllipsis

	a.content = container.NewStack()
	a.reload()

	a.mainWindow.SetMainMenu(a.buildMainMenu())
	a.mainWindow.SetContent(container.NewBorder(nil, a.statusLabel, nil, nil, a.content))
}

func (a *App) buildMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Save Snapshot...", a.saveSnapshot),
		fyne.NewMenuItem("Edit Suffixes...", a.editSuffixes),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Reload", a.reload),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Red Channel", func() { a.viewChannel(imaging.ChannelRed) }),
		fyne.NewMenuItem("Green Channel", func() { a.viewChannel(imaging.ChannelGreen) }),
		fyne.NewMenuItem("Blue Channel", func() { a.viewChannel(imaging.ChannelBlue) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Restore Original", func() {
			if a.coord != nil {
				a.coord.RestoreAll()
			}
		}),
		fyne.NewMenuItem("Fit All", a.fitAll),
	)

	return fyne.NewMainMenu(fileMenu, viewMenu)
}

// reload re-reads the suffix file and rebuilds the grid from scratch. It is
// the single path for initial load, manual reload, editor saves and watcher
// events.
func (a *App) reload() {
	suffixes, truncated, err := dataset.ReadSuffixes(a.suffixFile, a.cfg.Grid.MaxImages)
	if err != nil {
		log.Debugf("suffix file unavailable: %v", err)
		a.showWelcome()
		return
	}
	if truncated {
		log.Warnf("suffix list truncated to %d entries", a.cfg.Grid.MaxImages)
	}

	if a.filter != "" {
		suffixes, err = dataset.Filter(suffixes, a.filter)
		if err != nil {
			dialog.ShowError(errors.Wrapf(err, "invalid filter pattern %q", a.filter), a.mainWindow)
			return
		}
	}

	if len(suffixes) == 0 {
		a.showWelcome()
		return
	}

	entries := dataset.Assemble(a.prefix, suffixes)

	if a.coord != nil {
		a.coord.Clear()
	}
	a.coord = grid.New(entries, a.columns, a.source, a.setStatus)

	cells := make([]fyne.CanvasObject, 0, a.coord.Len())
	for _, vp := range a.coord.Viewports() {
		cells = append(cells, newViewportWidget(vp, a.cfg.View.ZoomStep))
	}

	gridView := container.NewGridWithColumns(a.columns, cells...)
	a.content.Objects = []fyne.CanvasObject{container.NewScroll(gridView)}
	a.content.Refresh()
	a.setStatus(grid.DefaultStatusMessage)
	log.Infof("loaded %d image(s) for prefix %s", a.coord.Len(), a.prefix)
}

// showWelcome replaces the grid with guidance for an empty or missing
// suffix file. The watcher keeps running, so creating the file brings the
// grid up without a restart.
func (a *App) showWelcome() {
	if a.coord != nil {
		a.coord.Clear()
		a.coord = nil
	}

	msg := fmt.Sprintf("No images to display.\n\n"+
		"Create %s with one suffix per line,\n"+
		"or run 'igridvu edit %s' to build it,\n"+
		"or 'igridvu examples' for a sample dataset.", a.suffixFile, a.suffixFile)
	label := widget.NewLabel(msg)
	label.Alignment = fyne.TextAlignCenter

	a.content.Objects = []fyne.CanvasObject{container.NewCenter(label)}
	a.content.Refresh()
	a.setStatus("Waiting for " + a.suffixFile)
}

func (a *App) setStatus(text string) {
	a.statusLabel.SetText(text)
}

func (a *App) viewChannel(ch imaging.Channel) {
	if a.coord == nil {
		return
	}
	a.coord.ViewChannelAll(ch)
	a.setStatus(fmt.Sprintf("Viewing %s channel. Restore via View menu.", ch))
}

func (a *App) fitAll() {
	if a.coord == nil {
		return
	}
	for _, vp := range a.coord.Viewports() {
		vp.FitImage()
	}
}

// saveSnapshot composes the current grid before the dialog opens, so the
// export shows exactly what was on screen at the moment of the menu click.
func (a *App) saveSnapshot() {
	if a.coord == nil || a.coord.Len() == 0 {
		dialog.ShowInformation("Save Snapshot", "Nothing to snapshot yet.", a.mainWindow)
		return
	}
	img := a.coord.Snapshot()

	fd := dialog.NewFileSave(func(wr fyne.URIWriteCloser, err error) {
		if err != nil {
			a.setStatus("Snapshot failed: " + err.Error())
			return
		}
		if wr == nil {
			return
		}
		a.exportSnapshot(img, wr)
	}, a.mainWindow)
	fd.SetFileName("igridvu_snapshot.png")
	fd.Show()
}

// exportSnapshot encodes img into the chosen destination. Failures are
// transient conditions, reported on the status bar rather than a dialog.
func (a *App) exportSnapshot(img image.Image, wr fyne.URIWriteCloser) {
	defer wr.Close()

	ext := wr.URI().Extension()
	if ext == "" {
		ext = ".png"
	}
	if err := grid.EncodeSnapshot(img, wr, ext); err != nil {
		log.Errorf("snapshot export failed: %v", err)
		a.setStatus("Snapshot failed: " + err.Error())
		return
	}
	log.Infof("snapshot saved to %s", wr.URI().Path())
	a.setStatus("Snapshot saved: " + wr.URI().Path())
}

func (a *App) startWatcher() {
	w, err := dataset.NewWatcher(a.suffixFile, func() {
		log.Infof("suffix file changed, reloading")
		// The callback runs on the watcher goroutine; hop onto the Fyne
		// event loop before touching any widget.
		fyne.Do(a.reload)
	})
	if err != nil {
		log.Warnf("cannot create suffix watcher: %v", err)
		return
	}
	if err := w.Start(); err != nil {
		log.Warnf("cannot watch %s: %v", a.suffixFile, err)
		return
	}
	a.watcher = w
}
