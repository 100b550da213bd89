package gui

import (
	"fmt"
	"strings"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Dav0ud/imagegridviewer/internal/dataset"
)

// editSuffixes opens the in-app suffix list editor. Saving rewrites the
// suffix file; the fsnotify watcher then drives the grid reload, so the
// dialog itself never touches the viewports.
func (a *App) editSuffixes() {
	items, _, err := dataset.ReadSuffixes(a.suffixFile, a.cfg.Grid.MaxImages)
	if err != nil {
		// Start empty when the file does not exist yet.
		items = nil
	}

	selected := -1
	list := widget.NewList(
		func() int { return len(items) },
		func() fyne.CanvasObject { return widget.NewLabel("suffix template") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(items[id])
		},
	)
	list.OnSelected = func(id widget.ListItemID) { selected = id }
	list.OnUnselected = func(widget.ListItemID) { selected = -1 }

	entry := widget.NewEntry()
	entry.SetPlaceHolder("new suffix, e.g. _depth.png")

	addItem := func() {
		suffix := strings.TrimRightFunc(entry.Text, unicode.IsSpace)
		if suffix == "" {
			return
		}
		if len(items) >= a.cfg.Grid.MaxImages {
			dialog.ShowInformation("Edit Suffixes",
				fmt.Sprintf("Suffix limit reached (%d entries).", a.cfg.Grid.MaxImages),
				a.mainWindow)
			return
		}
		items = append(items, suffix)
		entry.SetText("")
		list.Refresh()
	}
	entry.OnSubmitted = func(string) { addItem() }
	addBtn := widget.NewButton("Add", addItem)

	removeBtn := widget.NewButton("Remove Selected", func() {
		if selected < 0 || selected >= len(items) {
			return
		}
		items = append(items[:selected], items[selected+1:]...)
		selected = -1
		list.UnselectAll()
		list.Refresh()
	})

	form := container.NewBorder(nil, nil, nil, addBtn, entry)
	body := container.NewBorder(form, removeBtn, nil, nil, list)

	d := dialog.NewCustomConfirm("Edit Suffixes", "Save", "Cancel", body,
		func(save bool) {
			if !save {
				return
			}
			if err := dataset.WriteSuffixes(a.suffixFile, items); err != nil {
				dialog.ShowError(err, a.mainWindow)
				return
			}
			if a.watcher == nil || !a.watcher.Running() {
				a.reload()
			}
		}, a.mainWindow)
	d.Resize(fyne.NewSize(440, 420))
	d.Show()
}
