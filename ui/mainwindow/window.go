// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"affinity-map/internal/app"
	"affinity-map/internal/project"
	"affinity-map/internal/version"
	"affinity-map/internal/viewport"
	"affinity-map/ui/canvas"
	"affinity-map/ui/dialogs"
	"affinity-map/ui/panels"
)

const (
	appTitle       = "Affinity Map"
	prefKeyLastDir = "lastDirectory"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	board     *canvas.BoardCanvas
	sidePanel *panels.SidePanel
	tagMenu   *panels.TagFilterMenu
	tagBtn    *widget.Button
	zoomLabel *widget.Label
	statusBar *widget.Label
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.updateZoomLabel(state.Viewport())

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.board = canvas.NewBoardCanvas(mw.state)
	mw.board.OnEditPerson(mw.editPerson)
	mw.board.OnCardMenu(mw.showCardMenu)

	mw.sidePanel = panels.NewSidePanel(mw.state)
	mw.sidePanel.SetWindow(mw.Window)
	mw.sidePanel.People().OnEdit(mw.editPerson)

	mw.tagMenu = panels.NewTagFilterMenu(mw.state, mw.Canvas())
	mw.statusBar = widget.NewLabel("Ready")

	boardArea := container.NewBorder(
		mw.createToolbar(), // top
		nil,                // bottom
		nil,                // left
		nil,                // right
		mw.board,           // center
	)

	split := container.NewHSplit(mw.sidePanel.Container(), boardArea)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,                               // top
		container.NewPadded(mw.statusBar), // bottom
		nil,                               // left
		nil,                               // right
		split,                             // center
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1200, 800))
}

// createToolbar creates the toolbar with zoom and filter controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButtonWithIcon("", theme.ZoomOutIcon(), mw.onZoomOut)
	zoomInBtn := widget.NewButtonWithIcon("", theme.ZoomInIcon(), mw.onZoomIn)
	resetBtn := widget.NewButton("100%", mw.onResetZoom)
	recenterBtn := widget.NewButtonWithIcon("Recenter", theme.ViewRestoreIcon(), mw.onRecenter)
	mw.tagBtn = widget.NewButtonWithIcon("Tags", theme.MenuIcon(), mw.onTagMenu)
	mw.zoomLabel = widget.NewLabel("")

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		mw.zoomLabel,
		zoomInBtn,
		resetBtn,
		widget.NewSeparator(),
		recenterBtn,
		mw.tagBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Import...", mw.onImport),
		fyne.NewMenuItem("Export...", mw.onExport),
		fyne.NewMenuItem("Copy Export to Clipboard", mw.onCopyExport),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.onZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.onZoomOut),
		fyne.NewMenuItem("Actual Size", mw.onResetZoom),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Recenter", mw.onRecenter),
		fyne.NewMenuItem("Show Everyone", func() { mw.state.SetFilter(nil) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventCardsChanged, func(interface{}) {
		mw.board.Refresh()
	})

	mw.state.On(app.EventViewportChanged, func(data interface{}) {
		if vp, ok := data.(viewport.Viewport); ok {
			mw.updateZoomLabel(vp)
		}
		mw.board.Refresh()
	})

	mw.state.On(app.EventPeopleChanged, func(interface{}) {
		mw.updateStatus(fmt.Sprintf("%d people", len(mw.state.People())))
	})

	mw.state.On(app.EventFilterChanged, func(data interface{}) {
		tags, _ := data.([]string)
		if len(tags) == 0 {
			mw.tagBtn.SetText("Tags")
			return
		}
		mw.tagBtn.SetText(fmt.Sprintf("Tags (%d)", len(tags)))
	})

	mw.state.On(app.EventImported, func(data interface{}) {
		mw.board.Recenter()
		if n, ok := data.(int); ok {
			mw.updateStatus(fmt.Sprintf("Imported %d people", n))
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) updateZoomLabel(vp viewport.Viewport) {
	mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", vp.Zoom*100))
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.app.Preferences().String(prefKeyLastDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given file path.
func (mw *MainWindow) saveLastDir(filePath string) {
	mw.app.Preferences().SetString(prefKeyLastDir, filepath.Dir(filePath))
}

func (mw *MainWindow) editPerson(personID string) {
	dialogs.NewPersonDialog(mw.state, personID, mw.Window).Show()
}

func (mw *MainWindow) showCardMenu(personID string, at fyne.Position) {
	p, ok := mw.state.Person(personID)
	if !ok {
		return
	}
	menu := fyne.NewMenu("",
		fyne.NewMenuItem("Edit "+p.Name+"...", func() { mw.editPerson(personID) }),
		fyne.NewMenuItem("Delete...", func() {
			dialogs.ConfirmDelete(mw.state, p.ID, p.Name, mw.Window, nil)
		}),
	)
	widget.ShowPopUpMenuAtPosition(menu, mw.Canvas(), at)
}

// Menu action handlers

func (mw *MainWindow) onImport() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		if err := mw.state.ImportFile(path); err != nil {
			slog.Warn("import failed", "path", path, "error", err)
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json", ".txt"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExport() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			path += ".json"
		}
		mw.saveLastDir(path)
		if err := project.Save(path, mw.state.Export()); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		slog.Info("exported board", "path", path)
		mw.updateStatus("Exported to " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("affinity-map.json")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onCopyExport() {
	data, err := mw.state.ExportJSON()
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		dialog.ShowError(fmt.Errorf("copy to clipboard: %w", err), mw.Window)
		return
	}
	mw.updateStatus("Export copied to clipboard")
}

func (mw *MainWindow) onZoomIn() {
	mw.state.ZoomIn()
}

func (mw *MainWindow) onZoomOut() {
	mw.state.ZoomOut()
}

func (mw *MainWindow) onResetZoom() {
	mw.state.ResetZoom()
}

func (mw *MainWindow) onRecenter() {
	if !mw.board.Recenter() {
		mw.updateStatus("Nothing to recenter on")
	}
}

func (mw *MainWindow) onTagMenu() {
	pos := fyne.CurrentApp().Driver().AbsolutePositionForObject(mw.tagBtn)
	mw.tagMenu.Toggle(pos.AddXY(0, mw.tagBtn.Size().Height))
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s %s\n\n"+
			"Arrange ministers and recipients on a whiteboard.",
			appTitle, version.String()),
		mw.Window)
}
