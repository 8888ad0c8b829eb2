package views

import (
	"image"

	"exif-reader/internal/gui/layout"
	"exif-reader/internal/metadata"
	"exif-reader/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
)

const AppTitle = "EXIF Reader"

// Row weights of the header, picture and metadata areas.
var rowWeights = []float32{1, 3, 9}

// MainView is the single window: file name header, fitted picture and the
// metadata list.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	header        *components.Header
	imageDisplay  *components.ImageDisplay
	metadataPanel *components.MetadataPanel

	openHandler   func()
	closeHandler  func()
	exitHandler   func()
	resizeHandler func(width, height int)
}

func NewMainView(window fyne.Window) *MainView {
	view := &MainView{
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()
	view.buildMenu()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.header = components.NewHeader()
	mv.imageDisplay = components.NewImageDisplay()
	mv.metadataPanel = components.NewMetadataPanel()
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.New(
		layout.NewWeightedRowsLayout(theme.Padding(), rowWeights...),
		mv.header.GetContainer(),
		mv.imageDisplay.GetContainer(),
		mv.metadataPanel.GetContainer(),
	)

	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMenu() {
	exitItem := fyne.NewMenuItem("Exit", func() {
		if mv.exitHandler != nil {
			mv.exitHandler()
		}
	})
	exitItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open...", func() {
			if mv.openHandler != nil {
				mv.openHandler()
			}
		}),
		fyne.NewMenuItem("Close", func() {
			if mv.closeHandler != nil {
				mv.closeHandler()
			}
		}),
		fyne.NewMenuItemSeparator(),
		exitItem,
	)

	mv.window.SetMainMenu(fyne.NewMainMenu(fileMenu))
}

func (mv *MainView) setupEventHandlers() {
	mv.imageDisplay.SetResizeHandler(func(width, height int) {
		if mv.resizeHandler != nil {
			mv.resizeHandler(width, height)
		}
	})
}

// Event handler setters - called by controller

func (mv *MainView) SetOpenHandler(handler func()) {
	mv.openHandler = handler
}

func (mv *MainView) SetCloseHandler(handler func()) {
	mv.closeHandler = handler
}

func (mv *MainView) SetExitHandler(handler func()) {
	mv.exitHandler = handler
}

// SetResizeHandler receives the picture area in pixels on every change.
func (mv *MainView) SetResizeHandler(handler func(width, height int)) {
	mv.resizeHandler = handler
}

// UI update methods - called by controller on the UI goroutine

// ShowDocument puts name in the header and title and rebuilds the metadata
// list.
func (mv *MainView) ShowDocument(name string, entries []metadata.Entry) {
	mv.header.SetFileName(name)
	mv.metadataPanel.SetEntries(entries)
	mv.window.SetTitle(name + " - " + AppTitle)
}

func (mv *MainView) SetPicture(img image.Image) {
	mv.imageDisplay.SetImage(img)
}

// Reset returns every panel to its no-file state.
func (mv *MainView) Reset() {
	mv.header.Reset()
	mv.imageDisplay.Clear()
	mv.metadataPanel.Clear()
	mv.window.SetTitle(AppTitle)
}

func (mv *MainView) PictureArea() (int, int) {
	return mv.imageDisplay.Area()
}

func (mv *MainView) ShowError(err error) {
	dialog.ShowError(err, mv.window)
}

// ShowOpenDialog asks for a file restricted to filter.
func (mv *MainView) ShowOpenDialog(filter storage.FileFilter, callback func(fyne.URIReadCloser, error)) {
	fileDialog := dialog.NewFileOpen(callback, mv.window)
	fileDialog.SetFilter(filter)
	fileDialog.Show()
}

func (mv *MainView) Show() {
	mv.window.Show()
}

func (mv *MainView) GetHeader() *components.Header {
	return mv.header
}

func (mv *MainView) GetImageDisplay() *components.ImageDisplay {
	return mv.imageDisplay
}

func (mv *MainView) GetMetadataPanel() *components.MetadataPanel {
	return mv.metadataPanel
}
