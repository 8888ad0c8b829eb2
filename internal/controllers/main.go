package controllers

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"exif-reader/internal/imaging"
	"exif-reader/internal/logger"
	"exif-reader/internal/metadata"
	"exif-reader/internal/models"
	"exif-reader/internal/services"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/storage"
)

const loadTimeout = 30 * time.Second

// View is the part of the main window the controller drives.
type View interface {
	SetOpenHandler(func())
	SetCloseHandler(func())
	SetExitHandler(func())
	SetResizeHandler(func(width, height int))

	ShowDocument(name string, entries []metadata.Entry)
	SetPicture(img image.Image)
	Reset()
	PictureArea() (int, int)
	ShowError(err error)
	ShowOpenDialog(filter storage.FileFilter, callback func(fyne.URIReadCloser, error))
}

// MainController wires the file menu and the picture area to the viewer.
type MainController struct {
	imageService *services.ImageService
	viewer       *models.Viewer
	scaler       *imaging.Scaler
	logger       logger.Logger

	mainView View
	quit     func()

	mu       sync.Mutex
	lastOpen time.Time
}

func NewMainController(
	imageService *services.ImageService,
	viewer *models.Viewer,
	scaler *imaging.Scaler,
	log logger.Logger,
) *MainController {
	if log == nil {
		log = logger.Nop()
	}
	return &MainController{
		imageService: imageService,
		viewer:       viewer,
		scaler:       scaler,
		logger:       log,
	}
}

// SetMainView associates the main view with this controller
func (mc *MainController) SetMainView(view View) {
	mc.mainView = view
	mc.setupViewEventHandlers()
}

// SetQuitFunc sets what File > Exit runs.
func (mc *MainController) SetQuitFunc(quit func()) {
	mc.quit = quit
}

func (mc *MainController) setupViewEventHandlers() {
	if mc.mainView == nil {
		return
	}

	mc.mainView.SetOpenHandler(mc.Open)
	mc.mainView.SetCloseHandler(mc.Close)
	mc.mainView.SetExitHandler(mc.Exit)
	mc.mainView.SetResizeHandler(mc.HandleResize)
}

// Open asks for a JPEG and loads it.
func (mc *MainController) Open() {
	if mc.mainView == nil {
		return
	}
	mc.mainView.ShowOpenDialog(mc.imageService.FileFilter(), mc.handleFileChosen)
}

func (mc *MainController) handleFileChosen(reader fyne.URIReadCloser, err error) {
	if err != nil {
		mc.handleError("File selection failed", err)
		return
	}
	if reader == nil {
		mc.logger.Debug("open cancelled", nil)
		return
	}
	defer reader.Close()

	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	doc, err := mc.imageService.LoadReader(ctx, uriPath(reader.URI()), reader)
	if err != nil {
		mc.handleError("Image load failed", err)
		return
	}
	mc.show(doc)
}

// OpenFile loads the JPEG at path, as if chosen from the dialog.
func (mc *MainController) OpenFile(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	doc, err := mc.imageService.LoadFile(ctx, path)
	if err != nil {
		mc.handleError("Image load failed", err)
		return err
	}
	mc.show(doc)
	return nil
}

func (mc *MainController) show(doc *models.Document) {
	mc.viewer.Open(doc)

	mc.mu.Lock()
	mc.lastOpen = time.Now()
	mc.mu.Unlock()

	mc.logger.Info("document opened", map[string]interface{}{
		"name":    doc.Name,
		"entries": len(doc.Entries),
	})

	if mc.mainView == nil {
		return
	}
	mc.mainView.ShowDocument(doc.Name, doc.Entries)
	mc.refit()
}

// Close returns the window to its no-file state.
func (mc *MainController) Close() {
	if mc.viewer.Snapshot().State == models.StateEmpty {
		return
	}

	mc.viewer.Close()
	mc.logger.Info("document closed", nil)
	if mc.mainView != nil {
		mc.mainView.Reset()
	}
}

func (mc *MainController) Exit() {
	mc.logger.Info("exit requested", nil)
	if mc.quit != nil {
		mc.quit()
	}
}

// HandleResize re-fits the open picture into a picture area of the given
// size.
func (mc *MainController) HandleResize(width, height int) {
	img, err := mc.viewer.Resize(width, height, mc.scaler)
	if err != nil {
		mc.logger.Warning("picture resize failed", map[string]interface{}{
			"width":  width,
			"height": height,
			"error":  err.Error(),
		})
		return
	}
	if img == nil || mc.mainView == nil {
		return
	}
	mc.mainView.SetPicture(img)
}

// refit fits the new document into the current picture area. Before the
// first layout pass there is no area yet and the resize handler does it.
func (mc *MainController) refit() {
	width, height := mc.mainView.PictureArea()
	if width <= 0 || height <= 0 {
		return
	}
	mc.HandleResize(width, height)
}

// State reports the viewer state for the window and the log.
func (mc *MainController) State() ApplicationState {
	snap := mc.viewer.Snapshot()

	mc.mu.Lock()
	defer mc.mu.Unlock()

	return ApplicationState{
		Viewer:   snap,
		LastOpen: mc.lastOpen,
	}
}

// ApplicationState represents the current state of the application
type ApplicationState struct {
	Viewer   models.Snapshot
	LastOpen time.Time
}

// handleError logs err and shows it in a dialog. The viewer is untouched.
func (mc *MainController) handleError(title string, err error) {
	mc.logger.Error(title, err, nil)
	if mc.mainView != nil {
		mc.mainView.ShowError(fmt.Errorf("%s: %w", title, err))
	}
}

// Shutdown performs cleanup when the application closes
func (mc *MainController) Shutdown() {
	mc.viewer.Shutdown()
}

func uriPath(uri fyne.URI) string {
	if uri == nil {
		return ""
	}
	if path := uri.Path(); path != "" {
		return path
	}
	return uri.Name()
}
