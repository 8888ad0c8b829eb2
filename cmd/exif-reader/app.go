package main

import (
	"context"
	"os"
	"runtime"

	"exif-reader/internal/config"
	"exif-reader/internal/controllers"
	"exif-reader/internal/imaging"
	"exif-reader/internal/logger"
	"exif-reader/internal/metadata"
	"exif-reader/internal/models"
	"exif-reader/internal/services"
	"exif-reader/internal/shutdown"
	"exif-reader/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

// Application owns the window and the MVC components behind it.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  *logger.ZerologAdapter

	controller *controllers.MainController
	view       *views.MainView
	viewer     *models.Viewer

	shutdownMgr *shutdown.Manager
}

// NewApplication creates and initializes the application using dependency injection
func NewApplication(cfg *config.Config, log *logger.ZerologAdapter) (*Application, error) {
	scaler, err := imaging.NewScaler(cfg.ScaleQuality)
	if err != nil {
		return nil, err
	}

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(views.AppTitle)
	window.Resize(fyne.NewSize(float32(cfg.WindowWidth), float32(cfg.WindowHeight)))
	window.CenterOnScreen()

	log.Info("application starting", map[string]interface{}{
		"version":       AppVersion,
		"window_size":   []int{cfg.WindowWidth, cfg.WindowHeight},
		"scale_quality": scaler.Quality(),
		"go_version":    runtime.Version(),
		"log_level":     cfg.Level().String(),
	})

	extractor := metadata.NewExtractor(metadata.WithLogger(log.WithComponent("metadata")))
	imageService := services.NewImageService(extractor, log.WithComponent("service"))
	imageService.Timings().SetEnabled(cfg.Timings)
	viewer := models.NewViewer()

	mainController := controllers.NewMainController(imageService, viewer, scaler, log.WithComponent("controller"))
	mainView := views.NewMainView(window)
	mainController.SetMainView(mainView)
	mainController.SetQuitFunc(fyneApp.Quit)

	shutdownMgr := shutdown.NewManager(log.WithComponent("shutdown"))
	shutdownMgr.SetTimeout(cfg.ShutdownTimeout)
	shutdownMgr.Register("timings", shutdown.Func(func() {
		log.Info("load timings", imageService.Timings().Summary())
	}))
	shutdownMgr.Register("viewer", viewer)
	shutdownMgr.Register("controller", mainController)
	shutdownMgr.OnSignal(func(os.Signal) {
		fyne.Do(fyneApp.Quit)
	})

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		logger:      log,
		controller:  mainController,
		view:        mainView,
		viewer:      viewer,
		shutdownMgr: shutdownMgr,
	}
	application.setupWindowEvents()

	return application, nil
}

// Run shows the window, opens path when given and blocks until the
// window is closed or ctx is cancelled.
func (a *Application) Run(ctx context.Context, path string) error {
	a.shutdownMgr.Listen()

	go func() {
		select {
		case <-ctx.Done():
			a.logger.Info("context cancelled, quitting", nil)
			fyne.Do(a.fyneApp.Quit)
		case <-a.shutdownMgr.Done():
		}
	}()

	fyne.Do(func() {
		a.view.Show()
		if path == "" {
			return
		}
		if err := a.controller.OpenFile(a.shutdownMgr.Context(), path); err != nil {
			a.logger.Warning("initial file not opened", map[string]interface{}{"path": path})
		}
	})

	a.fyneApp.Run()
	a.shutdownMgr.Shutdown()

	a.logger.Info("application terminated", nil)
	return nil
}

func (a *Application) setupWindowEvents() {
	a.window.SetOnClosed(func() {
		a.logger.Info("window closed", map[string]interface{}{
			"state": a.viewer.Snapshot().State.String(),
		})
	})
}
