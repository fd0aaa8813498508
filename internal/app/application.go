package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"mirror-mirror/internal/config"
	"mirror-mirror/internal/grok"
	"mirror-mirror/internal/gui"
	"mirror-mirror/internal/imageio"
	"mirror-mirror/internal/logger"
	"mirror-mirror/internal/models"
	"mirror-mirror/internal/workflow"
)

const (
	AppName    = "Mirror Mirror"
	AppID      = "com.mirrormirror.app"
	AppVersion = "1.0.0"

	MinWindowWidth  = 820
	MinWindowHeight = 720
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	controller *workflow.Controller
	session    *models.Session
	loader     *imageio.Loader
	saver      *imageio.Saver
	config     config.Config
	logger     logger.Logger
}

func NewApplication(cfg config.Config, log logger.Logger) (*Application, error) {
	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(MinWindowWidth, MinWindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log.Info("Application", "starting application", map[string]interface{}{
		"version":      AppVersion,
		"api_base_url": cfg.APIBaseURL,
		"env":          cfg.Env,
	})

	guiManager := gui.NewManager(window, log)
	loader := imageio.NewLoader(log)
	saver := imageio.NewSaver(log)
	session := models.NewSession()

	controller := workflow.NewController(log, fyne.Do, func(apiKey string) workflow.Generator {
		return grok.NewClient(grok.Options{
			BaseURL: cfg.APIBaseURL,
			APIKey:  apiKey,
			Timeout: cfg.HTTPTimeout,
		})
	}, loader)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		controller: controller,
		session:    session,
		loader:     loader,
		saver:      saver,
		config:     cfg,
		logger:     log,
	}

	application.setupHandlers()

	if cfg.APIKey != "" {
		guiManager.Controls().KeyEntry.SetText(cfg.APIKey)
	}

	log.Info("Application", "initialization complete", nil)
	return application, nil
}

func (a *Application) setupHandlers() {
	handlers := NewHandlers(a.controller, a.guiManager, a.session, a.loader, a.saver, a.logger)

	controls := a.guiManager.Controls()
	controls.SetBrowseHandler(handlers.HandleBrowse)
	controls.SetLoadURLHandler(handlers.HandleLoadURL)
	controls.SetGenerateHandler(handlers.HandleGenerate)
	controls.SetSaveHandler(handlers.HandleSave)
	a.guiManager.SetDropHandler(handlers.HandleDrop)

	a.controller.SetEvents(handlers.WorkflowEvents())
}

func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		// In-flight generations are abandoned; nothing to flush.
		a.logger.Info("Application", "shutdown requested", nil)
		a.window.Close()
	})

	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
	a.fyneApp.Run()

	return nil
}
