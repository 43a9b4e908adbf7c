package app

import (
	"fmt"

	"text-editor/internal/config"
	"text-editor/internal/document"
	"text-editor/internal/filetracker"
	"text-editor/internal/filetree"
	"text-editor/internal/gui"
	"text-editor/internal/logger"

	"fyne.io/fyne/v2"
)

const (
	AppName      = "Text Editor"
	AppID        = "com.texteditor.simple"
	AppVersion   = "1.0.0"
	WindowWidth  = 1000
	WindowHeight = 600
)

type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	guiManager *gui.Manager
	handlers   *Handlers
	state      *State
	logger     logger.Logger
	lifecycle  *Lifecycle
}

// NewApplication scans the configured root and wires the window to the
// command handlers. The Fyne app is supplied by the caller.
func NewApplication(fyneApp fyne.App, cfg *config.Config, log logger.Logger) (*Application, error) {
	log.Info("Application", "starting application", map[string]interface{}{
		"version":   AppVersion,
		"root":      cfg.Root,
		"max_depth": cfg.MaxDepth,
	})

	tree, err := filetree.Build(cfg.Root,
		filetree.WithMaxDepth(cfg.MaxDepth),
		filetree.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("build file tree: %w", err)
	}

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	guiManager := gui.NewManager(window, tree, log)
	prompter := gui.NewDialogPrompter(window, log, cfg.Root)
	tracker := filetracker.NewTracker(log)
	state := NewState(tree)
	handlers := NewHandlers(state, guiManager, prompter, document.NewFiles(tracker), log)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		guiManager: guiManager,
		handlers:   handlers,
		state:      state,
		logger:     log,
		lifecycle:  NewLifecycle(fyneApp, guiManager, tracker, log),
	}

	application.setupHandlers()

	log.Info("Application", "initialization complete", map[string]interface{}{
		"tree_nodes": tree.Len(),
	})
	return application, nil
}

func (a *Application) setupHandlers() {
	a.guiManager.SetNewHandler(a.handlers.HandleNew)
	a.guiManager.SetOpenHandler(a.handlers.HandleOpen)
	a.guiManager.SetSaveHandler(func() { a.handlers.HandleSave(nil) })
	a.guiManager.SetQuitHandler(a.lifecycle.Shutdown)
	a.guiManager.SetNodeOpenHandler(a.handlers.HandleNodeOpen)
	a.guiManager.SetTextChangedHandler(a.handlers.HandleTextChanged)
}

// Show puts the content and menu on the window and shows it.
func (a *Application) Show() {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "window close requested", nil)
		a.lifecycle.Shutdown()
	})

	a.window.SetMainMenu(a.guiManager.MainMenu())
	a.window.SetContent(a.guiManager.GetMainContainer())
	a.window.Show()

	a.logger.Info("Application", "GUI displayed", nil)
}

// Run shows the window and blocks until the app quits.
func (a *Application) Run() error {
	a.Show()
	a.fyneApp.Run()
	return nil
}

func (a *Application) Shutdown() {
	a.lifecycle.Shutdown()
}
