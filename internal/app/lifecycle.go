package app

import (
	"sync"

	"text-editor/internal/filetracker"
	"text-editor/internal/gui"
	"text-editor/internal/logger"

	"fyne.io/fyne/v2"
)

type Lifecycle struct {
	fyneApp    fyne.App
	guiManager *gui.Manager
	tracker    *filetracker.Tracker
	logger     logger.Logger
	once       sync.Once
}

func NewLifecycle(fyneApp fyne.App, gm *gui.Manager, tracker *filetracker.Tracker, log logger.Logger) *Lifecycle {
	return &Lifecycle{
		fyneApp:    fyneApp,
		guiManager: gm,
		tracker:    tracker,
		logger:     log,
	}
}

// Shutdown stops the GUI and quits the app. Only the first call acts; it
// may be called from any goroutine.
func (l *Lifecycle) Shutdown() {
	l.once.Do(func() {
		l.logger.Info("Lifecycle", "shutdown sequence initiated", nil)

		for _, f := range l.tracker.DetectLeaks(0) {
			l.logger.Warning("Lifecycle", "file handle still open", map[string]interface{}{
				"path":      f.Path,
				"opened_at": f.OpenedAt,
			})
		}

		fyne.Do(func() {
			if l.guiManager != nil {
				l.guiManager.Shutdown()
			}
			l.fyneApp.Quit()
		})

		l.logger.Info("Lifecycle", "shutdown sequence completed", nil)
	})
}
