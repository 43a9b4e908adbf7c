package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"text-editor/internal/filetree"
	"text-editor/internal/gui/components"
	"text-editor/internal/logger"
)

// TreePanelWidth is the fixed width of the file tree.
const TreePanelWidth = 250

type Manager struct {
	window     fyne.Window
	logger     logger.Logger
	isShutdown bool

	fileTree  *components.FileTree
	editor    *widget.Entry
	statusBar *components.StatusBar

	newHandler         func()
	openHandler        func()
	saveHandler        func()
	quitHandler        func()
	textChangedHandler func(string)
}

func NewManager(window fyne.Window, tree *filetree.Tree, log logger.Logger) *Manager {
	editor := widget.NewMultiLineEntry()
	editor.Wrapping = fyne.TextWrapWord

	manager := &Manager{
		window:    window,
		logger:    log,
		fileTree:  components.NewFileTree(tree),
		editor:    editor,
		statusBar: components.NewStatusBar(),
	}

	editor.OnChanged = func(text string) {
		manager.statusBar.SetCounts(text)
		if manager.textChangedHandler != nil {
			manager.textChangedHandler(text)
		}
	}

	log.Info("GUIManager", "initialized", map[string]interface{}{
		"tree_nodes": tree.Len(),
	})

	return manager
}

func (m *Manager) GetMainContainer() *fyne.Container {
	split := components.NewFixedSplit(m.fileTree.GetWidget(), m.editor, TreePanelWidth)

	return container.NewBorder(
		nil,
		m.statusBar.GetContainer(),
		nil, nil,
		split,
	)
}

// MainMenu builds the File menu.
func (m *Manager) MainMenu() *fyne.MainMenu {
	newItem := fyne.NewMenuItem("New", func() { m.dispatch("new", m.newHandler) })
	openItem := fyne.NewMenuItem("Open", func() { m.dispatch("open", m.openHandler) })
	saveItem := fyne.NewMenuItem("Save", func() { m.dispatch("save", m.saveHandler) })
	exitItem := fyne.NewMenuItem("Exit", func() { m.dispatch("exit", m.quitHandler) })
	exitItem.IsQuit = true

	return fyne.NewMainMenu(
		fyne.NewMenu("File", newItem, openItem, saveItem, fyne.NewMenuItemSeparator(), exitItem),
	)
}

func (m *Manager) dispatch(action string, handler func()) {
	m.logger.Debug("GUIManager", "menu action", map[string]interface{}{
		"action": action,
	})
	if handler != nil {
		handler()
	}
}

func (m *Manager) SetNewHandler(handler func()) {
	m.newHandler = handler
}

func (m *Manager) SetOpenHandler(handler func()) {
	m.openHandler = handler
}

func (m *Manager) SetSaveHandler(handler func()) {
	m.saveHandler = handler
}

func (m *Manager) SetQuitHandler(handler func()) {
	m.quitHandler = handler
}

func (m *Manager) SetNodeOpenHandler(handler func(filetree.NodeID)) {
	m.fileTree.SetOpenHandler(func(id filetree.NodeID) {
		m.logger.Debug("GUIManager", "tree node activated", map[string]interface{}{
			"node": int(id),
		})
		handler(id)
	})
}

func (m *Manager) SetTextChangedHandler(handler func(string)) {
	m.textChangedHandler = handler
}

// SetText replaces what the editing surface shows.
func (m *Manager) SetText(text string) {
	m.editor.SetText(text)
}

func (m *Manager) Text() string {
	return m.editor.Text
}

func (m *Manager) SetStatus(status string) {
	m.statusBar.SetStatus(status)
	m.logger.Debug("GUIManager", "status updated", map[string]interface{}{
		"status": status,
	})
}

func (m *Manager) Status() string {
	return m.statusBar.Status()
}

func (m *Manager) ShowError(title string, err error) {
	m.logger.Error("GUIManager", err, map[string]interface{}{
		"title": title,
	})

	dialog.ShowError(fmt.Errorf("%s: %w", title, err), m.window)
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}

	m.isShutdown = true
	m.logger.Info("GUIManager", "shutdown initiated", nil)
}
