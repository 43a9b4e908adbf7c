package app

import (
	"text-editor/internal/document"
	"text-editor/internal/filetree"
	"text-editor/internal/guard"
	"text-editor/internal/logger"
)

// View is the part of the window the handlers write to.
type View interface {
	SetText(text string)
	SetStatus(status string)
	ShowError(title string, err error)
}

// Prompter asks the operator questions. Every method reports its answer
// exactly once through the callback; ok is false when nothing was chosen.
type Prompter interface {
	guard.Prompter
	ChooseOpenPath(answer func(path string, ok bool))
	ChooseSavePath(answer func(path string, ok bool))
}

// Handlers implements the editor commands over an explicit State.
type Handlers struct {
	state    *State
	view     View
	prompter Prompter
	files    *document.Files
	guard    *guard.Guard
	logger   logger.Logger
}

func NewHandlers(state *State, view View, prompter Prompter, files *document.Files, log logger.Logger) *Handlers {
	return &Handlers{
		state:    state,
		view:     view,
		prompter: prompter,
		files:    files,
		guard:    guard.New(prompter, log),
		logger:   log,
	}
}

// HandleNew asks what to do with the current text, then starts an empty
// document unless the operator cancelled.
func (h *Handlers) HandleNew() {
	h.guard.ConfirmReplace(h.state.Buffer, h.HandleSave, func(s guard.State) {
		if s == guard.Cancelled {
			h.logger.Debug("Handlers", "new document cancelled", nil)
			return
		}
		h.state.Path = ""
		h.view.SetText(h.state.Buffer.Text())
		h.view.SetStatus("New document")
	})
}

// HandleOpen loads a user-chosen file into the buffer.
func (h *Handlers) HandleOpen() {
	h.prompter.ChooseOpenPath(func(path string, ok bool) {
		if !ok {
			return
		}

		err := h.files.LoadInto(h.state.Buffer, path)
		h.view.SetText(h.state.Buffer.Text())
		if err != nil {
			h.fail("Error opening file", err)
			return
		}
		h.opened(path)
	})
}

// HandleSave writes the buffer to a user-chosen destination. done, when
// set, runs after the attempt whatever its outcome.
func (h *Handlers) HandleSave(done func()) {
	h.prompter.ChooseSavePath(func(path string, ok bool) {
		if done != nil {
			defer done()
		}
		if !ok {
			return
		}

		if err := h.files.Save(path, h.state.Buffer); err != nil {
			h.fail("Error saving file", err)
			return
		}
		h.state.Path = path
		h.view.SetStatus("Saved " + path)
		h.logger.Info("Handlers", "file saved", map[string]interface{}{
			"path":  path,
			"bytes": h.state.Buffer.Len(),
		})
	})
}

// HandleNodeOpen loads a file picked in the tree. Directories are ignored.
func (h *Handlers) HandleNodeOpen(id filetree.NodeID) {
	node, ok := h.state.Tree.Node(id)
	if !ok || node.IsDir {
		return
	}

	text, err := h.files.Load(node.Path)
	if err != nil {
		h.fail("Error opening file", err)
		return
	}
	h.state.Buffer.SetText(text)
	h.view.SetText(text)
	h.opened(node.Path)
}

// HandleTextChanged mirrors edits from the editing surface into the buffer.
func (h *Handlers) HandleTextChanged(text string) {
	h.state.Buffer.SetText(text)
}

func (h *Handlers) opened(path string) {
	h.state.Path = path
	h.view.SetStatus("Opened " + path)
	h.logger.Info("Handlers", "file opened", map[string]interface{}{
		"path":  path,
		"bytes": h.state.Buffer.Len(),
	})
}

func (h *Handlers) fail(title string, err error) {
	h.logger.Error("Handlers", err, map[string]interface{}{
		"title": title,
	})
	h.view.ShowError(title, err)
}
