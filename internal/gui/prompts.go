package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"text-editor/internal/guard"
	"text-editor/internal/logger"
)

const (
	replaceTitle   = "New File"
	replaceHeader  = "Unsaved changes will be lost"
	replaceMessage = "Do you want to save the current file before creating a new one?"
)

// DialogPrompter answers the editor's questions with modal Fyne dialogs.
type DialogPrompter struct {
	window   fyne.Window
	logger   logger.Logger
	startDir string
}

func NewDialogPrompter(window fyne.Window, log logger.Logger, startDir string) *DialogPrompter {
	return &DialogPrompter{window: window, logger: log, startDir: startDir}
}

// AskReplace shows Save / Discard / Cancel. Closing the dialog any other
// way counts as Cancel.
func (p *DialogPrompter) AskReplace(answer func(guard.Decision)) {
	d, _ := newReplaceDialog(p.window, answer)
	d.Show()
}

func replaceContent() *fyne.Container {
	header := widget.NewLabelWithStyle(replaceHeader, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	body := widget.NewLabel(replaceMessage)
	return container.NewVBox(header, body)
}

func newReplaceDialog(window fyne.Window, answer func(guard.Decision)) (*dialog.CustomDialog, map[guard.Decision]*widget.Button) {
	d := dialog.NewCustomWithoutButtons(replaceTitle, replaceContent(), window)

	answered := false
	choose := func(decision guard.Decision) func() {
		return func() {
			if answered {
				return
			}
			answered = true
			d.Hide()
			answer(decision)
		}
	}

	buttons := map[guard.Decision]*widget.Button{
		guard.Save:    widget.NewButton("Save", choose(guard.Save)),
		guard.Discard: widget.NewButton("Discard", choose(guard.Discard)),
		guard.Cancel:  widget.NewButton("Cancel", choose(guard.Cancel)),
	}
	buttons[guard.Save].Importance = widget.HighImportance

	d.SetButtons([]fyne.CanvasObject{buttons[guard.Save], buttons[guard.Discard], buttons[guard.Cancel]})
	d.SetOnClosed(func() {
		if !answered {
			answered = true
			answer(guard.Cancel)
		}
	})
	return d, buttons
}

// ChooseOpenPath asks for an existing file.
func (p *DialogPrompter) ChooseOpenPath(answer func(path string, ok bool)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			p.showError("Error opening file", err)
			answer("", false)
			return
		}
		if reader == nil {
			answer("", false)
			return
		}
		uri := reader.URI()
		reader.Close()
		p.deliver(uri, answer)
	}, p.window)
	p.startIn(fd)
	fd.Show()
}

// ChooseSavePath asks for a destination; an existing file is overwritten
// without further confirmation.
func (p *DialogPrompter) ChooseSavePath(answer func(path string, ok bool)) {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			p.showError("Error saving file", err)
			answer("", false)
			return
		}
		if writer == nil {
			answer("", false)
			return
		}
		uri := writer.URI()
		writer.Close()
		p.deliver(uri, answer)
	}, p.window)
	p.startIn(fd)
	fd.Show()
}

func (p *DialogPrompter) deliver(uri fyne.URI, answer func(string, bool)) {
	path, err := localPath(uri)
	if err != nil {
		p.showError("Unsupported location", err)
		answer("", false)
		return
	}
	answer(path, true)
}

func (p *DialogPrompter) startIn(fd *dialog.FileDialog) {
	if p.startDir == "" {
		return
	}
	lister, err := storage.ListerForURI(storage.NewFileURI(p.startDir))
	if err != nil {
		p.logger.Debug("Prompter", "cannot start file dialog in root", map[string]interface{}{
			"dir":   p.startDir,
			"error": err.Error(),
		})
		return
	}
	fd.SetLocation(lister)
}

func (p *DialogPrompter) showError(title string, err error) {
	p.logger.Error("Prompter", err, map[string]interface{}{
		"title": title,
	})
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), p.window)
}

// localPath returns the filesystem path of a file:// URI.
func localPath(uri fyne.URI) (string, error) {
	if uri == nil {
		return "", fmt.Errorf("no location chosen")
	}
	if uri.Scheme() != "file" {
		return "", fmt.Errorf("only local files are supported, got %s", uri.String())
	}
	return uri.Path(), nil
}
