package app

import (
	"text-editor/internal/document"
	"text-editor/internal/filetree"
)

// State is everything the command handlers read and change. There is one
// per running editor.
type State struct {
	Buffer *document.Buffer
	Tree   *filetree.Tree

	// Path of the file last opened or saved, empty for a new document.
	Path string
}

func NewState(tree *filetree.Tree) *State {
	return &State{
		Buffer: document.NewBuffer(""),
		Tree:   tree,
	}
}
