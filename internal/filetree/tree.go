// Package filetree projects a directory hierarchy into an in-memory tree.
//
// The tree is an arena: nodes live in a slice and refer to each other by
// index. It is built eagerly, once, and never refreshed.
package filetree

import (
	"fmt"
	"os"
	"path/filepath"

	"text-editor/internal/logger"
)

// NodeID indexes a node inside its Tree.
type NodeID int

// NoParent is the parent of the root node.
const NoParent NodeID = -1

// Node is one filesystem entry.
type Node struct {
	ID       NodeID
	Path     string
	Name     string
	IsDir    bool
	Parent   NodeID
	Children []NodeID
}

// IsFile reports whether the node is not a directory.
func (n Node) IsFile() bool {
	return !n.IsDir
}

// Tree is a static snapshot of a directory hierarchy.
type Tree struct {
	nodes  []Node
	byPath map[string]NodeID
}

// ReadDirFunc lists the entries of a directory.
type ReadDirFunc func(path string) ([]os.DirEntry, error)

// StatFunc reports file information for a path, following symlinks.
type StatFunc func(path string) (os.FileInfo, error)

type options struct {
	readDir  ReadDirFunc
	stat     StatFunc
	resolve  func(path string) (string, error)
	maxDepth int
	logger   logger.Logger
}

// Option configures Build.
type Option func(*options)

// WithReadDir replaces the directory lister.
func WithReadDir(fn ReadDirFunc) Option {
	return func(o *options) { o.readDir = fn }
}

// WithStat replaces the stat call used to classify entries.
func WithStat(fn StatFunc) Option {
	return func(o *options) { o.stat = fn }
}

// WithMaxDepth stops expansion below depth n. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(o *options) { o.maxDepth = n }
}

// WithLogger reports absorbed enumeration failures.
func WithLogger(l logger.Logger) Option {
	return func(o *options) { o.logger = l }
}

type pending struct {
	id    NodeID
	depth int
}

// Build walks root and returns the projected tree. Directories that cannot
// be listed get no children; only a root that cannot be stat'ed is an error.
func Build(root string, opts ...Option) (*Tree, error) {
	o := options{
		readDir: os.ReadDir,
		stat:    os.Stat,
		resolve: filepath.EvalSymlinks,
		logger:  logger.NoOpLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.maxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", o.maxDepth)
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %q: %w", root, err)
	}
	info, err := o.stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat root %q: %w", abs, err)
	}

	t := &Tree{byPath: make(map[string]NodeID)}
	rootID := t.add(abs, abs, info.IsDir(), NoParent)

	// Resolved path of every expanded directory, indexed by node id.
	resolvedOf := make(map[NodeID]string)
	stack := []pending{{id: rootID}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := t.nodes[cur.id]
		if !node.IsDir {
			continue
		}
		if o.maxDepth > 0 && cur.depth >= o.maxDepth {
			continue
		}

		resolved, err := o.resolve(node.Path)
		if err != nil {
			resolved = node.Path
		}
		if t.hasAncestor(node.Parent, resolved, resolvedOf) {
			o.logger.Debug("FileTree", "directory links back to an ancestor, not expanding", map[string]interface{}{
				"path":     node.Path,
				"resolved": resolved,
			})
			continue
		}
		resolvedOf[cur.id] = resolved

		entries, err := o.readDir(node.Path)
		if err != nil {
			o.logger.Debug("FileTree", "directory listing failed, treating as empty", map[string]interface{}{
				"path":  node.Path,
				"error": err.Error(),
			})
			continue
		}

		children := make([]NodeID, 0, len(entries))
		for _, entry := range entries {
			childPath := filepath.Join(node.Path, entry.Name())
			isDir := entry.IsDir()
			if entry.Type()&os.ModeSymlink != 0 {
				if target, err := o.stat(childPath); err == nil {
					isDir = target.IsDir()
				}
			}
			children = append(children, t.add(childPath, entry.Name(), isDir, cur.id))
		}
		t.nodes[cur.id].Children = children

		// Push in reverse so siblings are expanded in listing order.
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, pending{id: children[i], depth: cur.depth + 1})
		}
	}

	o.logger.Debug("FileTree", "tree built", map[string]interface{}{
		"root":  abs,
		"nodes": len(t.nodes),
	})

	return t, nil
}

func (t *Tree) add(path, name string, isDir bool, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{
		ID:     id,
		Path:   path,
		Name:   name,
		IsDir:  isDir,
		Parent: parent,
	})
	t.byPath[path] = id
	return id
}

// hasAncestor reports whether resolved is the directory of id or of any node
// above it. Ancestors are always expanded before their descendants.
func (t *Tree) hasAncestor(id NodeID, resolved string, resolvedOf map[NodeID]string) bool {
	for id != NoParent {
		if resolvedOf[id] == resolved {
			return true
		}
		id = t.nodes[id].Parent
	}
	return false
}

// Root returns the id of the root node.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given id.
func (t *Tree) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Children returns the child ids of a node, nil for files and unknown ids.
func (t *Tree) Children(id NodeID) []NodeID {
	n, ok := t.Node(id)
	if !ok {
		return nil
	}
	return n.Children
}

// Lookup finds a node by its absolute path.
func (t *Tree) Lookup(path string) (NodeID, bool) {
	id, ok := t.byPath[filepath.Clean(path)]
	return id, ok
}

// Walk visits nodes depth-first in listing order until fn returns false.
func (t *Tree) Walk(fn func(Node) bool) {
	stack := []NodeID{t.Root()}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[id]
		if !fn(n) {
			return
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
