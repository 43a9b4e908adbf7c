package components

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"text-editor/internal/filetree"
)

// FileTree shows a filetree.Tree with the root node visible.
type FileTree struct {
	tree   *filetree.Tree
	widget *widget.Tree

	openHandler func(filetree.NodeID)
}

func NewFileTree(tree *filetree.Tree) *FileTree {
	ft := &FileTree{tree: tree}
	ft.widget = widget.NewTree(ft.childUIDs, ft.isBranch, ft.createNode, ft.updateNode)
	ft.widget.OpenBranch(nodeUID(tree.Root()))
	return ft
}

func nodeUID(id filetree.NodeID) widget.TreeNodeID {
	return strconv.Itoa(int(id))
}

func parseUID(uid widget.TreeNodeID) (filetree.NodeID, bool) {
	n, err := strconv.Atoi(uid)
	if err != nil {
		return 0, false
	}
	return filetree.NodeID(n), true
}

func (ft *FileTree) GetWidget() *widget.Tree {
	return ft.widget
}

// SetOpenHandler is called when a file node is double-tapped.
func (ft *FileTree) SetOpenHandler(handler func(filetree.NodeID)) {
	ft.openHandler = handler
}

// Activate opens the node behind uid if it is a file.
func (ft *FileTree) Activate(uid widget.TreeNodeID) {
	id, ok := parseUID(uid)
	if !ok {
		return
	}
	node, ok := ft.tree.Node(id)
	if !ok || node.IsDir {
		return
	}
	if ft.openHandler != nil {
		ft.openHandler(id)
	}
}

func (ft *FileTree) childUIDs(uid widget.TreeNodeID) []widget.TreeNodeID {
	if uid == "" {
		return []widget.TreeNodeID{nodeUID(ft.tree.Root())}
	}
	id, ok := parseUID(uid)
	if !ok {
		return nil
	}
	children := ft.tree.Children(id)
	uids := make([]widget.TreeNodeID, len(children))
	for i, c := range children {
		uids[i] = nodeUID(c)
	}
	return uids
}

func (ft *FileTree) isBranch(uid widget.TreeNodeID) bool {
	if uid == "" {
		return true
	}
	id, ok := parseUID(uid)
	if !ok {
		return false
	}
	node, ok := ft.tree.Node(id)
	return ok && node.IsDir
}

func (ft *FileTree) createNode(branch bool) fyne.CanvasObject {
	return newTreeRow(ft, branch)
}

func (ft *FileTree) updateNode(uid widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
	row := obj.(*treeRow)
	id, ok := parseUID(uid)
	if !ok {
		return
	}
	node, ok := ft.tree.Node(id)
	if !ok {
		return
	}
	row.bind(uid, node)
}

// treeRow renders one node and turns double taps into activation. Single
// taps are forwarded to the tree as a selection.
type treeRow struct {
	widget.BaseWidget
	owner *FileTree
	uid   widget.TreeNodeID
	icon  *widget.Icon
	label *widget.Label
}

func newTreeRow(owner *FileTree, branch bool) *treeRow {
	res := theme.DocumentIcon()
	if branch {
		res = theme.FolderIcon()
	}
	row := &treeRow{
		owner: owner,
		icon:  widget.NewIcon(res),
		label: widget.NewLabel("Template"),
	}
	row.label.Truncation = fyne.TextTruncateEllipsis
	row.ExtendBaseWidget(row)
	return row
}

func (r *treeRow) bind(uid widget.TreeNodeID, node filetree.Node) {
	r.uid = uid
	if node.IsDir {
		r.icon.SetResource(theme.FolderIcon())
	} else {
		r.icon.SetResource(theme.DocumentIcon())
	}
	r.label.SetText(node.Name)
}

func (r *treeRow) Tapped(*fyne.PointEvent) {
	if r.uid != "" {
		r.owner.widget.Select(r.uid)
	}
}

func (r *treeRow) DoubleTapped(*fyne.PointEvent) {
	r.owner.Activate(r.uid)
}

func (r *treeRow) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, r.icon, nil, r.label))
}
