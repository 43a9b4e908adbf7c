package filetree

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeFS lays out files (content "x") and directories (trailing slash).
func makeFS(t *testing.T, entries ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, e := range entries {
		p := filepath.Join(root, filepath.FromSlash(e))
		if e[len(e)-1] == '/' {
			require.NoError(t, os.MkdirAll(p, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	return root
}

type shape struct {
	dir      bool
	children map[string]shape
}

func shapeOf(t *Tree, id NodeID) shape {
	n, _ := t.Node(id)
	s := shape{dir: n.IsDir, children: map[string]shape{}}
	for _, c := range n.Children {
		cn, _ := t.Node(c)
		s.children[filepath.Base(cn.Path)] = shapeOf(t, c)
	}
	return s
}

func childNames(t *Tree, id NodeID) []string {
	var names []string
	for _, c := range t.Children(id) {
		n, _ := t.Node(c)
		names = append(names, n.Name)
	}
	sort.Strings(names)
	return names
}

func TestBuild_MirrorsHierarchy(t *testing.T) {
	root := makeFS(t, "a.txt", "docs/", "docs/readme.md", "docs/deep/", "docs/deep/n.txt", "empty/")

	tree, err := Build(root)
	require.NoError(t, err)

	rootNode, ok := tree.Node(tree.Root())
	require.True(t, ok)
	assert.True(t, rootNode.IsDir)
	assert.Equal(t, NoParent, rootNode.Parent)
	assert.Equal(t, []string{"a.txt", "docs", "empty"}, childNames(tree, tree.Root()))
	assert.Equal(t, 7, tree.Len())

	docs, ok := tree.Lookup(filepath.Join(root, "docs"))
	require.True(t, ok)
	assert.Equal(t, []string{"deep", "readme.md"}, childNames(tree, docs))

	empty, ok := tree.Lookup(filepath.Join(root, "empty"))
	require.True(t, ok)
	n, _ := tree.Node(empty)
	assert.True(t, n.IsDir)
	assert.Empty(t, n.Children)
}

func TestBuild_ChildrenEqualSubtreeBuilds(t *testing.T) {
	root := makeFS(t, "a.txt", "b/", "b/c.txt", "b/d/", "b/d/e.txt", "f/")

	tree, err := Build(root)
	require.NoError(t, err)

	for _, c := range tree.Children(tree.Root()) {
		n, _ := tree.Node(c)
		sub, err := Build(n.Path)
		require.NoError(t, err)
		assert.Equal(t, shapeOf(sub, sub.Root()), shapeOf(tree, c), n.Path)

		info, err := os.Stat(n.Path)
		require.NoError(t, err)
		assert.Equal(t, info.IsDir(), n.IsDir, n.Path)
	}
}

func TestBuild_FileRootHasNoChildren(t *testing.T) {
	root := makeFS(t, "only.txt")
	file := filepath.Join(root, "only.txt")

	tree, err := Build(file)
	require.NoError(t, err)

	assert.Equal(t, 1, tree.Len())
	n, _ := tree.Node(tree.Root())
	assert.False(t, n.IsDir)
	assert.True(t, n.IsFile())
	assert.Empty(t, n.Children)
}

func TestBuild_ListingFailureYieldsEmptyDirectory(t *testing.T) {
	root := makeFS(t, "locked/", "locked/secret.txt", "open/", "open/x.txt")
	locked := filepath.Join(root, "locked")

	readDir := func(path string) ([]os.DirEntry, error) {
		if path == locked {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
		}
		return os.ReadDir(path)
	}

	tree, err := Build(root, WithReadDir(readDir))
	require.NoError(t, err)

	id, ok := tree.Lookup(locked)
	require.True(t, ok)
	n, _ := tree.Node(id)
	assert.True(t, n.IsDir)
	assert.Empty(t, n.Children)

	open, ok := tree.Lookup(filepath.Join(root, "open"))
	require.True(t, ok)
	assert.Equal(t, []string{"x.txt"}, childNames(tree, open))
}

func TestBuild_PartialListingWithErrorIsDiscarded(t *testing.T) {
	root := makeFS(t, "a.txt", "b.txt")
	readDir := func(path string) ([]os.DirEntry, error) {
		entries, _ := os.ReadDir(path)
		return entries[:1], fs.ErrInvalid
	}

	tree, err := Build(root, WithReadDir(readDir))
	require.NoError(t, err)
	assert.Empty(t, tree.Children(tree.Root()))
}

func TestBuild_UnreadableDirectoryOnDisk(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	root := makeFS(t, "locked/", "locked/secret.txt", "z.txt")
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	tree, err := Build(root)
	require.NoError(t, err)

	id, ok := tree.Lookup(locked)
	require.True(t, ok)
	assert.Empty(t, tree.Children(id))
	assert.Equal(t, []string{"locked", "z.txt"}, childNames(tree, tree.Root()))
}

func TestBuild_SymlinkLoopTerminates(t *testing.T) {
	root := makeFS(t, "dir/", "dir/file.txt")
	loop := filepath.Join(root, "dir", "back")
	if err := os.Symlink(root, loop); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tree, err := Build(root)
	require.NoError(t, err)

	id, ok := tree.Lookup(loop)
	require.True(t, ok)
	n, _ := tree.Node(id)
	assert.True(t, n.IsDir)
	assert.Empty(t, n.Children)
}

func TestBuild_SymlinkToSiblingKeepsBothSubtrees(t *testing.T) {
	root := makeFS(t, "zdata/", "zdata/notes.txt", "zdata/inner/", "zdata/inner/deep.txt")
	alias := filepath.Join(root, "alias")
	if err := os.Symlink(filepath.Join(root, "zdata"), alias); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tree, err := Build(root)
	require.NoError(t, err)

	for _, name := range []string{"alias", "zdata"} {
		path := filepath.Join(root, name)
		id, ok := tree.Lookup(path)
		require.True(t, ok, name)

		sub, err := Build(path)
		require.NoError(t, err, name)
		assert.Equal(t, shapeOf(sub, sub.Root()), shapeOf(tree, id), name)
		assert.Equal(t, []string{"inner", "notes.txt"}, childNames(tree, id), name)
	}
}

func TestBuild_NestedSymlinkToSiblingIsExpanded(t *testing.T) {
	root := makeFS(t, "a/", "b/", "b/file.txt")
	link := filepath.Join(root, "a", "to-b")
	if err := os.Symlink(filepath.Join(root, "b"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	tree, err := Build(root)
	require.NoError(t, err)

	id, ok := tree.Lookup(link)
	require.True(t, ok)
	assert.Equal(t, []string{"file.txt"}, childNames(tree, id))

	b, ok := tree.Lookup(filepath.Join(root, "b"))
	require.True(t, ok)
	assert.Equal(t, []string{"file.txt"}, childNames(tree, b))
}

func TestBuild_MaxDepth(t *testing.T) {
	root := makeFS(t, "a/", "a/b/", "a/b/c.txt")

	tree, err := Build(root, WithMaxDepth(1))
	require.NoError(t, err)

	a, ok := tree.Lookup(filepath.Join(root, "a"))
	require.True(t, ok)
	assert.Empty(t, tree.Children(a))
	assert.Equal(t, 2, tree.Len())

	_, err = Build(root, WithMaxDepth(-1))
	assert.Error(t, err)
}

func TestBuild_MissingRoot(t *testing.T) {
	_, err := Build(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestTree_WalkIsPreOrder(t *testing.T) {
	root := makeFS(t, "a/", "a/x.txt", "b.txt")

	tree, err := Build(root)
	require.NoError(t, err)

	var visited []string
	tree.Walk(func(n Node) bool {
		rel, _ := filepath.Rel(root, n.Path)
		visited = append(visited, filepath.ToSlash(rel))
		return true
	})
	assert.Equal(t, []string{".", "a", "a/x.txt", "b.txt"}, visited)

	count := 0
	tree.Walk(func(Node) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestTree_UnknownIDs(t *testing.T) {
	root := makeFS(t, "a.txt")
	tree, err := Build(root)
	require.NoError(t, err)

	_, ok := tree.Node(NodeID(99))
	assert.False(t, ok)
	assert.Nil(t, tree.Children(NoParent))
}
