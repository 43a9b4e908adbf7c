package document

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLines_Terminators(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"no trailing newline", "a\nb", "a\nb\n"},
		{"trailing newline", "a\nb\n", "a\nb\n"},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"lone cr", "a\rb", "a\nb\n"},
		{"cr before crlf", "a\r\r\nb", "a\n\nb\n"},
		{"blank lines", "\n\n", "\n\n"},
		{"trailing cr", "a\r", "a\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadLines(strings.NewReader(tc.in))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errors.New("device error")
	}
	r.done = true
	return copy(p, r.data), nil
}

func TestReadInto_KeepsPartialContentOnFailure(t *testing.T) {
	buf := NewBuffer("previous")

	err := ReadInto(buf, &failingReader{data: "first\nsecond\npart"}, "x.txt")

	require.Error(t, err)
	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "read", ioe.Op)
	assert.Equal(t, "x.txt", ioe.Path)
	assert.Equal(t, "first\nsecond\npart\n", buf.Text())
}

func TestReadInto_ReplacesContent(t *testing.T) {
	buf := NewBuffer("old")
	require.NoError(t, ReadInto(buf, strings.NewReader("a\nb"), "f"))
	assert.Equal(t, "a\nb\n", buf.Text())
}

func TestLoad_TwoLinesWithoutTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ab.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", got)
}

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := Load(path)

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "open", ioe.Op)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), path)
}

func TestLoadInto_MissingFileLeavesBufferAlone(t *testing.T) {
	buf := NewBuffer("keep")
	err := LoadInto(buf, filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Equal(t, "keep", buf.Text())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	content := "first line\nsecond line\n"

	require.NoError(t, Save(path, NewBuffer(content)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(raw))

	reopened := NewBuffer("")
	require.NoError(t, LoadInto(reopened, path))
	assert.Equal(t, content, reopened.Text())
}

func TestSave_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte("a much longer previous content"), 0o644))

	require.NoError(t, Save(path, NewBuffer("short")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "short", string(raw))
}

func TestSave_IntoMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no", "such", "dir.txt")

	err := Save(path, NewBuffer("x"))

	var ioe *IOError
	require.ErrorAs(t, err, &ioe)
	assert.Equal(t, "open", ioe.Op)
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) { return 0, io.ErrShortWrite }

func TestWrite_ReportsFailure(t *testing.T) {
	err := Write(brokenWriter{}, NewBuffer("x"), "dest")
	assert.ErrorIs(t, err, io.ErrShortWrite)
	assert.Equal(t, "write dest: short write", err.Error())
}

func TestBuffer(t *testing.T) {
	b := NewBuffer("he")
	b.Append("llo")
	assert.Equal(t, "hello", b.Text())
	assert.Equal(t, 5, b.Len())

	b.SetText("bye")
	assert.Equal(t, "bye", b.Text())

	b.Clear()
	assert.Equal(t, "", b.Text())
	assert.Zero(t, b.Len())
}
