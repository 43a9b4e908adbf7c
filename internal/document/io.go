// Package document reads and writes the editor's text buffer.
//
// Reads go line by line: every line, however it was terminated in the
// file, comes back followed by a single "\n". Writes are byte-for-byte.
package document

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"

	"text-editor/internal/filetracker"
)

// EachLine calls fn for every line of r with the terminator removed.
// "\n", "\r\n" and a lone "\r" all end a line; a final unterminated line
// is still reported, an empty trailing segment is not.
func EachLine(r io.Reader, fn func(line string)) error {
	br := bufio.NewReader(r)
	for {
		chunk, err := br.ReadString('\n')
		if len(chunk) > 0 {
			chunk = strings.TrimSuffix(chunk, "\n")
			chunk = strings.TrimSuffix(chunk, "\r")
			for _, line := range strings.Split(chunk, "\r") {
				fn(line)
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// ReadLines returns the whole content of r, each line followed by "\n".
func ReadLines(r io.Reader) (string, error) {
	var sb strings.Builder
	err := EachLine(r, func(line string) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	})
	if err != nil {
		return "", ioErr("read", "", err)
	}
	return sb.String(), nil
}

// ReadInto clears buf and appends r to it line by line. On failure buf
// keeps the lines appended before the error.
func ReadInto(buf *Buffer, r io.Reader, name string) error {
	buf.Clear()
	err := EachLine(r, func(line string) {
		buf.Append(line + "\n")
	})
	if err != nil {
		return ioErr("read", name, err)
	}
	return nil
}

// Files opens, reads and writes documents on disk, reporting every handle
// to a tracker. The zero value works without tracking.
type Files struct {
	tracker *filetracker.Tracker
}

func NewFiles(tracker *filetracker.Tracker) *Files {
	return &Files{tracker: tracker}
}

var plainFiles = &Files{}

func (fl *Files) open(path string, flag int) (*os.File, error) {
	f, err := os.OpenFile(path, flag, 0o644)
	if err != nil {
		return nil, ioErr("open", path, err)
	}
	fl.tracker.TrackOpen(path, f.Fd())
	return f, nil
}

func (fl *Files) close(f *os.File) error {
	fl.tracker.TrackClose(f.Fd())
	if err := f.Close(); err != nil {
		return ioErr("close", f.Name(), err)
	}
	return nil
}

// Load reads the file at path. The result is only produced once the whole
// file has been read.
func (fl *Files) Load(path string) (string, error) {
	f, err := fl.open(path, os.O_RDONLY)
	if err != nil {
		return "", err
	}
	defer fl.close(f)

	var sb strings.Builder
	err = EachLine(f, func(line string) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	})
	if err != nil {
		return "", ioErr("read", path, err)
	}
	return sb.String(), nil
}

// LoadInto opens path and streams it into buf with ReadInto.
func (fl *Files) LoadInto(buf *Buffer, path string) error {
	f, err := fl.open(path, os.O_RDONLY)
	if err != nil {
		return err
	}
	defer fl.close(f)

	return ReadInto(buf, f, path)
}

// Save writes the buffer to path, creating or truncating the file.
func (fl *Files) Save(path string, buf *Buffer) (err error) {
	f, err := fl.open(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fl.close(f); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return Write(f, buf, path)
}

func Load(path string) (string, error) {
	return plainFiles.Load(path)
}

func LoadInto(buf *Buffer, path string) error {
	return plainFiles.LoadInto(buf, path)
}

func Save(path string, buf *Buffer) error {
	return plainFiles.Save(path, buf)
}

// Write copies the buffer content to w unchanged.
func Write(w io.Writer, buf *Buffer, name string) error {
	if _, err := io.WriteString(w, buf.Text()); err != nil {
		return ioErr("write", name, err)
	}
	return nil
}
