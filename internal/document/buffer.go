package document

import "strings"

// Buffer holds the text under edit. There is no modified flag: callers
// that are about to replace the content always ask first.
type Buffer struct {
	text strings.Builder
}

// NewBuffer returns a buffer holding s.
func NewBuffer(s string) *Buffer {
	b := &Buffer{}
	b.text.WriteString(s)
	return b
}

func (b *Buffer) Text() string {
	return b.text.String()
}

// SetText replaces the whole content.
func (b *Buffer) SetText(s string) {
	b.text.Reset()
	b.text.WriteString(s)
}

func (b *Buffer) Clear() {
	b.text.Reset()
}

func (b *Buffer) Append(s string) {
	b.text.WriteString(s)
}

func (b *Buffer) Len() int {
	return b.text.Len()
}
