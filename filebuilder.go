package fixtree

import (
	"golang.org/x/text/encoding"
	"mvdan.cc/gofumpt/format"
)

// FileBuilder accumulates content operations for one file declaration.
// Operations compose left to right over the accumulating content; the final
// content is written to disk once the enclosing FileWith block returns.
type FileBuilder struct {
	content []byte
}

// Append appends UTF-8 text to the accumulated content.
func (b *FileBuilder) Append(text string) {
	b.content = append(b.content, text...)
}

// AppendEncoded appends text encoded with enc.
func (b *FileBuilder) AppendEncoded(text string, enc encoding.Encoding) error {
	p, err := encodeText(text, enc)
	if err != nil {
		return err
	}
	b.content = append(b.content, p...)
	return nil
}

// AppendBytes appends raw bytes verbatim.
func (b *FileBuilder) AppendBytes(p []byte) {
	b.content = append(b.content, p...)
}

// AppendNewline appends a single '\n'. Always '\n', never the host line
// separator, so fixtures are byte-identical across platforms.
func (b *FileBuilder) AppendNewline() {
	b.content = append(b.content, '\n')
}

// Set assigns whole-file content, replacing everything accumulated so far.
// Original is a no-op assignment.
func (b *FileBuilder) Set(c Content) error {
	resolved, err := c.resolve(b.content)
	if err != nil {
		return err
	}
	b.content = resolved
	return nil
}

// ReplaceEachLine runs fn over every line of the accumulated content.
func (b *FileBuilder) ReplaceEachLine(fn LineFunc) {
	b.content = replaceEachLine(b.content, fn)
}

// FormatGo formats the accumulated content as Go source using gofumpt.
// Best effort: content that does not parse is left unchanged.
func (b *FileBuilder) FormatGo() {
	formatted, err := format.Source(b.content, format.Options{})
	if err != nil {
		return
	}
	b.content = formatted
}

// Bytes returns the content accumulated so far.
func (b *FileBuilder) Bytes() []byte {
	return b.content
}
