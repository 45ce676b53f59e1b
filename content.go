package fixtree

import (
	"fmt"

	"golang.org/x/text/encoding"
)

// Content specifies the full content of a file declaration. The zero value
// is Original.
type Content struct {
	text    string
	enc     encoding.Encoding
	raw     []byte
	literal bool
	isText  bool
}

// Original leaves the current content of the target file unchanged. Against
// a freshly created file it resolves to empty content.
var Original = Content{}

// Text specifies literal text content written as UTF-8.
func Text(s string) Content {
	return Content{text: s, literal: true, isText: true}
}

// TextEnc specifies literal text content encoded with enc before writing.
// A nil enc is equivalent to Text.
func TextEnc(s string, enc encoding.Encoding) Content {
	return Content{text: s, enc: enc, literal: true, isText: true}
}

// Bytes specifies literal content used verbatim, bypassing text encoding.
func Bytes(p []byte) Content {
	return Content{raw: p, literal: true}
}

// resolve produces the new content given the file's current content.
func (c Content) resolve(current []byte) ([]byte, error) {
	if !c.literal {
		return current, nil
	}
	if !c.isText {
		return c.raw, nil
	}
	return encodeText(c.text, c.enc)
}

// encodeText converts UTF-8 text to the target encoding. A nil encoding is
// a passthrough.
func encodeText(s string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return []byte(s), nil
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("encode text: %w", err)
	}
	return out, nil
}
