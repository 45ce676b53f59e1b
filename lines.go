package fixtree

import "strings"

// LineEdit is the result of a per-line transform: either a replacement or
// the KeepOriginal sentinel preserving the line unchanged.
type LineEdit struct {
	text    string
	replace bool
}

// KeepOriginal preserves the current line unchanged.
var KeepOriginal = LineEdit{}

// Replace substitutes the current line with text.
func Replace(text string) LineEdit {
	return LineEdit{text: text, replace: true}
}

// LineFunc maps a 0-based line index and the line's current text to an edit.
type LineFunc func(i int, line string) LineEdit

// replaceEachLine applies fn once per line of content, in order, and rejoins
// the result with '\n'. The trailing-newline state of content is preserved.
// Empty content has zero lines; fn is never invoked for it. Consecutive
// delimiters produce empty lines, which are passed to fn like any other.
func replaceEachLine(content []byte, fn LineFunc) []byte {
	if len(content) == 0 {
		return content
	}
	s := string(content)
	trailing := strings.HasSuffix(s, "\n")
	if trailing {
		s = s[:len(s)-1]
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if edit := fn(i, line); edit.replace {
			lines[i] = edit.text
		}
	}
	out := strings.Join(lines, "\n")
	if trailing {
		out += "\n"
	}
	return []byte(out)
}
