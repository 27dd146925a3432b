package segment

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned when there is nothing to split.
var ErrEmptyInput = errors.New("empty input text")

// Split splits text into fragments at ATX heading lines (one to six '#' at
// the start of a line, followed by a space, a tab or the end of the line).
// Headings inside fenced code blocks are ignored. Text before the first
// heading becomes the first fragment. Every fragment is trimmed and
// whitespace-only fragments are dropped.
func Split(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	var (
		fragments []string
		current   strings.Builder
		fence     fenceState
	)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			fragments = append(fragments, s)
		}
		current.Reset()
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		if fence.update(line) {
			current.WriteString(line)
			continue
		}
		if isHeading(line) {
			flush()
		}
		current.WriteString(line)
	}
	flush()

	return fragments, nil
}

// isHeading reports whether line is an ATX heading line.
func isHeading(line string) bool {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	if level == len(line) {
		return true
	}
	switch line[level] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// fenceState tracks whether the scanner is inside a fenced code block.
type fenceState struct {
	char byte
	size int
}

// update consumes one line and reports whether it belongs to a code fence,
// either as an opening line, a closing line or content in between.
func (f *fenceState) update(line string) bool {
	char, size, rest := parseFence(line)

	if f.size == 0 {
		if size == 0 {
			return false
		}
		// Backtick fences may not carry backticks in their info string.
		if char == '`' && strings.ContainsRune(rest, '`') {
			return false
		}
		f.char, f.size = char, size
		return true
	}

	if size >= f.size && char == f.char && strings.TrimSpace(rest) == "" {
		f.char, f.size = 0, 0
	}
	return true
}

// parseFence returns the fence character, its run length and the remainder
// of the line when line opens or closes a fence. Up to three spaces of
// indentation are allowed. size is 0 when line is not a fence.
func parseFence(line string) (char byte, size int, rest string) {
	indent := 0
	for indent < len(line) && indent < 4 && line[indent] == ' ' {
		indent++
	}
	if indent > 3 || indent == len(line) {
		return 0, 0, ""
	}

	char = line[indent]
	if char != '`' && char != '~' {
		return 0, 0, ""
	}

	end := indent
	for end < len(line) && line[end] == char {
		end++
	}
	if end-indent < 3 {
		return 0, 0, ""
	}

	return char, end - indent, line[end:]
}
