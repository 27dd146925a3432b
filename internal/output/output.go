// Package output writes translated fragments as plain text, as a two-column
// HTML table next to the source, or back to the clipboard.
package output

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Format selects how translations are written.
type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatHTML:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format: %s", s)
}

// ClipboardWriter writes the clipboard. Tests replace it.
var ClipboardWriter = clipboard.WriteAll

// Text writes each translation followed by a blank line.
func Text(w io.Writer, translations []string) error {
	for _, t := range translations {
		if _, err := fmt.Fprintf(w, "%s\n\n", t); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Join returns the translations separated by blank lines.
func Join(translations []string) string {
	return strings.Join(translations, "\n\n")
}

// Clipboard writes the joined translations to the system clipboard.
func Clipboard(translations []string) error {
	if err := ClipboardWriter(Join(translations)); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML writes a table with the source fragment on the left and its
// translation on the right, both rendered from Markdown. translations holds
// one cell per fragment; several completions in a cell are separated by a
// blank line and a cell without completions stays empty.
func HTML(w io.Writer, title string, fragments []string, translations [][]string) error {
	rows := len(fragments)
	if len(translations) > rows {
		rows = len(translations)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>%s</title>\n", html.EscapeString(title))
	buf.WriteString("<style>table{border-collapse:collapse;width:100%}td{vertical-align:top;width:50%;padding:0 1em;border-bottom:1px solid #ddd}</style>\n")
	buf.WriteString("</head>\n<body>\n<table>\n")

	for i := 0; i < rows; i++ {
		buf.WriteString("<tr>\n<td>\n")
		if err := render(&buf, at(fragments, i)); err != nil {
			return err
		}
		buf.WriteString("</td>\n<td>\n")
		if err := render(&buf, cell(translations, i)); err != nil {
			return err
		}
		buf.WriteString("</td>\n</tr>\n")
	}

	buf.WriteString("</table>\n</body>\n</html>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func render(buf *bytes.Buffer, source string) error {
	if err := markdown.Convert([]byte(source), buf); err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}
	return nil
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func cell(each [][]string, i int) string {
	if i < len(each) {
		return Join(each[i])
	}
	return ""
}
