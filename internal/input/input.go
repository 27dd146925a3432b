// Package input reads the text to translate from command-line arguments,
// standard input or the system clipboard.
package input

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/term"
)

// ClipboardReader reads the clipboard. Tests replace it.
var ClipboardReader = clipboard.ReadAll

// Read returns the trimmed input text. Arguments are joined with a single
// space. Without arguments, stdin is read when it is not a terminal;
// otherwise the clipboard is used.
func Read(args []string, stdin io.Reader, stdinIsTerminal bool) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}

	if stdin != nil && !stdinIsTerminal {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	text, err := ClipboardReader()
	if err != nil {
		return "", fmt.Errorf("failed to access system clipboard: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// StdinIsTerminal reports whether os.Stdin is attached to a terminal.
func StdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// ReadFile returns the trimmed contents of a document file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}
