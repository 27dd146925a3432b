// Package batch reads lists of Markdown documents to translate in one run.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is one document of a batch.
type Entry struct {
	Input  string
	Output string
	// Explicit is true when the output path was given in the batch file.
	Explicit bool
}

// ReadBatchFile reads document paths from a file, one per line.
// Supported formats:
//   - input only: "docs/intro.md" (output derived from the target language)
//   - input and output: "docs/intro.md = docs/intro.en.md"
//
// Blank lines and lines starting with '#' are ignored. Relative paths are
// resolved against the directory of the batch file.
func ReadBatchFile(filename, targetLanguage string) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	base := filepath.Dir(filename)
	var entries []Entry

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		in, out, explicit := line, "", false
		if parts := strings.SplitN(line, "=", 2); len(parts) == 2 {
			in = strings.TrimSpace(parts[0])
			out = strings.TrimSpace(parts[1])
			explicit = out != ""
		}
		if in == "" {
			// "= out.md" has nothing to translate
			continue
		}

		in = resolve(base, in)
		if explicit {
			out = resolve(base, out)
		} else {
			out = OutputPath(in, targetLanguage)
		}

		entries = append(entries, Entry{Input: in, Output: out, Explicit: explicit})
	}

	return entries, nil
}

// OutputPath derives "<name>.<lang>.<ext>" next to input, e.g.
// "intro.md" translated to English becomes "intro.english.md".
func OutputPath(input, targetLanguage string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		ext = ".md"
	}
	stem := strings.TrimSuffix(input, filepath.Ext(input))
	return fmt.Sprintf("%s.%s%s", stem, languageTag(targetLanguage), ext)
}

func languageTag(language string) string {
	tag := strings.ToLower(strings.TrimSpace(language))
	tag = strings.Join(strings.Fields(tag), "-")
	if tag == "" {
		return "translated"
	}
	return tag
}

func resolve(base, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Summary counts the outcome of a batch run.
type Summary struct {
	Total     int
	Processed int
	Failed    int
}

// String formats the summary like the command prints it.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Batch Translation Summary ===\n")
	fmt.Fprintf(&b, "Total documents: %d\n", s.Total)
	fmt.Fprintf(&b, "Translated: %d\n", s.Processed)
	if s.Failed > 0 {
		fmt.Fprintf(&b, "Errors: %d\n", s.Failed)
	}
	fmt.Fprintf(&b, "=================================\n")
	return b.String()
}
