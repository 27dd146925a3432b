package prompt

import (
	"embed"
	"os"
	"strings"

	"go.uber.org/zap"
)

//go:embed defaults/*.txt
var defaults embed.FS

const (
	// SourcePlaceholder is replaced with the source language name.
	SourcePlaceholder = "{source}"
	// TargetPlaceholder is replaced with the target language name.
	TargetPlaceholder = "{target}"
)

// DefaultSystem returns the built-in system prompt.
func DefaultSystem() string {
	return mustDefault("defaults/system.txt")
}

// DefaultUser returns the built-in user prompt template.
func DefaultUser() string {
	return mustDefault("defaults/user.txt")
}

func mustDefault(name string) string {
	data, err := defaults.ReadFile(name)
	if err != nil {
		panic("prompt: missing embedded default " + name)
	}
	return strings.TrimSpace(string(data))
}

// Resolve picks the prompt template and substitutes the language names.
// overrideText wins over overridePath, which wins over defaultTemplate.
// An unreadable override file falls back to defaultTemplate silently.
func Resolve(overridePath, overrideText, defaultTemplate, source, target string) string {
	return ResolveWithLogger(zap.NewNop(), overridePath, overrideText, defaultTemplate, source, target)
}

// ResolveWithLogger is Resolve with a debug log line when an override file
// cannot be read.
func ResolveWithLogger(logger *zap.Logger, overridePath, overrideText, defaultTemplate, source, target string) string {
	template := defaultTemplate

	switch {
	case overrideText != "":
		template = overrideText
	case overridePath != "":
		data, err := os.ReadFile(overridePath)
		if err != nil {
			logger.Debug("prompt override unreadable, using default",
				zap.String("path", overridePath), zap.Error(err))
			break
		}
		template = string(data)
	}

	return Substitute(template, source, target)
}

// Substitute replaces every placeholder occurrence with the language names.
func Substitute(template, source, target string) string {
	return strings.NewReplacer(
		SourcePlaceholder, source,
		TargetPlaceholder, target,
	).Replace(template)
}
