package translation

import (
	"errors"
	"fmt"
)

// ErrNotReady is returned by a Translator that was not built by NewTranslator.
var ErrNotReady = errors.New("translator is not configured")

// ConfigError reports a configuration that cannot be turned into a Translator.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

// TranslationError wraps a failed exchange with the chat service.
type TranslationError struct {
	Model string
	Err   error
}

func (e *TranslationError) Error() string {
	return fmt.Sprintf("translation with %s failed: %v", e.Model, e.Err)
}

func (e *TranslationError) Unwrap() error { return e.Err }
