// Package prompt resolves the system prompt and the user prompt template sent
// with every fragment. Built-in defaults are embedded into the binary and can
// be overridden by a literal text or by a file.
package prompt
