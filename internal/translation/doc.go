// Package translation turns a validated configuration into a Translator that
// sends Markdown fragments to a chat-completion service. A Translator can only
// be obtained through NewTranslator, which resolves prompts, builds the request
// template and binds the service client once; every fragment reuses them.
package translation
