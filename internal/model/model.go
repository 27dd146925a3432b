// Package model names the chat models the translator can talk to.
package model

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Model is a supported chat model.
type Model int

const (
	GPT4o Model = iota
	GPT4oMini
	GPT4Turbo
	GPT35Turbo
	Gemini20Flash
	Gemini15Pro
)

// Provider identifies the service a model is served by.
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// Default is used when no model is configured.
const Default = GPT4o

// Parse maps loose user input to a model. Matching is by substring so that
// "4", "gpt4" and "gpt-4-turbo" all select GPT-4 Turbo.
func Parse(s string) (Model, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case strings.Contains(s, "gemini"):
		if strings.Contains(s, "pro") {
			return Gemini15Pro, nil
		}
		return Gemini20Flash, nil
	case strings.Contains(s, "4o"):
		if strings.Contains(s, "mini") {
			return GPT4oMini, nil
		}
		return GPT4o, nil
	case strings.Contains(s, "mini"):
		return GPT4oMini, nil
	case strings.Contains(s, "35"), strings.Contains(s, "3.5"):
		return GPT35Turbo, nil
	case strings.Contains(s, "4"):
		return GPT4Turbo, nil
	}

	return 0, fmt.Errorf("%q is not a valid model", s)
}

// String returns the identifier sent on the wire.
func (m Model) String() string {
	switch m {
	case GPT4o:
		return openai.GPT4o
	case GPT4oMini:
		return openai.GPT4oMini
	case GPT4Turbo:
		return openai.GPT4Turbo
	case GPT35Turbo:
		return openai.GPT3Dot5Turbo
	case Gemini20Flash:
		return "gemini-2.0-flash"
	case Gemini15Pro:
		return "gemini-1.5-pro"
	}
	return fmt.Sprintf("Model(%d)", int(m))
}

// Provider returns the service that serves m.
func (m Model) Provider() Provider {
	switch m {
	case Gemini20Flash, Gemini15Pro:
		return ProviderGemini
	}
	return ProviderOpenAI
}

// All lists every supported model in declaration order.
func All() []Model {
	return []Model{GPT4o, GPT4oMini, GPT4Turbo, GPT35Turbo, Gemini20Flash, Gemini15Pro}
}
