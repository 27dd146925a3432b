package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/mdtranslate/internal/model"
)

// Lister handles listing available OpenAI models
type Lister struct {
	apiKey string
	client *openai.Client
}

// NewLister creates a new model lister. baseURL may be empty.
func NewLister(apiKey, baseURL string) *Lister {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Lister{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(config),
	}
}

// ChatModels returns the sorted IDs of chat models the key can use.
func (l *Lister) ChatModels(ctx context.Context) ([]string, error) {
	if l.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .mdtranslate.yaml")
	}

	models, err := l.client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	var chat []string
	for _, m := range models.Models {
		id := m.ID
		if strings.Contains(id, "tts") || strings.Contains(id, "audio") ||
			strings.Contains(id, "realtime") || strings.Contains(id, "transcribe") {
			continue
		}
		if strings.Contains(id, "gpt") || strings.Contains(id, "chat") {
			chat = append(chat, id)
		}
	}
	sort.Strings(chat)

	return chat, nil
}

// ListAvailableModels prints the chat models and marks the ones the
// translator supports directly.
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	chat, err := l.ChatModels(ctx)
	if err != nil {
		return err
	}

	supported := make(map[string]bool)
	for _, m := range model.All() {
		supported[m.String()] = true
	}

	fmt.Fprintln(w, "Available OpenAI chat models:")
	if len(chat) == 0 {
		fmt.Fprintln(w, "  No chat models found")
		return nil
	}
	for _, id := range chat {
		if supported[id] {
			fmt.Fprintf(w, "  %s (supported)\n", id)
		} else {
			fmt.Fprintf(w, "  %s\n", id)
		}
	}

	return nil
}
