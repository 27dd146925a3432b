package translation

import (
	"context"
	"fmt"
	"math"

	"github.com/sashabaranov/go-openai"
)

// openaiService sends requests to the OpenAI chat completions endpoint.
type openaiService struct {
	client *openai.Client
}

func newOpenAIService(apiKey, baseURL string) *openaiService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &openaiService{client: openai.NewClientWithConfig(config)}
}

func (s *openaiService) Complete(ctx context.Context, req Request) ([]Choice, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	// A zero temperature is dropped by omitempty and the API would fall
	// back to its own default of 1.
	temperature := req.Temperature
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:            req.Model,
		Messages:         messages,
		MaxTokens:        req.MaxTokens,
		Temperature:      temperature,
		FrequencyPenalty: req.FrequencyPenalty,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	choices := make([]Choice, 0, len(resp.Choices))
	for _, c := range resp.Choices {
		choices = append(choices, Choice{
			Content:      c.Message.Content,
			FinishReason: string(c.FinishReason),
		})
	}
	return choices, nil
}
