package translation

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// geminiService sends requests to the Gemini generateContent endpoint.
type geminiService struct {
	client *genai.Client
}

func newGeminiService(ctx context.Context, apiKey, baseURL string) (*geminiService, error) {
	config := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		config.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &geminiService{client: client}, nil
}

func (s *geminiService) Complete(ctx context.Context, req Request) ([]Choice, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens:  int32(req.MaxTokens),
		Temperature:      genai.Ptr(req.Temperature),
		FrequencyPenalty: genai.Ptr(req.FrequencyPenalty),
	}

	var contents []*genai.Content
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			config.SystemInstruction = genai.NewContentFromText(m.Content, genai.RoleUser)
			continue
		}
		contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
	}

	resp, err := s.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	choices := make([]Choice, 0, len(resp.Candidates))
	for _, c := range resp.Candidates {
		choices = append(choices, Choice{
			Content:      candidateText(c),
			FinishReason: string(c.FinishReason),
		})
	}
	return choices, nil
}

// candidateText joins the text parts of a candidate, leaving out thoughts.
func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, p := range c.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String()
}
