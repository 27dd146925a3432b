package translation

import "context"

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged entry of a chat request.
type Message struct {
	Role    string
	Content string
}

// Request is a provider-neutral chat-completion request. Translators keep
// one as a template and copy it for every fragment.
type Request struct {
	Model            string
	MaxTokens        int
	Temperature      float32
	FrequencyPenalty float32
	Messages         []Message
}

// Choice is one completion returned by the service. Content is empty when
// the service returned no text for it, e.g. because it was filtered.
type Choice struct {
	Content      string
	FinishReason string
}

// ChatService is the narrow contract the translator needs from a
// chat-completion backend.
type ChatService interface {
	Complete(ctx context.Context, req Request) ([]Choice, error)
}

// ChatServiceFunc adapts a function to ChatService.
type ChatServiceFunc func(ctx context.Context, req Request) ([]Choice, error)

// Complete calls f.
func (f ChatServiceFunc) Complete(ctx context.Context, req Request) ([]Choice, error) {
	return f(ctx, req)
}
