// Package testutil provides helpers shared by the package tests, most
// notably a fake OpenAI endpoint.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
)

// FakeOpenAI serves /v1/chat/completions and /v1/models from memory and
// records every chat request it receives.
type FakeOpenAI struct {
	// Reply builds the completion contents for a request. The default
	// echoes the last message.
	Reply func(req openai.ChatCompletionRequest) []string
	// Status, when non-zero, makes every chat request fail with this code.
	Status int
	// Models is returned by /v1/models.
	Models []string

	mu       sync.Mutex
	requests []openai.ChatCompletionRequest
	server   *httptest.Server
}

// NewFakeOpenAI starts a fake server that is closed with the test.
func NewFakeOpenAI(t *testing.T) *FakeOpenAI {
	t.Helper()

	f := &FakeOpenAI{}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat/completions", f.chat)
	mux.HandleFunc("/v1/models", f.models)
	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)

	return f
}

// BaseURL is the value for the client's base URL setting.
func (f *FakeOpenAI) BaseURL() string {
	return f.server.URL + "/v1"
}

// Requests returns the chat requests received so far.
func (f *FakeOpenAI) Requests() []openai.ChatCompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]openai.ChatCompletionRequest(nil), f.requests...)
}

func (f *FakeOpenAI) chat(w http.ResponseWriter, r *http.Request) {
	var req openai.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if f.Status != 0 {
		w.WriteHeader(f.Status)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"message": http.StatusText(f.Status),
				"type":    "invalid_request_error",
			},
		})
		return
	}

	reply := f.Reply
	if reply == nil {
		reply = echo
	}

	resp := openai.ChatCompletionResponse{ID: "chatcmpl-fake", Object: "chat.completion", Model: req.Model}
	for i, content := range reply(req) {
		reason := openai.FinishReasonStop
		if content == "" {
			reason = openai.FinishReasonContentFilter
		}
		resp.Choices = append(resp.Choices, openai.ChatCompletionChoice{
			Index:        i,
			Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
			FinishReason: reason,
		})
	}
	json.NewEncoder(w).Encode(resp)
}

func (f *FakeOpenAI) models(w http.ResponseWriter, r *http.Request) {
	list := openai.ModelsList{}
	for _, id := range f.Models {
		list.Models = append(list.Models, openai.Model{ID: id, Object: "model", OwnedBy: "openai"})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

func echo(req openai.ChatCompletionRequest) []string {
	if len(req.Messages) == 0 {
		return nil
	}
	return []string{req.Messages[len(req.Messages)-1].Content}
}
