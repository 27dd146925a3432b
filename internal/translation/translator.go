package translation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"codeberg.org/snonux/mdtranslate/internal/model"
	"codeberg.org/snonux/mdtranslate/internal/prompt"
)

// Config holds everything needed to build a Translator. It is a plain value
// owned by the caller until it is passed to NewTranslator.
type Config struct {
	APIKey           string
	Model            model.Model
	MaxTokens        uint16
	Temperature      float32 // 0 to 2
	FrequencyPenalty float32 // -2 to 2

	// Prompt overrides. Text takes precedence over the file.
	SystemPromptFile string
	UserPromptFile   string
	SystemPromptText string
	UserPromptText   string

	SourceLanguage string
	TargetLanguage string

	// BaseURL overrides the service endpoint, e.g. for a proxy.
	BaseURL string
}

// DefaultConfig returns the configuration defaults without a credential.
func DefaultConfig() Config {
	return Config{
		Model:            model.Default,
		MaxTokens:        2000,
		Temperature:      0.6,
		FrequencyPenalty: 1.0,
		SourceLanguage:   "Japanese",
		TargetLanguage:   "English",
	}
}

// Translator is ready to translate fragments. Its request template and
// prompts are fixed at construction and never change afterwards.
type Translator struct {
	service      ChatService
	template     Request
	systemPrompt string
	userPrompt   string
}

// Option customises NewTranslator.
type Option func(*options)

type options struct {
	service  ChatService
	logger   *zap.Logger
	breaker  *gobreaker.Settings
	noBreak  bool
	clientFn func(ctx context.Context, cfg Config) (ChatService, error)
}

// WithService binds s instead of a network client for the configured model.
func WithService(s ChatService) Option {
	return func(o *options) { o.service = s }
}

// WithLogger sets the logger used for prompt and breaker diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithBreakerSettings replaces DefaultBreakerSettings.
func WithBreakerSettings(s gobreaker.Settings) Option {
	return func(o *options) { o.breaker = &s }
}

// WithoutBreaker binds the service without a circuit breaker.
func WithoutBreaker() Option {
	return func(o *options) { o.noBreak = true }
}

// NewTranslator validates cfg, builds the request template, resolves both
// prompts and binds the chat service. It fails with a *ConfigError before
// any network call is made.
func NewTranslator(cfg Config, opts ...Option) (*Translator, error) {
	o := options{logger: zap.NewNop(), clientFn: newService}
	for _, opt := range opts {
		opt(&o)
	}

	template, err := buildTemplate(cfg)
	if err != nil {
		return nil, err
	}

	service := o.service
	if service == nil {
		service, err = o.clientFn(context.Background(), cfg)
		if err != nil {
			return nil, &ConfigError{Field: "client", Reason: "cannot create service client", Err: err}
		}
	}
	if !o.noBreak {
		settings := DefaultBreakerSettings(o.logger)
		if o.breaker != nil {
			settings = *o.breaker
		}
		service = newBreakerService(service, settings)
	}

	t := &Translator{
		service:  service,
		template: template,
		systemPrompt: prompt.ResolveWithLogger(o.logger,
			cfg.SystemPromptFile, cfg.SystemPromptText, prompt.DefaultSystem(),
			cfg.SourceLanguage, cfg.TargetLanguage),
		userPrompt: prompt.ResolveWithLogger(o.logger,
			cfg.UserPromptFile, cfg.UserPromptText, prompt.DefaultUser(),
			cfg.SourceLanguage, cfg.TargetLanguage),
	}

	o.logger.Debug("translator ready",
		zap.String("model", template.Model),
		zap.String("source", cfg.SourceLanguage),
		zap.String("target", cfg.TargetLanguage))

	return t, nil
}

func buildTemplate(cfg Config) (Request, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return Request{}, &ConfigError{Field: "api key", Reason: "missing"}
	}
	if cfg.MaxTokens == 0 {
		return Request{}, &ConfigError{Field: "max tokens", Reason: "must be greater than 0"}
	}
	if !inRange(cfg.Temperature, 0, 2) {
		return Request{}, &ConfigError{Field: "temperature", Reason: fmt.Sprintf("%v is outside 0..2", cfg.Temperature)}
	}
	if !inRange(cfg.FrequencyPenalty, -2, 2) {
		return Request{}, &ConfigError{Field: "frequency penalty", Reason: fmt.Sprintf("%v is outside -2..2", cfg.FrequencyPenalty)}
	}
	if strings.TrimSpace(cfg.SourceLanguage) == "" {
		return Request{}, &ConfigError{Field: "source language", Reason: "missing"}
	}
	if strings.TrimSpace(cfg.TargetLanguage) == "" {
		return Request{}, &ConfigError{Field: "target language", Reason: "missing"}
	}

	known := false
	for _, m := range model.All() {
		if m == cfg.Model {
			known = true
			break
		}
	}
	if !known {
		return Request{}, &ConfigError{Field: "model", Reason: fmt.Sprintf("unsupported model %s", cfg.Model)}
	}

	return Request{
		Model:            cfg.Model.String(),
		MaxTokens:        int(cfg.MaxTokens),
		Temperature:      cfg.Temperature,
		FrequencyPenalty: cfg.FrequencyPenalty,
	}, nil
}

func inRange(v, lo, hi float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && f >= float64(lo) && f <= float64(hi)
}

func newService(ctx context.Context, cfg Config) (ChatService, error) {
	switch cfg.Model.Provider() {
	case model.ProviderGemini:
		return newGeminiService(ctx, cfg.APIKey, cfg.BaseURL)
	default:
		return newOpenAIService(cfg.APIKey, cfg.BaseURL), nil
	}
}

// Translate sends one fragment and returns the text of every completion the
// service produced, in service order. Completions without text are skipped,
// so the result may be empty. Failures are returned as *TranslationError and
// are never retried.
func (t *Translator) Translate(ctx context.Context, fragment string) ([]string, error) {
	if t == nil || t.service == nil {
		return nil, ErrNotReady
	}

	req := t.template
	req.Messages = []Message{
		{Role: RoleSystem, Content: t.systemPrompt},
		{Role: RoleUser, Content: t.userPrompt + "\n" + fragment},
	}

	choices, err := t.service.Complete(ctx, req)
	if err != nil {
		return nil, &TranslationError{Model: req.Model, Err: err}
	}

	translations := make([]string, 0, len(choices))
	for _, c := range choices {
		if c.Content == "" {
			continue
		}
		translations = append(translations, c.Content)
	}
	return translations, nil
}

// Model returns the model identifier requests are sent to. It is empty for
// a translator that was not built by NewTranslator.
func (t *Translator) Model() string {
	if t == nil {
		return ""
	}
	return t.template.Model
}

// SystemPrompt returns the resolved system prompt.
func (t *Translator) SystemPrompt() string {
	if t == nil {
		return ""
	}
	return t.systemPrompt
}

// UserPrompt returns the resolved user prompt that precedes every fragment.
func (t *Translator) UserPrompt() string {
	if t == nil {
		return ""
	}
	return t.userPrompt
}
