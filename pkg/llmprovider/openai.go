package llmprovider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Base URLs of the OpenAI-compatible chat completion APIs.
const (
	GroqBaseURL     = "https://api.groq.com/openai/v1"
	DeepSeekBaseURL = "https://api.deepseek.com/v1"
	QwenBaseURL     = "https://dashscope-intl.aliyuncs.com/compatible-mode/v1"
	OpenAIBaseURL   = "https://api.openai.com/v1"
)

// OpenAICompatAdapter drives any OpenAI-compatible chat API through langchaingo.
type OpenAICompatAdapter struct {
	name  string
	model string
	llm   llms.Model
}

// OpenAICompatConfig configures an OpenAI-compatible provider.
type OpenAICompatConfig struct {
	Name    string
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// NewOpenAICompatAdapter builds the langchaingo client for cfg.
func NewOpenAICompatAdapter(cfg OpenAICompatConfig) (*OpenAICompatAdapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL(cfg.Name)
	}
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Name, err)
	}
	return NewOpenAICompatAdapterWithModel(cfg.Name, cfg.Model, llm), nil
}

// NewOpenAICompatAdapterWithModel wraps an existing langchaingo model.
func NewOpenAICompatAdapterWithModel(name, model string, llm llms.Model) *OpenAICompatAdapter {
	return &OpenAICompatAdapter{name: name, model: model, llm: llm}
}

// GenerateContent implements Provider interface
func (a *OpenAICompatAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	messages := make([]llms.MessageContent, 0, len(req.Messages)+1)
	if req.SystemInstruction != nil {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, joinParts(req.SystemInstruction.Parts)))
	}
	for _, msg := range req.Messages {
		messages = append(messages, llms.TextParts(chatMessageType(msg.Role), joinParts(msg.Parts)))
	}

	options := []llms.CallOption{llms.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		options = append(options, llms.WithMaxTokens(req.MaxTokens))
	}

	resp, err := a.llm.GenerateContent(ctx, messages, options...)
	if err != nil {
		return nil, &ProviderError{Provider: a.name, Model: a.model, Err: err}
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, &ProviderError{Provider: a.name, Model: a.model, Err: ErrEmptyResponse}
	}

	choice := resp.Choices[0]
	return &Response{
		Content:      Message{Role: RoleAssistant, Parts: []Part{{Text: choice.Content}}},
		ProviderName: a.name,
		ModelName:    a.model,
		Usage: &Usage{
			InputTokens:  intInfo(choice.GenerationInfo, "PromptTokens"),
			OutputTokens: intInfo(choice.GenerationInfo, "CompletionTokens"),
			TotalTokens:  intInfo(choice.GenerationInfo, "TotalTokens"),
		},
	}, nil
}

// Name returns provider name
func (a *OpenAICompatAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAICompatAdapter) Model() string {
	return a.model
}

func defaultBaseURL(name string) string {
	switch strings.ToLower(name) {
	case "groq":
		return GroqBaseURL
	case "deepseek":
		return DeepSeekBaseURL
	case "qwen", "alibaba":
		return QwenBaseURL
	default:
		return OpenAIBaseURL
	}
}

func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case RoleSystem:
		return llms.ChatMessageTypeSystem
	case RoleAssistant:
		return llms.ChatMessageTypeAI
	default:
		return llms.ChatMessageTypeHuman
	}
}

func joinParts(parts []Part) string {
	texts := make([]string, 0, len(parts))
	for _, p := range parts {
		texts = append(texts, p.Text)
	}
	return strings.Join(texts, "\n")
}

func intInfo(info map[string]any, key string) int {
	switch v := info[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
