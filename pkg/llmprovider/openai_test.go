package llmprovider

import (
	"context"
	"errors"
	"testing"

	"github.com/tmc/langchaingo/llms"
)

type fakeLLM struct {
	messages []llms.MessageContent
	opts     llms.CallOptions
	resp     *llms.ContentResponse
	err      error
}

func (f *fakeLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.messages = messages
	for _, o := range options {
		o(&f.opts)
	}
	return f.resp, f.err
}

func (f *fakeLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestOpenAICompatAdapter_GenerateContent(t *testing.T) {
	fake := &fakeLLM{resp: &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		Content: "You can cancel from your orders page.",
		GenerationInfo: map[string]any{
			"PromptTokens":     42,
			"CompletionTokens": 9,
			"TotalTokens":      51,
		},
	}}}}
	adapter := NewOpenAICompatAdapterWithModel("groq", "llama-3.1-8b-instant", fake)

	resp, err := adapter.GenerateContent(context.Background(), UserText("You are a support agent.", "cancel?", 0.2, 300))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() != "You can cancel from your orders page." {
		t.Errorf("text = %q", resp.Text())
	}
	if resp.Usage.InputTokens != 42 || resp.Usage.TotalTokens != 51 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if len(fake.messages) != 2 || fake.messages[0].Role != llms.ChatMessageTypeSystem || fake.messages[1].Role != llms.ChatMessageTypeHuman {
		t.Errorf("unexpected messages: %+v", fake.messages)
	}
	if fake.opts.MaxTokens != 300 || fake.opts.Temperature != 0.2 {
		t.Errorf("options = %+v", fake.opts)
	}
	if adapter.Name() != "groq" || adapter.Model() != "llama-3.1-8b-instant" {
		t.Errorf("identity = %s/%s", adapter.Name(), adapter.Model())
	}
}

func TestOpenAICompatAdapter_Errors(t *testing.T) {
	t.Run("provider error", func(t *testing.T) {
		adapter := NewOpenAICompatAdapterWithModel("groq", "m", &fakeLLM{err: errors.New("429 rate limited")})
		_, err := adapter.GenerateContent(context.Background(), userRequest())
		var perr *ProviderError
		if !errors.As(err, &perr) || perr.Provider != "groq" || perr.Model != "m" {
			t.Fatalf("err = %v, want ProviderError", err)
		}
	})

	t.Run("no choices", func(t *testing.T) {
		adapter := NewOpenAICompatAdapterWithModel("groq", "m", &fakeLLM{resp: &llms.ContentResponse{}})
		if _, err := adapter.GenerateContent(context.Background(), userRequest()); !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("err = %v, want ErrEmptyResponse", err)
		}
	})
}

func TestDefaultBaseURL(t *testing.T) {
	tests := map[string]string{
		"groq":     GroqBaseURL,
		"DeepSeek": DeepSeekBaseURL,
		"qwen":     QwenBaseURL,
		"alibaba":  QwenBaseURL,
		"openai":   OpenAIBaseURL,
	}
	for name, want := range tests {
		if got := defaultBaseURL(name); got != want {
			t.Errorf("defaultBaseURL(%s) = %s, want %s", name, got, want)
		}
	}
}
