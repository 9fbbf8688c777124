package llmprovider

import (
	"context"

	"support-router/pkg/gemini"
)

const providerGemini = "gemini"

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	geminiReq := &gemini.Request{
		Messages:    make([]gemini.Content, len(req.Messages)),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.SystemInstruction != nil {
		sys := toGeminiContent(*req.SystemInstruction)
		geminiReq.SystemInstruction = &sys
	}
	for i, msg := range req.Messages {
		geminiReq.Messages[i] = toGeminiContent(msg)
	}

	resp, err := a.client.GenerateContent(ctx, geminiReq)
	if err != nil {
		return nil, &ProviderError{Provider: providerGemini, Model: a.client.Model(), Err: err}
	}

	out := &Response{
		Content:      Message{Role: RoleAssistant},
		ProviderName: providerGemini,
		ModelName:    a.client.Model(),
		Usage:        &Usage{},
	}
	for _, p := range resp.Content.Parts {
		out.Content.Parts = append(out.Content.Parts, Part{Text: p.Text})
	}
	if resp.Usage != nil {
		out.Usage = &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		}
	}
	return out, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return providerGemini
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

func toGeminiContent(msg Message) gemini.Content {
	parts := make([]gemini.Part, len(msg.Parts))
	for i, p := range msg.Parts {
		parts[i] = gemini.Part{Text: p.Text}
	}
	return gemini.Content{Role: msg.Role, Parts: parts}
}
