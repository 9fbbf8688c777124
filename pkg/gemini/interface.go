package gemini

import "context"

// IGemini is the generateContent surface used by the LLM provider manager.
type IGemini interface {
	GenerateContent(ctx context.Context, req *Request) (*Response, error)
	Model() string
}

var _ IGemini = (*geminiImpl)(nil)

// New validates cfg, filling defaults, and returns a client.
func New(cfg Config) (IGemini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newGeminiImpl(cfg), nil
}
