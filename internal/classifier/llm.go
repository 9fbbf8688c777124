package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"support-router/internal/model"
	"support-router/pkg/llmprovider"
	"support-router/pkg/log"
)

const (
	llmTemperature = 0.1
	llmMaxTokens   = 200

	promptLLMSystem = `You are a semantic router for an e-commerce customer support desk.
Classify the customer message into exactly one intent from this list:
%s

Answer with JSON only:
{"intent": "<one intent from the list>", "confidence": 0-100, "reasoning": "short explanation"}`
)

// Generator is the slice of the LLM provider manager the router needs.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

type llmOutput struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"` // 0-100
	Reasoning  string  `json:"reasoning"`
}

// LLMClassifier asks a hosted model to label the message. An empty or
// unparseable answer is reported as ErrUnavailable.
type LLMClassifier struct {
	llm    Generator
	system string
	l      log.Logger
}

var _ Classifier = (*LLMClassifier)(nil)

func NewLLM(llm Generator, l log.Logger) *LLMClassifier {
	labels := make([]string, 0, len(model.AllIntents()))
	for _, in := range model.AllIntents() {
		labels = append(labels, "- "+string(in))
	}
	return &LLMClassifier{
		llm:    llm,
		system: fmt.Sprintf(promptLLMSystem, strings.Join(labels, "\n")),
		l:      l,
	}
}

func (c *LLMClassifier) Name() string { return BackendLLM }

func (c *LLMClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyText
	}

	resp, err := c.llm.GenerateContent(ctx, llmprovider.UserText(c.system, text, llmTemperature, llmMaxTokens))
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	raw := stripCodeFence(resp.Text())
	if raw == "" {
		return Prediction{}, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	var out llmOutput
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return Prediction{}, fmt.Errorf("%w: parse response: %v", ErrUnavailable, err)
	}

	p := Prediction{
		Intent:     model.NormalizeIntent(out.Intent),
		Confidence: clamp(out.Confidence / 100),
	}
	c.l.Debugf(ctx, "%s: classified as %s (confidence: %.0f%%)", LogPrefixLLM, p.Intent, out.Confidence)
	return p, nil
}

// stripCodeFence removes a ```json ... ``` wrapper if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
