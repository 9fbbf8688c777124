package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"support-router/internal/model"
	"support-router/pkg/llmprovider"
	"support-router/pkg/log"
)

type fakeGenerator struct {
	text string
	err  error
	last *llmprovider.Request
}

func (f *fakeGenerator) GenerateContent(_ context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  llmprovider.RoleAssistant,
		Parts: []llmprovider.Part{{Text: f.text}},
	}}, nil
}

func TestLLMClassify(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantIn   model.Intent
		wantConf float64
	}{
		{"plain json", `{"intent":"get_refund","confidence":85,"reasoning":"asks for money back"}`, model.IntentGetRefund, 0.85},
		{"fenced json", "```json\n{\"intent\":\"Track_Order\",\"confidence\":100}\n```", model.IntentTrackOrder, 1},
		{"bare fence", "```\n{\"intent\":\"review\",\"confidence\":40}\n```", model.IntentReview, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: tt.text}
			c := NewLLM(gen, log.NewNop())

			p, err := c.Classify(context.Background(), "I want my money back")
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if p.Intent != tt.wantIn || p.Confidence != tt.wantConf {
				t.Errorf("prediction = %+v, want %s@%v", p, tt.wantIn, tt.wantConf)
			}
		})
	}
}

func TestLLMClassify_UnparseableAnswer(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"prose", "I think this is about an order"},
		{"blank", "   "},
		{"truncated json", `{"intent":"get_refund","confid`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewLLM(&fakeGenerator{text: tt.text}, log.NewNop())

			p, err := c.Classify(context.Background(), "I want my money back")
			if !errors.Is(err, ErrUnavailable) {
				t.Fatalf("err = %v, want ErrUnavailable", err)
			}
			if p != (Prediction{}) {
				t.Errorf("prediction = %+v, want zero value", p)
			}
		})
	}
}

func TestLLMClassify_PromptListsTaxonomy(t *testing.T) {
	gen := &fakeGenerator{text: `{"intent":"review","confidence":90}`}
	c := NewLLM(gen, log.NewNop())

	if _, err := c.Classify(context.Background(), "leave feedback"); err != nil {
		t.Fatal(err)
	}
	system := gen.last.SystemInstruction.Parts[0].Text
	for _, in := range model.AllIntents() {
		if !strings.Contains(system, string(in)) {
			t.Errorf("system prompt missing %s", in)
		}
	}
	if gen.last.Temperature != llmTemperature {
		t.Errorf("temperature = %v", gen.last.Temperature)
	}
}

func TestLLMClassify_ProviderFailure(t *testing.T) {
	c := NewLLM(&fakeGenerator{err: llmprovider.ErrAllProvidersFailed}, log.NewNop())

	if _, err := c.Classify(context.Background(), "hello"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
	if _, err := c.Classify(context.Background(), ""); !errors.Is(err, ErrEmptyText) {
		t.Errorf("err = %v, want ErrEmptyText", err)
	}
}
