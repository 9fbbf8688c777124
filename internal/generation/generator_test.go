package generation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"support-router/internal/model"
	"support-router/internal/retrieval"
	"support-router/pkg/llmprovider"
	"support-router/pkg/log"
	"support-router/pkg/tokens"
)

type fakeLLM struct {
	text string
	err  error
	reqs []*llmprovider.Request
}

func (f *fakeLLM) GenerateContent(_ context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{
		Content:      llmprovider.Message{Role: llmprovider.RoleAssistant, Parts: []llmprovider.Part{{Text: f.text}}},
		ProviderName: "fake",
		ModelName:    "fake-1",
		Usage:        &llmprovider.Usage{InputTokens: 120, OutputTokens: 30, TotalTokens: 150},
	}, nil
}

func (f *fakeLLM) prompt() string {
	last := f.reqs[len(f.reqs)-1]
	return last.Messages[0].Parts[0].Text
}

func (f *fakeLLM) system() string {
	last := f.reqs[len(f.reqs)-1]
	return last.SystemInstruction.Parts[0].Text
}

var testCfg = Config{
	Answer:           Params{Temperature: 0.2, MaxTokens: 512},
	Escalate:         Params{Temperature: 0.3, MaxTokens: 1000},
	MaxContextTokens: 100,
}

func TestGenerate_AnswerWithContext(t *testing.T) {
	llm := &fakeLLM{text: "  You can cancel from the Orders page.  "}
	g := New(llm, tokens.EstimateCounter{}, testCfg, log.NewNop())

	out, err := g.Generate(context.Background(), Input{
		Query:  "how do I cancel order 42",
		Intent: model.IntentCancelOrder,
		Documents: []retrieval.Document{
			{ID: "doc_0", Text: "Question: cancel\nAnswer: Orders page", Score: 0.91},
			{ID: "doc_1", Text: "Question: cancel fee\nAnswer: none", Score: 0.80},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "You can cancel from the Orders page.", out.Text)
	assert.Equal(t, 2, out.ContextDocs)
	assert.Positive(t, out.ContextTokens)
	assert.Equal(t, "fake", out.Provider)
	assert.Equal(t, 120, out.InputTokens)

	prompt := llm.prompt()
	assert.Contains(t, prompt, "Answer: Orders page")
	assert.Contains(t, prompt, "Answer: none")
	assert.Contains(t, prompt, "how do I cancel order 42")
	assert.Less(t, strings.Index(prompt, "Orders page"), strings.Index(prompt, "cancel fee"), "rank order kept")
	assert.Equal(t, 0.2, llm.reqs[0].Temperature)
	assert.Equal(t, 512, llm.reqs[0].MaxTokens)
}

func TestGenerate_SkippedDocumentsKeepNumbering(t *testing.T) {
	llm := &fakeLLM{text: "ok"}
	g := New(llm, tokens.EstimateCounter{}, testCfg, log.NewNop())

	out, err := g.Generate(context.Background(), Input{
		Query: "cancel my order",
		Documents: []retrieval.Document{
			{ID: "doc_0", Text: "Question: cancel\nAnswer: Orders page", Score: 0.91},
			{ID: "doc_1", Text: "   ", Score: 0.85},
			{ID: "doc_2", Text: "Question: cancel fee\nAnswer: none", Score: 0.80},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.ContextDocs)
	prompt := llm.prompt()
	assert.Contains(t, prompt, "[1] (relevance 91%)")
	assert.Contains(t, prompt, "[2] (relevance 80%)")
	assert.NotContains(t, prompt, "[3]")
}

func TestGenerate_EmptyContext(t *testing.T) {
	llm := &fakeLLM{text: "General help."}
	g := New(llm, nil, testCfg, log.NewNop())

	out, err := g.Generate(context.Background(), Input{Query: "where is my parcel"})
	require.NoError(t, err)

	assert.Equal(t, 0, out.ContextDocs)
	assert.Contains(t, llm.prompt(), "No specific reference answers were found")
	assert.Contains(t, llm.prompt(), "where is my parcel")
}

func TestGenerate_ContextBudget(t *testing.T) {
	llm := &fakeLLM{text: "ok"}
	cfg := testCfg
	cfg.MaxContextTokens = 10 // 40 runes
	g := New(llm, tokens.EstimateCounter{}, cfg, log.NewNop())

	out, err := g.Generate(context.Background(), Input{
		Query: "q",
		Documents: []retrieval.Document{
			{ID: "a", Text: strings.Repeat("a", 24)},
			{ID: "b", Text: strings.Repeat("b", 80)},
			{ID: "c", Text: strings.Repeat("c", 8)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.ContextDocs, "third document is past the budget")
	assert.Equal(t, 10, out.ContextTokens)
	prompt := llm.prompt()
	assert.Contains(t, prompt, strings.Repeat("b", 16))
	assert.NotContains(t, prompt, strings.Repeat("b", 17))
	assert.NotContains(t, prompt, "ccc")
}

func TestGenerate_Escalate(t *testing.T) {
	llm := &fakeLLM{text: "We are sorry. A specialist will contact you."}
	g := New(llm, nil, testCfg, log.NewNop())

	out, err := g.Generate(context.Background(), Input{
		Query:     "your courier broke my TV",
		Intent:    model.IntentComplaint,
		Mode:      ModeEscalate,
		Documents: []retrieval.Document{{ID: "ignored", Text: "should not appear"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "We are sorry. A specialist will contact you.", out.Text)
	assert.Contains(t, llm.system(), "topic: complaint")
	assert.Equal(t, "your courier broke my TV", llm.prompt())
	assert.Equal(t, 0.3, llm.reqs[0].Temperature)
	assert.Equal(t, 1000, llm.reqs[0].MaxTokens)
}

func TestGenerate_Failures(t *testing.T) {
	g := New(&fakeLLM{err: llmprovider.ErrAllProvidersFailed}, nil, testCfg, log.NewNop())
	_, err := g.Generate(context.Background(), Input{Query: "hello"})
	assert.True(t, errors.Is(err, ErrUnavailable))

	g = New(&fakeLLM{text: "   "}, nil, testCfg, log.NewNop())
	_, err = g.Generate(context.Background(), Input{Query: "hello"})
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = g.Generate(context.Background(), Input{Query: " "})
	assert.True(t, errors.Is(err, ErrEmptyQuery))
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "answer", ModeAnswer.String())
	assert.Equal(t, "escalate", ModeEscalate.String())
}
