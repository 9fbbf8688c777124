package generation

import (
	"context"
	"fmt"
	"strings"

	"support-router/internal/model"
	"support-router/internal/retrieval"
	"support-router/pkg/llmprovider"
	"support-router/pkg/log"
	"support-router/pkg/tokens"
)

type implGenerator struct {
	llm     LLM
	counter tokens.Counter
	cfg     Config
	l       log.Logger
}

var _ Generator = (*implGenerator)(nil)

// New builds a Generator. counter may be nil, in which case context size is
// estimated from rune counts.
func New(llm LLM, counter tokens.Counter, cfg Config, l log.Logger) Generator {
	if counter == nil {
		counter = tokens.EstimateCounter{}
	}
	if cfg.MaxContextTokens <= 0 {
		cfg.MaxContextTokens = DefaultMaxContextTokens
	}
	return &implGenerator{llm: llm, counter: counter, cfg: cfg, l: l}
}

func (g *implGenerator) Generate(ctx context.Context, input Input) (Output, error) {
	if strings.TrimSpace(input.Query) == "" {
		return Output{}, ErrEmptyQuery
	}

	var (
		req *llmprovider.Request
		out Output
	)
	switch input.Mode {
	case ModeEscalate:
		req = llmprovider.UserText(escalateSystem(input.Intent), input.Query, g.cfg.Escalate.Temperature, g.cfg.Escalate.MaxTokens)
	default:
		refs, docs, used := g.buildContext(input.Documents)
		out.ContextDocs = docs
		out.ContextTokens = used

		var prompt string
		if docs == 0 {
			prompt = fmt.Sprintf(promptAnswerNoContext, input.Query)
		} else {
			prompt = fmt.Sprintf(promptAnswerContext, refs, input.Query)
		}
		req = llmprovider.UserText(promptAnswerSystem, prompt, g.cfg.Answer.Temperature, g.cfg.Answer.MaxTokens)
	}

	resp, err := g.llm.GenerateContent(ctx, req)
	if err != nil {
		return Output{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return Output{}, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	out.Text = text
	out.Provider = resp.ProviderName
	out.Model = resp.ModelName
	if resp.Usage != nil {
		out.InputTokens = resp.Usage.InputTokens
		out.OutputTokens = resp.Usage.OutputTokens
	}

	g.l.Debugf(ctx, "%s: mode=%s provider=%s context_docs=%d context_tokens=%d",
		LogPrefixGenerate, input.Mode, out.Provider, out.ContextDocs, out.ContextTokens)
	return out, nil
}

// buildContext concatenates documents in rank order until the token budget
// is spent. The document that crosses the budget is truncated, later ones dropped.
func (g *implGenerator) buildContext(docs []retrieval.Document) (string, int, int) {
	var (
		sb        strings.Builder
		used      int
		included  int
		remaining = g.cfg.MaxContextTokens
	)
	for _, d := range docs {
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		if remaining <= 0 {
			break
		}
		n := g.counter.Count(text)
		if n > remaining {
			text = g.counter.Truncate(text, remaining)
			n = g.counter.Count(text)
		}
		fmt.Fprintf(&sb, documentHeader, included+1, d.Score*100, text)
		used += n
		remaining -= n
		included++
	}
	return sb.String(), included, used
}

func escalateSystem(intent model.Intent) string {
	topic := strings.ReplaceAll(string(intent), "_", " ")
	if topic == "" {
		topic = "general"
	}
	return fmt.Sprintf(promptEscalateSystem, topic)
}
