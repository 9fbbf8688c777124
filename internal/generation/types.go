package generation

import (
	"support-router/internal/model"
	"support-router/internal/retrieval"
)

// Mode selects the prompt framing and generation parameters.
type Mode int

const (
	// ModeAnswer answers from retrieved context (LOW_COST).
	ModeAnswer Mode = iota
	// ModeEscalate writes an escalation acknowledgment (ESCALATE, generate mode).
	ModeEscalate
)

func (m Mode) String() string {
	if m == ModeEscalate {
		return "escalate"
	}
	return "answer"
}

// Input is one generation request. Documents may be empty; the prompt then
// states that no reference material was found.
type Input struct {
	Query     string
	Intent    model.Intent
	Documents []retrieval.Document
	Mode      Mode
}

// Output is the generated answer plus accounting.
type Output struct {
	Text          string
	Provider      string
	Model         string
	ContextDocs   int // documents that fit the budget
	ContextTokens int
	InputTokens   int
	OutputTokens  int
}

// Params are the fixed sampling parameters for one mode.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// Config is read once at startup.
type Config struct {
	Answer           Params
	Escalate         Params
	MaxContextTokens int
}
