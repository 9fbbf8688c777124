package usecase

import (
	"time"

	"support-router/internal/chat"
	"support-router/internal/chat/repository"
	"support-router/internal/classifier"
	"support-router/internal/cost"
	"support-router/internal/generation"
	"support-router/internal/model"
	"support-router/internal/retrieval"
	"support-router/internal/routing"
	pkgLog "support-router/pkg/log"
)

// TemplateResponder returns canned text for ZERO_COST intents.
type TemplateResponder interface {
	Respond(intent model.Intent) (string, error)
}

// Observer receives every finished turn (metrics).
type Observer interface {
	ObserveTurn(t chat.Turn)
}

// Config holds the fixed behaviour of the orchestrator.
type Config struct {
	EscalationMode    string
	EscalationMessage string
	ApologyMessage    string
	DegradedMessage   string
	MaxMessageRunes   int
	CacheTTL          time.Duration
	Costs             cost.Table
}

// Deps are the collaborators of the orchestrator. Cache and Observer are optional.
type Deps struct {
	Classifier classifier.Classifier
	Policy     *routing.Policy
	Templates  TemplateResponder
	Retriever  retrieval.Retriever
	Generator  generation.Generator
	Cache      repository.AnswerCache
	Observer   Observer
}

type implUseCase struct {
	l          pkgLog.Logger
	classifier classifier.Classifier
	policy     *routing.Policy
	templates  TemplateResponder
	retriever  retrieval.Retriever
	generator  generation.Generator
	cache      repository.AnswerCache
	observer   Observer
	cfg        Config
	stats      *statsTracker
}

var _ chat.UseCase = (*implUseCase)(nil)

// New creates a new chat UseCase instance.
func New(l pkgLog.Logger, deps Deps, cfg Config) chat.UseCase {
	if cfg.EscalationMode == "" {
		cfg.EscalationMode = EscalationStatic
	}
	if cfg.EscalationMessage == "" {
		cfg.EscalationMessage = DefaultEscalationMessage
	}
	if cfg.ApologyMessage == "" {
		cfg.ApologyMessage = DefaultApologyMessage
	}
	if cfg.DegradedMessage == "" {
		cfg.DegradedMessage = DefaultDegradedMessage
	}
	if cfg.MaxMessageRunes <= 0 {
		cfg.MaxMessageRunes = DefaultMaxMessageRunes
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}

	return &implUseCase{
		l:          l,
		classifier: deps.Classifier,
		policy:     deps.Policy,
		templates:  deps.Templates,
		retriever:  deps.Retriever,
		generator:  deps.Generator,
		cache:      deps.Cache,
		observer:   deps.Observer,
		cfg:        cfg,
		stats:      newStatsTracker(deps.Policy.Threshold(), cfg.Costs),
	}
}
