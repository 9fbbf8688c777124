// Package app assembles the routing stack from configuration. Both the API
// server and the operator CLI build through it.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"support-router/config"
	"support-router/internal/chat"
	"support-router/internal/chat/repository"
	chatRedis "support-router/internal/chat/repository/redis"
	"support-router/internal/chat/usecase"
	"support-router/internal/classifier"
	"support-router/internal/cost"
	"support-router/internal/generation"
	"support-router/internal/retrieval"
	"support-router/internal/routing"
	"support-router/internal/template"
	"support-router/pkg/llmprovider"
	"support-router/pkg/log"
	pkgRedis "support-router/pkg/redis"
	"support-router/pkg/tokens"
	"support-router/pkg/voyage"
)

const LogPrefixBuild = "internal.app.Build"

// App holds the read-only collaborators built once at startup.
type App struct {
	cfg *config.Config
	l   log.Logger

	LLM        *llmprovider.Manager
	Classifier classifier.Classifier
	Policy     *routing.Policy
	Templates  *template.Responder
	Embedder   retrieval.Embedder
	Store      retrieval.Store
	Generator  generation.Generator
	Cache      repository.AnswerCache
	Redis      *pkgRedis.Client
	Costs      cost.Table
}

// Build wires every component. Errors wrapping routing.ErrConfiguration must stop the process.
func Build(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	a := &App{cfg: cfg, l: l, Costs: cost.FromConfig(cfg.Costs)}

	a.LLM = a.buildLLM(ctx)

	var err error
	if a.Policy, a.Templates, err = a.buildRouting(); err != nil {
		return nil, err
	}

	var clfLLM classifier.Generator
	if len(a.LLM.Providers()) > 0 {
		clfLLM = a.LLM
	}
	if a.Classifier, err = classifier.New(cfg.Classifier, clfLLM, l); err != nil {
		return nil, fmt.Errorf("%w: classifier: %v", routing.ErrConfiguration, err)
	}
	l.Infof(ctx, "%s: classifier backend %s", LogPrefixBuild, a.Classifier.Name())

	if a.Embedder, err = a.buildEmbedder(ctx); err != nil {
		return nil, err
	}
	if a.Store, err = retrieval.New(cfg, a.Embedder, l); err != nil {
		return nil, fmt.Errorf("%w: retrieval: %v", routing.ErrConfiguration, err)
	}

	counter, err := tokens.New(cfg.Generation.Tokenizer)
	if err != nil {
		l.Warnf(ctx, "%s: %v", LogPrefixBuild, err)
	}
	a.Generator = generation.New(a.LLM, counter, generation.Config{
		Answer: generation.Params{
			Temperature: cfg.Generation.LowCost.Temperature,
			MaxTokens:   cfg.Generation.LowCost.MaxTokens,
		},
		Escalate: generation.Params{
			Temperature: cfg.Generation.Escalate.Temperature,
			MaxTokens:   cfg.Generation.Escalate.MaxTokens,
		},
		MaxContextTokens: cfg.Generation.MaxContextTokens,
	}, l)

	if cfg.Cache.Enabled {
		a.Redis = pkgRedis.New(pkgRedis.Config{
			Address:  cfg.Cache.Address,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
		})
		if err := a.Redis.Ping(ctx); err != nil {
			l.Warnf(ctx, "%s: response cache unreachable, requests will miss until it recovers: %v", LogPrefixBuild, err)
		}
		a.Cache = chatRedis.New(a.Redis)
	}

	return a, nil
}

// ChatUseCase builds the orchestrator. observer may be nil.
func (a *App) ChatUseCase(observer usecase.Observer) (chat.UseCase, error) {
	ttl := usecase.DefaultCacheTTL
	if a.cfg.Cache.TTL != "" {
		d, err := time.ParseDuration(a.cfg.Cache.TTL)
		if err != nil {
			return nil, fmt.Errorf("%w: cache.ttl: %v", routing.ErrConfiguration, err)
		}
		ttl = d
	}

	deps := usecase.Deps{
		Classifier: a.Classifier,
		Policy:     a.Policy,
		Templates:  a.Templates,
		Retriever:  a.Store,
		Generator:  a.Generator,
		Observer:   observer,
	}
	if a.Cache != nil {
		deps.Cache = a.Cache
	}

	return usecase.New(a.l, deps, usecase.Config{
		EscalationMode:    a.cfg.Escalation.Mode,
		EscalationMessage: a.cfg.Escalation.Message,
		CacheTTL:          ttl,
		Costs:             a.Costs,
	}), nil
}

// Close releases network clients.
func (a *App) Close() error {
	if a.Redis != nil {
		return a.Redis.Close()
	}
	return nil
}

func (a *App) buildLLM(ctx context.Context) *llmprovider.Manager {
	m, err := llmprovider.NewManagerFromConfig(&a.cfg.LLM, a.l)
	if err == nil {
		for _, p := range m.Providers() {
			a.l.Infof(ctx, "%s: LLM provider %s (%s)", LogPrefixBuild, p.Name(), p.Model())
		}
		return m
	}
	if errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		a.l.Warnf(ctx, "%s: no LLM provider configured, generated answers will degrade", LogPrefixBuild)
	} else {
		a.l.Warnf(ctx, "%s: LLM providers unavailable, generated answers will degrade: %v", LogPrefixBuild, err)
	}
	return llmprovider.NewManager(nil, nil, a.l)
}

func (a *App) buildRouting() (*routing.Policy, *template.Responder, error) {
	table := routing.DefaultTable()
	if path := a.cfg.Routing.TablePath; path != "" {
		t, err := routing.LoadTable(path)
		if err != nil {
			return nil, nil, err
		}
		table = t
	}

	policy, err := routing.New(table, routing.Config{
		Threshold:     a.cfg.Routing.Threshold,
		TopK:          a.cfg.Routing.TopK,
		PinEscalation: a.cfg.Routing.PinEscalation,
	})
	if err != nil {
		return nil, nil, err
	}

	texts := template.Defaults()
	if path := a.cfg.Routing.TemplatesPath; path != "" {
		loaded, err := template.Load(path)
		if err != nil {
			return nil, nil, err
		}
		texts = loaded
	}
	responder, err := template.New(table, texts)
	if err != nil {
		return nil, nil, err
	}
	return policy, responder, nil
}

func (a *App) buildEmbedder(ctx context.Context) (retrieval.Embedder, error) {
	if a.cfg.Voyage.APIKey == "" {
		a.l.Warnf(ctx, "%s: voyage.api_key is empty, LOW_COST answers will be generated without context", LogPrefixBuild)
		return retrieval.NoEmbedder{}, nil
	}
	client, err := voyage.New(voyage.Config{
		APIKey:  a.cfg.Voyage.APIKey,
		Model:   a.cfg.Voyage.Model,
		BaseURL: a.cfg.Voyage.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: voyage: %v", routing.ErrConfiguration, err)
	}
	cached, err := retrieval.NewCachedEmbedder(client, a.cfg.Retrieval.EmbeddingCacheSize)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding cache: %v", routing.ErrConfiguration, err)
	}
	return cached, nil
}
