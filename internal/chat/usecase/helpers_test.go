package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"support-router/internal/chat"
	"support-router/internal/chat/repository"
	"support-router/internal/chat/usecase"
	"support-router/internal/classifier"
	"support-router/internal/cost"
	"support-router/internal/generation"
	"support-router/internal/model"
	"support-router/internal/retrieval"
	"support-router/internal/routing"
	"support-router/internal/template"
	"support-router/pkg/llmprovider"
	pkgLog "support-router/pkg/log"
)

type fakeClassifier struct {
	pred classifier.Prediction
	err  error
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) (classifier.Prediction, error) {
	return f.pred, f.err
}

func (f *fakeClassifier) Name() string { return "fake" }

// textLLM answers every classification prompt with a fixed text.
type textLLM struct {
	text string
}

func (f textLLM) GenerateContent(_ context.Context, _ *llmprovider.Request) (*llmprovider.Response, error) {
	return &llmprovider.Response{Content: llmprovider.Message{
		Role:  llmprovider.RoleAssistant,
		Parts: []llmprovider.Part{{Text: f.text}},
	}}, nil
}

type fakeRetriever struct {
	mu      sync.Mutex
	docs    []retrieval.Document
	err     error
	queries []string
	ks      []int
}

func (f *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]retrieval.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	f.ks = append(f.ks, k)
	return f.docs, f.err
}

func (f *fakeRetriever) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

type fakeGenerator struct {
	mu     sync.Mutex
	text   string
	err    error
	delay  time.Duration
	inputs []generation.Input
}

func (f *fakeGenerator) Generate(ctx context.Context, input generation.Input) (generation.Output, error) {
	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.mu.Unlock()

	if f.delay > 0 {
		// Mirrors the provider's own call timeout: expires independently of ctx.
		select {
		case <-time.After(f.delay):
			return generation.Output{}, context.DeadlineExceeded
		case <-ctx.Done():
			return generation.Output{}, ctx.Err()
		}
	}
	if f.err != nil {
		return generation.Output{}, f.err
	}
	return generation.Output{Text: f.text, ContextDocs: len(input.Documents)}, nil
}

func (f *fakeGenerator) calls() []generation.Input {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]generation.Input(nil), f.inputs...)
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]repository.CachedAnswer
	getErr  error
	sets    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]repository.CachedAnswer)}
}

func (m *memoryCache) Get(ctx context.Context, query string) (repository.CachedAnswer, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return repository.CachedAnswer{}, false, m.getErr
	}
	a, ok := m.entries[query]
	return a, ok, nil
}

func (m *memoryCache) Set(ctx context.Context, query string, answer repository.CachedAnswer, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.entries[query] = answer
	return nil
}

type recordingObserver struct {
	mu    sync.Mutex
	turns []chat.Turn
}

func (o *recordingObserver) ObserveTurn(t chat.Turn) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.turns = append(o.turns, t)
}

var errBackend = errors.New("backend down")

var kbDocs = []retrieval.Document{
	{ID: "doc_1", Text: "Question: How do I cancel?\nAnswer: Open your orders and press cancel.", Score: 0.91},
	{ID: "doc_2", Text: "Question: Can I cancel after shipping?\nAnswer: Contact us for a return.", Score: 0.84},
}

type fixture struct {
	clf      *fakeClassifier
	ret      *fakeRetriever
	gen      *fakeGenerator
	cache    *memoryCache
	observer *recordingObserver
	uc       chat.UseCase
}

type option func(*usecase.Config, *routing.Config, *usecase.Deps)

func withEscalationGenerate() option {
	return func(c *usecase.Config, _ *routing.Config, _ *usecase.Deps) {
		c.EscalationMode = usecase.EscalationGenerate
	}
}

func withCache(m *memoryCache) option {
	return func(_ *usecase.Config, _ *routing.Config, d *usecase.Deps) {
		d.Cache = m
	}
}

func withClassifier(c classifier.Classifier) option {
	return func(_ *usecase.Config, _ *routing.Config, d *usecase.Deps) {
		d.Classifier = c
	}
}

func withPinEscalation() option {
	return func(_ *usecase.Config, r *routing.Config, _ *usecase.Deps) {
		r.PinEscalation = true
	}
}

func newFixture(t *testing.T, pred classifier.Prediction, opts ...option) *fixture {
	t.Helper()

	f := &fixture{
		clf:      &fakeClassifier{pred: pred},
		ret:      &fakeRetriever{docs: kbDocs},
		gen:      &fakeGenerator{text: "You can cancel from the orders page."},
		observer: &recordingObserver{},
	}

	cfg := usecase.Config{Costs: cost.DefaultTable}
	rcfg := routing.Config{Threshold: routing.DefaultThreshold, TopK: routing.DefaultTopK}
	deps := usecase.Deps{
		Classifier: f.clf,
		Retriever:  f.ret,
		Generator:  f.gen,
		Observer:   f.observer,
	}
	for _, opt := range opts {
		opt(&cfg, &rcfg, &deps)
	}
	if m, ok := deps.Cache.(*memoryCache); ok {
		f.cache = m
	}

	policy, err := routing.New(routing.DefaultTable(), rcfg)
	if err != nil {
		t.Fatalf("routing.New: %v", err)
	}
	templates, err := template.New(routing.DefaultTable(), template.Defaults())
	if err != nil {
		t.Fatalf("template.New: %v", err)
	}
	deps.Policy = policy
	deps.Templates = templates

	f.uc = usecase.New(pkgLog.NewNop(), deps, cfg)
	return f
}

func trackOrderTemplate(t *testing.T) string {
	t.Helper()
	r, err := template.New(routing.DefaultTable(), template.Defaults())
	if err != nil {
		t.Fatalf("template.New: %v", err)
	}
	text, err := r.Respond(model.IntentTrackOrder)
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	return text
}
