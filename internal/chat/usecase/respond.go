package usecase

import (
	"context"
	"time"

	"support-router/internal/chat"
	"support-router/internal/chat/repository"
	"support-router/internal/generation"
	"support-router/internal/retrieval"
	"support-router/internal/routing"
)

func (uc *implUseCase) respondTemplate(ctx context.Context, turn *chat.Turn, r routing.ZeroCostRoute) error {
	turn.Enter(chat.StateRespondTemplate)

	text, err := uc.templates.Respond(r.Intent)
	if err != nil {
		// Templates are checked at startup, so this is a broken deployment.
		uc.l.Errorf(ctx, "%s: %v", LogPrefixTemplate, err)
		turn.Response = uc.cfg.DegradedMessage
		turn.Degraded = true
		return nil
	}
	turn.Response = text
	return nil
}

func (uc *implUseCase) respondLowCost(ctx context.Context, turn *chat.Turn, r routing.LowCostRoute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	turn.Enter(chat.StateRetrieve)

	if hit, ok := uc.cachedAnswer(ctx, r.Query); ok {
		turn.Enter(chat.StateGenerate)
		turn.Response = hit.Response
		turn.Documents = sourcesOf(hit.SourceIDs)
		turn.Cached = true
		return nil
	}

	docs, err := uc.retriever.Retrieve(ctx, r.Query, r.TopK)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		uc.l.Warnf(ctx, "%s: %v: %v", LogPrefixLowCost, chat.ErrRetrievalUnavailable, err)
		turn.RetrievalFailed = true
		docs = nil
	}
	turn.Documents = docs

	if err := ctx.Err(); err != nil {
		return err
	}
	turn.Enter(chat.StateGenerate)

	out, err := uc.generator.Generate(ctx, generation.Input{
		Query:     r.Query,
		Intent:    turn.Intent,
		Documents: docs,
		Mode:      generation.ModeAnswer,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		uc.l.Warnf(ctx, "%s: %v: %v", LogPrefixLowCost, chat.ErrGenerationUnavailable, err)
		turn.Response = uc.cfg.DegradedMessage
		turn.Degraded = true
		return nil
	}
	turn.Response = out.Text

	if !turn.RetrievalFailed {
		uc.storeAnswer(ctx, *turn)
	}
	return nil
}

func (uc *implUseCase) respondEscalate(ctx context.Context, turn *chat.Turn, r routing.EscalateRoute) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	turn.Enter(chat.StateEscalate)

	if uc.cfg.EscalationMode != EscalationGenerate {
		turn.Response = uc.cfg.EscalationMessage
		return nil
	}

	out, err := uc.generator.Generate(ctx, generation.Input{
		Query:  r.Query,
		Intent: r.Intent,
		Mode:   generation.ModeEscalate,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		uc.l.Warnf(ctx, "%s: %v: %v", LogPrefixEscalate, chat.ErrGenerationUnavailable, err)
		turn.Response = uc.cfg.EscalationMessage
		turn.Degraded = true
		return nil
	}
	turn.Response = out.Text
	return nil
}

// cachedAnswer never fails the turn; cache errors are logged and treated as a miss.
func (uc *implUseCase) cachedAnswer(ctx context.Context, query string) (repository.CachedAnswer, bool) {
	if uc.cache == nil {
		return repository.CachedAnswer{}, false
	}
	hit, found, err := uc.cache.Get(ctx, query)
	if err != nil {
		uc.l.Warnf(ctx, "%s: cache get: %v", LogPrefixLowCost, err)
		return repository.CachedAnswer{}, false
	}
	return hit, found
}

func (uc *implUseCase) storeAnswer(ctx context.Context, turn chat.Turn) {
	if uc.cache == nil {
		return
	}
	ids := make([]string, 0, len(turn.Documents))
	for _, d := range turn.Documents {
		ids = append(ids, d.ID)
	}
	err := uc.cache.Set(ctx, turn.Query, repository.CachedAnswer{
		Response:  turn.Response,
		SourceIDs: ids,
		Intent:    string(turn.Intent),
		CreatedAt: time.Now().Unix(),
	}, uc.cfg.CacheTTL)
	if err != nil {
		uc.l.Warnf(ctx, "%s: cache set: %v", LogPrefixLowCost, err)
	}
}

func sourcesOf(ids []string) []retrieval.Document {
	if len(ids) == 0 {
		return nil
	}
	docs := make([]retrieval.Document, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, retrieval.Document{ID: id})
	}
	return docs
}
