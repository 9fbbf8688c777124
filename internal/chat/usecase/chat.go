package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"support-router/internal/chat"
	"support-router/internal/routing"
)

// Chat runs one message through CLASSIFY, ROUTE and the bucket handler.
func (uc *implUseCase) Chat(ctx context.Context, input chat.ChatInput) (chat.Turn, error) {
	started := time.Now()

	msg := strings.TrimSpace(input.Message)
	if msg == "" {
		return chat.Turn{}, chat.ErrEmptyMessage
	}
	if utf8.RuneCountInString(msg) > uc.cfg.MaxMessageRunes {
		return chat.Turn{}, fmt.Errorf("%w: more than %d characters", chat.ErrMessageTooLong, uc.cfg.MaxMessageRunes)
	}

	turn := chat.Turn{Query: msg, SessionID: input.SessionID}
	turn.Enter(chat.StateStart)

	if err := ctx.Err(); err != nil {
		return turn, err
	}
	turn.Enter(chat.StateClassify)
	pred, err := uc.classifier.Classify(ctx, msg)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return turn, ctxErr
		}
		uc.l.Warnf(ctx, "%s: %v: %v", LogPrefixChat, chat.ErrClassificationUnavailable, err)
		turn.Response = uc.cfg.ApologyMessage
		turn.Reason = reasonClassificationUnavailable
		turn.Degraded = true
		return uc.finish(ctx, turn, started), nil
	}
	turn.Intent = pred.Intent
	turn.Confidence = pred.Confidence

	if err := ctx.Err(); err != nil {
		return turn, err
	}
	turn.Enter(chat.StateRoute)
	decision := uc.policy.Decide(pred.Intent, pred.Confidence)
	turn.Bucket = decision.Bucket
	turn.Action = decision.Action
	turn.Reason = decision.Reason
	turn.CostTier = decision.CostTier
	if decision.Action == routing.ActionUnknownIntentFallback {
		uc.l.Infof(ctx, "%s: %v: %q", LogPrefixChat, routing.ErrUnknownIntent, pred.Intent)
	}

	switch r := uc.policy.Route(decision, msg).(type) {
	case routing.ZeroCostRoute:
		err = uc.respondTemplate(ctx, &turn, r)
	case routing.LowCostRoute:
		err = uc.respondLowCost(ctx, &turn, r)
	case routing.EscalateRoute:
		err = uc.respondEscalate(ctx, &turn, r)
	default:
		err = fmt.Errorf("%s: unhandled route %T", LogPrefixChat, r)
	}
	if err != nil {
		return turn, err
	}

	return uc.finish(ctx, turn, started), nil
}

// finish moves the turn to DONE and records it.
func (uc *implUseCase) finish(ctx context.Context, turn chat.Turn, started time.Time) chat.Turn {
	turn.Enter(chat.StateDone)
	turn.Elapsed = time.Since(started)

	uc.stats.record(turn)
	if uc.observer != nil {
		uc.observer.ObserveTurn(turn)
	}

	uc.l.Infof(ctx, "%s: intent=%s confidence=%.4f bucket=%s action=%s degraded=%t elapsed=%s",
		LogPrefixChat, turn.Intent, turn.Confidence, turn.Bucket, turn.Action, turn.Degraded, turn.Elapsed)
	return turn
}
