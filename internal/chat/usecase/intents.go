package usecase

import (
	"context"

	"support-router/internal/chat"
	"support-router/internal/model"
)

// Intents lists the routing table grouped by bucket, cheapest first.
func (uc *implUseCase) Intents(ctx context.Context) chat.IntentsOutput {
	table := uc.policy.Table()

	out := chat.IntentsOutput{
		TotalIntents: table.Len(),
		Threshold:    uc.policy.Threshold(),
		Buckets:      make([]chat.BucketInfo, 0, len(model.Buckets)),
	}
	for _, b := range model.Buckets {
		out.Buckets = append(out.Buckets, chat.BucketInfo{
			Bucket:      b,
			CostTier:    b.CostTier(),
			Description: b.Description(),
			Intents:     table.Intents(b),
		})
	}
	return out
}
