package chat

import (
	"context"
)

// UseCase answers customer-support queries through the routing pipeline.
type UseCase interface {
	// Chat classifies, routes and answers one message. Collaborator failures
	// degrade the answer instead of failing the call; only invalid input and
	// caller cancellation return an error.
	Chat(ctx context.Context, input ChatInput) (Turn, error)

	// Intents describes the routing table.
	Intents(ctx context.Context) IntentsOutput

	// Stats reports routing counters and cost estimates since startup.
	Stats(ctx context.Context) StatsOutput
}
