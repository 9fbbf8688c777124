package generation

import (
	"context"

	"support-router/pkg/llmprovider"
)

// Generator produces response text for the LOW_COST and ESCALATE paths.
type Generator interface {
	Generate(ctx context.Context, input Input) (Output, error)
}

// LLM is the slice of the provider manager used for generation.
type LLM interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}
