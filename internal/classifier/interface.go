package classifier

import (
	"context"
)

// Classifier maps query text to an intent label with a confidence in [0,1].
// Implementations are read-only after construction and safe for concurrent use.
type Classifier interface {
	Classify(ctx context.Context, text string) (Prediction, error)
	Name() string
}
