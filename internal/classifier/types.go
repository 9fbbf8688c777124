package classifier

import (
	"support-router/internal/model"
)

// Prediction is a single classification result.
type Prediction struct {
	Intent     model.Intent
	Confidence float64
}

// clamp keeps confidence within [0,1].
func clamp(c float64) float64 {
	switch {
	case c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}
