package routing

import "errors"

var (
	// ErrConfiguration marks a routing artifact that must stop the process at startup.
	ErrConfiguration = errors.New("routing configuration error")

	// ErrUnknownIntent is reported when a label is outside the routing table.
	ErrUnknownIntent = errors.New("unknown intent")
)
