package chat

import "errors"

// Domain-specific errors for the chat package.
var (
	ErrEmptyMessage   = errors.New("message is empty")
	ErrMessageTooLong = errors.New("message is too long")

	// Collaborator conditions. They are recovered inside Chat and surface
	// only in logs, metrics and the Turn flags.
	ErrClassificationUnavailable = errors.New("classification unavailable")
	ErrRetrievalUnavailable      = errors.New("retrieval unavailable")
	ErrGenerationUnavailable     = errors.New("generation unavailable")
)
