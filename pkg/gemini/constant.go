package gemini

import "time"

const (
	// DefaultModel is a low-latency model suited to short support answers.
	DefaultModel  = "gemini-2.5-flash-lite"
	DefaultAPIURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultTimeout bounds one HTTP call; the provider manager applies its own overall budget.
	DefaultTimeout = 20 * time.Second

	RoleUser      = "user"
	RoleAssistant = "assistant"
	// roleModel is the wire name Gemini uses for the assistant.
	roleModel = "model"

	maxErrorBody = 4096
)
