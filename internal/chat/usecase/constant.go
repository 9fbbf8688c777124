package usecase

import "time"

// Log prefixes
const (
	LogPrefixChat     = "internal.chat.usecase.Chat"
	LogPrefixTemplate = "internal.chat.usecase.respondTemplate"
	LogPrefixLowCost  = "internal.chat.usecase.respondLowCost"
	LogPrefixEscalate = "internal.chat.usecase.respondEscalate"
)

const (
	EscalationStatic   = "static"
	EscalationGenerate = "generate"

	DefaultMaxMessageRunes = 2000
	DefaultCacheTTL        = time.Hour
)

// Fixed customer-facing messages.
const (
	DefaultApologyMessage = "Sorry, we could not process your request right now. " +
		"Please try again in a moment, or contact our customer service team."

	DefaultDegradedMessage = "Sorry, I am having trouble answering that right now. " +
		"Please try again shortly, or contact customer service and a team member will help you."

	DefaultEscalationMessage = "Thank you for reaching out. Your request needs the attention of our support team, " +
		"so it has been forwarded to a specialist who will get back to you as soon as possible."
)

const (
	reasonClassificationUnavailable = "classifier unavailable, no intent guessed"
)
