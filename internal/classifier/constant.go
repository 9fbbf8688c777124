package classifier

// Log prefixes
const (
	LogPrefixLinear = "internal.classifier.Linear"
	LogPrefixRemote = "internal.classifier.Remote"
	LogPrefixLLM    = "internal.classifier.LLM"
)

const (
	BackendLinear = "linear"
	BackendRemote = "remote"
	BackendLLM    = "llm"
)
