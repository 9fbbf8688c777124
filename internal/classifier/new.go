package classifier

import (
	"fmt"
	"time"

	"support-router/config"
	"support-router/pkg/log"
)

// New builds the backend selected by cfg. llm may be nil unless the llm
// backend is selected.
func New(cfg config.ClassifierConfig, llm Generator, l log.Logger) (Classifier, error) {
	switch cfg.Backend {
	case BackendLinear:
		return LoadLinear(cfg.ModelPath)
	case BackendRemote:
		timeout := defaultRemoteTimeout
		if cfg.Timeout != "" {
			d, err := time.ParseDuration(cfg.Timeout)
			if err != nil {
				return nil, fmt.Errorf("classifier.timeout: %w", err)
			}
			timeout = d
		}
		retries := cfg.MaxRetries
		if retries < 0 {
			retries = 0
		}
		return NewRemote(RemoteConfig{URL: cfg.URL, Timeout: timeout, MaxRetries: uint64(retries)}, l)
	case BackendLLM:
		if llm == nil {
			return nil, fmt.Errorf("classifier: llm backend needs at least one LLM provider")
		}
		return NewLLM(llm, l), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
