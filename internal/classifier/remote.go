package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"support-router/internal/model"
	"support-router/pkg/log"
)

const (
	defaultRemoteTimeout = 5 * time.Second
	remoteBackoffBase    = 100 * time.Millisecond
)

// RemoteConfig configures an HTTP classification service client.
type RemoteConfig struct {
	URL        string
	Timeout    time.Duration
	MaxRetries uint64
	HTTPClient *http.Client
}

type remoteRequest struct {
	Text string `json:"text"`
}

type remoteResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// RemoteClassifier calls a classification service over HTTP. Transport
// failures and 5xx answers are retried with exponential backoff.
type RemoteClassifier struct {
	url        string
	maxRetries uint64
	httpClient *http.Client
	l          log.Logger
}

var _ Classifier = (*RemoteClassifier)(nil)

func NewRemote(cfg RemoteConfig, l log.Logger) (*RemoteClassifier, error) {
	if strings.TrimSpace(cfg.URL) == "" {
		return nil, fmt.Errorf("%s: url is required", LogPrefixRemote)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultRemoteTimeout
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &RemoteClassifier{
		url:        cfg.URL,
		maxRetries: cfg.MaxRetries,
		httpClient: cfg.HTTPClient,
		l:          l,
	}, nil
}

func (c *RemoteClassifier) Name() string { return BackendRemote }

func (c *RemoteClassifier) Classify(ctx context.Context, text string) (Prediction, error) {
	if strings.TrimSpace(text) == "" {
		return Prediction{}, ErrEmptyText
	}

	body, err := json.Marshal(remoteRequest{Text: text})
	if err != nil {
		return Prediction{}, fmt.Errorf("%s: marshal: %w", LogPrefixRemote, err)
	}

	var out remoteResponse
	attempt := 0
	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(remoteBackoffBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		callErr := c.call(ctx, body, &out)
		if callErr == nil {
			return nil
		}
		var perm *permanentError
		if errors.As(callErr, &perm) {
			return callErr
		}
		c.l.Warnf(ctx, "%s: attempt %d failed: %v", LogPrefixRemote, attempt, callErr)
		return retry.RetryableError(callErr)
	})
	if err != nil {
		return Prediction{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return Prediction{
		Intent:     model.NormalizeIntent(out.Intent),
		Confidence: clamp(out.Confidence),
	}, nil
}

// permanentError marks answers that retrying cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func (c *RemoteClassifier) call(ctx context.Context, body []byte, out *remoteResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return &permanentError{err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &permanentError{err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &permanentError{err: fmt.Errorf("decode: %w", err)}
	}
	if out.Intent == "" {
		return &permanentError{err: errors.New("empty intent")}
	}
	return nil
}
